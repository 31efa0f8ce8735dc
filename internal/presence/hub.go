package presence

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
)

const queueKeyPrefix = "presence:queue:"

// Hub relays presence events between the two ends of a conversation. Each
// websocket joins the room for one (self, peer) pair; events for an offline
// peer are queued in Redis and replayed when that peer connects.
type Hub struct {
	ctx       context.Context
	cancelCtx context.CancelFunc

	redisClient *redis.Client
	logger      *logrus.Logger
	upgrader    *websocket.Upgrader

	mutex sync.Mutex
	conns map[connKey]*websocket.Conn
}

// connKey identifies one end of a conversation room.
type connKey struct {
	self string
	peer string
}

func NewHub(ctx context.Context, redisClient *redis.Client, logger *logrus.Logger) *Hub {
	ctx, cancelCtx := context.WithCancel(ctx)
	return &Hub{
		ctx:         ctx,
		cancelCtx:   cancelCtx,
		redisClient: redisClient,
		logger:      logger,
		conns:       make(map[connKey]*websocket.Conn),
		upgrader: &websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Router exposes the hub's HTTP surface.
func (h *Hub) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ws", h.HandleConnections)
	r.HandleFunc("/online/{account}", h.HandleOnline).Methods(http.MethodGet)
	return r
}

// HandleConnections upgrades the request and pins the socket into its room.
// Query parameters self and peer name the two ends of the conversation.
func (h *Hub) HandleConnections(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Errorf("Error upgrading to websocket: %v", err)
		return
	}
	defer ws.Close()

	self := string(domain.NormalizeAddress(r.URL.Query().Get("self")))
	peer := string(domain.NormalizeAddress(r.URL.Query().Get("peer")))
	if self == "" || peer == "" {
		h.logger.Error("Missing self or peer in presence query")
		return
	}
	key := connKey{self: self, peer: peer}

	h.mutex.Lock()
	h.conns[key] = ws
	h.mutex.Unlock()
	h.logger.Infof("User %s joined room with %s", self, peer)

	h.relay(Event{Kind: EventOnline, From: self, To: peer, At: time.Now().Unix()})
	h.replayQueued(key, ws)

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			break
		}
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			h.logger.Errorf("Invalid presence frame from user %s: %v", self, err)
			continue
		}
		// The sender cannot speak for anyone else.
		ev.From = self
		ev.To = peer
		if ev.At == 0 {
			ev.At = time.Now().Unix()
		}
		h.relay(ev)
	}

	h.mutex.Lock()
	delete(h.conns, key)
	h.mutex.Unlock()
	h.relay(Event{Kind: EventOffline, From: self, To: peer, At: time.Now().Unix()})
	h.logger.Infof("User %s left room with %s", self, peer)
}

// HandleOnline reports whether an account has any open presence socket.
func (h *Hub) HandleOnline(w http.ResponseWriter, r *http.Request) {
	account := string(domain.NormalizeAddress(mux.Vars(r)["account"]))

	h.mutex.Lock()
	online := false
	for key := range h.conns {
		if key.self == account {
			online = true
			break
		}
	}
	h.mutex.Unlock()

	json.NewEncoder(w).Encode(struct {
		Online bool `json:"online"`
	}{Online: online})
}

func (h *Hub) Close() {
	h.cancelCtx()
	h.mutex.Lock()
	for _, conn := range h.conns {
		conn.Close()
	}
	h.mutex.Unlock()
}

// relay delivers an event to the recipient's end of the room, queuing it
// when that end is offline. Online and offline markers are not queued.
func (h *Hub) relay(ev Event) {
	h.mutex.Lock()
	conn, online := h.conns[connKey{self: ev.To, peer: ev.From}]
	h.mutex.Unlock()

	raw, err := json.Marshal(ev)
	if err != nil {
		h.logger.Errorf("Error marshalling presence event: %v", err)
		return
	}

	if online {
		if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			h.logger.Errorf("Error relaying presence event to user %s: %v", ev.To, err)
		}
		return
	}
	if ev.Kind == EventOnline || ev.Kind == EventOffline {
		return
	}
	if err := h.redisClient.RPush(h.ctx, queueKey(ev.To, ev.From), raw).Err(); err != nil {
		h.logger.Errorf("Error queuing presence event for user %s: %v", ev.To, err)
	}
}

// replayQueued drains events queued while this end of the room was away.
func (h *Hub) replayQueued(key connKey, ws *websocket.Conn) {
	events, err := h.redisClient.LRange(h.ctx, queueKey(key.self, key.peer), 0, -1).Result()
	if err != nil {
		h.logger.Errorf("Error retrieving queued events for user %s: %v", key.self, err)
		return
	}
	for _, raw := range events {
		if err := ws.WriteMessage(websocket.TextMessage, []byte(raw)); err != nil {
			h.logger.Errorf("Error replaying queued event to user %s: %v", key.self, err)
			return
		}
	}
	h.redisClient.Del(h.ctx, queueKey(key.self, key.peer))
}

func queueKey(self, peer string) string {
	return queueKeyPrefix + self + ":" + peer
}
