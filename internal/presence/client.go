package presence

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
)

// Client is one end of a conversation room on a presence hub.
type Client struct {
	conn *websocket.Conn
	self domain.Address
	peer domain.Address

	writeMu sync.Mutex
	events  chan Event
}

// Dial joins the room for (self, peer) on the hub at base, an http:// or
// ws:// URL.
func Dial(ctx context.Context, base string, self, peer domain.Address) (*Client, error) {
	wsBase := base
	if strings.HasPrefix(wsBase, "http") {
		wsBase = "ws" + strings.TrimPrefix(wsBase, "http")
	}
	u := strings.TrimRight(wsBase, "/") + "/ws?self=" + url.QueryEscape(string(self)) + "&peer=" + url.QueryEscape(string(peer))

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return nil, domain.Transport("dial presence hub", err)
	}
	c := &Client{
		conn:   conn,
		self:   self,
		peer:   peer,
		events: make(chan Event, 16),
	}
	go c.readLoop()
	return c, nil
}

func (c *Client) readLoop() {
	defer close(c.events)
	for {
		var ev Event
		if err := c.conn.ReadJSON(&ev); err != nil {
			return
		}
		c.events <- ev
	}
}

// Events yields frames from the peer's end until the connection drops.
func (c *Client) Events() <-chan Event { return c.events }

func (c *Client) send(kind EventKind, cid string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	err := c.conn.WriteJSON(Event{
		Kind: kind,
		From: string(c.self),
		To:   string(c.peer),
		CID:  cid,
		At:   time.Now().Unix(),
	})
	if err != nil {
		return domain.Transport("send presence event", err)
	}
	return nil
}

// NotifyMessage tells the peer a new message pointer landed on the ledger.
func (c *Client) NotifyMessage(cid string) error { return c.send(EventNewMessage, cid) }

func (c *Client) TypingStart() error { return c.send(EventTypingStart, "") }
func (c *Client) TypingStop() error  { return c.send(EventTypingStop, "") }

// ReadReceipt acknowledges that the message with the given CID was read.
func (c *Client) ReadReceipt(cid string) error { return c.send(EventReadReceipt, cid) }

func (c *Client) Close() error { return c.conn.Close() }
