package ledger

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
	"github.com/roudra323/Chitchat-DApp-Project/internal/keycodec"
)

// HTTP talks to a hosted ledger gateway that fronts the ChitChat contract.
// Every method maps to one gateway route; transaction routes block until the
// gateway reports the transaction mined.
type HTTP struct {
	Base string
	HTTP *http.Client
}

func NewHTTP(base string) *HTTP {
	return &HTTP{Base: strings.TrimRight(base, "/"), HTTP: http.DefaultClient}
}

type registerReq struct {
	Name       string `json:"name"`
	ProfileCID string `json:"profileCid"`
	PublicKey  string `json:"publicKey"`
}

type userInfoResp struct {
	Name       string `json:"name"`
	ProfileCID string `json:"profileCid"`
}

type keyResp struct {
	Key string `json:"key"`
}

type boolResp struct {
	Value bool `json:"value"`
}

type statusResp struct {
	Status int `json:"status"`
}

func (c *HTTP) CreateAccount(ctx context.Context, account domain.Address, name, profileCID string, publicKey []byte) error {
	in := registerReq{
		Name:       name,
		ProfileCID: profileCID,
		PublicKey:  base64.StdEncoding.EncodeToString(publicKey),
	}
	return c.post(ctx, "/accounts/"+url.PathEscape(string(account)), in, nil)
}

func (c *HTTP) GetUserInfo(ctx context.Context, account domain.Address) (domain.UserInfo, error) {
	var out userInfoResp
	if err := c.getJSON(ctx, "/accounts/"+url.PathEscape(string(account)), &out); err != nil {
		return domain.UserInfo{}, err
	}
	return domain.UserInfo{Name: out.Name, ProfileCID: out.ProfileCID}, nil
}

func (c *HTTP) GetUserPublicKey(ctx context.Context, account domain.Address) ([]byte, error) {
	var out keyResp
	if err := c.getJSON(ctx, "/accounts/"+url.PathEscape(string(account))+"/key", &out); err != nil {
		return nil, err
	}
	// Older gateway versions returned hex, current ones base64; detect
	// rather than assume.
	return keycodec.DetectBytes(out.Key), nil
}

func (c *HTTP) IsUserRegistered(ctx context.Context, account domain.Address) (bool, error) {
	var out boolResp
	if err := c.getJSON(ctx, "/accounts/"+url.PathEscape(string(account))+"/registered", &out); err != nil {
		return false, err
	}
	return out.Value, nil
}

func (c *HTTP) SendFriendRequest(ctx context.Context, from, to domain.Address) error {
	return c.post(ctx, c.friendPath(from, to, "request"), nil, nil)
}

func (c *HTTP) AcceptFriendRequest(ctx context.Context, from, to domain.Address) error {
	return c.post(ctx, c.friendPath(from, to, "accept"), nil, nil)
}

func (c *HTTP) RejectFriendRequest(ctx context.Context, from, to domain.Address) error {
	return c.post(ctx, c.friendPath(from, to, "reject"), nil, nil)
}

func (c *HTTP) RemoveFriend(ctx context.Context, from, to domain.Address) error {
	return c.post(ctx, c.friendPath(from, to, "remove"), nil, nil)
}

func (c *HTTP) FriendRequestStatus(ctx context.Context, account, other domain.Address) (domain.FriendRequestStatus, error) {
	var out statusResp
	if err := c.getJSON(ctx, c.friendPath(account, other, "status"), &out); err != nil {
		return domain.RequestNone, err
	}
	return domain.FriendRequestStatus(out.Status), nil
}

func (c *HTTP) IsKeyExchanged(ctx context.Context, account, other domain.Address) (bool, error) {
	var out boolResp
	if err := c.getJSON(ctx, c.friendPath(account, other, "key-exchanged"), &out); err != nil {
		return false, err
	}
	return out.Value, nil
}

// Wrapped session keys travel hex-encoded, matching the contract's storage
// format; identity public keys stay base64.
func (c *HTTP) ShareSymmetricKey(ctx context.Context, from, to domain.Address, wrappedKey []byte) error {
	in := keyResp{Key: keycodec.BytesToHex(wrappedKey)}
	return c.post(ctx, c.friendPath(from, to, "shared-key"), in, nil)
}

func (c *HTTP) GetSharedKeyFrom(ctx context.Context, account, sender domain.Address) ([]byte, error) {
	var out keyResp
	if err := c.getJSON(ctx, c.friendPath(account, sender, "shared-key"), &out); err != nil {
		return nil, err
	}
	if out.Key == "" {
		return nil, nil
	}
	raw, err := keycodec.HexToBytes(out.Key)
	if err != nil {
		return nil, domain.Transport("decode shared key", err)
	}
	return raw, nil
}

func (c *HTTP) SendEncryptedMessage(ctx context.Context, from, to domain.Address, cid string) error {
	in := struct {
		CID string `json:"cid"`
	}{CID: cid}
	return c.post(ctx, c.friendPath(from, to, "messages"), in, nil)
}

func (c *HTTP) GetEncryptedMessageHistory(ctx context.Context, a, b domain.Address) ([]domain.PointerRecord, error) {
	var out []domain.PointerRecord
	if err := c.getJSON(ctx, c.friendPath(a, b, "messages"), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTP) QueryEvents(ctx context.Context) ([]domain.LedgerEvent, error) {
	var out []domain.LedgerEvent
	if err := c.getJSON(ctx, "/events", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubscribeEvents opens a websocket on /events/stream and decodes one JSON
// event per frame. The stream closes when ctx is cancelled or the gateway
// drops the connection.
func (c *HTTP) SubscribeEvents(ctx context.Context) (<-chan domain.LedgerEvent, error) {
	wsURL := "ws" + strings.TrimPrefix(c.Base, "http") + "/events/stream"
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, domain.Transport("dial event stream", err)
	}

	ch := make(chan domain.LedgerEvent, 64)
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	go func() {
		defer close(ch)
		defer conn.Close()
		for {
			var ev domain.LedgerEvent
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func (c *HTTP) friendPath(a, b domain.Address, tail string) string {
	return "/accounts/" + url.PathEscape(string(a)) + "/friends/" + url.PathEscape(string(b)) + "/" + tail
}

func (c *HTTP) post(ctx context.Context, path string, in, out any) error {
	buf := new(bytes.Buffer)
	if in != nil {
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return domain.Transport("encode request", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return domain.Transport("build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return domain.Transport("post "+path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return domain.Transport("post "+path, fmt.Errorf("gateway: %s", resp.Status))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *HTTP) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return domain.Transport("build request", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return domain.Transport("get "+path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return domain.Transport("get "+path, fmt.Errorf("gateway: %s", resp.Status))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ domain.Ledger = (*HTTP)(nil)
