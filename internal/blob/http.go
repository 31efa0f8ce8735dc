package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
)

// HTTP pins blobs through a gateway that proxies an IPFS pinning service.
// Put uploads raw bytes to /pins and receives the resulting CID; Get reads
// /pins/{cid} back.
type HTTP struct {
	Base string
	HTTP *http.Client
}

func NewHTTP(base string) *HTTP {
	return &HTTP{Base: strings.TrimRight(base, "/"), HTTP: http.DefaultClient}
}

type pinResp struct {
	CID string `json:"cid"`
}

func (c *HTTP) Put(ctx context.Context, data []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+"/pins", bytes.NewReader(data))
	if err != nil {
		return "", domain.Transport("build pin request", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", domain.Transport("pin blob", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", domain.Transport("pin blob", fmt.Errorf("gateway: %s", resp.Status))
	}
	var out pinResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", domain.Transport("decode pin response", err)
	}
	return out.CID, nil
}

func (c *HTTP) Get(ctx context.Context, cid string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+"/pins/"+url.PathEscape(cid), nil)
	if err != nil {
		return nil, domain.Transport("build fetch request", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, domain.Transport("fetch blob", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrBlobNotFound
	}
	if resp.StatusCode/100 != 2 {
		return nil, domain.Transport("fetch blob", fmt.Errorf("gateway: %s", resp.Status))
	}
	return io.ReadAll(resp.Body)
}

var _ domain.BlobStore = (*HTTP)(nil)
