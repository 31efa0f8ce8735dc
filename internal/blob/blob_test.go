package blob_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roudra323/Chitchat-DApp-Project/internal/blob"
	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := blob.NewMemory()

	cid, err := s.Put(ctx, []byte("payload"))
	require.NoError(t, err)
	require.NotEmpty(t, cid)

	got, err := s.Get(ctx, cid)
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), got)
}

func TestMemoryDeterministicCID(t *testing.T) {
	ctx := context.Background()
	s := blob.NewMemory()

	a, err := s.Put(ctx, []byte("same bytes"))
	require.NoError(t, err)
	b, err := s.Put(ctx, []byte("same bytes"))
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := s.Put(ctx, []byte("other bytes"))
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}

func TestMemoryMissing(t *testing.T) {
	s := blob.NewMemory()
	_, err := s.Get(context.Background(), "bafy-missing")
	require.ErrorIs(t, err, domain.ErrBlobNotFound)
}

func TestHTTPGateway(t *testing.T) {
	ctx := context.Background()
	backing := blob.NewMemory()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/pins":
			buf, _ := io.ReadAll(r.Body)
			cid, _ := backing.Put(r.Context(), buf)
			json.NewEncoder(w).Encode(struct {
				CID string `json:"cid"`
			}{CID: cid})
		case r.Method == http.MethodGet:
			data, err := backing.Get(r.Context(), r.URL.Path[len("/pins/"):])
			if err != nil {
				http.NotFound(w, r)
				return
			}
			w.Write(data)
		default:
			http.Error(w, "bad request", http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	c := blob.NewHTTP(srv.URL)

	cid, err := c.Put(ctx, []byte("over the wire"))
	require.NoError(t, err)

	got, err := c.Get(ctx, cid)
	require.NoError(t, err)
	require.Equal(t, []byte("over the wire"), got)

	_, err = c.Get(ctx, "bafy-missing")
	require.ErrorIs(t, err, domain.ErrBlobNotFound)
}
