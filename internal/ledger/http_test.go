package ledger_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
	"github.com/roudra323/Chitchat-DApp-Project/internal/keycodec"
	"github.com/roudra323/Chitchat-DApp-Project/internal/ledger"
)

// Gateway wire shapes, mirrored from the adapter's routes.
type gwRegister struct {
	Name       string `json:"name"`
	ProfileCID string `json:"profileCid"`
	PublicKey  string `json:"publicKey"`
}

type gwUserInfo struct {
	Name       string `json:"name"`
	ProfileCID string `json:"profileCid"`
}

type gwKey struct {
	Key string `json:"key"`
}

// newGateway exposes a Memory ledger over the gateway's HTTP routes, enough
// of them for the adapter round-trip tests.
func newGateway(t *testing.T, backing *ledger.Memory) *httptest.Server {
	t.Helper()
	r := mux.NewRouter()

	r.HandleFunc("/accounts/{addr}", func(w http.ResponseWriter, req *http.Request) {
		addr := domain.Address(mux.Vars(req)["addr"])
		switch req.Method {
		case http.MethodPost:
			var in gwRegister
			require.NoError(t, json.NewDecoder(req.Body).Decode(&in))
			pk, err := base64.StdEncoding.DecodeString(in.PublicKey)
			require.NoError(t, err)
			if err := backing.CreateAccount(req.Context(), addr, in.Name, in.ProfileCID, pk); err != nil {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			info, err := backing.GetUserInfo(req.Context(), addr)
			if err != nil {
				http.NotFound(w, req)
				return
			}
			json.NewEncoder(w).Encode(gwUserInfo{Name: info.Name, ProfileCID: info.ProfileCID})
		}
	})

	r.HandleFunc("/accounts/{addr}/key", func(w http.ResponseWriter, req *http.Request) {
		pk, err := backing.GetUserPublicKey(req.Context(), domain.Address(mux.Vars(req)["addr"]))
		if err != nil {
			http.NotFound(w, req)
			return
		}
		// Hex on purpose: the adapter must cope with either encoding.
		json.NewEncoder(w).Encode(gwKey{Key: keycodec.BytesToHex(pk)})
	})

	r.HandleFunc("/accounts/{addr}/friends/{peer}/shared-key", func(w http.ResponseWriter, req *http.Request) {
		vars := mux.Vars(req)
		addr, peer := domain.Address(vars["addr"]), domain.Address(vars["peer"])
		switch req.Method {
		case http.MethodPost:
			var in gwKey
			require.NoError(t, json.NewDecoder(req.Body).Decode(&in))
			raw, err := keycodec.HexToBytes(in.Key)
			require.NoError(t, err)
			require.NoError(t, backing.ShareSymmetricKey(req.Context(), addr, peer, raw))
		case http.MethodGet:
			raw, err := backing.GetSharedKeyFrom(req.Context(), addr, peer)
			require.NoError(t, err)
			out := gwKey{}
			if raw != nil {
				out.Key = keycodec.BytesToHex(raw)
			}
			json.NewEncoder(w).Encode(out)
		}
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPAccountRoundTrip(t *testing.T) {
	ctx := context.Background()
	backing := ledger.NewMemory()
	c := ledger.NewHTTP(newGateway(t, backing).URL + "/")

	require.NoError(t, c.CreateAccount(ctx, alice, "alice", "cid-alice", []byte("pk-alice")))

	info, err := c.GetUserInfo(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, "alice", info.Name)
	require.Equal(t, "cid-alice", info.ProfileCID)

	// The gateway serves the key hex-encoded; the adapter detects that.
	pk, err := c.GetUserPublicKey(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, []byte("pk-alice"), pk)

	err = c.CreateAccount(ctx, alice, "again", "", nil)
	require.Error(t, err)
	var terr *domain.TransportError
	require.ErrorAs(t, err, &terr)
}

func TestHTTPSharedKeyHexTransport(t *testing.T) {
	ctx := context.Background()
	backing := ledger.NewMemory()
	require.NoError(t, backing.CreateAccount(ctx, alice, "alice", "", nil))
	require.NoError(t, backing.CreateAccount(ctx, bob, "bob", "", nil))
	c := ledger.NewHTTP(newGateway(t, backing).URL)

	wrapped := []byte{0x01, 0x02, 0xfe, 0xff}
	require.NoError(t, c.ShareSymmetricKey(ctx, alice, bob, wrapped))

	got, err := c.GetSharedKeyFrom(ctx, bob, alice)
	require.NoError(t, err)
	require.Equal(t, wrapped, got)

	// No key was published in the other direction.
	got, err = c.GetSharedKeyFrom(ctx, alice, bob)
	require.NoError(t, err)
	require.Nil(t, got)
}
