package blob

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
)

// Memory is an in-process content-addressed store. Identifiers are derived
// from the payload hash, so identical bytes always yield the same CID.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func cidFor(data []byte) string {
	sum := sha256.Sum256(data)
	return "bafy-" + hex.EncodeToString(sum[:])
}

func (m *Memory) Put(ctx context.Context, data []byte) (string, error) {
	cid := cidFor(data)
	m.mu.Lock()
	m.blobs[cid] = append([]byte(nil), data...)
	m.mu.Unlock()
	return cid, nil
}

func (m *Memory) Get(ctx context.Context, cid string) ([]byte, error) {
	m.mu.RLock()
	data, ok := m.blobs[cid]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrBlobNotFound
	}
	return append([]byte(nil), data...), nil
}

// Delete unpins a blob. Missing identifiers are not an error.
func (m *Memory) Delete(cid string) {
	m.mu.Lock()
	delete(m.blobs, cid)
	m.mu.Unlock()
}

var _ domain.BlobStore = (*Memory)(nil)
