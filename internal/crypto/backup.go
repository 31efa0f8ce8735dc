package crypto

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/roudra323/Chitchat-DApp-Project/internal/util/memzero"
)

// Passphrase envelope for exported key backups. Losing the identity private
// key or a session key has no on-chain recovery path, so the export file is
// the only way back; it is sealed under an Argon2id-derived key.

const backupSaltBytes = 16

// Argon2id parameters baked into every backup blob.
const (
	backupMemoryKiB  = 1 << 16
	backupIterations = 3
	backupParallel   = 1
)

var errBackupPassphrase = errors.New("wrong passphrase or corrupted backup")

type backupBlob struct {
	V          int    `json:"v"`
	Salt       []byte `json:"salt"`
	MemoryKiB  uint32 `json:"memory_kib"`
	Iterations uint32 `json:"iterations"`
	Parallel   uint8  `json:"parallel"`
	Nonce      []byte `json:"nonce"`
	Cipher     []byte `json:"cipher"`
}

// SealBackup encrypts plaintext under a passphrase-derived key and returns a
// self-describing JSON blob.
func SealBackup(passphrase string, plaintext []byte) ([]byte, error) {
	salt := make([]byte, backupSaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key := argon2.IDKey([]byte(passphrase), salt, backupIterations, backupMemoryKiB, backupParallel, chacha20poly1305.KeySize)
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	ct := aead.Seal(nil, nonce, plaintext, salt)

	return json.Marshal(backupBlob{
		V:          1,
		Salt:       salt,
		MemoryKiB:  backupMemoryKiB,
		Iterations: backupIterations,
		Parallel:   backupParallel,
		Nonce:      nonce,
		Cipher:     ct,
	})
}

// OpenBackup decrypts a blob produced by SealBackup.
func OpenBackup(passphrase string, blob []byte) ([]byte, error) {
	var b backupBlob
	if err := json.Unmarshal(blob, &b); err != nil {
		return nil, fmt.Errorf("parse backup: %w", err)
	}
	if b.V != 1 {
		return nil, fmt.Errorf("unsupported backup version %d", b.V)
	}
	key := argon2.IDKey([]byte(passphrase), b.Salt, b.Iterations, b.MemoryKiB, b.Parallel, chacha20poly1305.KeySize)
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, b.Nonce, b.Cipher, b.Salt)
	if err != nil {
		return nil, errBackupPassphrase
	}
	return pt, nil
}
