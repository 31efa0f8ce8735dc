// Package crypto implements the injected crypto capability: RSA-OAEP
// identity keypairs for wrapping session keys, AES-256-GCM for message
// bodies, and the passphrase envelope used by key backup export/import.
package crypto
