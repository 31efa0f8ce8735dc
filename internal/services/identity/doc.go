// Package identity manages the per-account asymmetric identity keypair.
//
// It generates the RSA-OAEP pair, persists the private half in the local
// key store, and imports keys for encrypt/decrypt use. The public half is
// published on the ledger by the caller and is immutable once published.
package identity
