// Package message is the send/receive pipeline: resolve the session key,
// encrypt, store the blob, record the pointer on the ledger, and the reverse
// path for history and real-time events.
package message
