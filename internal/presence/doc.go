// Package presence implements the realtime side channel: a websocket hub
// with one room per conversation relaying typing indicators, new-message
// notifications and read receipts, plus the client used by the terminal
// app. The channel is best effort and never authoritative for delivery;
// missed events are recovered from the ledger.
package presence
