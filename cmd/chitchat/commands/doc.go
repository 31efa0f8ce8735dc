// Package commands defines the chitchat CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - register       Create an identity and register the account on the ledger
//   - friends        Manage friend requests and the friend list
//   - exchange-keys  Establish the shared conversation key with a friend
//   - send           Encrypt and send a message
//   - history        Fetch and decrypt the conversation history
//   - chat           Live conversation view with presence
//   - watch          Follow relationship events live
//   - backup         Export or restore the identity private key
//   - logout         Remove local key material for the account
//
// # Implementation
//
// The root command builds the dependency graph (key store, crypto provider,
// ledger and blob clients, services) before any subcommand runs, so handlers
// share one app context.
package commands
