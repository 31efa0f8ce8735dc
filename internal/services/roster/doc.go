// Package roster folds the contract's friend-request event log into the
// current relationship state: pending requests and accepted friends. State
// is derived only by replaying events, historically on load and then one at
// a time from the live subscription.
package roster
