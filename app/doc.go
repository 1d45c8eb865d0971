/*
Package app assembles the extensions into a Ledger.

The Ledger is the in-process host: it decodes transactions, routes the
message to its handler through a chain of decorators and keeps the state in
a single key value store. Identities of the callers are taken from the
request context, as placed there with auth.WithConditions, and are never
verified here.
*/
package app
