/*
Package x contains the settlement extensions

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together by the app package to construct
the ledger.

Extensions never verify signatures themselves. They read the identity of
the caller through the Authenticator interface and only compare
identities.
*/
package x
