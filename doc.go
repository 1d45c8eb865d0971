/*
Package settle defines all common interfaces to weave together the
settlement extensions, as well as implementations of some of the simpler
components (when interfaces would be too much overhead).

Records live in a flat key value store. Every record is located through an
address derived from a namespace tag, the owning identity and an optional
nonce (see Derive), so no central index is ever needed.

We pass context through context.Context between the host, middleware and
handlers. The identity of the caller is placed in the context by the host
after it was verified, handlers only compare identities.
*/
package settle
