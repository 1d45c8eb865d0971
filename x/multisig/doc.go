/*
Package multisig implements quorum wallets.

A wallet is a set of signers together with the number of approvals
(quorum) required before funds held by the wallet can be moved. Any
identity may propose a transfer out of a wallet, the signers approve it one
by one and once the quorum is reached an approving signer executes the
transfer.

Wallets and proposals are stored under derived addresses, so a caller can
own a single wallet and a proposer can have a single proposal per wallet.
The balance of a wallet is the treasury ledger account held under the
wallet address.
*/
package multisig
