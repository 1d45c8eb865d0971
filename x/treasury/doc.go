/*
Package treasury implements the balance ledger shared by the settlement
extensions.

Every balance is an Account record stored under an address. A general
account is stored under the identity of its owner, a treasury account is
stored under the address derived from the owner with the "treasury" tag and
wallets hold their balance under the wallet address. Missing accounts are
treated as empty and are created on the first credit.

All balance changes go through the Controller. Settle applies a group of
transfers as one unit: the balances of every touched account are read
first, all new balances are computed and only then written.
*/
package treasury
