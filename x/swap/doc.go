/*
Package swap implements bilateral swaps between two treasury accounts.

A proposer offers to exchange ProposerAmount from its treasury for
AccepterAmount from the treasury of the accepter. Once the accepter agreed,
anyone can execute the swap, which moves both amounts in a single step. A
swap is stored under an address derived from both parties, so the same pair
can have only one swap.
*/
package swap
