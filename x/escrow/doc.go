/*
Package escrow implements a time bounded two party token swap.

A maker locks a deposit of one asset in a vault and names the asset and the
amount it wants in return. Until the optional expiry passes, any taker can
pay the requested amount and receive the whole deposit in a single
transaction. The maker can change the requested terms or take the deposit
back at any time while the offer is open.

Every address used by an escrow is derived from public data, so clients can
compute them without querying the chain:

	record    = Derive("escrow", "record", maker, seed)
	vault     = Derive("escrow", "vault", record)
	authority = Derive("escrow", "auth")

The record holds the Escrow terms, the vault is a token account owned by
the authority. No private key exists for any of them; the handlers present
the derivation conditions to the ledger in order to act on their behalf.
*/
package escrow
