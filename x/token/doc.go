/*
Package token implements single asset token accounts.

Each account holds a balance of exactly one asset and is controlled by its
owner. The account address is chosen by its creator and must authorize the
creation, which is why accounts live at derived addresses: either the
associated address of the owner (see AssociatedAddress) or an address
derived by another extension, such as an escrow vault.

Opening an account costs a storage deposit, paid in native coins by the
payer and kept in the wallet of the account address. Closing the account
releases the deposit to a wallet of the owner's choice.

An account with no asset is a data account. It holds no tokens and only
reserves storage, as escrow records do.
*/
package token
