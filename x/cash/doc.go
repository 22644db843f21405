/*
Package cash holds the native coin wallets of the chain.

A wallet is a set of coins owned by an address. Wallets fund the storage
deposits of token accounts and escrow records, and receive them back once
those accounts are closed. Coins can only enter the chain through genesis.
*/
package cash
