/*
Package custody defines the common interfaces that tie together the
subpackages of the custody ledger, as well as implementations of some of the
simpler components.

Context is passed through context.Context between app, decorators and
handlers. This package defines the keys to store block information such as
height, time and chain id. Each extension may add its own keys to enrich the
context with specific data.

There should exist two functions for every XYZ of type T that we want to
support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

Addresses are 32 bytes long. A signer address is the raw ed25519 public
key. An address that is not controlled by any private key is derived from a
Condition using DeriveAddress.
*/
package custody
