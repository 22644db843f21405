/*
Package gconf keeps one configuration singleton per extension in the
application state, under the "_c:<pkg>" key.

The escrow extension stores its expiry horizon and the token extension its
account deposit there. Both are written from genesis and can later be
patched by a transaction that the configuration owner signed.

A configuration that cannot be loaded means the state is broken. Callers
fail the transaction and there is nothing a client can do about it.
*/
package gconf
