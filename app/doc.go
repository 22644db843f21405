/*
Package app contains the standard implementation of an ABCI application:
the message router, the decorator chain and the store application that
maintains the check and deliver states, serves queries and commits blocks.

Tendermint calls the ABCI methods one at a time, but the application
additionally serializes them so that no two transactions ever interleave.
*/
package app
