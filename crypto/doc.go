/*
Package crypto provides the ed25519 keys used to authenticate transactions.

A public key is bound to the chain through its Condition, the address of
which identifies the signer in all stored records.
*/
package crypto
