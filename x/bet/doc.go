/*
Package bet implements a peer-to-peer betting escrow.

A maker proposes a bet to an opponent and names a judge. The bet record and
the vault holding both stakes live at addresses derived from the terms of
the bet, so anyone can recompute them without an index. Both are hashes of
"bet/terms/" and "bet/vault/" conditions, while a signature authorizes only
the address of a "sigs/ed25519/" condition. Spending from a vault with a key
would need a public key whose signer condition hashes to the vault address,
that is a sha256 preimage. Funds leave the vault only through this extension.

Lifecycle:

	Make -> Open -> Take -> Accepted -> SettleBet -> closed
	          |                 |
	          +-> Cancel        +-> Reclaim (after deadline)
	          +-> Decline
	          +-> Reclaim (after deadline)

Every terminal operation deletes the record and returns its collateral to
the maker.
*/
package bet
