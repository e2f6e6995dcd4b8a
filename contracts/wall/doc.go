/*
Package wall contains implementation of Wall contract.

Wall contract implements fee-gated message walls. An account creates a wall
with a chosen numeric ID and becomes its permanent fee recipient. Anyone can
then post a short text message to the wall by paying a fixed GAS fee which is
transferred directly to the recipient. Messages are not stored in the
contract: they are only emitted as notifications for off-chain observers,
such as indexers or the wall-observer tool.

Each wall lives at an address derived deterministically from the recipient
account, the wall ID and the "wall" namespace label. The derivation searches
a one-byte bump space for the first candidate lying outside the signing-key
space, so the derived account can never be witnessed by a private key. The
winning bump is stored in the wall record and re-checking the address later
takes a single hash.

# Contract notifications

WallInitialized notification. This notification is produced when a new wall
is created.

	WallInitialized:
	  - name: wallID
	    type: Integer
	  - name: recipient
	    type: Hash160

MessagePosted notification. This notification is produced when a message is
posted to a wall and the fee has been transferred. Timestamp is the
timestamp of the block the transaction is a part of.

	MessagePosted:
	  - name: wallID
	    type: Integer
	  - name: user
	    type: Hash160
	  - name: message
	    type: String
	  - name: timestamp
	    type: Integer
*/
package wall

/*
Contract storage model.

# Summary
Current conventions:
 <addr>: 20-byte derived wall account address

Key-value storage format:
 - 'w<addr>' -> std.Serialize(Wall)
   wall records, see the Wall type

# Walls
Contract stores one record per (recipient, wall ID) pair. Records are
write-once: they are created by createWall, read by postMessage and never
mutated or deleted. Posted messages are not written to storage at all.
*/
