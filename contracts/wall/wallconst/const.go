// Package wallconst contains constants of the Wall contract shared between
// the contract itself and Go clients.
package wallconst

const (
	// MessageFee is the fixed amount of GAS (in its smallest units, 8
	// decimals) transferred from the posting user to the wall recipient
	// per message. It does not depend on the message content.
	MessageFee = 0_0500_0000

	// MaxMessageLength is the maximum length of a posted message in bytes.
	// Both 1 and MaxMessageLength are valid lengths.
	MaxMessageLength = 500

	// DerivationPrefix is the namespace label prepended to the wall
	// address derivation seed.
	DerivationPrefix = "wall"

	// ErrWallExists is returned on attempt to create a wall at an address
	// that already holds an initialized record.
	ErrWallExists = "wall already exists"
	// ErrWallNotFound is returned if the wall record is missing.
	ErrWallNotFound = "wall does not exist"
	// ErrAddressMismatch is returned if the supplied wall account does not
	// match the address derived from the recipient and wall ID.
	ErrAddressMismatch = "wall address mismatch"
	// ErrRecipientMismatch is returned if the supplied recipient account
	// differs from the one stored in the wall record.
	ErrRecipientMismatch = "recipient account mismatch"
	// ErrEmptyMessage is returned on attempt to post a zero-length message.
	ErrEmptyMessage = "message is empty"
	// ErrMessageTooLong is returned on attempt to post a message longer
	// than MaxMessageLength bytes.
	ErrMessageTooLong = "message is too long"
	// ErrInsufficientFunds is returned if the posting user's GAS balance
	// does not cover MessageFee.
	ErrInsufficientFunds = "insufficient balance to post message"
	// ErrWallIDRange is returned if the wall ID does not fit 64-bit
	// unsigned integer range.
	ErrWallIDRange = "wall ID is out of range"
	// ErrDerivationExhausted is returned if no bump byte produces a valid
	// derived address. With 1/128 rejection probability per candidate this
	// never occurs in practice.
	ErrDerivationExhausted = "derivation space exhausted"
)
