package wall

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/wall-contract/common"
	"github.com/nspcc-dev/wall-contract/contracts/wall/wallconst"
)

// Wall is a record of a single message wall. It is written once on creation
// and never mutated afterwards.
type Wall struct {
	// Recipient is the account that created the wall and receives all
	// message fees.
	Recipient interop.Hash160

	// ID is the wall discriminator chosen by the recipient, allowing one
	// account to own multiple independent walls.
	ID int

	// Bump is the derivation byte the wall address was produced with. It
	// is stored so that the address can be re-verified with a single hash.
	Bump int
}

const (
	wallKeyPrefix = 'w'
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		version := args[len(args)-1].(int)
		common.CheckVersion(version)
		return
	}

	runtime.Log("wall contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("wall contract updated")
}

// CreateWall creates a new wall record owned by signer. wallAccount must be
// the address derived from (signer, wallID), see DeriveWallAddress. The
// method can be invoked only by signer, and only once per (signer, wallID)
// pair: the record is write-once and is never overwritten by later calls.
//
// It produces WallInitialized notification.
func CreateWall(wallAccount, signer interop.Hash160, wallID int) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(signer)

	addr, bump := deriveAddress(signer, wallID)
	if !wallAccount.Equals(addr) {
		panic(wallconst.ErrAddressMismatch)
	}

	key := wallKey(wallAccount)
	if storage.Get(ctx, key) != nil {
		panic(wallconst.ErrWallExists)
	}

	common.SetSerialized(ctx, key, Wall{
		Recipient: signer,
		ID:        wallID,
		Bump:      bump,
	})

	runtime.Log("wall created")
	runtime.Notify("WallInitialized", wallID, signer)
}

// PostMessage transfers the fixed message fee from user to recipient and
// emits the message as a notification. The wall record is read-only for this
// method. user must be a signer of the transaction, recipient must be the
// account stored in the wall record and wallAccount must be the address
// derived from it. The message is not stored on-chain: the notification is
// its only durable trace.
//
// It produces MessagePosted notification.
func PostMessage(wallAccount, user, recipient interop.Hash160, message string) {
	ctx := storage.GetReadOnlyContext()

	common.CheckOwnerWitness(user)

	data := storage.Get(ctx, wallKey(wallAccount))
	if data == nil {
		panic(wallconst.ErrWallNotFound)
	}
	w := std.Deserialize(data.([]byte)).(Wall)

	if !wallAccount.Equals(addressForBump(recipient, w.ID, w.Bump)) {
		panic(wallconst.ErrAddressMismatch)
	}
	if !recipient.Equals(w.Recipient) {
		panic(wallconst.ErrRecipientMismatch)
	}
	if len(message) == 0 {
		panic(wallconst.ErrEmptyMessage)
	}
	if len(message) > wallconst.MaxMessageLength {
		panic(wallconst.ErrMessageTooLong)
	}
	if gas.BalanceOf(user) < wallconst.MessageFee {
		panic(wallconst.ErrInsufficientFunds)
	}

	if !gas.Transfer(user, recipient, wallconst.MessageFee, nil) {
		panic("message fee transfer failed")
	}

	runtime.Notify("MessagePosted", w.ID, user, message, runtime.GetTime())
}

// DeriveWallAddress returns the wall account address for the given recipient
// and wall ID. The result is stable: any party can recompute it to locate
// the record without an on-chain lookup table.
func DeriveWallAddress(recipient interop.Hash160, wallID int) interop.Hash160 {
	addr, _ := deriveAddress(recipient, wallID)
	return addr
}

// GetWall returns the wall record stored at the given account. It panics if
// the wall does not exist.
func GetWall(wallAccount interop.Hash160) Wall {
	ctx := storage.GetReadOnlyContext()

	data := storage.Get(ctx, wallKey(wallAccount))
	if data == nil {
		panic(wallconst.ErrWallNotFound)
	}

	return std.Deserialize(data.([]byte)).(Wall)
}

// MessageFee returns the fixed fee charged per posted message.
func MessageFee() int {
	return wallconst.MessageFee
}

// MaxMessageLength returns the maximum message length in bytes.
func MaxMessageLength() int {
	return wallconst.MaxMessageLength
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// deriveAddress searches the bump space from 255 down to 0 and returns the
// first valid derived address together with the winning bump.
func deriveAddress(recipient interop.Hash160, wallID int) (interop.Hash160, int) {
	for bump := 255; bump >= 0; bump-- {
		addr := addressForBump(recipient, wallID, bump)
		if addr != nil {
			return addr, bump
		}
	}
	panic(wallconst.ErrDerivationExhausted)
}

// addressForBump computes the derived address for a particular bump byte.
// A candidate digest whose leading byte matches a compressed public key
// prefix is rejected (nil is returned): the winning candidate must lie
// outside the signing-key space, so no private key corresponds to the
// derived account.
func addressForBump(recipient interop.Hash160, wallID int, bump int) interop.Hash160 {
	seed := []byte(wallconst.DerivationPrefix)
	seed = append(seed, recipient...)
	seed = append(seed, encodeWallID(wallID)...)
	seed = append(seed, byte(bump))

	digest := crypto.Sha256(seed)
	if digest[0] == 0x02 || digest[0] == 0x03 {
		return nil
	}

	return crypto.Ripemd160([]byte(digest))
}

// encodeWallID encodes the wall ID as 8 little-endian bytes. IDs outside the
// 64-bit unsigned range are rejected to keep the seed layout unambiguous.
func encodeWallID(wallID int) []byte {
	if wallID < 0 {
		panic(wallconst.ErrWallIDRange)
	}

	buf := []byte{}
	for i := 0; i < 8; i++ {
		buf = append(buf, byte(wallID%256))
		wallID = wallID / 256
	}
	if wallID != 0 {
		panic(wallconst.ErrWallIDRange)
	}

	return buf
}

func wallKey(wallAccount interop.Hash160) []byte {
	return append([]byte{wallKeyPrefix}, wallAccount...)
}
