package wall

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/wall-contract/contracts/wall/wallconst"
)

// ErrDerivationExhausted is returned by DeriveAddress if no bump byte
// produces a valid address. It should never occur in practice.
var ErrDerivationExhausted = errors.New(wallconst.ErrDerivationExhausted)

// DeriveAddress computes the wall account address for the given recipient
// and wall ID without an RPC roundtrip. It mirrors the contract's own
// derivation bit-for-bit, so the result always matches the on-chain
// deriveWallAddress method. The returned bump is the byte the address was
// derived with; it equals the one stored in the wall record on creation.
func DeriveAddress(recipient util.Uint160, wallID uint64) (util.Uint160, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		addr, ok := AddressForBump(recipient, wallID, uint8(bump))
		if ok {
			return addr, uint8(bump), nil
		}
	}

	return util.Uint160{}, 0, ErrDerivationExhausted
}

// AddressForBump computes the derived address for a particular bump byte.
// It returns false if the bump does not produce a valid address, i.e. the
// candidate digest could encode a compressed public key.
func AddressForBump(recipient util.Uint160, wallID uint64, bump uint8) (util.Uint160, bool) {
	seed := make([]byte, 0, len(wallconst.DerivationPrefix)+util.Uint160Size+9)
	seed = append(seed, wallconst.DerivationPrefix...)
	seed = append(seed, recipient.BytesBE()...)
	var id [8]byte
	binary.LittleEndian.PutUint64(id[:], wallID)
	seed = append(seed, id[:]...)
	seed = append(seed, bump)

	digest := sha256.Sum256(seed)
	if digest[0] == 0x02 || digest[0] == 0x03 {
		return util.Uint160{}, false
	}

	return hash.RipeMD160(digest[:]), true
}

// Locator returns a compact base58 string form of a wall account address
// suitable for sharing out-of-band.
func Locator(wallAccount util.Uint160) string {
	return base58.Encode(wallAccount.BytesBE())
}

// ParseLocator decodes a string produced by Locator back into a wall
// account address.
func ParseLocator(s string) (util.Uint160, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("invalid locator: %w", err)
	}

	addr, err := util.Uint160DecodeBytesBE(b)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("invalid locator: %w", err)
	}

	return addr, nil
}
