package wall

import (
	"math/rand"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func randomUint160() util.Uint160 {
	var u util.Uint160
	rand.Read(u[:]) //nolint:staticcheck // SA1019: rand.Read has been deprecated since Go 1.20
	return u
}

func TestDeriveAddressStable(t *testing.T) {
	recipient := randomUint160()

	addr1, bump1, err := DeriveAddress(recipient, 42)
	require.NoError(t, err)

	addr2, bump2, err := DeriveAddress(recipient, 42)
	require.NoError(t, err)

	require.Equal(t, addr1, addr2)
	require.Equal(t, bump1, bump2)
}

func TestDeriveAddressUnique(t *testing.T) {
	seen := make(map[util.Uint160]struct{})

	for i := 0; i < 16; i++ {
		recipient := randomUint160()
		for id := uint64(0); id < 16; id++ {
			addr, _, err := DeriveAddress(recipient, id)
			require.NoError(t, err)

			_, ok := seen[addr]
			require.False(t, ok, "derived address collision")
			seen[addr] = struct{}{}
		}
	}
}

func TestAddressForBump(t *testing.T) {
	recipient := randomUint160()

	addr, bump, err := DeriveAddress(recipient, 7)
	require.NoError(t, err)

	got, ok := AddressForBump(recipient, 7, bump)
	require.True(t, ok)
	require.Equal(t, addr, got)

	// Bumps above the winning one were rejected during the search.
	for b := 255; b > int(bump); b-- {
		_, ok := AddressForBump(recipient, 7, uint8(b))
		require.False(t, ok)
	}
}

func TestDeriveAddressDependsOnAllInputs(t *testing.T) {
	recipient := randomUint160()

	addr1, _, err := DeriveAddress(recipient, 1)
	require.NoError(t, err)

	addr2, _, err := DeriveAddress(recipient, 2)
	require.NoError(t, err)
	require.NotEqual(t, addr1, addr2)

	addr3, _, err := DeriveAddress(randomUint160(), 1)
	require.NoError(t, err)
	require.NotEqual(t, addr1, addr3)
}

func TestLocatorRoundtrip(t *testing.T) {
	addr := randomUint160()

	loc := Locator(addr)
	require.NotEmpty(t, loc)

	got, err := ParseLocator(loc)
	require.NoError(t, err)
	require.Equal(t, addr, got)

	_, err = ParseLocator("not a locator")
	require.Error(t, err)

	_, err = ParseLocator("2VfUX") // valid base58, wrong length
	require.Error(t, err)
}
