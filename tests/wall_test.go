package tests

import (
	"math/big"
	"path"
	"strings"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/wall-contract/common"
	"github.com/nspcc-dev/wall-contract/contracts/wall/wallconst"
	wallrpc "github.com/nspcc-dev/wall-contract/rpc/wall"
	"github.com/stretchr/testify/require"
)

const wallPath = "../contracts/wall"

func deployWallContract(t *testing.T, e *neotest.Executor) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, wallPath, path.Join(wallPath, "config.yml"))
	e.DeployContract(t, c, nil)
	return c.Hash
}

func newWallInvoker(t *testing.T) *neotest.ContractInvoker {
	e := newExecutor(t)
	h := deployWallContract(t, e)
	return e.CommitteeInvoker(h)
}

// newWall creates a wall owned by a fresh account and returns its invoker,
// the owner signer and the derived wall account.
func newWall(t *testing.T, c *neotest.ContractInvoker, wallID int64) (neotest.Signer, util.Uint160) {
	owner := c.NewAccount(t)
	cOwner := c.WithSigners(owner)

	addr, _, err := wallrpc.DeriveAddress(owner.ScriptHash(), uint64(wallID))
	require.NoError(t, err)

	cOwner.Invoke(t, stackitem.Null{}, "createWall", addr, owner.ScriptHash(), wallID)
	return owner, addr
}

func TestDeriveWallAddress(t *testing.T) {
	c := newWallInvoker(t)

	recipient := c.NewAccount(t).ScriptHash()

	for _, wallID := range []int64{0, 1, 42, 1<<32 + 1} {
		expected, _, err := wallrpc.DeriveAddress(recipient, uint64(wallID))
		require.NoError(t, err)

		s, err := c.TestInvoke(t, "deriveWallAddress", recipient, wallID)
		require.NoError(t, err)
		require.Equal(t, expected.BytesBE(), s.Pop().Bytes())

		// Repeated computation is stable.
		s, err = c.TestInvoke(t, "deriveWallAddress", recipient, wallID)
		require.NoError(t, err)
		require.Equal(t, expected.BytesBE(), s.Pop().Bytes())
	}

	c.InvokeFail(t, wallconst.ErrWallIDRange, "deriveWallAddress", recipient, -1)
	c.InvokeFail(t, wallconst.ErrWallIDRange, "deriveWallAddress", recipient,
		new(big.Int).Lsh(big.NewInt(1), 64))
}

func TestCreateWall(t *testing.T) {
	c := newWallInvoker(t)

	owner := c.NewAccount(t)
	cOwner := c.WithSigners(owner)

	addr, bump, err := wallrpc.DeriveAddress(owner.ScriptHash(), 1)
	require.NoError(t, err)

	t.Run("must be signed by recipient", func(t *testing.T) {
		other := c.NewAccount(t)
		cOther := c.WithSigners(other)
		cOther.InvokeFail(t, common.ErrOwnerWitnessFailed, "createWall",
			addr, owner.ScriptHash(), 1)
	})

	t.Run("wrong derived address", func(t *testing.T) {
		badAddr, _, err := wallrpc.DeriveAddress(owner.ScriptHash(), 99)
		require.NoError(t, err)
		cOwner.InvokeFail(t, wallconst.ErrAddressMismatch, "createWall",
			badAddr, owner.ScriptHash(), 1)
	})

	h := cOwner.Invoke(t, stackitem.Null{}, "createWall", addr, owner.ScriptHash(), 1)
	aer := cOwner.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "WallInitialized", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(1),
		stackitem.NewByteArray(owner.ScriptHash().BytesBE()),
	}), aer.Events[0].Item)

	t.Run("record is stored with the winning bump", func(t *testing.T) {
		s, err := c.TestInvoke(t, "getWall", addr)
		require.NoError(t, err)

		var w wallrpc.Wall
		require.NoError(t, w.FromStackItem(s.Pop().Item()))
		require.Equal(t, owner.ScriptHash(), w.Recipient)
		require.Equal(t, int64(1), w.ID.Int64())
		require.Equal(t, int64(bump), w.Bump.Int64())
	})

	t.Run("not idempotent", func(t *testing.T) {
		cOwner.InvokeFail(t, wallconst.ErrWallExists, "createWall",
			addr, owner.ScriptHash(), 1)
	})

	t.Run("same recipient, another wall", func(t *testing.T) {
		addr2, _, err := wallrpc.DeriveAddress(owner.ScriptHash(), 2)
		require.NoError(t, err)
		require.NotEqual(t, addr, addr2)

		cOwner.Invoke(t, stackitem.Null{}, "createWall", addr2, owner.ScriptHash(), 2)
	})
}

func TestPostMessage(t *testing.T) {
	c := newWallInvoker(t)

	owner, addr := newWall(t, c, 7)

	user := c.NewAccount(t)
	cUser := c.WithSigners(user)

	post := func(t *testing.T, message string) {
		recipientBefore := c.Chain.GetUtilityTokenBalance(owner.ScriptHash())
		userBefore := c.Chain.GetUtilityTokenBalance(user.ScriptHash())

		h := cUser.Invoke(t, stackitem.Null{}, "postMessage",
			addr, user.ScriptHash(), owner.ScriptHash(), message)
		aer := cUser.CheckHalt(t, h)

		// GAS Transfer comes first, then the contract's own notification.
		require.Equal(t, 2, len(aer.Events))
		require.Equal(t, "Transfer", aer.Events[0].Name)
		require.Equal(t, "MessagePosted", aer.Events[1].Name)

		var ev wallrpc.MessagePostedEvent
		require.NoError(t, ev.FromStackItem(aer.Events[1].Item))
		require.Equal(t, int64(7), ev.WallID.Int64())
		require.Equal(t, user.ScriptHash(), ev.User)
		require.Equal(t, message, ev.Message)
		require.True(t, ev.Timestamp.Sign() > 0)

		recipientAfter := c.Chain.GetUtilityTokenBalance(owner.ScriptHash())
		userAfter := c.Chain.GetUtilityTokenBalance(user.ScriptHash())

		// Recipient gains exactly the fee, the user pays the fee plus
		// transaction costs.
		require.Equal(t, new(big.Int).Add(recipientBefore, big.NewInt(wallconst.MessageFee)), recipientAfter)
		spent := new(big.Int).Sub(userBefore, userAfter)
		require.True(t, spent.Cmp(big.NewInt(wallconst.MessageFee)) >= 0)
	}

	post(t, "hello")

	t.Run("boundary lengths", func(t *testing.T) {
		post(t, "a")
		post(t, strings.Repeat("b", wallconst.MaxMessageLength))
	})

	t.Run("empty message", func(t *testing.T) {
		cUser.InvokeFail(t, wallconst.ErrEmptyMessage, "postMessage",
			addr, user.ScriptHash(), owner.ScriptHash(), "")
	})

	t.Run("message too long", func(t *testing.T) {
		cUser.InvokeFail(t, wallconst.ErrMessageTooLong, "postMessage",
			addr, user.ScriptHash(), owner.ScriptHash(),
			strings.Repeat("b", wallconst.MaxMessageLength+1))
	})

	t.Run("must be signed by user", func(t *testing.T) {
		other := c.NewAccount(t)
		cOther := c.WithSigners(other)
		cOther.InvokeFail(t, common.ErrOwnerWitnessFailed, "postMessage",
			addr, user.ScriptHash(), owner.ScriptHash(), "hi")
	})

	t.Run("fee goes to the stored recipient only", func(t *testing.T) {
		imposter := c.NewAccount(t)
		before := c.Chain.GetUtilityTokenBalance(imposter.ScriptHash())

		cUser.InvokeFail(t, wallconst.ErrAddressMismatch, "postMessage",
			addr, user.ScriptHash(), imposter.ScriptHash(), "hi")

		require.Equal(t, before, c.Chain.GetUtilityTokenBalance(imposter.ScriptHash()))
	})

	t.Run("nonexistent wall", func(t *testing.T) {
		ghost, _, err := wallrpc.DeriveAddress(user.ScriptHash(), 123)
		require.NoError(t, err)

		before := c.Chain.GetUtilityTokenBalance(owner.ScriptHash())
		cUser.InvokeFail(t, wallconst.ErrWallNotFound, "postMessage",
			ghost, user.ScriptHash(), owner.ScriptHash(), "hi")
		require.Equal(t, before, c.Chain.GetUtilityTokenBalance(owner.ScriptHash()))
	})

	t.Run("insufficient funds", func(t *testing.T) {
		broke := c.NewAccount(t, 0)
		// Committee covers transaction fees, the user account itself
		// holds no GAS.
		cBoth := c.WithSigners(c.Committee, broke)
		cBoth.InvokeFail(t, wallconst.ErrInsufficientFunds, "postMessage",
			addr, broke.ScriptHash(), owner.ScriptHash(), "hi")
	})
}

func TestPostMessageTwoUsers(t *testing.T) {
	c := newWallInvoker(t)

	owner, addr := newWall(t, c, 1)
	before := c.Chain.GetUtilityTokenBalance(owner.ScriptHash())

	for _, user := range []neotest.Signer{c.NewAccount(t), c.NewAccount(t)} {
		cUser := c.WithSigners(user)
		cUser.Invoke(t, stackitem.Null{}, "postMessage",
			addr, user.ScriptHash(), owner.ScriptHash(), "gm")
	}

	after := c.Chain.GetUtilityTokenBalance(owner.ScriptHash())
	require.Equal(t, new(big.Int).Add(before, big.NewInt(2*wallconst.MessageFee)), after)
}

func TestGetWall(t *testing.T) {
	c := newWallInvoker(t)

	user := c.NewAccount(t)
	ghost, _, err := wallrpc.DeriveAddress(user.ScriptHash(), 5)
	require.NoError(t, err)

	c.InvokeFail(t, wallconst.ErrWallNotFound, "getWall", ghost)
}

func TestWallConfigMethods(t *testing.T) {
	c := newWallInvoker(t)

	c.Invoke(t, stackitem.Make(wallconst.MessageFee), "messageFee")
	c.Invoke(t, stackitem.Make(wallconst.MaxMessageLength), "maxMessageLength")
	c.Invoke(t, stackitem.Make(common.Version), "version")
}

func TestWallUpdate(t *testing.T) {
	c := newWallInvoker(t)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)
	cAcc.InvokeFail(t, "only committee can update contract", "update",
		[]byte{}, []byte{}, nil)
}
