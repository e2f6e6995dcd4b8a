// Package wall contains RPC wrappers for Wall contract.
package wall

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Wall is a contract-specific wall.Wall type used by its methods.
type Wall struct {
	Recipient util.Uint160
	ID        *big.Int
	Bump      *big.Int
}

// WallInitializedEvent represents "WallInitialized" event emitted by the contract.
type WallInitializedEvent struct {
	WallID    *big.Int
	Recipient util.Uint160
}

// MessagePostedEvent represents "MessagePosted" event emitted by the contract.
type MessagePostedEvent struct {
	WallID    *big.Int
	User      util.Uint160
	Message   string
	Timestamp *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// DeriveWallAddress invokes `deriveWallAddress` method of contract.
func (c *ContractReader) DeriveWallAddress(recipient util.Uint160, wallID *big.Int) (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "deriveWallAddress", recipient, wallID))
}

// GetWall invokes `getWall` method of contract.
func (c *ContractReader) GetWall(wallAccount util.Uint160) (*Wall, error) {
	return itemToWall(unwrap.Item(c.invoker.Call(c.hash, "getWall", wallAccount)))
}

// MessageFee invokes `messageFee` method of contract.
func (c *ContractReader) MessageFee() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "messageFee"))
}

// MaxMessageLength invokes `maxMessageLength` method of contract.
func (c *ContractReader) MaxMessageLength() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "maxMessageLength"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// CreateWall creates a transaction invoking `createWall` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CreateWall(wallAccount util.Uint160, signer util.Uint160, wallID *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "createWall", wallAccount, signer, wallID)
}

// CreateWallTransaction creates a transaction invoking `createWall` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CreateWallTransaction(wallAccount util.Uint160, signer util.Uint160, wallID *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "createWall", wallAccount, signer, wallID)
}

// CreateWallUnsigned creates a transaction invoking `createWall` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CreateWallUnsigned(wallAccount util.Uint160, signer util.Uint160, wallID *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "createWall", nil, wallAccount, signer, wallID)
}

// PostMessage creates a transaction invoking `postMessage` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) PostMessage(wallAccount util.Uint160, user util.Uint160, recipient util.Uint160, message string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "postMessage", wallAccount, user, recipient, message)
}

// PostMessageTransaction creates a transaction invoking `postMessage` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) PostMessageTransaction(wallAccount util.Uint160, user util.Uint160, recipient util.Uint160, message string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "postMessage", wallAccount, user, recipient, message)
}

// PostMessageUnsigned creates a transaction invoking `postMessage` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) PostMessageUnsigned(wallAccount util.Uint160, user util.Uint160, recipient util.Uint160, message string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "postMessage", nil, wallAccount, user, recipient, message)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nefFile, manifest, data)
}

// itemToWall converts stack item into *Wall.
func itemToWall(item stackitem.Item, err error) (*Wall, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Wall)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Wall from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Wall) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.Recipient, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Recipient: %w", err)
	}

	index++
	res.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	res.Bump, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Bump: %w", err)
	}

	return nil
}

// WallInitializedEventsFromApplicationLog retrieves a set of all emitted events
// with "WallInitialized" name from the provided [result.ApplicationLog].
func WallInitializedEventsFromApplicationLog(log *result.ApplicationLog) ([]*WallInitializedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*WallInitializedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "WallInitialized" {
				continue
			}
			event := new(WallInitializedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize WallInitializedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to WallInitializedEvent or
// returns an error if it's not possible to do to so.
func (e *WallInitializedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.WallID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field WallID: %w", err)
	}

	index++
	e.Recipient, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Recipient: %w", err)
	}

	return nil
}

// MessagePostedEventsFromApplicationLog retrieves a set of all emitted events
// with "MessagePosted" name from the provided [result.ApplicationLog].
func MessagePostedEventsFromApplicationLog(log *result.ApplicationLog) ([]*MessagePostedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*MessagePostedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "MessagePosted" {
				continue
			}
			event := new(MessagePostedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize MessagePostedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to MessagePostedEvent or
// returns an error if it's not possible to do to so.
func (e *MessagePostedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.WallID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field WallID: %w", err)
	}

	index++
	e.User, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field User: %w", err)
	}

	index++
	e.Message, err = func(item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		return string(b), nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Message: %w", err)
	}

	index++
	e.Timestamp, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Timestamp: %w", err)
	}

	return nil
}

func itemToUint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	u, err := util.Uint160DecodeBytesBE(b)
	if err != nil {
		return util.Uint160{}, err
	}
	return u, nil
}
