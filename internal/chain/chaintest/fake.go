// Package chaintest provides an in-memory chain.Caller for tests.
package chaintest

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ErrReverted is returned for calls with no registered response.
var ErrReverted = errors.New("execution reverted")

type callKey struct {
	to       common.Address
	selector [4]byte
}

// FakeCaller answers eth_call by target address and 4-byte selector.
type FakeCaller struct {
	mu      sync.Mutex
	calls   map[callKey][]byte
	errs    map[callKey]error
	code    map[common.Address][]byte
	storage map[common.Address]map[common.Hash][]byte
	Count   int
}

func NewFakeCaller() *FakeCaller {
	return &FakeCaller{
		calls:   make(map[callKey][]byte),
		errs:    make(map[callKey]error),
		code:    make(map[common.Address][]byte),
		storage: make(map[common.Address]map[common.Hash][]byte),
	}
}

// SetReturn registers ABI-encoded outputs for method on to.
func (f *FakeCaller) SetReturn(to common.Address, parsed abi.ABI, method string, outputs ...interface{}) error {
	m, ok := parsed.Methods[method]
	if !ok {
		return fmt.Errorf("unknown method %s", method)
	}
	data, err := m.Outputs.Pack(outputs...)
	if err != nil {
		return fmt.Errorf("pack %s: %w", method, err)
	}
	var selector [4]byte
	copy(selector[:], m.ID)

	f.mu.Lock()
	f.calls[callKey{to: to, selector: selector}] = data
	f.mu.Unlock()
	return nil
}

// SetError makes method on to fail with err.
func (f *FakeCaller) SetError(to common.Address, parsed abi.ABI, method string, err error) {
	var selector [4]byte
	copy(selector[:], parsed.Methods[method].ID)

	f.mu.Lock()
	f.errs[callKey{to: to, selector: selector}] = err
	f.mu.Unlock()
}

// SetCode registers runtime bytecode for an account.
func (f *FakeCaller) SetCode(account common.Address, code []byte) {
	f.mu.Lock()
	f.code[account] = code
	f.mu.Unlock()
}

// SetStorage registers a storage slot value.
func (f *FakeCaller) SetStorage(account common.Address, key common.Hash, value []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.storage[account] == nil {
		f.storage[account] = make(map[common.Hash][]byte)
	}
	f.storage[account][key] = value
}

func (f *FakeCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Count++

	if msg.To == nil || len(msg.Data) < 4 {
		return nil, ErrReverted
	}
	var selector [4]byte
	copy(selector[:], msg.Data[:4])
	key := callKey{to: *msg.To, selector: selector}

	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	data, ok := f.calls[key]
	if !ok {
		return nil, ErrReverted
	}
	return data, nil
}

func (f *FakeCaller) CodeAt(_ context.Context, account common.Address, _ *big.Int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.code[account], nil
}

func (f *FakeCaller) StorageAt(_ context.Context, account common.Address, key common.Hash, _ *big.Int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if value, ok := f.storage[account][key]; ok {
		return value, nil
	}
	return make([]byte, 32), nil
}
