package gauge

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"gaugeScope/internal/balancer"
	"gaugeScope/internal/chain"
)

// Detector answers "is there a contract here?" and "does it expose function X?".
type Detector interface {
	HasCode(ctx context.Context, caller chain.Caller, account common.Address) (bool, error)
	HasFunction(ctx context.Context, caller chain.Caller, account common.Address, signature string) (bool, error)
}

var (
	// EIP-1967 implementation and beacon slots.
	implementationSlot = common.HexToHash("0x360894a13ba1a3210667c828492db98dca3e2076cc3735a920a3ca505d382bbc")
	beaconSlot         = common.HexToHash("0xa3f0ad74e5423aebfd80d3ef4346578335a9a72aeaee59ff6cb3582b35133d50")

	// EIP-1167 minimal proxy runtime code around the 20 byte target.
	minimalProxyPrefix = common.FromHex("0x363d3d373d3d3d363d73")
	minimalProxySuffix = common.FromHex("0x5af43d82803e903d91602b57fd5bf3")
)

const maxProxyDepth = 3

// Opcodes around a dispatcher comparison.
const (
	opEQ     = 0x14
	opXOR    = 0x18
	opPUSH1  = 0x60
	opPUSH3  = 0x62
	opPUSH4  = 0x63
	opPUSH32 = 0x7f
	opDUP1   = 0x80
	opDUP16  = 0x8f
)

// Selector returns the 4-byte function selector of a signature such as "name()".
func Selector(signature string) [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(signature))[:4])
	return sel
}

type codeKey struct {
	caller  chain.Caller
	account common.Address
}

// CodeDetector looks for the selector in the dispatcher of the contract's
// runtime code, following minimal and EIP-1967 proxies. When the selector is
// not found it falls back to a static call of the zero-argument accessor.
type CodeDetector struct {
	logger *zap.Logger

	mu    sync.Mutex
	codes map[codeKey][]byte
}

func NewCodeDetector(logger *zap.Logger) *CodeDetector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CodeDetector{
		logger: logger,
		codes:  make(map[codeKey][]byte),
	}
}

// HasCode implements Detector.
func (d *CodeDetector) HasCode(ctx context.Context, caller chain.Caller, account common.Address) (bool, error) {
	code, err := d.runtimeCode(ctx, caller, account)
	if err != nil {
		return false, err
	}
	return len(code) > 0, nil
}

// HasFunction implements Detector.
func (d *CodeDetector) HasFunction(ctx context.Context, caller chain.Caller, account common.Address, signature string) (bool, error) {
	selector := Selector(signature)

	code, err := d.runtimeCode(ctx, caller, account)
	if err != nil {
		return false, err
	}
	if containsSelector(code, selector) {
		return true, nil
	}

	msg := ethereum.CallMsg{To: &account, Data: selector[:]}
	resp, err := caller.CallContract(ctx, msg, nil)
	if err != nil {
		d.logger.Debug("accessor call reverted",
			zap.String("account", account.Hex()),
			zap.String("function", signature),
			zap.Error(err),
		)
		return false, nil
	}
	return len(resp) >= 32, nil
}

func (d *CodeDetector) runtimeCode(ctx context.Context, caller chain.Caller, account common.Address) ([]byte, error) {
	key := codeKey{caller: caller, account: account}
	d.mu.Lock()
	code, ok := d.codes[key]
	d.mu.Unlock()
	if ok {
		return code, nil
	}

	target := account
	code, err := caller.CodeAt(ctx, target, nil)
	if err != nil {
		return nil, fmt.Errorf("code at %s: %w", target.Hex(), err)
	}
	for depth := 0; depth < maxProxyDepth && len(code) > 0; depth++ {
		impl, found, err := proxyTarget(ctx, caller, target, code)
		if err != nil {
			return nil, err
		}
		if !found || impl == target {
			break
		}
		d.logger.Debug("follow proxy", zap.String("proxy", target.Hex()), zap.String("implementation", impl.Hex()))
		target = impl
		if code, err = caller.CodeAt(ctx, target, nil); err != nil {
			return nil, fmt.Errorf("code at %s: %w", target.Hex(), err)
		}
	}

	d.mu.Lock()
	d.codes[key] = code
	d.mu.Unlock()
	return code, nil
}

func proxyTarget(ctx context.Context, caller chain.Caller, account common.Address, code []byte) (common.Address, bool, error) {
	if len(code) == len(minimalProxyPrefix)+common.AddressLength+len(minimalProxySuffix) &&
		bytes.HasPrefix(code, minimalProxyPrefix) &&
		bytes.HasSuffix(code, minimalProxySuffix) {
		start := len(minimalProxyPrefix)
		return common.BytesToAddress(code[start : start+common.AddressLength]), true, nil
	}

	slot, err := caller.StorageAt(ctx, account, implementationSlot, nil)
	if err != nil {
		return common.Address{}, false, fmt.Errorf("implementation slot of %s: %w", account.Hex(), err)
	}
	if impl := common.BytesToAddress(slot); impl != (common.Address{}) {
		return impl, true, nil
	}

	slot, err = caller.StorageAt(ctx, account, beaconSlot, nil)
	if err != nil {
		return common.Address{}, false, fmt.Errorf("beacon slot of %s: %w", account.Hex(), err)
	}
	beacon := common.BytesToAddress(slot)
	if beacon == (common.Address{}) {
		return common.Address{}, false, nil
	}

	parsed, err := balancer.GaugeABI()
	if err != nil {
		return common.Address{}, false, fmt.Errorf("parse gauge abi: %w", err)
	}
	impl, err := balancer.CallAddress(ctx, caller, beacon, parsed, "implementation")
	if err != nil {
		return common.Address{}, false, fmt.Errorf("beacon implementation: %w", err)
	}
	return impl, true, nil
}

// containsSelector walks the bytecode for dispatcher comparisons: a PUSH4
// of the selector (PUSH3 when its first byte is zero), optionally followed by
// one DUP, then EQ or XOR. Selectors pushed for outgoing calls are not
// followed by a comparison and do not count.
func containsSelector(code []byte, selector [4]byte) bool {
	for i := 0; i < len(code); i++ {
		op := code[i]
		if op < opPUSH1 || op > opPUSH32 {
			continue
		}
		size := int(op-opPUSH1) + 1
		end := i + 1 + size
		if end > len(code) {
			return false
		}
		imm := code[i+1 : end]
		var match bool
		switch op {
		case opPUSH4:
			match = bytes.Equal(imm, selector[:])
		case opPUSH3:
			match = selector[0] == 0 && bytes.Equal(imm, selector[1:])
		}
		if match && comparesNext(code, end) {
			return true
		}
		i += size
	}
	return false
}

func comparesNext(code []byte, pos int) bool {
	if pos < len(code) && code[pos] >= opDUP1 && code[pos] <= opDUP16 {
		pos++
	}
	return pos < len(code) && (code[pos] == opEQ || code[pos] == opXOR)
}
