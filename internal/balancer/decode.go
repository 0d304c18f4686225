package balancer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ErrUnknownSelector means the calldata is well formed but names a method
// the ABI does not have.
var ErrUnknownSelector = errors.New("unknown method selector")

// DecodedCall is calldata matched against a known ABI.
type DecodedCall struct {
	Method string
	Args   []interface{}
}

// DecodeCall decodes hex calldata against parsed. Overloaded methods report
// their Solidity name, not the go-ethereum disambiguated one.
func DecodeCall(parsed abi.ABI, data string) (DecodedCall, error) {
	raw, err := hexutil.Decode(strings.TrimSpace(data))
	if err != nil {
		return DecodedCall{}, fmt.Errorf("decode calldata hex: %w", err)
	}
	if len(raw) < 4 {
		return DecodedCall{}, fmt.Errorf("calldata too short: %d bytes", len(raw))
	}

	method, err := parsed.MethodById(raw[:4])
	if err != nil {
		return DecodedCall{}, fmt.Errorf("%w %s", ErrUnknownSelector, hexutil.Encode(raw[:4]))
	}
	args, err := method.Inputs.Unpack(raw[4:])
	if err != nil {
		return DecodedCall{}, fmt.Errorf("unpack %s args: %w", method.RawName, err)
	}

	return DecodedCall{Method: method.RawName, Args: args}, nil
}
