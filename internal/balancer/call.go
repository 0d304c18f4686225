package balancer

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"gaugeScope/internal/chain"
)

// CallMethod packs, calls and unpacks a contract method at the latest block.
func CallMethod(ctx context.Context, caller chain.Caller, target common.Address, parsed abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	if caller == nil {
		return nil, fmt.Errorf("chain caller is nil")
	}
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &target, Data: data}
	resp, err := caller.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s on %s: %w", method, target.Hex(), err)
	}
	values, err := parsed.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s on %s: %w", method, target.Hex(), err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%s on %s returned nothing", method, target.Hex())
	}
	return values, nil
}

// CallAddress calls a method returning a single address.
func CallAddress(ctx context.Context, caller chain.Caller, target common.Address, parsed abi.ABI, method string) (common.Address, error) {
	values, err := CallMethod(ctx, caller, target, parsed, method)
	if err != nil {
		return common.Address{}, err
	}
	addr, err := AsAddress(values[0])
	if err != nil {
		return common.Address{}, fmt.Errorf("%s: %w", method, err)
	}
	return addr, nil
}

// CallString calls a method returning a single string.
func CallString(ctx context.Context, caller chain.Caller, target common.Address, parsed abi.ABI, method string) (string, error) {
	values, err := CallMethod(ctx, caller, target, parsed, method)
	if err != nil {
		return "", err
	}
	s, ok := values[0].(string)
	if !ok {
		return "", fmt.Errorf("%s: unsupported string type %T", method, values[0])
	}
	return s, nil
}

// CallBigInt calls a method returning a single integer.
func CallBigInt(ctx context.Context, caller chain.Caller, target common.Address, parsed abi.ABI, method string) (*big.Int, error) {
	values, err := CallMethod(ctx, caller, target, parsed, method)
	if err != nil {
		return nil, err
	}
	v, err := AsBigInt(values[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return v, nil
}

func AsAddress(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		return *v, nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
}

func AsBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}

// Bytes32Hex renders a bytes32 value as 0x-prefixed hex.
func Bytes32Hex(value interface{}) (string, error) {
	switch v := value.(type) {
	case [32]byte:
		return hexutil.Encode(v[:]), nil
	case []byte:
		return hexutil.Encode(v), nil
	case common.Hash:
		return v.Hex(), nil
	default:
		return "", fmt.Errorf("unsupported bytes32 type %T", value)
	}
}

// FormatArg renders a decoded call argument the way the audit table shows it.
func FormatArg(value interface{}) string {
	switch v := value.(type) {
	case common.Address:
		return v.Hex()
	case *big.Int:
		return v.String()
	case string:
		return v
	case []byte:
		return hexutil.Encode(v)
	case [32]byte:
		return hexutil.Encode(v[:])
	default:
		return fmt.Sprintf("%v", v)
	}
}
