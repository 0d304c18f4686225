package balancer

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"gaugeScope/internal/chain"
	"gaugeScope/internal/model"
)

// CustomPoolID is reported for pools without a vault pool id.
const CustomPoolID = "Custom"

// FetchPool loads pool metadata. Only name and symbol are required; the
// amplification factor and pool id fall back to N/A and Custom.
func FetchPool(ctx context.Context, caller chain.Caller, pool common.Address, logger *zap.Logger) (model.PoolDescriptor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	parsed, err := PoolABI()
	if err != nil {
		return model.PoolDescriptor{}, fmt.Errorf("parse pool abi: %w", err)
	}

	name, err := CallString(ctx, caller, pool, parsed, "name")
	if err != nil {
		return model.PoolDescriptor{}, err
	}
	symbol, err := CallString(ctx, caller, pool, parsed, "symbol")
	if err != nil {
		return model.PoolDescriptor{}, err
	}

	desc := model.PoolDescriptor{
		Name:    name,
		Symbol:  symbol,
		ID:      CustomPoolID,
		Address: pool.Hex(),
		AFactor: model.NotApplicable,
	}

	if factor, err := amplificationFactor(ctx, caller, pool, parsed); err == nil {
		desc.AFactor = factor.String()
	} else {
		logger.Debug("no amplification parameter", zap.String("pool", pool.Hex()), zap.Error(err))
	}

	if values, err := CallMethod(ctx, caller, pool, parsed, "getPoolId"); err == nil {
		if id, err := Bytes32Hex(values[0]); err == nil {
			desc.ID = id
		}
	} else {
		logger.Debug("no pool id", zap.String("pool", pool.Hex()), zap.Error(err))
	}

	if supply, err := CallBigInt(ctx, caller, pool, parsed, "totalSupply"); err == nil {
		if supply.Sign() == 0 {
			desc.Symbol = fmt.Sprintf("WARN: %s no initjoin", symbol)
		}
	} else {
		logger.Debug("total supply call failed", zap.String("pool", pool.Hex()), zap.Error(err))
	}

	return desc, nil
}

func amplificationFactor(ctx context.Context, caller chain.Caller, pool common.Address, parsed abi.ABI) (*big.Int, error) {
	values, err := CallMethod(ctx, caller, pool, parsed, "getAmplificationParameter")
	if err != nil {
		return nil, err
	}
	if len(values) < 3 {
		return nil, fmt.Errorf("amplification parameter: expected 3 values, got %d", len(values))
	}
	value, err := AsBigInt(values[0])
	if err != nil {
		return nil, fmt.Errorf("amplification value: %w", err)
	}
	precision, err := AsBigInt(values[2])
	if err != nil {
		return nil, fmt.Errorf("amplification precision: %w", err)
	}
	if precision.Sign() <= 0 {
		return nil, fmt.Errorf("amplification precision is %s", precision)
	}
	return new(big.Int).Quo(value, precision), nil
}
