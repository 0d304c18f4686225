package balancer

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gaugeScope/internal/chain/chaintest"
	"gaugeScope/internal/model"
)

func TestFetchPoolStable(t *testing.T) {
	parsed, err := PoolABI()
	require.NoError(t, err)

	pool := common.HexToAddress("0x1111111111111111111111111111111111111111")
	var poolID [32]byte
	copy(poolID[:], common.FromHex("0x1e19cf2d73a72ef1332c882f20534b6519be02760002000000000000000000aa"))

	caller := chaintest.NewFakeCaller()
	require.NoError(t, caller.SetReturn(pool, parsed, "name", "Balancer wstETH-WETH Stable"))
	require.NoError(t, caller.SetReturn(pool, parsed, "symbol", "wstETH-WETH-BPT"))
	require.NoError(t, caller.SetReturn(pool, parsed, "totalSupply", big.NewInt(1000)))
	require.NoError(t, caller.SetReturn(pool, parsed, "getPoolId", poolID))
	require.NoError(t, caller.SetReturn(pool, parsed, "getAmplificationParameter", big.NewInt(50000), false, big.NewInt(1000)))

	desc, err := FetchPool(context.Background(), caller, pool, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, model.PoolDescriptor{
		Name:    "Balancer wstETH-WETH Stable",
		Symbol:  "wstETH-WETH-BPT",
		ID:      "0x1e19cf2d73a72ef1332c882f20534b6519be02760002000000000000000000aa",
		Address: pool.Hex(),
		AFactor: "50",
	}, desc)
}

func TestFetchPoolWeightedFallbacks(t *testing.T) {
	parsed, err := PoolABI()
	require.NoError(t, err)

	pool := common.HexToAddress("0x2222222222222222222222222222222222222222")
	caller := chaintest.NewFakeCaller()
	require.NoError(t, caller.SetReturn(pool, parsed, "name", "Custom Token"))
	require.NoError(t, caller.SetReturn(pool, parsed, "symbol", "CT"))
	require.NoError(t, caller.SetReturn(pool, parsed, "totalSupply", big.NewInt(0)))

	desc, err := FetchPool(context.Background(), caller, pool, nil)
	require.NoError(t, err)

	assert.Equal(t, CustomPoolID, desc.ID)
	assert.Equal(t, model.NotApplicable, desc.AFactor)
	assert.Equal(t, "WARN: CT no initjoin", desc.Symbol)
}

func TestFetchPoolRequiresName(t *testing.T) {
	parsed, err := PoolABI()
	require.NoError(t, err)

	pool := common.HexToAddress("0x3333333333333333333333333333333333333333")
	caller := chaintest.NewFakeCaller()
	caller.SetError(pool, parsed, "name", errors.New("rpc down"))

	_, err = FetchPool(context.Background(), caller, pool, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rpc down")
}

func TestFetchPoolZeroPrecision(t *testing.T) {
	parsed, err := PoolABI()
	require.NoError(t, err)

	pool := common.HexToAddress("0x4444444444444444444444444444444444444444")
	caller := chaintest.NewFakeCaller()
	require.NoError(t, caller.SetReturn(pool, parsed, "name", "P"))
	require.NoError(t, caller.SetReturn(pool, parsed, "symbol", "P"))
	require.NoError(t, caller.SetReturn(pool, parsed, "getAmplificationParameter", big.NewInt(50000), false, big.NewInt(0)))

	desc, err := FetchPool(context.Background(), caller, pool, nil)
	require.NoError(t, err)
	assert.Equal(t, model.NotApplicable, desc.AFactor)
	assert.Equal(t, "P", desc.Symbol)
}
