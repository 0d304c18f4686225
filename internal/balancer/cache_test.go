package balancer

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"gaugeScope/internal/model"
)

func TestPoolCacheKeysByNetwork(t *testing.T) {
	cache := NewPoolCache()
	addr := common.HexToAddress("0x01")

	cache.Set(PoolKey{Network: "mainnet", Address: addr}, model.PoolDescriptor{Symbol: "A"})
	cache.Set(PoolKey{Network: "polygon-main", Address: addr}, model.PoolDescriptor{Symbol: "B"})

	pool, ok := cache.Get(PoolKey{Network: "mainnet", Address: addr})
	assert.True(t, ok)
	assert.Equal(t, "A", pool.Symbol)

	pool, ok = cache.Get(PoolKey{Network: "polygon-main", Address: addr})
	assert.True(t, ok)
	assert.Equal(t, "B", pool.Symbol)

	_, ok = cache.Get(PoolKey{Network: "gnosis-main", Address: addr})
	assert.False(t, ok)
	assert.Equal(t, 2, cache.Len())
}
