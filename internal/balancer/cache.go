package balancer

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"gaugeScope/internal/model"
)

// PoolKey identifies a pool on one network.
type PoolKey struct {
	Network string
	Address common.Address
}

// PoolCache caches pool metadata by network and address.
type PoolCache struct {
	mu   sync.RWMutex
	data map[PoolKey]model.PoolDescriptor
}

func NewPoolCache() *PoolCache {
	return &PoolCache{data: make(map[PoolKey]model.PoolDescriptor)}
}

func (c *PoolCache) Get(key PoolKey) (model.PoolDescriptor, bool) {
	c.mu.RLock()
	pool, ok := c.data[key]
	c.mu.RUnlock()
	return pool, ok
}

func (c *PoolCache) Set(key PoolKey, pool model.PoolDescriptor) {
	c.mu.Lock()
	c.data[key] = pool
	c.mu.Unlock()
}

func (c *PoolCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
