package httpcache

import (
	"fmt"
	"strings"
)

// NewAdapter makes the cache adapter by name. "redis" needs the
// comma-separated addresses of the redis ring shards.
func NewAdapter(name string, size int, redisAddrs string) (Adapter, error) {
	switch name {
	case AdapterNameMemory:
		adapter, err := NewMemCacheAdapter(size)
		if err != nil {
			return nil, err
		}
		return adapter, nil
	case AdapterNameRedis:
		addrs := map[string]string{}
		for i, addr := range strings.Split(redisAddrs, ",") {
			if addr = strings.TrimSpace(addr); len(addr) > 0 {
				addrs[fmt.Sprintf("shard%d", i)] = addr
			}
		}
		if len(addrs) < 1 {
			return nil, fmt.Errorf("redis adapter needs addresses")
		}
		return NewRedisCacheAdapter(&RedisRingOptions{Addrs: addrs}), nil
	default:
		return nil, fmt.Errorf("adapter not found: %q", name)
	}
}
