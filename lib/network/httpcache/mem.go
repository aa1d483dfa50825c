package httpcache

import (
	"time"

	"github.com/hashicorp/golang-lru"
)

// MemCacheAdapter keeps the latest `size` responses in process.
type MemCacheAdapter struct {
	lruCache *lru.Cache
}

func NewMemCacheAdapter(size int) (*MemCacheAdapter, error) {
	lruCache, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &MemCacheAdapter{lruCache: lruCache}, nil
}

func (a *MemCacheAdapter) Get(key string) (*Response, bool) {
	value, ok := a.lruCache.Get(key)
	if !ok {
		return nil, false
	}

	resp := value.(*Response)
	if resp.IsExpired(time.Now()) {
		a.lruCache.Remove(key)
		return nil, false
	}

	return resp, true
}

func (a *MemCacheAdapter) Set(key string, resp *Response, expiration time.Time) {
	resp.Expiration = expiration
	a.lruCache.Add(key, resp)
}

func (a *MemCacheAdapter) Remove(key string) {
	a.lruCache.Remove(key)
}

func (a *MemCacheAdapter) Len() int {
	return a.lruCache.Len()
}
