package httpcache

import (
	"time"

	redisCache "github.com/go-redis/cache"
	"github.com/go-redis/redis"
	"github.com/vmihailenco/msgpack"
)

// RedisKeyPrefix keeps the cached pages apart from the other keys of the
// shared redis.
const RedisKeyPrefix = "ballot:httpcache:"

// RedisCacheAdapter shares the cached responses between the nodes behind
// one load balancer. The responses are encoded with msgpack.
type RedisCacheAdapter struct {
	codec *redisCache.Codec
}

type RedisRingOptions redis.RingOptions

func NewRedisCacheAdapter(opt *RedisRingOptions) *RedisCacheAdapter {
	ringOptions := redis.RingOptions(*opt)

	return &RedisCacheAdapter{
		codec: &redisCache.Codec{
			Redis: redis.NewRing(&ringOptions),
			Marshal: func(v interface{}) ([]byte, error) {
				return msgpack.Marshal(v)
			},
			Unmarshal: func(b []byte, v interface{}) error {
				return msgpack.Unmarshal(b, v)
			},
		},
	}
}

func (a *RedisCacheAdapter) Get(key string) (*Response, bool) {
	var resp Response
	if err := a.codec.Get(RedisKeyPrefix+key, &resp); err != nil {
		if err != redisCache.ErrCacheMiss {
			log.Error("failed to get cache", "key", key, "error", err)
		}
		return nil, false
	}

	if resp.IsExpired(time.Now()) {
		return nil, false
	}

	return &resp, true
}

func (a *RedisCacheAdapter) Set(key string, resp *Response, expiration time.Time) {
	resp.Expiration = expiration

	var ttl time.Duration
	if !expiration.IsZero() {
		if ttl = time.Until(expiration); ttl <= 0 {
			return
		}
	}

	if err := a.codec.Set(&redisCache.Item{
		Key:        RedisKeyPrefix + key,
		Object:     resp,
		Expiration: ttl,
	}); err != nil {
		log.Error("failed to set cache", "key", key, "error", err)
	}
}

func (a *RedisCacheAdapter) Remove(key string) {
	if err := a.codec.Delete(RedisKeyPrefix + key); err != nil && err != redisCache.ErrCacheMiss {
		log.Error("failed to remove cache", "key", key, "error", err)
	}
}
