package runner

import (
	"sync"
	"time"

	"github.com/beevik/ntp"

	"boscoin.io/ballot/lib/block"
)

// Clock gives the wall time the next block timestamp is taken from.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// NTPClock is the local clock corrected by the offset measured against an
// NTP server. Until the first successful `Sync()` it is the local clock.
type NTPClock struct {
	sync.RWMutex

	host   string
	offset time.Duration
	query  func(string) (time.Duration, error)
}

func NewNTPClock(host string) *NTPClock {
	return &NTPClock{
		host:  host,
		query: queryNTPOffset,
	}
}

func queryNTPOffset(host string) (time.Duration, error) {
	resp, err := ntp.Query(host)
	if err != nil {
		return 0, err
	}
	if err = resp.Validate(); err != nil {
		return 0, err
	}

	return resp.ClockOffset, nil
}

func (c *NTPClock) Sync() error {
	offset, err := c.query(c.host)
	if err != nil {
		log.Error("failed to query ntp server", "host", c.host, "error", err)
		return err
	}

	c.Lock()
	c.offset = offset
	c.Unlock()

	log.Debug("clock offset updated", "host", c.host, "offset", offset)

	return nil
}

func (c *NTPClock) Offset() time.Duration {
	c.RLock()
	defer c.RUnlock()

	return c.offset
}

func (c *NTPClock) Now() time.Time {
	return time.Now().Add(c.Offset())
}

// LedgerTime is the timestamp of the block after prev, in seconds. It never
// goes back, even when the clock does.
func LedgerTime(clock Clock, prev block.Block) uint64 {
	now := clock.Now().Unix()
	if now < 0 || uint64(now) < prev.Timestamp {
		return prev.Timestamp
	}

	return uint64(now)
}
