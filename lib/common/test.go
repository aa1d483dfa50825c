// Provide test utilities for the common package
package common

import (
	"time"
)

// Initialize a new config object for unittests
func NewTestConfig() Config {
	p := NewConfig([]byte("ballot-unittest"))
	p.BlockTime = 100 * time.Millisecond

	return p
}
