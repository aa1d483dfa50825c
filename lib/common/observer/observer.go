package observer

import (
	"github.com/GianlucaGuarini/go-observable"
)

// BlockObserver is triggered with the saved `block.Block` every time the
// host stores a block.
var BlockObserver = observable.New()
