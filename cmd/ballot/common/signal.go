package common

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Interrupt blocks until SIGINT or SIGTERM arrives or cancel is closed, and
// returns the reason.
func Interrupt(cancel <-chan struct{}) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case sig := <-signals:
		return fmt.Errorf("signal %v", sig)
	case <-cancel:
		return fmt.Errorf("canceled")
	}
}
