package common

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"boscoin.io/ballot/lib/errors"
)

// PrintFlagsError reports a bad flag or argument with the usage of cmd, and
// exits.
func PrintFlagsError(cmd *cobra.Command, flagName string, err error) {
	exitWithUsage(cmd, fmt.Sprintf("invalid '%s'", flagName), err)
}

func PrintError(cmd *cobra.Command, err error) {
	exitWithUsage(cmd, "", err)
}

func exitWithUsage(cmd *cobra.Command, prefix string, err error) {
	if err != nil {
		msg := err.Error()
		if e, ok := err.(*errors.Error); ok {
			msg = e.Message
		}
		if prefix != "" {
			msg = prefix + "; " + msg
		}
		fmt.Fprintf(os.Stderr, "error: %s\n\n", msg)
	}

	cmd.Help()
	os.Exit(1)
}
