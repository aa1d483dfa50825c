package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"boscoin.io/ballot/cmd/ballot/cmd/key"
	"boscoin.io/ballot/cmd/ballot/cmd/tx"
	"boscoin.io/ballot/cmd/ballot/common"
	"boscoin.io/ballot/lib/version"
)

var rootCmd = groupCommand(os.Args[0], "permissioned ballot ledger node and client")

// groupCommand only holds sub commands; without one it prints the usage.
func groupCommand(use, short string, subs ...*cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   use,
		Short: short,
		Run: func(c *cobra.Command, args []string) {
			c.Usage()
		},
	}
	c.AddCommand(subs...)

	return c
}

func init() {
	var short bool
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(c *cobra.Command, args []string) {
			if short {
				fmt.Println(version.Version)
				return
			}
			fmt.Println(version.ToDetailVersion())
		},
	}
	versionCmd.Flags().BoolVar(&short, "short", false, "print only the release version")

	rootCmd.AddCommand(
		versionCmd,
		groupCommand("key", "Keypair management", key.GenerateCmd),
		tx.TxCmd,
	)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		common.PrintError(rootCmd, err)
	}
}
