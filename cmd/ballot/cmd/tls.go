package cmd

import (
	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/ballot/cmd/ballot/common"
	"boscoin.io/ballot/lib/network"
)

var (
	tlsCmd *cobra.Command

	flagTLSOutputPath = "."
	flagTLSOutCert    = "ballot.crt"
	flagTLSOutKey     = "ballot.key"
)

func init() {
	tlsCmd = &cobra.Command{
		Use:   "tls",
		Short: "Generate a self-signed tls certificate and key for `node --tls-cert --tls-key`",
		Run: func(c *cobra.Command, args []string) {
			g, err := generateTLS(flagTLSOutputPath, flagTLSOutCert, flagTLSOutKey)
			if err != nil {
				cmdcommon.PrintFlagsError(c, "output", err)
			}

			log.Info("tls certificate and key are ready", "cert", g.CertPath(), "key", g.KeyPath())
		},
	}

	tlsCmd.Flags().StringVar(&flagTLSOutCert, "cert", flagTLSOutCert, "tls certificate file name")
	tlsCmd.Flags().StringVar(&flagTLSOutKey, "key", flagTLSOutKey, "tls key file name")
	tlsCmd.Flags().StringVar(&flagTLSOutputPath, "output", flagTLSOutputPath, "tls output path")

	rootCmd.AddCommand(tlsCmd)
}

// generateTLS keeps a pair already present in output.
func generateTLS(output, certFile, keyFile string) (*network.KeyGenerator, error) {
	return network.NewKeyGenerator(output, certFile, keyFile)
}
