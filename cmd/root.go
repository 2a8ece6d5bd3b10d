package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kioskctl",
		Short: "Control plane of the packing kiosk",
		Long: `kioskctl runs the local control API of a packing kiosk terminal.

It owns the master session, derives operator permissions from the server
settings, keeps the SKU catalog and forwards report requests to the kiosk
server. The sku and catalog commands work offline against the code grammar
or read the catalog directly.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSkuCmd())
	cmd.AddCommand(newCatalogCmd())

	return cmd
}
