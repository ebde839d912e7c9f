package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "angus-biltong",
		Short: "Angus Biltong storefront backend",
		Long: `Serves the Angus Biltong storefront API: catalog and categories from the
commerce platform, per-visitor carts, accounts, gift certificates and
checkout hand-off.

Configuration comes from the environment (a .env file is read first).`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newCategoriesCmd(), newExportCmd())
	return root
}
