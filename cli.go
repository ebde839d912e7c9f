package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/DillanMilo/angus-biltong-sub000/catalog"
	"github.com/DillanMilo/angus-biltong-sub000/config"
	"github.com/spf13/cobra"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Print the configured category mapping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tKIND\tTITLE")
			for _, c := range catalog.DefaultResolver().Categories() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.Path, c.Kind, c.Title)
			}
			return w.Flush()
		},
	}
}

func newExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the live catalog to an .xlsx file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			client, err := newCommerceClient(cfg)
			if err != nil {
				return err
			}
			products, err := client.ListProducts(cmd.Context(), true)
			if err != nil {
				return fmt.Errorf("fetch catalog: %w", err)
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := catalog.ExportXLSX(f, products, catalog.DefaultResolver()); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d products to %s\n", len(products), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "products.xlsx", "output file")
	return cmd
}
