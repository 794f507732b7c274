package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shopfx",
		Short: "Storefront currency, pricing and exchange rate service",
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newUpdateRatesCmd())
	return rootCmd
}
