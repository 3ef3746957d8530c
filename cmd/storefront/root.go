package main

import (
	"github.com/spf13/cobra"

	"github.com/sommystore/storefront/internal/server"
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Sommy's Store client: cart, sessions, orders and the console server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		serveCmd(),
		cartCmd(),
		authCmd(),
		ordersCmd(),
		productsCmd(),
		subscribeCmd(),
	)
	return root
}

// app builds the shared runtime for one command invocation.
func app() (*server.App, error) {
	return server.New()
}
