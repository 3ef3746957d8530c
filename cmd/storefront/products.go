package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func productsCmd() *cobra.Command {
	products := &cobra.Command{
		Use:   "products",
		Short: "Browse the catalogue",
	}

	products.AddCommand(productsListCmd(), productsShowCmd())
	return products
}

func productsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List products from the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app()
			if err != nil {
				return err
			}

			list, err := a.Products.All(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range list {
				fmt.Fprintf(os.Stdout, "%s  %.2f  %s\n", p.ID, p.Price, p.Name)
			}
			return nil
		},
	}
}

func productsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app()
			if err != nil {
				return err
			}

			p, err := a.Products.Find(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s\n%.2f\n%s\n", p.Name, p.Price, p.Description)
			return nil
		},
	}
}
