package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sommystore/storefront/app/models"
)

func cartCmd() *cobra.Command {
	cart := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and mutate the cart",
	}

	cart.AddCommand(cartShowCmd(), cartAddCmd(), cartQuantityCmd(), cartRemoveCmd(), cartClearCmd())
	return cart
}

func cartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the cart with its total and item count",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app()
			if err != nil {
				return err
			}

			items := a.Cart.Items()
			for i, line := range items {
				fmt.Fprintf(os.Stdout, "%d. %s  x%d  @ %.2f = %.2f\n",
					i, line.Name, line.EffectiveQuantity(), line.Price, line.Subtotal())
			}
			fmt.Fprintf(os.Stdout, "items: %d  total: %.2f\n", items.Count(), items.Total())
			return nil
		},
	}
}

func cartAddCmd() *cobra.Command {
	var quantity int
	var productJSON string

	cmd := &cobra.Command{
		Use:   "add --product '<json>'",
		Short: "Merge a product into the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app()
			if err != nil {
				return err
			}

			var product models.Product
			if err := json.Unmarshal([]byte(productJSON), &product); err != nil {
				return fmt.Errorf("invalid product JSON: %w", err)
			}

			cart, err := a.Cart.Add(product, quantity)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "added, cart now %d item(s), total %.2f\n", cart.Count(), cart.Total())
			return nil
		},
	}

	cmd.Flags().StringVar(&productJSON, "product", "", "product as JSON ({\"_id\":..,\"name\":..,\"price\":..})")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "quantity to add")
	cmd.MarkFlagRequired("product") //nolint:errcheck
	return cmd
}

func cartQuantityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quantity <index> <n>",
		Short: "Set the quantity of the line at index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app()
			if err != nil {
				return err
			}

			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity: %w", err)
			}

			cart, err := a.Cart.SetQuantity(index, n)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "cart now %d item(s), total %.2f\n", cart.Count(), cart.Total())
			return nil
		},
	}
}

func cartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <index>",
		Short: "Remove the line at index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app()
			if err != nil {
				return err
			}

			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}

			cart, err := a.Cart.Remove(index)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "cart now %d item(s), total %.2f\n", cart.Count(), cart.Total())
			return nil
		},
	}
}

func cartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app()
			if err != nil {
				return err
			}
			if err := a.Cart.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "cart cleared")
			return nil
		},
	}
}
