package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sommystore/storefront/app/models"
	"github.com/sommystore/storefront/app/presenters"
)

func ordersCmd() *cobra.Command {
	orders := &cobra.Command{
		Use:   "orders",
		Short: "List, cancel and advance orders",
	}

	orders.AddCommand(ordersListCmd(), ordersAllCmd(), ordersCancelCmd())
	return orders
}

func printOrder(o models.Order) {
	badge := presenters.StatusBadge(o.Status)
	fmt.Fprintf(os.Stdout, "#%s  %s  %.2f  ordered %s  delivery %s\n",
		o.Reference(), badge.Label, o.Total,
		presenters.FormatDate(o.OrderDate), presenters.FormatDate(o.DeliveryDate))
	if o.CancellationFee != nil {
		fmt.Fprintf(os.Stdout, "    cancelled: fee %.2f, refund %.2f\n", *o.CancellationFee, refundOf(o))
	}
}

func refundOf(o models.Order) float64 {
	if o.RefundAmount != nil {
		return *o.RefundAmount
	}
	return 0
}

func ordersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the signed-in shopper's orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app()
			if err != nil {
				return err
			}

			orders, err := a.Orders.ForCurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			for _, o := range orders {
				printOrder(o)
			}
			if len(orders) == 0 {
				fmt.Fprintln(os.Stdout, "no orders yet")
			}
			return nil
		},
	}
}

func ordersAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "List every order (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app()
			if err != nil {
				return err
			}

			orders, err := a.Orders.AllForAdmin(cmd.Context())
			if err != nil {
				return err
			}
			for _, o := range orders {
				printOrder(o)
			}
			return nil
		},
	}
}

func ordersCancelCmd() *cobra.Command {
	var total float64
	var status string

	cmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an order (3% fee applies)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app()
			if err != nil {
				return err
			}

			order := models.Order{ID: args[0], Total: total, Status: models.OrderStatus(status)}

			quote, err := a.Orders.Quote(order)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "estimated fee %.2f, refund %.2f\n", quote.Fee, quote.Refund)

			cancelled, err := a.Orders.Cancel(cmd.Context(), order)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "cancelled: fee %.2f, refund %.2f\n",
				*cancelled.CancellationFee, refundOf(cancelled))
			return nil
		},
	}

	cmd.Flags().Float64Var(&total, "total", 0, "order total, for the fee preview")
	cmd.Flags().StringVar(&status, "status", "pending", "current order status")
	return cmd
}
