package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/relove-market/storefront/pkg/response"
)

func newOrdersCommand() *cobra.Command {
	ordersCmd := &cobra.Command{
		Use:   "orders",
		Short: "Order history, sales and payouts",
	}
	ordersCmd.AddCommand(
		newHistoryCommand(),
		newSalesCommand(),
		newShowOrderCommand(),
		newPayCommand(),
		newPayoutCommand(),
	)
	return ordersCmd
}

func newHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show your past orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			application, err := newApp(c)
			if err != nil {
				return err
			}
			defer application.shutdown(c)

			orders, err := application.client.OrderHistory(c)
			if err != nil {
				return fmt.Errorf("failed fetching order history with error=%w", err)
			}
			printOrders(orders)
			return nil
		},
	}
}

func newSalesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sales",
		Short: "Show orders containing your items",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			application, err := newApp(c)
			if err != nil {
				return err
			}
			defer application.shutdown(c)

			orders, err := application.client.MySales(c)
			if err != nil {
				return fmt.Errorf("failed fetching sales with error=%w", err)
			}
			printOrders(orders)
			return nil
		},
	}
}

func newShowOrderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <orderId>",
		Short: "Show one order in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			orderId, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("orderId must be a number")
			}
			application, err := newApp(c)
			if err != nil {
				return err
			}
			defer application.shutdown(c)

			order, err := application.client.GetOrder(c, orderId)
			if err != nil {
				return fmt.Errorf("failed fetching order with error=%w", err)
			}
			fmt.Printf("order #%d [%s] %s via %s\n",
				order.OrderID, order.Status,
				order.TotalAmount.StringFixed(2), order.PaymentMethod)
			fmt.Printf("  to %s, %s\n", order.ReceiverName, order.ShippingAddress)
			for _, item := range order.Items {
				fmt.Printf("  %q %s/%s x%d @ %s\n",
					item.ProductName, item.Size, item.Color,
					item.Quantity, item.Price.StringFixed(2))
			}
			return nil
		},
	}
}

func newPayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pay <orderId> <method>",
		Short: "Settle a placed order with a payment method",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			orderId, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("orderId must be a number")
			}
			application, err := newApp(c)
			if err != nil {
				return err
			}
			defer application.shutdown(c)

			payment, err := application.client.PayOrder(c, orderId, strings.ToUpper(args[1]))
			if err != nil {
				return fmt.Errorf("failed paying order with error=%w", err)
			}
			fmt.Printf("payment %d [%s] %s via %s\n",
				payment.ID, payment.Status,
				payment.Amount.StringFixed(2), payment.PaymentMethod)
			return nil
		},
	}
}

func newPayoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "payout <orderId>",
		Short: "Request the payout for a completed sale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			orderId, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("orderId must be a number")
			}
			application, err := newApp(c)
			if err != nil {
				return err
			}
			defer application.shutdown(c)

			err = application.client.RequestPayout(c, orderId)
			if err != nil {
				return fmt.Errorf("failed requesting payout with error=%w", err)
			}
			fmt.Printf("payout for order %d requested\n", orderId)
			return nil
		},
	}
}

func printOrders(orders []response.Order) {
	if len(orders) == 0 {
		fmt.Println("no orders")
		return
	}
	for _, order := range orders {
		fmt.Printf("#%-6d %-12s %10s  %s\n",
			order.OrderID, order.Status,
			order.TotalAmount.StringFixed(2), order.OrderDate)
	}
}
