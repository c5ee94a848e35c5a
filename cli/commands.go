package cli

import (
	"fmt"
	"os"

	"otp-order-manager/models/order"
	"otp-order-manager/session"

	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open the interactive order shell",
	RunE:  runShell,
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key [api-key]",
	Short: "Validate and store the provider API key on the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		balance, err := newClient().SetKey(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println("API key saved.")
		if balance.Valid {
			fmt.Println("Balance:", session.FormatRupiah(balance.Decimal))
		}
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the provider balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		balance, err := newClient().Balance(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println("Balance:", session.FormatRupiah(balance))
		return nil
	},
}

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List countries",
	RunE: func(cmd *cobra.Command, args []string) error {
		countries, err := newClient().Countries(cmd.Context())
		if err != nil {
			return err
		}
		session.RenderCountries(os.Stdout, countries)
		return nil
	},
}

var operatorsCmd = &cobra.Command{
	Use:   "operators [country-id]",
	Short: "List operators for a country",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		operators, err := newClient().Operators(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		session.RenderOperators(os.Stdout, operators)
		return nil
	},
}

var servicesCmd = &cobra.Command{
	Use:   "services [country-id]",
	Short: "List services and prices for a country",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := newClient().Services(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		session.RenderServices(os.Stdout, services)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the server's order history for this process",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		today, _ := cmd.Flags().GetBool("today")
		withSummary, _ := cmd.Flags().GetBool("summary")

		if withSummary {
			summary, err := newClient().HistorySummary(cmd.Context(), today)
			if err != nil {
				return err
			}
			for _, s := range order.GetAllStatuses() {
				fmt.Printf("%-10s %d\n", s, summary.Counts[s])
			}
			fmt.Printf("open %d, closed %d\n", summary.Open, summary.Closed)
			return nil
		}

		orders, err := newClient().History(cmd.Context(), status, today)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			fmt.Println("No orders recorded.")
			return nil
		}
		for _, o := range orders {
			fmt.Printf("%-12s %-16s %-8s %-10s %s\n", o.OrderID, o.Phone, o.ServiceCode, o.Status, o.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().String("status", "", "Only show orders with this status (pending, completed, canceled)")
	historyCmd.Flags().Bool("today", false, "Only show orders created today")
	historyCmd.Flags().Bool("summary", false, "Show counts per status instead of the order list")
}

func runShell(cmd *cobra.Command, args []string) error {
	return NewShell(newClient(), os.Stdin, os.Stdout).Run(cmd.Context())
}
