package cli

import (
	"fmt"
	"os"

	"otp-order-manager/httpServices/relay"

	"github.com/spf13/cobra"
)

const defaultServerURL = "http://localhost:3000"

var (
	serverURL string
	rootCmd   *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "otpctl",
		Short: "Operate the OTP order manager from a terminal",
		Long: `otpctl talks to a running OTP order manager server.

Without a subcommand it opens an interactive shell that keeps the active
order and the order history for the session.`,
		RunE:          runShell,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	server := os.Getenv("OTPCTL_SERVER")
	if server == "" {
		server = defaultServerURL
	}
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", server, "Base URL of the order manager server")
}

// Execute runs the root command
func Execute() error {
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(setKeyCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(countriesCmd)
	rootCmd.AddCommand(operatorsCmd)
	rootCmd.AddCommand(servicesCmd)
	rootCmd.AddCommand(historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func newClient() *relay.Client {
	return relay.NewClient(serverURL, nil)
}
