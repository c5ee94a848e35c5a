package main

import (
	"os"

	"otp-order-manager/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
