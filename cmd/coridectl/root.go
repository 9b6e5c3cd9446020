package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coridectl",
	Short: "Co'Ride carpooling API server",
	Long:  `coridectl runs the Co'Ride carpooling API server and manages its database and configuration.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
