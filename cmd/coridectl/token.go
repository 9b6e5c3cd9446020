package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"coride/pkg/config"
	"coride/pkg/token"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage bearer tokens",
	Long:  `Issue bearer tokens outside the login flow, for debugging and scripting.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'token' requires a subcommand (issue)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// tokenIssueCmd represents the token issue command
var tokenIssueCmd = &cobra.Command{
	Use:   "issue [user-id]",
	Short: "Issue a bearer token for a user",
	Long: `Issue a signed bearer token for the given user id, using the configured
signing secret and TTL.

Example:
  coridectl token issue 42`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		userID, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "user-id must be an integer")
			os.Exit(1)
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
			os.Exit(1)
		}
		if cfg.TokenSecret == "" {
			fmt.Fprintln(os.Stderr, "token_secret is required (set TOKEN_SECRET)")
			os.Exit(1)
		}

		tokens := token.NewService([]byte(cfg.TokenSecret), cfg.TokenTTLDuration())
		signed, err := tokens.Issue(userID)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to issue token:", err)
			os.Exit(1)
		}

		fmt.Println(signed)
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenIssueCmd)
}
