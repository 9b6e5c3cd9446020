package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"coride/pkg/cache"
	"coride/pkg/config"
	"coride/pkg/db"
	"coride/pkg/server"
	"coride/pkg/server/endpoints"
	"coride/pkg/token"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the Co'Ride API server",
	Long: `Run the Co'Ride API server.

Requires DATABASE_URL and TOKEN_SECRET, from the environment or the config
file. Caching is enabled when REDIS_URL is set.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
			os.Exit(1)
		}

		if host, _ := cmd.Flags().GetString("bind-address"); host != "" {
			cfg.BindAddress = host
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}

		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
			os.Exit(1)
		}

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(cfg.DatabaseURL); err != nil {
				fmt.Fprintln(os.Stderr, "Migration failed:", err)
				os.Exit(1)
			}
		}

		gormDB, err := db.Connect(db.Config{URL: cfg.DatabaseURL})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		var cacheClient cache.Cache
		if cfg.RedisURL != "" {
			cacheClient, err = cache.New(cache.WithAddrs(cfg.RedisAddrs()))
			if err != nil {
				fmt.Fprintln(os.Stderr, "Unable to connect to cache:", err)
				os.Exit(1)
			}
		} else {
			log.Println("REDIS_URL not set, response caching disabled")
		}

		tokens := token.NewService([]byte(cfg.TokenSecret), cfg.TokenTTLDuration())

		s := server.NewServer(cfg, gormDB, cacheClient, tokens)
		endpoints.RegisterAll(s)

		log.Printf("Running server at http://%s...\n", cfg.Addr())
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", "", "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", "", "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
