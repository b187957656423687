package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/osa911/portfolio/internal/config"
	"github.com/osa911/portfolio/internal/logging"
	"github.com/osa911/portfolio/internal/version"
)

var logger *logging.Logger

func initLogger() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = logging.LevelInfo
	}

	var err error
	logger, err = logging.NewLogger(&logging.Config{
		Level:  level,
		Output: os.Stderr,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the same environment the API server uses.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Error loading config: %v", err)
		os.Exit(1)
	}
	return cfg
}

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio CLI - contact form tooling",
	Long: `Portfolio CLI manages the contact form backend: it applies database
migrations, lists stored submissions and sends test submissions through the
same form logic the website uses.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.GetBuildInfo().String())
	},
}

func init() {
	initLogger()

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(contactsCmd)
	rootCmd.AddCommand(sendCmd)

	initContactsCommands()
	initSendCommand()
}

func main() {
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}
