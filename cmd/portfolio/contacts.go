package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/osa911/portfolio/internal/api/sanitization"
	"github.com/osa911/portfolio/internal/db"
	"github.com/osa911/portfolio/internal/repository"
)

// openDatabase connects using DATABASE_DRIVER and DATABASE_URL.
func openDatabase(ctx context.Context) *db.Database {
	cfg := loadConfig()
	if cfg.Database.URL == "" {
		logger.Error("DATABASE_URL is not set")
		os.Exit(1)
	}

	database, err := db.Open(ctx, db.Config{Driver: cfg.Database.Driver, URL: cfg.Database.URL})
	if err != nil {
		logger.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	return database
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := openDatabase(ctx)
		defer database.Close()

		s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
		s.Suffix = " Applying migrations..."
		s.Start()
		err := db.Migrate(ctx, database, logger)
		s.Stop()

		if err != nil {
			logger.Error("Migration failed: %v", err)
			os.Exit(1)
		}
		logger.Info("Database is up to date")
	},
}

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Inspect stored contact submissions",
}

var contactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent submissions",
	Long: `List the most recent contact submissions, newest first.

Example:
  portfolio contacts list --limit 50`,
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		ctx := cmd.Context()
		database := openDatabase(ctx)
		defer database.Close()

		contacts, err := repository.NewContactRepository(database).List(ctx, limit)
		if err != nil {
			logger.Error("Failed to list contacts: %v", err)
			os.Exit(1)
		}

		if len(contacts) == 0 {
			fmt.Println("No submissions yet.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tRECEIVED\tNAME\tEMAIL\tPHONE\tMESSAGE")
		for _, c := range contacts {
			message := strings.ReplaceAll(c.Description, "\n", " ")
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				c.ID,
				c.CreatedAt.Local().Format(time.DateTime),
				c.Name,
				c.Email,
				c.PhoneOrDefault(),
				sanitization.Truncate(message, 60),
			)
		}
		w.Flush()
	},
}

var contactsCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of stored submissions",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := openDatabase(ctx)
		defer database.Close()

		count, err := repository.NewContactRepository(database).Count(ctx)
		if err != nil {
			logger.Error("Failed to count contacts: %v", err)
			os.Exit(1)
		}
		fmt.Println(count)
	},
}

// initContactsCommands sets up all contacts-related commands
func initContactsCommands() {
	contactsCmd.AddCommand(contactsListCmd)
	contactsCmd.AddCommand(contactsCountCmd)

	contactsListCmd.Flags().Int("limit", 20, "Maximum number of submissions to show")
}
