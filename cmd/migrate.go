package cmd

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

var migrationsPath string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		m, err := migrate.New("file://"+migrationsPath, cfg.Storage.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to init migrations: %w", err)
		}
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		fmt.Println("migrations applied")
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrationsPath, "path", "migrations", "migrations directory")
	rootCmd.AddCommand(migrateCmd)
}
