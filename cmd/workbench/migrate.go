package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"relevance-workbench/internal/storage"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Args:  cobra.NoArgs,
	}
	dbPath := dbFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		db, err := storage.New(*dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer func() {
			_ = db.Close()
		}()
		if err := storage.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "migrated %s\n", *dbPath)
		return nil
	}
	return cmd
}
