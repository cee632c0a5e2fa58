package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"relevance-workbench/internal/backend"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "workbench",
		Short: "Relevance workbench tooling",
		Long: `Inspect query templates and rulesets without the API server: extract knobs,
compare template and ruleset revisions, print version history and migrate the database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newKnobsCmd(),
		newDiffCmd(),
		newHistoryCmd(),
		newMigrateCmd(),
	)
	return root
}

// backendFlag registers --backend on cmd and returns a resolver for its value.
func backendFlag(cmd *cobra.Command) func() (backend.Codec, error) {
	names := make([]string, len(backend.Kinds))
	for i, k := range backend.Kinds {
		names[i] = strings.ToLower(string(k))
	}
	value := cmd.Flags().StringP("backend", "b", strings.ToLower(string(backend.Elasticsearch)),
		"search backend ("+strings.Join(names, "|")+")")
	return func() (backend.Codec, error) {
		kind, err := backend.ParseKind(*value)
		if err != nil {
			return nil, err
		}
		return backend.For(kind)
	}
}

// dbFlag registers --db on cmd, defaulting to DB_PATH like the API server.
func dbFlag(cmd *cobra.Command) *string {
	def := os.Getenv("DB_PATH")
	if def == "" {
		def = "./data/relevance-workbench.db"
	}
	return cmd.Flags().String("db", def, "path to the SQLite database")
}

// readSource reads path, or stdin when path is empty or "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
