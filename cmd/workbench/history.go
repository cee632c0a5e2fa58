package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"relevance-workbench/internal/storage"
	"relevance-workbench/internal/versions"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print version history",
	}
	cmd.AddCommand(newHistoryTemplatesCmd())
	return cmd
}

func newHistoryTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates <projectID>",
		Short: "Print a project's query template version forest",
		Args:  cobra.ExactArgs(1),
	}
	dbPath := dbFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		db, err := storage.New(*dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer func() {
			_ = db.Close()
		}()

		items, err := storage.NewQueryTemplateRepo(db).ListByProject(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printTemplateForest(cmd.OutOrStdout(), items)
		return nil
	}
	return cmd
}

// printTemplateForest writes one line per version, indented under its parent.
// The latest version is marked with an asterisk.
func printTemplateForest(w io.Writer, items []storage.QueryTemplate) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no query templates")
		return
	}
	latest, _ := versions.Latest(items)
	var walk func(nodes []*versions.Node[storage.QueryTemplate], depth int)
	walk = func(nodes []*versions.Node[storage.QueryTemplate], depth int) {
		for _, n := range nodes {
			mark := " "
			if n.Item.ID == latest.ID {
				mark = "*"
			}
			line := fmt.Sprintf("%s %s%s  %s", mark, strings.Repeat("  ", depth), n.Item.ID, n.Item.CreatedAt.UTC().Format(time.DateTime))
			if desc := strings.Join(strings.Fields(n.Item.Description), " "); desc != "" {
				line += "  " + desc
			}
			fmt.Fprintln(w, line)
			walk(n.Children, depth+1)
		}
	}
	walk(versions.BuildForest(items), 0)
}
