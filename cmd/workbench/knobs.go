package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"relevance-workbench/internal/backend"
	"relevance-workbench/internal/knobs"
)

// extraction mirrors the body of POST /api/knobs.
type extraction struct {
	Valid bool      `json:"valid"`
	Knobs knobs.Set `json:"knobs"`
}

func extract(codec backend.Codec, query string, old map[string]float64, defaultValue float64) extraction {
	return extraction{
		Valid: codec.Valid(query),
		Knobs: knobs.Reconcile(old, codec.ExtractKnobVars(query), defaultValue),
	}
}

func newKnobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knobs",
		Short: "Extract tunable knobs from query templates",
	}
	cmd.AddCommand(newKnobsExtractCmd(), newKnobsWatchCmd())
	return cmd
}

func newKnobsExtractCmd() *cobra.Command {
	var (
		valuesPath   string
		defaultValue float64
	)
	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Print the knobs referenced by a query template",
		Long: `Print the knobs referenced by a query template as JSON. The template is read from
file, or from stdin when file is omitted or "-". Values from --values are carried over
for knobs that are still referenced; new knobs get --default.`,
		Args: cobra.MaximumNArgs(1),
	}
	resolveCodec := backendFlag(cmd)
	cmd.Flags().StringVar(&valuesPath, "values", "", "JSON object of existing knob values")
	cmd.Flags().Float64Var(&defaultValue, "default", knobs.DefaultValue, "value for newly referenced knobs")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		codec, err := resolveCodec()
		if err != nil {
			return err
		}
		old, err := readValues(valuesPath, defaultValue)
		if err != nil {
			return err
		}
		var path string
		if len(args) == 1 {
			path = args[0]
		}
		query, err := readSource(cmd, path)
		if err != nil {
			return err
		}
		return writeExtraction(cmd.OutOrStdout(), extract(codec, query, old, defaultValue))
	}
	return cmd
}

func newKnobsWatchCmd() *cobra.Command {
	var defaultValue float64
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-extract knobs each time a query template file is saved",
		Long: `Watch a query template file and print one JSON line per save. Knob values
carry over between saves the same way they do in the editor.`,
		Args: cobra.ExactArgs(1),
	}
	resolveCodec := backendFlag(cmd)
	cmd.Flags().Float64Var(&defaultValue, "default", knobs.DefaultValue, "value for newly referenced knobs")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		codec, err := resolveCodec()
		if err != nil {
			return err
		}
		return watchTemplate(cmd.Context(), args[0], codec, defaultValue, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}
	return cmd
}

// watchTemplate prints an extraction for path now and after every change until
// ctx ends. The parent directory is watched so editors that save by rename are
// still followed.
func watchTemplate(ctx context.Context, path string, codec backend.Codec, defaultValue float64, out, errOut io.Writer) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	var current knobs.Set
	emit := func() error {
		data, err := os.ReadFile(abs)
		if err != nil {
			return err
		}
		ex := extract(codec, string(data), current.Map(), defaultValue)
		current = ex.Knobs
		return writeExtraction(out, ex)
	}
	if err := emit(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := emit(); err != nil {
				// The file may be mid-rename; the next event retries.
				fmt.Fprintf(errOut, "re-extract %s: %v\n", path, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(errOut, "watch %s: %v\n", path, err)
		}
	}
}

func readValues(path string, defaultValue float64) (map[string]float64, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return knobs.Coerce(raw, defaultValue), nil
}

func writeExtraction(w io.Writer, ex extraction) error {
	if ex.Knobs == nil {
		ex.Knobs = knobs.Set{}
	}
	return json.NewEncoder(w).Encode(ex)
}
