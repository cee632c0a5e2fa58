package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"relevance-workbench/internal/diff"
	"relevance-workbench/internal/storage"
)

// errChanged is returned under --exit-code when the inputs differ.
var errChanged = errors.New("inputs differ")

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Decide whether a revision needs a new version",
	}
	cmd.AddCommand(newDiffQueryCmd(), newDiffRulesetCmd())
	return cmd
}

func newDiffQueryCmd() *cobra.Command {
	var exitCode bool
	cmd := &cobra.Command{
		Use:   "query <baseline> <candidate>",
		Short: "Compare two query templates structurally",
		Long: `Compare two query template files the way a run does. Whitespace and key order
are ignored for JSON backends; Solr parameters are compared by name and value.`,
		Args: cobra.ExactArgs(2),
	}
	resolveCodec := backendFlag(cmd)
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "fail when the templates differ")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		codec, err := resolveCodec()
		if err != nil {
			return err
		}
		baseline, err := readSource(cmd, args[0])
		if err != nil {
			return err
		}
		candidate, err := readSource(cmd, args[1])
		if err != nil {
			return err
		}
		return report(cmd.OutOrStdout(), diff.QueryTemplateChanged(codec, candidate, baseline), exitCode)
	}
	return cmd
}

func newDiffRulesetCmd() *cobra.Command {
	var exitCode bool
	cmd := &cobra.Command{
		Use:   "ruleset <baseline.yaml> <candidate.yaml>",
		Short: "Compare two ruleset documents",
		Long: `Compare two YAML ruleset documents holding rules and conditions. Order of rules
and conditions is significant.`,
		Args: cobra.ExactArgs(2),
	}
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "fail when the rulesets differ")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		baseline, err := readRuleset(args[0])
		if err != nil {
			return err
		}
		candidate, err := readRuleset(args[1])
		if err != nil {
			return err
		}
		return report(cmd.OutOrStdout(), diff.RulesetChanged(candidate, baseline), exitCode)
	}
	return cmd
}

// readRuleset decodes a YAML ruleset document. Unknown fields are rejected so
// a typo is not silently read as an empty ruleset.
func readRuleset(path string) (*storage.RulesetValue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var value storage.RulesetValue
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&value); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &value, nil
}

func report(w io.Writer, changed, exitCode bool) error {
	if !changed {
		fmt.Fprintln(w, "unchanged")
		return nil
	}
	fmt.Fprintln(w, "changed")
	if exitCode {
		return errChanged
	}
	return nil
}
