// Command pegrun loads the arithmetic grammar built in
// internal/arith, runs it over a file or stdin, and prints the
// resulting parse tree, diagnostic, or computed value.
//
// Grounded on the teacher's bare flag-based CLI in
// go/cmd/langlang/main.go, and on the dhamidi-sai retrieval pack's
// javalyzer CLI (cmd/javalyzer/main.go) for the RunE/flag wiring
// style — the teacher's own CLI uses the stdlib flag package, but
// this module follows the ecosystem-idiomatic cobra pattern observed
// elsewhere in the pack (see SPEC_FULL.md §9).
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/theanuradha/parboiled"
	"github.com/theanuradha/parboiled/internal/arith"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pegrun",
		Short: "Run the arithmetic sample grammar over an expression",
	}
	root.AddCommand(newParseCmd())
	root.AddCommand(newTreeCmd())
	return root
}

func readSource(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func newParseCmd() *cobra.Command {
	var showValues bool
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an expression and print its tree, value and diagnostic",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args)
			if err != nil {
				return err
			}
			start, err := arith.Build()
			if err != nil {
				return fmt.Errorf("build grammar: %w", err)
			}
			res, diag, err := parboiled.Parse(start, src)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			if diag != nil {
				fmt.Fprintln(cmd.OutOrStdout(), diag)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Tree.Highlight(res.Input))
			if showValues && len(res.Values) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "= %v\n", res.Values[len(res.Values)-1])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showValues, "values", true, "print the computed value alongside the tree")
	return cmd
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print only the plain (uncolored) parse tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args)
			if err != nil {
				return err
			}
			start, err := arith.Build()
			if err != nil {
				return fmt.Errorf("build grammar: %w", err)
			}
			res, diag, err := parboiled.Parse(start, src)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			if diag != nil {
				fmt.Fprintln(cmd.OutOrStdout(), diag)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Tree.Pretty(res.Input))
			return nil
		},
	}
	return cmd
}
