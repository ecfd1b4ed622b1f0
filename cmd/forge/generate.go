package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pychain/forge/app"
	"github.com/pychain/forge/domain/catalog"
	"github.com/pychain/forge/domain/contract"
	"github.com/pychain/forge/domain/rules"
	"github.com/pychain/forge/domain/selection"
)

var (
	genArchetype string
	genParams    []string
	genModules   []string
	genTimestamp string
	genQuiet     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate contract source on stdout",
	Long: `Run the generation pipeline once and print the source to stdout.
Diagnostics go to stderr. Module flags are applied through the toggle
contract, so selecting two conflicting modules keeps the last one.

Examples:
  forge generate --archetype token --param name=MyToken --param symbol=MTK --module mintable --module ownable
  forge generate --archetype vault --param name=Treasury --module reentrancyGuard
  forge generate --archetype token --param name=T --param symbol=T --timestamp 2024-01-15T12:00:00Z`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genArchetype, "archetype", "", "archetype id (token, nft, vault)")
	generateCmd.Flags().StringArrayVar(&genParams, "param", nil, "parameter as name=value (repeatable)")
	generateCmd.Flags().StringArrayVar(&genModules, "module", nil, "module id to select (repeatable, order matters)")
	generateCmd.Flags().StringVar(&genTimestamp, "timestamp", "", "RFC3339 generation timestamp (default: now)")
	generateCmd.Flags().BoolVar(&genQuiet, "quiet", false, "suppress diagnostics on stderr")
	generateCmd.MarkFlagRequired("archetype")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	params := make(map[string]string, len(genParams))
	for _, p := range genParams {
		name, value, ok := strings.Cut(p, "=")
		if !ok {
			return fmt.Errorf("invalid --param %q, expected name=value", p)
		}
		params[name] = value
	}

	now := time.Now()
	if genTimestamp != "" {
		t, err := time.Parse(time.RFC3339, genTimestamp)
		if err != nil {
			return fmt.Errorf("invalid --timestamp: %w", err)
		}
		now = t
	}

	reg := catalog.Builtin()

	// Apply modules through the toggle contract: last-write-wins on conflicts.
	var selected []string
	for _, id := range genModules {
		selected = selection.Toggle(reg, selected, id)
	}

	source, diags := app.GenerateAt(reg, contract.Spec{
		ArchetypeID: genArchetype,
		Parameters:  params,
		Modules:     selected,
	}, now)

	if !genQuiet {
		for _, d := range diags {
			fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", d.Severity, d.RuleID, d.Message)
			if d.Suggestion != "" {
				fmt.Fprintf(os.Stderr, "        %s\n", d.Suggestion)
			}
		}
	}

	if source == "" {
		return fmt.Errorf("nothing to generate: check --archetype and the name parameter")
	}
	fmt.Print(source)

	for _, d := range diags {
		if d.Severity == rules.SeverityCritical {
			os.Exit(2)
		}
	}
	return nil
}
