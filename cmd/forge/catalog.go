package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pychain/forge/domain/catalog"
)

var catalogArchetype string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the archetype and module catalog",
}

var catalogArchetypesCmd = &cobra.Command{
	Use:   "archetypes",
	Short: "List base archetypes",
	Run: func(cmd *cobra.Command, args []string) {
		for _, a := range catalog.Builtin().Archetypes() {
			var params []string
			for _, p := range a.Parameters {
				if p.Required {
					params = append(params, p.Name+"*")
				} else {
					params = append(params, p.Name)
				}
			}
			fmt.Printf("%-8s %-16s params: %s\n", a.ID, a.DisplayName, strings.Join(params, ", "))
		}
	},
}

var catalogModulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List feature modules",
	Run: func(cmd *cobra.Command, args []string) {
		reg := catalog.Builtin()
		mods := reg.Modules()
		if catalogArchetype != "" {
			mods = reg.ListCompatible(catalogArchetype)
		}
		for _, m := range mods {
			line := fmt.Sprintf("%-16s %-18s %s", m.ID, m.DisplayName, m.Category)
			if len(m.Conflicts) > 0 {
				line += "  conflicts: " + strings.Join(m.Conflicts, ", ")
			}
			fmt.Println(line)
		}
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogArchetypesCmd)
	catalogCmd.AddCommand(catalogModulesCmd)

	catalogModulesCmd.Flags().StringVar(&catalogArchetype, "archetype", "", "only modules compatible with this archetype")
}
