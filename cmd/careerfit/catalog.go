package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"careerfit-workers/internal/careerfit"
)

type catalogEntry struct {
	Name           string   `json:"name" yaml:"name"`
	Growth         string   `json:"growth" yaml:"growth"`
	AvgSalary      int      `json:"avgSalary" yaml:"avgSalary"`
	RequiredSkills []string `json:"requiredSkills" yaml:"requiredSkills"`
	Industries     []string `json:"industries" yaml:"industries"`
	Description    string   `json:"description" yaml:"description"`
}

func newCatalogCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the career archetypes users are scored against",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := careerfit.DefaultCatalog()
			entries := make([]catalogEntry, 0, len(catalog))
			for _, c := range catalog {
				entries = append(entries, catalogEntry{
					Name:           c.Name,
					Growth:         string(c.Growth),
					AvgSalary:      c.AvgSalary,
					RequiredSkills: c.RequiredSkills,
					Industries:     c.Industries,
					Description:    c.Description,
				})
			}

			out := cmd.OutOrStdout()
			switch output {
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(entries)
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			case "names":
				for _, e := range entries {
					fmt.Fprintf(out, "%s\t%s\t%d\n", e.Name, e.Growth, e.AvgSalary)
				}
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want yaml, json or names)", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml, json or names")
	return cmd
}
