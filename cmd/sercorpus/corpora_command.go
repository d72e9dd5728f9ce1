package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sercorpus/internal/registry"
)

func newCorporaCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "corpora",
		Short: "List registered corpora",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(registry.Names()))
			for _, name := range registry.Names() {
				entry, err := registry.Lookup(name)
				if err != nil {
					return err
				}
				root := "-"
				if section, ok := cfg.Corpus(name); ok && section.Root != "" {
					root = section.Root
				}
				rows = append(rows, []string{entry.Name, root, entry.Defaults.String()})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"Corpus", "Root", "Default emotions"}, rows, nil))
			return nil
		},
	}
}
