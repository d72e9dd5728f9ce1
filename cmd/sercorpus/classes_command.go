package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newClassesCommand(ctx *commandContext) *cobra.Command {
	var flags corpusFlags
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "classes <corpus>",
		Short: "Show the class legend for an emotion map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ctx.openCorpus(cmd, args[0], flags, false)
			if err != nil {
				return err
			}
			defer c.Close()

			legend := c.Classes().Sorted()
			if jsonOutput {
				return writeJSON(cmd, legend)
			}
			rows := make([][]string, 0, len(legend))
			for _, class := range legend {
				rows = append(rows, []string{strconv.Itoa(class.Label), class.Name})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"Label", "Classes"}, rows, []columnAlignment{alignRight, alignLeft}))
			return nil
		},
	}

	flags.bindEmotions(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the legend as JSON")
	return cmd
}
