package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"sercorpus/internal/corpus"
	"sercorpus/internal/emotion"
)

func newFilesCommand(ctx *commandContext) *cobra.Command {
	var flags corpusFlags
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "files <corpus>",
		Short: "Enumerate a corpus into speaker buckets",
		Long: `Walk the corpus and group its labelled audio files by speaker.

The default output is a table with one row per speaker and one column per
class. With --json the full mapping is printed:

  {"speakers":[{"id":"1F","samples":[{"path":"...","label":3}]}]}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ctx.openCorpus(cmd, args[0], flags, true)
			if err != nil {
				return err
			}
			defer c.Close()

			mapping, err := c.Files(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, mapping)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderMapping(out, mapping, c.Classes()))
			return nil
		},
	}

	flags.bindRoot(cmd)
	flags.bindEmotions(cmd)
	cmd.Flags().BoolVar(&flags.includeScripted, "include-scripted", false, "IEMOCAP: also read scripted conversations")
	cmd.Flags().StringVar(&flags.speakerScheme, "speaker-scheme", "", "MELD: cast or sequential")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the full mapping as JSON")
	return cmd
}

func renderMapping(out io.Writer, mapping *corpus.Mapping, legend emotion.Legend) string {
	classes := legend.Sorted()
	headers := []string{"Speaker", "Samples"}
	aligns := []columnAlignment{alignLeft, alignRight}
	for _, class := range classes {
		headers = append(headers, class.Name)
		aligns = append(aligns, alignRight)
	}

	rows := make([][]string, 0, mapping.Len())
	totals := make([]int, len(classes))
	for _, bucket := range mapping.All() {
		counts := make(map[int]int, len(classes))
		for _, sample := range bucket.Samples {
			counts[sample.Label]++
		}
		row := []string{bucket.Speaker, humanize.Comma(int64(len(bucket.Samples)))}
		for i, class := range classes {
			row = append(row, strconv.Itoa(counts[class.Label]))
			totals[i] += counts[class.Label]
		}
		rows = append(rows, row)
	}

	total := []string{"total", humanize.Comma(int64(mapping.Total()))}
	for _, n := range totals {
		total = append(total, humanize.Comma(int64(n)))
	}
	return renderTableSpec(out, tableSpec{Headers: headers, Aligns: aligns, Rows: rows, Footer: total})
}
