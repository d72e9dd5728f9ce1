package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"sercorpus/internal/corpus"
	"sercorpus/internal/corpus/meld"
	"sercorpus/internal/transcode"
)

func newTranscodeCommand(ctx *commandContext) *cobra.Command {
	var flags corpusFlags
	var split string
	var force bool

	cmd := &cobra.Command{
		Use:   "transcode",
		Short: "Extract wav audio from MELD clips",
		Long: `Convert every MELD clip to mono PCM wav next to the original.

Clips without an audio stream and clips ffmpeg cannot read are listed in a
failure log inside the split's clip directory; the batch carries on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			splits, err := selectSplits(split)
			if err != nil {
				return err
			}
			root, err := resolveRoot(cfg, meld.Name, flags.root)
			if err != nil {
				return err
			}
			if root == "" {
				return fmt.Errorf("no root for MELD: pass --root, set [meld] root in the config, or export MELD_ROOT")
			}

			transcodeOpts, closeStore, err := ctx.transcodeOptions(cfg)
			if err != nil {
				return err
			}
			if closeStore != nil {
				defer closeStore()
			}

			c := meld.New(root,
				corpus.WithLogger(logger),
				corpus.WithTranscode(transcodeSettings(cfg, force), false, transcodeOpts...),
			)
			reports, err := c.Transcode(cmd.Context(), splits...)
			printTranscodeReports(cmd, reports)
			return err
		},
	}

	flags.bindRoot(cmd)
	cmd.Flags().StringVar(&split, "split", "all", "Split to convert: train, dev, test, or all")
	cmd.Flags().BoolVar(&force, "force", false, "Convert clips even when the state store marks them current")
	return cmd
}

func selectSplits(name string) ([]meld.Split, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "all") {
		return meld.Splits, nil
	}
	split, ok := meld.SplitByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown split %q (want train, dev, test, or all)", name)
	}
	return []meld.Split{split}, nil
}

func printTranscodeReports(cmd *cobra.Command, reports []transcode.Report) {
	out := cmd.OutOrStdout()
	if len(reports) == 0 {
		fmt.Fprintln(out, "No clip directories found")
		return
	}
	rows := make([][]string, 0, len(reports))
	for _, report := range reports {
		rows = append(rows, []string{
			report.Root,
			strconv.Itoa(report.Discovered),
			strconv.Itoa(report.Converted),
			strconv.Itoa(report.Skipped),
			strconv.Itoa(len(report.Failures)),
			humanize.Bytes(uint64(report.Bytes)),
			report.Elapsed.Round(time.Millisecond).String(),
		})
	}
	fmt.Fprintln(out, renderTable(out,
		[]string{"Directory", "Clips", "Converted", "Skipped", "Failed", "Written", "Elapsed"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
	))
	for _, report := range reports {
		if report.FailureLog != "" {
			fmt.Fprintf(out, "%d failed clips listed in %s\n", len(report.Failures), report.FailureLog)
		}
	}
}
