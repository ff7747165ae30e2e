package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tafel/internal/collect"
	"tafel/internal/logging"
	"tafel/internal/pipeline"
	"tafel/internal/state"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest new scans from the source directory",
		Long: `Scans the source directory for new images, converts each one to a web
asset, prompts for metadata, writes the work document, and archives the
original. Already-seen images are skipped by content hash.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if dryRun {
				cfg.Run.DryRun = true
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			collector := collect.NewTerminal(os.Stdin, cmd.OutOrStdout())
			runner, err := pipeline.New(cfg, state.NewStore(cfg.Paths.StateDir), collector, logger)
			if err != nil {
				return err
			}

			summary, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}
			printSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Propose the batch without writing anything")
	return cmd
}

func printSummary(cmd *cobra.Command, summary *pipeline.Summary) {
	out := cmd.OutOrStdout()
	if len(summary.Results) == 0 {
		fmt.Fprintln(out, "Nothing to ingest.")
		return
	}

	rows := make([][]string, 0, len(summary.Results))
	for _, res := range summary.Results {
		dims := ""
		if res.Width > 0 && res.Height > 0 {
			dims = fmt.Sprintf("%dx%d", res.Width, res.Height)
		}
		rows = append(rows, []string{res.Title, res.Slug, dims, res.DocumentPath})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Title", "Slug", "Size", "Document"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	))

	if summary.DryRun {
		fmt.Fprintf(out, "Dry run: %d work(s) proposed, nothing written.\n", len(summary.Results))
		return
	}
	fmt.Fprintf(out, "Ingested %d work(s).\n", len(summary.Results))
}
