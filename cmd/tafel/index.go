package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"tafel/internal/index"
	"tafel/internal/state"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Regenerate the index section of the repository README",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			st, err := state.NewStore(cfg.Paths.StateDir).Load()
			if err != nil {
				return err
			}

			entries := make([]index.Entry, 0, len(st.Works))
			for _, w := range st.Works {
				entries = append(entries, index.Entry{Title: w.Title, DocumentPath: w.DocumentPath})
			}

			readme := filepath.Join(cfg.Paths.RepoDir, "README.md")
			preserved, err := index.Update(readme, entries)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Indexed %d work(s) in %s\n", len(entries), readme)
			if !preserved {
				fmt.Fprintln(out, "Note: index markers were missing; the file was rebuilt and surrounding content discarded.")
			}
			return nil
		},
	}
}
