package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"tafel/internal/config"
	"tafel/internal/state"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the ingest record and flag inconsistencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			st, err := state.NewStore(cfg.Paths.StateDir).Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Works ingested: %d\n", len(st.Works))
			fmt.Fprintf(out, "Content hashes seen: %d\n", len(st.SeenHashes))

			if len(st.Works) > 0 {
				works := st.Works
				if !verbose && len(works) > 10 {
					fmt.Fprintf(out, "Most recent %d:\n", 10)
					works = works[len(works)-10:]
				}
				rows := make([][]string, 0, len(works))
				for _, w := range works {
					rows = append(rows, []string{w.Title, fmt.Sprintf("%d", w.Year), w.DocumentPath})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Title", "Year", "Document"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft},
				))
			}

			reportOrphans(out, cfg, st)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List every work, not just the most recent")
	return cmd
}

// reportOrphans cross-checks the repository tree against the ingest record:
// documents and assets nobody recorded, and records whose files are gone.
// Findings are advisory; the command never fails because of them.
func reportOrphans(out io.Writer, cfg *config.Config, st *state.State) {
	recordedDocs := make(map[string]bool, len(st.Works))
	recordedImages := make(map[string]bool, len(st.Works))
	for _, w := range st.Works {
		recordedDocs[w.DocumentPath] = true
		recordedImages[w.ImagePath] = true
	}

	var findings []string

	for _, w := range st.Works {
		if !fileExists(filepath.Join(cfg.Paths.RepoDir, w.DocumentPath)) {
			findings = append(findings, fmt.Sprintf("recorded document missing: %s", w.DocumentPath))
		}
		if !fileExists(filepath.Join(cfg.Paths.RepoDir, w.ImagePath)) {
			findings = append(findings, fmt.Sprintf("recorded asset missing: %s", w.ImagePath))
		}
	}

	findings = append(findings, unrecordedFiles(cfg.Paths.RepoDir, "works", recordedDocs)...)
	findings = append(findings, unrecordedFiles(cfg.Paths.RepoDir, "images", recordedImages)...)

	if len(findings) == 0 {
		fmt.Fprintln(out, "Repository and ingest record agree.")
		return
	}
	sort.Strings(findings)
	fmt.Fprintf(out, "%d inconsistency(ies):\n", len(findings))
	for _, f := range findings {
		fmt.Fprintf(out, "  - %s\n", f)
	}
}

func unrecordedFiles(repoDir, subdir string, recorded map[string]bool) []string {
	entries, err := os.ReadDir(filepath.Join(repoDir, subdir))
	if err != nil {
		return nil
	}
	var findings []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		rel := subdir + "/" + entry.Name()
		if !recorded[rel] {
			findings = append(findings, fmt.Sprintf("file not in ingest record: %s", rel))
		}
	}
	return findings
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
