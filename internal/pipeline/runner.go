package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"tafel/internal/collect"
	"tafel/internal/config"
	"tafel/internal/convert"
	"tafel/internal/gitops"
	"tafel/internal/index"
	"tafel/internal/logging"
	"tafel/internal/ocr"
	"tafel/internal/scan"
	"tafel/internal/sitemap"
	"tafel/internal/state"
)

// ImageConverter is the conversion capability the runner consumes.
type ImageConverter interface {
	Convert(ctx context.Context, src, dst string) (width, height int, err error)
}

// TextRecognizer is the recognition capability the runner consumes.
type TextRecognizer interface {
	Recognize(ctx context.Context, path, lang string) ocr.Result
}

// Runner drives one batch: discovery, the per-item state machine, and the
// end-of-run persistence and publication steps. It owns all mutable batch
// state; nothing is ambient.
type Runner struct {
	cfg        *config.Config
	store      *state.Store
	converter  ImageConverter
	recognizer TextRecognizer
	metadata   collect.MetadataSource
	git        *gitops.Client
	logger     *slog.Logger
	now        func() time.Time
}

// New constructs a runner with real adapters built from configuration.
func New(cfg *config.Config, store *state.Store, metadata collect.MetadataSource, logger *slog.Logger) (*Runner, error) {
	if cfg == nil || store == nil || metadata == nil {
		return nil, errors.New("pipeline requires config, store, and metadata source")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:        cfg,
		store:      store,
		converter:  convert.New(cfg.Convert),
		recognizer: ocr.New(cfg.OCR.Binary),
		metadata:   metadata,
		git:        gitops.New(cfg.Paths.RepoDir),
		logger:     logging.NewComponentLogger(logger, "pipeline"),
		now:        time.Now,
	}, nil
}

// WithConverter overrides the conversion adapter (for testing).
func (r *Runner) WithConverter(c ImageConverter) { r.converter = c }

// WithRecognizer overrides the recognition adapter (for testing).
func (r *Runner) WithRecognizer(rec TextRecognizer) { r.recognizer = rec }

// WithGit overrides the git client (for testing).
func (r *Runner) WithGit(client *gitops.Client) { r.git = client }

// WithClock overrides the time source (for testing).
func (r *Runner) WithClock(now func() time.Time) { r.now = now }

// Run executes one batch. Configuration and path problems abort before any
// item is touched; a dry run performs discovery and metadata capture but
// leaves the filesystem and durable state untouched.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if err := r.preflight(); err != nil {
		return nil, err
	}

	dryRun := r.cfg.Run.DryRun
	runID := uuid.NewString()
	logger := r.logger.With(logging.String(logging.FieldRunID, runID))

	if !dryRun {
		if err := r.cfg.EnsureDirectories(); err != nil {
			return nil, err
		}
		if err := r.store.Lock(); err != nil {
			return nil, err
		}
		defer func() {
			if err := r.store.Unlock(); err != nil {
				logger.Warn("failed to release ingest lock", logging.Args(logging.Error(err))...)
			}
		}()
	}

	st, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	sources, err := scan.Find(r.cfg.Paths.SourceDir, st.Seen)
	if err != nil {
		return nil, err
	}

	summary := &Summary{RunID: runID, DryRun: dryRun}
	if len(sources) == 0 {
		logger.Info("no new images in source directory")
		return summary, nil
	}
	logger.Info("discovered new images", logging.Args(logging.Int("count", len(sources)))...)

	for _, source := range sources {
		item := &Item{Source: source, Status: StatusDiscovered}
		result, err := r.processItem(ctx, logger, st, item, dryRun)
		if err != nil {
			return nil, fmt.Errorf("process %s: %w", source.Name, err)
		}
		summary.Results = append(summary.Results, result)
	}

	if dryRun {
		logger.Info("dry run complete; nothing persisted",
			logging.Args(logging.Int("items", len(summary.Results)))...)
		return summary, nil
	}

	if err := r.finishRun(ctx, logger, st, len(summary.Results)); err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *Runner) preflight() error {
	if !dirExists(r.cfg.Paths.SourceDir) {
		return config.Usagef("source directory not found: %s", r.cfg.Paths.SourceDir)
	}
	if !dirExists(r.cfg.Paths.RepoDir) {
		return config.Usagef("repository directory not found: %s", r.cfg.Paths.RepoDir)
	}
	if r.cfg.Publish.AutoCommit && !r.cfg.Run.DryRun && !gitops.IsRepo(r.cfg.Paths.RepoDir) {
		return config.Usagef("repository is not under version control: %s (disable publish.auto_commit or run git init)", r.cfg.Paths.RepoDir)
	}
	return nil
}

// finishRun performs the end-of-run side effects: index regeneration, state
// and manifest persistence, sitemap, and best-effort commit/push.
func (r *Runner) finishRun(ctx context.Context, logger *slog.Logger, st *state.State, ingested int) error {
	entries := make([]index.Entry, 0, len(st.Works))
	for _, w := range st.Works {
		entries = append(entries, index.Entry{Title: w.Title, DocumentPath: w.DocumentPath})
	}
	readme := filepath.Join(r.cfg.Paths.RepoDir, "README.md")
	preserved, err := index.Update(readme, entries)
	if err != nil {
		return err
	}
	if !preserved {
		logger.Warn("index document rebuilt from scratch; content outside the markers was not preserved",
			logging.Args(logging.String("path", readme))...)
	}

	if err := r.store.Save(st); err != nil {
		return err
	}
	logger.Info("state persisted", logging.Args(
		logging.Int("seen_hashes", len(st.SeenHashes)),
		logging.Int("works", len(st.Works)),
	)...)

	if r.cfg.Publish.BaseURL != "" {
		docs := make([]string, 0, len(st.Works))
		for _, w := range st.Works {
			docs = append(docs, w.DocumentPath)
		}
		if err := sitemap.Write(r.cfg.Paths.RepoDir, r.cfg.Publish.BaseURL, docs, r.now()); err != nil {
			return err
		}
	}

	if r.cfg.Publish.AutoCommit {
		r.publish(ctx, logger, ingested)
	}

	if r.cfg.Publish.Ping && r.cfg.Publish.BaseURL != "" {
		sitemap.Ping(ctx, r.cfg.Publish.BaseURL)
	}
	return nil
}

// publish commits and pushes. Failures are logged, not fatal: publication is
// best-effort, but the operator hears about problems.
func (r *Runner) publish(ctx context.Context, logger *slog.Logger, ingested int) {
	message := fmt.Sprintf("ingest: %d work(s) (%s)", ingested, r.now().Format("2006-01-02"))
	committed, err := r.git.CommitAll(ctx, message)
	if err != nil {
		logger.Warn("auto-commit failed", logging.Args(logging.Error(err))...)
		return
	}
	if !committed {
		return
	}
	logger.Info("committed", logging.Args(logging.String("message", message))...)
	if r.cfg.Publish.AutoPush {
		if err := r.git.Push(ctx); err != nil {
			logger.Warn("auto-push failed", logging.Args(logging.Error(err))...)
		}
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
