package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tafel/internal/collect"
	"tafel/internal/fileutil"
	"tafel/internal/logging"
	"tafel/internal/ocr"
	"tafel/internal/render"
	"tafel/internal/slug"
	"tafel/internal/state"

	"tafel/internal/config"
)

// processItem advances one item through the full status sequence. Metadata
// capture always runs, even in dry-run: the human is not short-circuited.
func (r *Runner) processItem(ctx context.Context, logger *slog.Logger, st *state.State, item *Item, dryRun bool) (ItemResult, error) {
	itemLogger := logger.With(logging.String(logging.FieldSource, item.Source.Name))

	if err := r.convertItem(ctx, itemLogger, item, dryRun); err != nil {
		return ItemResult{}, err
	}
	defer r.cleanupTemp(item)

	r.recognizeItem(ctx, itemLogger, item, dryRun)

	if err := r.describeItem(ctx, itemLogger, item); err != nil {
		return ItemResult{}, err
	}

	r.slotItem(itemLogger, item)

	if err := r.writeItem(itemLogger, item, dryRun); err != nil {
		return ItemResult{}, err
	}

	if err := r.archiveItem(itemLogger, item, dryRun); err != nil {
		return ItemResult{}, err
	}

	// The in-memory batch state advances regardless of dry-run; persistence
	// is what dry-run withholds.
	st.Record(item.Record)

	return ItemResult{
		Title:        item.Record.Title,
		Slug:         item.Paths.Slug,
		Width:        item.Width,
		Height:       item.Height,
		ImagePath:    item.Record.ImagePath,
		DocumentPath: item.Record.DocumentPath,
	}, nil
}

func (r *Runner) convertItem(ctx context.Context, logger *slog.Logger, item *Item, dryRun bool) error {
	if dryRun {
		item.advance(logger, StatusConverted)
		return nil
	}

	stem := strings.TrimSuffix(item.Source.Name, filepath.Ext(item.Source.Name))
	item.TempAsset = filepath.Join(r.store.Dir(), "_tmp_"+stem+"."+r.cfg.ImageExtension())
	if err := os.Remove(item.TempAsset); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear stale temp asset: %w", err)
	}

	width, height, err := r.converter.Convert(ctx, item.Source.Path, item.TempAsset)
	if err != nil {
		return err
	}
	item.Width = width
	item.Height = height
	logger.Info("converted", logging.Args(
		logging.Int("width", width),
		logging.Int("height", height),
		logging.String("format", r.cfg.Convert.Format),
	)...)
	item.advance(logger, StatusConverted)
	return nil
}

func (r *Runner) recognizeItem(ctx context.Context, logger *slog.Logger, item *Item, dryRun bool) {
	if dryRun || !r.cfg.OCR.Enabled {
		item.Suggestion = ocr.Result{Status: ocr.StatusOK}
		item.advance(logger, StatusRecognized)
		return
	}

	item.Suggestion = r.recognizer.Recognize(ctx, item.TempAsset, r.cfg.OCR.Language)
	switch item.Suggestion.Status {
	case ocr.StatusToolMissing:
		logger.Debug("recognizer unavailable; continuing with empty suggestion")
	case ocr.StatusToolError:
		logger.Debug("recognition failed; continuing with empty suggestion")
	}
	item.advance(logger, StatusRecognized)
}

func (r *Runner) describeItem(ctx context.Context, logger *slog.Logger, item *Item) error {
	fields, err := r.metadata.Collect(ctx, collect.Request{
		SourceFilename: item.Source.Name,
		DefaultTitle:   item.Source.DefaultTitle,
		DefaultYear:    r.now().Year(),
		DefaultLicense: r.cfg.Metadata.DefaultLicense,
		Creator:        r.cfg.Metadata.Creator,
		Language:       r.cfg.Metadata.Language,
		Suggestion:     item.Suggestion.Text,
	})
	if err != nil {
		return fmt.Errorf("collect metadata: %w", err)
	}
	item.Fields = fields
	item.advance(logger, StatusDescribed)
	return nil
}

func (r *Runner) slotItem(logger *slog.Logger, item *Item) {
	seed := slug.Seed(item.Fields.Title, item.Fields.Year)
	item.Paths = slug.Resolve(r.cfg.Paths.RepoDir, seed, r.cfg.ImageExtension())
	item.Record = state.WorkRecord{
		Title:          item.Fields.Title,
		Year:           item.Fields.Year,
		Creator:        r.cfg.Metadata.Creator,
		License:        item.Fields.License,
		Language:       r.cfg.Metadata.Language,
		Keywords:       item.Fields.Keywords,
		Description:    item.Fields.Description,
		Transcription:  item.Fields.Transcription,
		SourceFilename: item.Source.Name,
		ImagePath:      item.Paths.ImagePath,
		DocumentPath:   item.Paths.DocumentPath,
		ContentHash:    item.Source.Hash,
	}
	logger.Info("slotted", logging.Args(logging.String(logging.FieldSlug, item.Paths.Slug))...)
	item.advance(logger, StatusSlotted)
}

func (r *Runner) writeItem(logger *slog.Logger, item *Item, dryRun bool) error {
	if dryRun {
		logger.Info("dry run: would write asset and document", logging.Args(
			logging.String("image", item.Paths.ImagePath),
			logging.String("document", item.Paths.DocumentPath),
		)...)
		item.advance(logger, StatusWritten)
		return nil
	}

	imageDst := filepath.Join(r.cfg.Paths.RepoDir, item.Paths.ImagePath)
	if err := fileutil.MoveFile(item.TempAsset, imageDst); err != nil {
		return fmt.Errorf("place web asset: %w", err)
	}
	item.TempAsset = ""

	doc, err := render.Document(item.Record, r.now())
	if err != nil {
		return err
	}
	docDst := filepath.Join(r.cfg.Paths.RepoDir, item.Paths.DocumentPath)
	if err := os.WriteFile(docDst, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	logger.Info("written", logging.Args(
		logging.String("image", item.Paths.ImagePath),
		logging.String("document", item.Paths.DocumentPath),
	)...)
	item.advance(logger, StatusWritten)
	return nil
}

// archiveItem moves the original out of the scan directory so future runs
// cannot rediscover it. In dry-run the source stays put: dry-run never
// persists hashes either, so the item is rediscovered next run by design.
func (r *Runner) archiveItem(logger *slog.Logger, item *Item, dryRun bool) error {
	if dryRun {
		item.advance(logger, StatusArchived)
		return nil
	}

	archiveDst := filepath.Join(r.cfg.Paths.SourceDir, config.ArchiveDirName, item.Source.Name)
	if err := fileutil.MoveFile(item.Source.Path, archiveDst); err != nil {
		return fmt.Errorf("archive source: %w", err)
	}
	logger.Info("archived source", logging.Args(logging.String("to", archiveDst))...)
	item.advance(logger, StatusArchived)
	return nil
}

func (r *Runner) cleanupTemp(item *Item) {
	if item.TempAsset == "" {
		return
	}
	_ = os.Remove(item.TempAsset)
}
