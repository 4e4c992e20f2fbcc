package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chessdb/chessdb/internal/model"
	"github.com/chessdb/chessdb/internal/storage"
)

// Service is the bulk upsert engine: it applies normalized records against
// the entity store with per-kind idempotency.
//
// Idempotency policy per kind:
//   - Player: upsert; the incoming rating always wins.
//   - TimeControl / Opening: insert-if-absent; there is nothing to update.
//   - Game: insert-if-absent-else-skip; an existing game is never updated
//     or revalidated, and the incoming record counts as skipped.
//
// Each record's writes are applied through one atomic batch, so a record is
// either fully persisted or not at all.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new ingest Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Report summarizes one ingestion run
type Report struct {
	// Processed counts rows whose game was newly inserted
	Processed int `json:"processed"`
	// Skipped counts rows whose game id already existed; players and
	// reference entities were still refreshed for these rows
	Skipped int `json:"skipped"`
	// Failed counts rows that were malformed or whose writes failed
	Failed int `json:"failed"`
}

// ApplyRecord applies one normalized record. Returns whether the game was
// skipped because its id already existed.
func (s *Service) ApplyRecord(ctx context.Context, rec *Record) (skipped bool, err error) {
	batch := storage.Batch{
		Players: []*model.Player{&rec.White, &rec.Black},
	}

	// Reads happen up front; the batch then commits as one unit
	if _, err := s.storage.GetTimeControl(ctx, rec.TimeControl.Code); err != nil {
		if !errors.Is(err, model.ErrTimeControlNotFound) {
			return false, &model.PersistenceError{Op: "ingest", Err: err}
		}
		batch.TimeControls = append(batch.TimeControls, &rec.TimeControl)
	}

	if _, err := s.storage.GetOpening(ctx, rec.Opening.Name); err != nil {
		if !errors.Is(err, model.ErrOpeningNotFound) {
			return false, &model.PersistenceError{Op: "ingest", Err: err}
		}
		batch.Openings = append(batch.Openings, &rec.Opening)
	}

	exists, err := s.storage.GameExists(ctx, rec.Game.ID)
	if err != nil {
		return false, &model.PersistenceError{Op: "ingest", Err: err}
	}
	if !exists {
		batch.Games = append(batch.Games, &rec.Game)
	}

	if err := s.storage.ApplyBatch(ctx, batch); err != nil {
		return false, &model.PersistenceError{Op: "ingest", Err: err}
	}
	return exists, nil
}

// IngestBatch normalizes and applies a sequence of raw rows. Rows are
// processed sequentially; a failed row is counted and logged, and
// processing continues with the next row.
func (s *Service) IngestBatch(ctx context.Context, rows [][]string) Report {
	var report Report
	for i, fields := range rows {
		s.ingestRow(ctx, i+1, fields, &report)
	}

	s.logger.Info("ingest batch complete",
		slog.Int("processed", report.Processed),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
	)
	return report
}

func (s *Service) ingestRow(ctx context.Context, rowNum int, fields []string, report *Report) {
	rec, err := ParseRow(rowNum, fields)
	if err != nil {
		report.Failed++
		s.logger.Warn("malformed row", slog.Int("row", rowNum), slog.String("error", err.Error()))
		return
	}

	skipped, err := s.ApplyRecord(ctx, rec)
	if err != nil {
		report.Failed++
		s.logger.Error("row apply failed",
			slog.Int("row", rowNum),
			slog.String("game_id", string(rec.Game.ID)),
			slog.String("error", err.Error()),
		)
		return
	}
	if skipped {
		report.Skipped++
		return
	}
	report.Processed++
}

// IngestFile streams a CSV file through the engine. The first row is
// treated as a header and discarded.
func (s *Service) IngestFile(ctx context.Context, path string) (Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer file.Close()

	report, err := s.IngestReader(ctx, file)
	if err != nil {
		return report, fmt.Errorf("could not ingest %s: %w", path, err)
	}
	return report, nil
}

// IngestReader streams CSV rows from r, skipping the header row. Row arity
// is validated by the normalizer, so short or long rows become failed rows
// rather than aborting the stream.
func (s *Service) IngestReader(ctx context.Context, r io.Reader) (Report, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var report Report
	rowNum := 0
	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			report.Failed++
			rowNum++
			s.logger.Warn("unreadable row", slog.Int("row", rowNum), slog.String("error", err.Error()))
			continue
		}

		rowNum++
		if rowNum == 1 {
			continue // header
		}
		s.ingestRow(ctx, rowNum, fields, &report)
	}

	s.logger.Info("ingest complete",
		slog.Int("processed", report.Processed),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}
