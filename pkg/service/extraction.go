package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tanklog/mtreplay-service-go/log"
	"github.com/tanklog/mtreplay-service-go/pkg/model"
	"github.com/tanklog/mtreplay-service-go/pkg/processing"
	archiverepos "github.com/tanklog/mtreplay-service-go/pkg/repository/archive"
	"github.com/tanklog/mtreplay-service-go/pkg/replay"
)

// ExtractionService is the top level entry: it decodes a container, resolves
// the catalogs and produces the battle report. Containers that fail format
// validation can optionally be recorded in the archive table.
type ExtractionService struct {
	pool               *pgxpool.Pool
	processor          *processing.Processor
	archiveUnsupported bool
	l                  *log.Logger
}

type Option func(*ExtractionService)

func WithArchiveUnsupported(arg bool) Option {
	return func(s *ExtractionService) { s.archiveUnsupported = arg }
}

func WithLogger(l *log.Logger) Option {
	return func(s *ExtractionService) { s.l = l }
}

func NewExtractionService(pool *pgxpool.Pool, opts ...Option) *ExtractionService {
	ret := &ExtractionService{
		pool: pool,
		processor: processing.NewProcessor(
			NewCachedTankCatalog(pool),
			NewDbAchievementCatalog(pool)),
		l: log.Default().Named("service"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// ExtractFile processes a single replay file from disk.
func (s *ExtractionService) ExtractFile(
	ctx context.Context, fileName string,
) (*model.BattleReport, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	return s.Extract(ctx, filepath.Base(fileName), data)
}

// Extract processes the raw bytes of a replay container. fileName is only
// used for logging and for the archive entry.
func (s *ExtractionService) Extract(
	ctx context.Context, fileName string, data []byte,
) (*model.BattleReport, error) {
	doc, err := replay.ParseDocument(data)
	if err != nil {
		var formatErr *replay.FormatError
		if errors.As(err, &formatErr) && s.archiveUnsupported {
			s.archive(ctx, fileName, data, formatErr)
		}
		return nil, err
	}

	report, err := s.processor.Process(ctx, doc)
	if err != nil {
		return nil, err
	}
	s.l.Info("replay extracted",
		log.String("file", fileName),
		log.String("mode", report.Battle.TypeLabel),
		log.String("outcome", report.Battle.Outcome.Text))
	return report, nil
}

// Document decodes a container without processing it. Useful for debugging.
func (s *ExtractionService) Document(data []byte) (*replay.Document, error) {
	return replay.ParseDocument(data)
}

func (s *ExtractionService) archive(
	ctx context.Context, fileName string, data []byte, formatErr *replay.FormatError,
) {
	entry := &model.UnsupportedReplay{
		FileName: fileName,
		Magic:    formatErr.Magic,
		Version:  formatErr.Version,
		Reason:   formatErr.Reason,
		Payload:  data,
	}
	if _, err := archiverepos.Create(ctx, s.pool, entry); err != nil {
		s.l.Error("could not archive unsupported replay",
			log.String("file", fileName),
			log.ErrorField(err))
		return
	}
	s.l.Info("unsupported replay archived",
		log.String("file", fileName),
		log.String("id", entry.ID.String()),
		log.String("reason", formatErr.Reason))
}
