package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/staff-directory-api/internal/clock"
	"github.com/staff-directory-api/internal/config"
	"github.com/staff-directory-api/internal/importer"
	"github.com/staff-directory-api/internal/metrics"
	"github.com/staff-directory-api/internal/models"
	"github.com/staff-directory-api/internal/notify"
	"github.com/staff-directory-api/internal/query"
	"github.com/staff-directory-api/internal/repository"
	"github.com/staff-directory-api/internal/validation"
)

var (
	// ErrNotFound is returned when a command references an unknown id
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write collides with existing state
	ErrConflict = errors.New("conflict")

	// ErrSessionClosed is returned when an import session was already committed or discarded
	ErrSessionClosed = errors.New("import session is no longer pending")
)

// ValidationError carries field-level violations; the command made no change
type ValidationError struct {
	Fields models.FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Fields.Error()
}

func invalid(fields models.FieldErrors) error {
	return &ValidationError{Fields: fields}
}

// StaffService is the roster command and read surface
type StaffService interface {
	AddStaff(ctx context.Context, form models.StaffForm) (*models.StaffRecord, error)
	EditStaff(ctx context.Context, id string, patch models.StaffPatch) (*models.StaffRecord, error)
	DeleteStaff(ctx context.Context, id string) (*models.StaffRecord, error)
	MarkAbsent(ctx context.Context, id string, req models.AbsenceRequest) (*models.StaffRecord, error)
	MarkAvailable(ctx context.Context, id string) (*models.StaffRecord, error)
	ImportStaff(ctx context.Context, drafts []models.Draft) (*models.ImportResult, error)
	GetStaff(ctx context.Context, id string) (*models.StaffRecord, error)
	Query(ctx context.Context, spec models.QuerySpec) ([]models.StaffRecord, error)
	Statistics(ctx context.Context) (*models.Statistics, error)
	Seed(ctx context.Context, records []models.StaffRecord) (int, error)
}

// ImportService holds extracted drafts for review before they reach the roster
type ImportService interface {
	Extract(ctx context.Context, artifact models.Artifact) (*models.ImportSession, error)
	GetSession(ctx context.Context, id string) (*models.ImportSession, error)
	Commit(ctx context.Context, id string, req models.CommitRequest) (*models.ImportResult, error)
	Discard(ctx context.Context, id string) (*models.ImportSession, error)
}

// ExportService projects query results into flat rows
type ExportService interface {
	Rows(ctx context.Context, spec models.QuerySpec) ([]models.ExportRow, error)
	Stream(ctx context.Context, w io.Writer, spec models.QuerySpec, format string) error
}

// Services holds all service interfaces
type Services struct {
	Staff  StaffService
	Import ImportService
	Export ExportService
}

// Dependencies are the collaborators injected into the services. Nil fields
// fall back to the real clock, a dropping sink, no metrics and the built-in
// extractors.
type Dependencies struct {
	Clock      clock.Clock
	Sink       notify.Sink
	Metrics    *metrics.Metrics
	Normalizer *importer.Normalizer
}

// NewServices creates all services over one roster. Roster writes from every
// service are serialized by a single lock.
func NewServices(repos *repository.Repositories, cfg *config.Config, deps Dependencies, log zerolog.Logger) *Services {
	if deps.Clock == nil {
		deps.Clock = clock.Real()
	}
	if deps.Sink == nil {
		deps.Sink = notify.Nop
	}
	if deps.Normalizer == nil {
		deps.Normalizer = importer.NewNormalizer(cfg.Import.MaxDrafts)
	}

	loc := cfg.Directory.Location()
	c := &core{
		repos:     repos,
		validator: validation.NewValidator(loc),
		clock:     deps.Clock,
		sink:      deps.Sink,
		metrics:   deps.Metrics,
		latency:   cfg.Directory.MutationLatency,
		newID:     func() string { return uuid.New().String() },
		mu:        &sync.Mutex{},
		log:       log,
	}
	engine := query.NewFromString(cfg.Directory.Collation)

	staffSvc := newStaffService(c, engine)
	return &Services{
		Staff:  staffSvc,
		Import: newImportService(c, deps.Normalizer, cfg.Import.LowConfidence),
		Export: newExportService(c, staffSvc, loc),
	}
}

// timeNow is the wall clock used for command latency metrics
var timeNow = time.Now
