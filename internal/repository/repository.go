package repository

import (
	"context"
	"errors"

	"github.com/staff-directory-api/internal/models"
)

var (
	// ErrDuplicateID is returned when a record id is already taken
	ErrDuplicateID = errors.New("id already exists")

	// ErrNotFound is returned by writes that target a missing id
	ErrNotFound = errors.New("not found")
)

// StaffRepository defines the interface for roster operations.
// Reads return deep copies; GetByID returns nil, nil for an unknown id.
type StaffRepository interface {
	Create(ctx context.Context, rec *models.StaffRecord) error
	Update(ctx context.Context, rec *models.StaffRecord) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.StaffRecord, error)
	Exists(ctx context.Context, id string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetAllIDs(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]models.StaffRecord, error)
	StreamAll(ctx context.Context, callback func(*models.StaffRecord) error) error
}

// ImportSessionRepository defines the interface for import session operations
type ImportSessionRepository interface {
	Create(ctx context.Context, session *models.ImportSession) error
	Update(ctx context.Context, session *models.ImportSession) error
	GetByID(ctx context.Context, id string) (*models.ImportSession, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Staff         StaffRepository
	ImportSession ImportSessionRepository
}

// New creates all repositories backed by process-scoped memory
func New() *Repositories {
	return &Repositories{
		Staff:         NewStaffRepo(),
		ImportSession: NewImportSessionRepo(),
	}
}
