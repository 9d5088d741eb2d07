package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/staff-directory-api/internal/models"
)

// importSessionRepo is the in-memory implementation of ImportSessionRepository
type importSessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*models.ImportSession
}

// NewImportSessionRepo creates a new import session repository
func NewImportSessionRepo() ImportSessionRepository {
	return &importSessionRepo{sessions: make(map[string]*models.ImportSession)}
}

// Create stores a new session
func (r *importSessionRepo) Create(ctx context.Context, session *models.ImportSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.ID]; ok {
		return fmt.Errorf("import session %s: %w", session.ID, ErrDuplicateID)
	}
	r.sessions[session.ID] = cloneSession(session)
	return nil
}

// Update replaces session status, drafts and outcome
func (r *importSessionRepo) Update(ctx context.Context, session *models.ImportSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.ID]; !ok {
		return fmt.Errorf("import session %s: %w", session.ID, ErrNotFound)
	}
	r.sessions[session.ID] = cloneSession(session)
	return nil
}

// GetByID retrieves a session by ID
func (r *importSessionRepo) GetByID(ctx context.Context, id string) (*models.ImportSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return cloneSession(s), nil
}

// Count returns the number of sessions, whatever their status
func (r *importSessionRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions), nil
}

func cloneSession(s *models.ImportSession) *models.ImportSession {
	c := *s
	c.Drafts = make([]models.Draft, len(s.Drafts))
	for i, d := range s.Drafts {
		c.Drafts[i] = models.Draft{ID: d.ID, Form: cloneForm(d.Form)}
	}
	c.Issues = cloneRejections(s.Issues)
	c.Rejected = cloneRejections(s.Rejected)
	if s.Committed != nil {
		c.Committed = append([]string(nil), s.Committed...)
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

func cloneForm(f models.StaffForm) models.StaffForm {
	c := f
	if f.IsAvailable != nil {
		v := *f.IsAvailable
		c.IsAvailable = &v
	}
	if f.Skills != nil {
		c.Skills = append([]string(nil), f.Skills...)
	}
	if f.Languages != nil {
		c.Languages = append([]string(nil), f.Languages...)
	}
	return c
}

func cloneRejections(in []models.DraftRejection) []models.DraftRejection {
	if in == nil {
		return nil
	}
	out := make([]models.DraftRejection, len(in))
	for i, r := range in {
		out[i] = r
		if r.Fields != nil {
			out[i].Fields = make(models.FieldErrors, len(r.Fields))
			for k, v := range r.Fields {
				out[i].Fields[k] = v
			}
		}
	}
	return out
}
