package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/staff-directory-api/internal/models"
)

// staffRepo is the in-memory implementation of StaffRepository. The roster
// keeps insertion order so unsorted views and stable sorts are reproducible.
type staffRepo struct {
	mu      sync.RWMutex
	order   []string
	records map[string]*models.StaffRecord
}

// NewStaffRepo creates an empty roster
func NewStaffRepo() StaffRepository {
	return &staffRepo{records: make(map[string]*models.StaffRecord)}
}

// Create appends a record to the roster
func (r *staffRepo) Create(ctx context.Context, rec *models.StaffRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[rec.ID]; ok {
		return fmt.Errorf("staff %s: %w", rec.ID, ErrDuplicateID)
	}
	c := rec.Clone()
	r.records[rec.ID] = &c
	r.order = append(r.order, rec.ID)
	return nil
}

// Update replaces a stored record in one assignment
func (r *staffRepo) Update(ctx context.Context, rec *models.StaffRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[rec.ID]; !ok {
		return fmt.Errorf("staff %s: %w", rec.ID, ErrNotFound)
	}
	c := rec.Clone()
	r.records[rec.ID] = &c
	return nil
}

// Delete removes a record; its position in the roster order is dropped
func (r *staffRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return fmt.Errorf("staff %s: %w", id, ErrNotFound)
	}
	delete(r.records, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// GetByID retrieves a record by ID
func (r *staffRepo) GetByID(ctx context.Context, id string) (*models.StaffRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	c := rec.Clone()
	return &c, nil
}

// Exists checks if a record with the given ID exists
func (r *staffRepo) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.records[id]
	return ok, nil
}

// EmailExists checks if any record uses the email (case-insensitive)
func (r *staffRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if strings.EqualFold(rec.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// GetAllIDs retrieves all record IDs (for draft id reservation)
func (r *staffRepo) GetAllIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids, nil
}

// Count returns the roster size
func (r *staffRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order), nil
}

// List returns a snapshot of the roster in insertion order
func (r *staffRepo) List(ctx context.Context) ([]models.StaffRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.StaffRecord, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id].Clone())
	}
	return out, nil
}

// StreamAll walks a snapshot of the roster, stopping at the first callback
// error or context cancellation
func (r *staffRepo) StreamAll(ctx context.Context, callback func(*models.StaffRecord) error) error {
	snapshot, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range snapshot {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := callback(&snapshot[i]); err != nil {
			return err
		}
	}
	return nil
}
