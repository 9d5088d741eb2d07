package service

import (
	"context"
	"fmt"
	"time"

	"github.com/staff-directory-api/internal/availability"
	"github.com/staff-directory-api/internal/models"
	"github.com/staff-directory-api/internal/query"
	"github.com/staff-directory-api/internal/stats"
)

// staffService is the concrete implementation of StaffService
type staffService struct {
	*core
	engine *query.Engine
}

// newStaffService creates a new StaffService
func newStaffService(c *core, engine *query.Engine) *staffService {
	sc := *c
	sc.log = c.log.With().Str("service", "staff").Logger()
	return &staffService{core: &sc, engine: engine}
}

// AddStaff validates a form and appends the new record to the roster
func (s *staffService) AddStaff(ctx context.Context, form models.StaffForm) (*models.StaffRecord, error) {
	var out *models.StaffRecord
	err := s.run(ctx, cmdAddStaff, true, func(ctx context.Context, now time.Time) (models.Notification, error) {
		form.Normalize()
		if errs := s.validator.ValidateForm(&form, now, nil); errs != nil {
			return models.Notification{}, invalid(errs)
		}

		id, err := s.freshID(ctx)
		if err != nil {
			return models.Notification{}, err
		}
		rec := models.StaffRecord{ID: id}
		if err := availability.Apply(&rec, form, now); err != nil {
			return models.Notification{}, err
		}
		if err := s.repos.Staff.Create(ctx, &rec); err != nil {
			return models.Notification{}, err
		}
		s.refreshRosterSize(ctx)

		out = &rec
		return models.Notification{
			Kind:      models.NotificationSuccess,
			Title:     "Staff member added",
			Body:      fmt.Sprintf("%s was added to the directory.", displayName(&rec)),
			RecordIDs: []string{rec.ID},
		}, nil
	})
	return out, err
}

// EditStaff applies a field-level patch. Becoming available through a patch
// clears the stored absence metadata.
func (s *staffService) EditStaff(ctx context.Context, id string, patch models.StaffPatch) (*models.StaffRecord, error) {
	var out *models.StaffRecord
	err := s.run(ctx, cmdEditStaff, true, func(ctx context.Context, now time.Time) (models.Notification, error) {
		if errs := s.validator.ValidatePatch(&patch); errs != nil {
			return models.Notification{}, invalid(errs)
		}
		cur, err := s.lookup(ctx, id)
		if err != nil {
			return models.Notification{}, err
		}

		form := availability.MergePatch(*cur, patch)
		form.Normalize()
		if errs := s.validator.ValidateForm(&form, now, cur.ExpectedReturnDate); errs != nil {
			return models.Notification{}, invalid(errs)
		}

		next := cur.Clone()
		if err := availability.Apply(&next, form, now); err != nil {
			return models.Notification{}, err
		}
		if err := s.repos.Staff.Update(ctx, &next); err != nil {
			return models.Notification{}, err
		}

		out = &next
		return models.Notification{
			Kind:      models.NotificationSuccess,
			Title:     "Staff member updated",
			Body:      fmt.Sprintf("%s was updated.", displayName(&next)),
			RecordIDs: []string{next.ID},
		}, nil
	})
	return out, err
}

// DeleteStaff removes a record; the id is never reused
func (s *staffService) DeleteStaff(ctx context.Context, id string) (*models.StaffRecord, error) {
	var out *models.StaffRecord
	err := s.run(ctx, cmdDeleteStaff, true, func(ctx context.Context, now time.Time) (models.Notification, error) {
		cur, err := s.lookup(ctx, id)
		if err != nil {
			return models.Notification{}, err
		}
		if err := s.repos.Staff.Delete(ctx, id); err != nil {
			return models.Notification{}, err
		}
		s.refreshRosterSize(ctx)

		out = cur
		return models.Notification{
			Kind:      models.NotificationSuccess,
			Title:     "Staff member removed",
			Body:      fmt.Sprintf("%s was removed from the directory.", displayName(cur)),
			RecordIDs: []string{cur.ID},
		}, nil
	})
	return out, err
}

// MarkAbsent registers an absence at the current instant
func (s *staffService) MarkAbsent(ctx context.Context, id string, req models.AbsenceRequest) (*models.StaffRecord, error) {
	var out *models.StaffRecord
	err := s.run(ctx, cmdMarkAbsent, true, func(ctx context.Context, now time.Time) (models.Notification, error) {
		if errs := s.validator.ValidateAbsence(&req, now); errs != nil {
			return models.Notification{}, invalid(errs)
		}
		cur, err := s.lookup(ctx, id)
		if err != nil {
			return models.Notification{}, err
		}

		next := cur.Clone()
		if err := availability.MarkAbsent(&next, req, now); err != nil {
			return models.Notification{}, err
		}
		if err := s.repos.Staff.Update(ctx, &next); err != nil {
			return models.Notification{}, err
		}

		out = &next
		body := fmt.Sprintf("%s is absent: %s (%s).", displayName(&next), next.AbsenceReason, next.AbsenceDuration.Label())
		if next.ExpectedReturnDate != nil {
			body += " Expected back on " + models.FormatDate(next.ExpectedReturnDate) + "."
		}
		return models.Notification{
			Kind:      models.NotificationSuccess,
			Title:     "Absence recorded",
			Body:      body,
			RecordIDs: []string{next.ID},
		}, nil
	})
	return out, err
}

// MarkAvailable clears an absence. On an available record it changes nothing.
func (s *staffService) MarkAvailable(ctx context.Context, id string) (*models.StaffRecord, error) {
	var out *models.StaffRecord
	err := s.run(ctx, cmdMarkAvailable, true, func(ctx context.Context, now time.Time) (models.Notification, error) {
		cur, err := s.lookup(ctx, id)
		if err != nil {
			return models.Notification{}, err
		}

		next := cur.Clone()
		if !availability.MarkAvailable(&next, now) {
			out = cur
			return models.Notification{
				Kind:      models.NotificationInfo,
				Title:     "Already available",
				Body:      fmt.Sprintf("%s is already available.", displayName(cur)),
				RecordIDs: []string{cur.ID},
			}, nil
		}
		if err := s.repos.Staff.Update(ctx, &next); err != nil {
			return models.Notification{}, err
		}

		out = &next
		return models.Notification{
			Kind:      models.NotificationSuccess,
			Title:     "Marked available",
			Body:      fmt.Sprintf("%s is available again.", displayName(&next)),
			RecordIDs: []string{next.ID},
		}, nil
	})
	return out, err
}

// ImportStaff commits confirmed drafts. Each draft is validated on its own;
// invalid drafts are reported and the rest are committed.
func (s *staffService) ImportStaff(ctx context.Context, drafts []models.Draft) (*models.ImportResult, error) {
	var out *models.ImportResult
	err := s.run(ctx, cmdImportStaff, true, func(ctx context.Context, now time.Time) (models.Notification, error) {
		result, err := s.commitDrafts(ctx, drafts, now)
		if err != nil {
			return models.Notification{}, err
		}
		out = result
		return importNotification(result), nil
	})
	return out, err
}

// GetStaff returns one record
func (s *staffService) GetStaff(ctx context.Context, id string) (*models.StaffRecord, error) {
	return s.lookup(ctx, id)
}

// Query runs the query pipeline over the current roster snapshot
func (s *staffService) Query(ctx context.Context, spec models.QuerySpec) ([]models.StaffRecord, error) {
	if errs := query.Validate(spec); errs != nil {
		return nil, invalid(errs)
	}
	roster, err := s.repos.Staff.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.Run(roster, spec), nil
}

// Statistics summarizes the current roster snapshot
func (s *staffService) Statistics(ctx context.Context) (*models.Statistics, error) {
	roster, err := s.repos.Staff.List(ctx)
	if err != nil {
		return nil, err
	}
	st := stats.Compute(roster)
	return &st, nil
}

// Seed loads hand-authored records without delay or notifications. Records
// are validated like manual entries, except that stored return dates are not
// compared with today. Missing ids are generated; lastSeen is kept.
func (s *staffService) Seed(ctx context.Context, records []models.StaffRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	loaded := 0
	for i, r := range records {
		form := models.FormFromRecord(r)
		form.Normalize()
		if errs := s.validator.ValidateForm(&form, now, r.ExpectedReturnDate); errs != nil {
			return loaded, fmt.Errorf("seed record %d (%s): %w", i+1, r.FullName(), invalid(errs))
		}

		rec := models.StaffRecord{ID: r.ID}
		if rec.ID == "" {
			id, err := s.freshID(ctx)
			if err != nil {
				return loaded, err
			}
			rec.ID = id
		}
		form.ApplyTo(&rec)
		rec.LastSeen = r.LastSeen
		if err := availability.CheckInvariants(&rec); err != nil {
			return loaded, err
		}
		if err := s.repos.Staff.Create(ctx, &rec); err != nil {
			return loaded, fmt.Errorf("seed record %d: %w (%v)", i+1, ErrConflict, err)
		}
		loaded++
	}

	s.refreshRosterSize(ctx)
	s.log.Info().Int("count", loaded).Msg("Roster seeded")
	return loaded, nil
}
