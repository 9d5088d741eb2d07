package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/staff-directory-api/internal/importer"
	"github.com/staff-directory-api/internal/models"
	"github.com/staff-directory-api/internal/validation"
)

// importService is the concrete implementation of ImportService
type importService struct {
	*core
	normalizer    *importer.Normalizer
	lowConfidence int
}

// newImportService creates a new ImportService
func newImportService(c *core, normalizer *importer.Normalizer, lowConfidence int) *importService {
	ic := *c
	ic.log = c.log.With().Str("service", "import").Logger()
	return &importService{core: &ic, normalizer: normalizer, lowConfidence: lowConfidence}
}

// Extract runs the artifact through the normalizer and stores the drafts in
// a pending session. Nothing reaches the roster until Commit.
func (s *importService) Extract(ctx context.Context, artifact models.Artifact) (*models.ImportSession, error) {
	var out *models.ImportSession
	err := s.run(ctx, cmdExtractImport, false, func(ctx context.Context, now time.Time) (models.Notification, error) {
		if !artifact.Format.Valid() {
			return models.Notification{}, invalid(models.FieldErrors{"format": fmt.Sprintf("unknown artifact format %q", artifact.Format)})
		}

		ids, err := s.repos.Staff.GetAllIDs(ctx)
		if err != nil {
			return models.Notification{}, err
		}
		extraction, err := s.normalizer.Normalize(ctx, artifact, ids)
		if err != nil {
			return models.Notification{}, extractionError(err)
		}

		session := &models.ImportSession{
			ID:            s.newID(),
			Format:        artifact.Format,
			Filename:      artifact.Filename,
			Status:        models.SessionPending,
			Drafts:        extraction.Drafts,
			Confidence:    extraction.Confidence,
			LowConfidence: extraction.Confidence < s.lowConfidence,
			Issues:        append(s.preview(extraction.Drafts, now), extraction.Skipped...),
			CreatedAt:     now,
		}
		if err := s.repos.ImportSession.Create(ctx, session); err != nil {
			return models.Notification{}, err
		}
		s.metrics.AddDrafts(string(artifact.Format), "extracted", len(session.Drafts))

		s.log.Info().
			Str("session_id", session.ID).
			Str("format", string(session.Format)).
			Int("drafts", len(session.Drafts)).
			Int("confidence", session.Confidence).
			Int("issues", len(session.Issues)).
			Msg("Import extracted")

		out = session
		n := models.Notification{
			Kind:  models.NotificationInfo,
			Title: "Import ready for review",
			Body:  fmt.Sprintf("%d draft(s) extracted with %d%% confidence.", len(session.Drafts), session.Confidence),
		}
		if session.LowConfidence {
			n.Kind = models.NotificationWarning
			n.Title = "Low extraction confidence"
			n.Body += " Please review every draft before confirming."
		}
		return n, nil
	})
	return out, err
}

// preview validates drafts at extraction time so the reviewer sees problems early
func (s *importService) preview(drafts []models.Draft, now time.Time) []models.DraftRejection {
	var issues []models.DraftRejection
	batch := validation.NewBatch()
	for _, d := range drafts {
		form := d.Form
		errs := s.validator.ValidateForm(&form, now, nil)
		if form.Email != "" && batch.SeenEmail(form.Email) {
			if errs == nil {
				errs = models.FieldErrors{}
			}
			errs.Add("email", "duplicate email in import")
		}
		batch.AddEmail(form.Email)
		if errs != nil {
			issues = append(issues, models.DraftRejection{DraftID: d.ID, Line: d.Line, Reason: "validation failed", Fields: errs})
		}
	}
	return issues
}

// GetSession retrieves a session by ID
func (s *importService) GetSession(ctx context.Context, id string) (*models.ImportSession, error) {
	session, err := s.repos.ImportSession.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("import session %s: %w", id, ErrNotFound)
	}
	return session, nil
}

// Commit admits the selected drafts of a pending session, with user
// corrections applied, and closes the session
func (s *importService) Commit(ctx context.Context, id string, req models.CommitRequest) (*models.ImportResult, error) {
	var out *models.ImportResult
	err := s.run(ctx, cmdCommitImport, true, func(ctx context.Context, now time.Time) (models.Notification, error) {
		session, err := s.pending(ctx, id)
		if err != nil {
			return models.Notification{}, err
		}
		drafts, err := selectDrafts(session.Drafts, req)
		if err != nil {
			return models.Notification{}, err
		}

		result, err := s.commitDrafts(ctx, drafts, now)
		if err != nil {
			return models.Notification{}, err
		}
		result.SessionID = session.ID

		session.Status = models.SessionCommitted
		session.Committed = make([]string, len(result.Committed))
		for i, rec := range result.Committed {
			session.Committed[i] = rec.ID
		}
		session.Rejected = result.Rejected
		session.CompletedAt = &now
		if err := s.repos.ImportSession.Update(ctx, session); err != nil {
			return models.Notification{}, err
		}

		format := string(session.Format)
		s.metrics.AddDrafts(format, "committed", len(result.Committed))
		s.metrics.AddDrafts(format, "rejected", len(result.Rejected))

		out = result
		return importNotification(result), nil
	})
	return out, err
}

// Discard closes a pending session without touching the roster
func (s *importService) Discard(ctx context.Context, id string) (*models.ImportSession, error) {
	var out *models.ImportSession
	err := s.run(ctx, cmdDiscardImport, true, func(ctx context.Context, now time.Time) (models.Notification, error) {
		session, err := s.pending(ctx, id)
		if err != nil {
			return models.Notification{}, err
		}
		session.Status = models.SessionDiscarded
		session.CompletedAt = &now
		if err := s.repos.ImportSession.Update(ctx, session); err != nil {
			return models.Notification{}, err
		}

		out = session
		return models.Notification{
			Kind:  models.NotificationInfo,
			Title: "Import discarded",
			Body:  fmt.Sprintf("%d draft(s) were discarded.", len(session.Drafts)),
		}, nil
	})
	return out, err
}

func (s *importService) pending(ctx context.Context, id string) (*models.ImportSession, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionPending {
		return nil, fmt.Errorf("import session %s is %s: %w", id, session.Status, ErrSessionClosed)
	}
	return session, nil
}

// selectDrafts picks the requested drafts in session order and applies overrides
func selectDrafts(drafts []models.Draft, req models.CommitRequest) ([]models.Draft, error) {
	known := make(map[string]bool, len(drafts))
	for _, d := range drafts {
		known[d.ID] = true
	}

	errs := models.FieldErrors{}
	wanted := make(map[string]bool, len(req.DraftIDs))
	for _, id := range req.DraftIDs {
		if !known[id] {
			errs.Add("draftIds", fmt.Sprintf("unknown draft id %q", id))
		}
		wanted[id] = true
	}
	for id := range req.Overrides {
		if !known[id] {
			errs.Add("overrides", fmt.Sprintf("unknown draft id %q", id))
		}
	}
	if len(errs) > 0 {
		return nil, invalid(errs)
	}

	out := make([]models.Draft, 0, len(drafts))
	for _, d := range drafts {
		if len(wanted) > 0 && !wanted[d.ID] {
			continue
		}
		if f, ok := req.Overrides[d.ID]; ok {
			d.Form = f
		}
		out = append(out, d)
	}
	return out, nil
}

// extractionError maps normalizer failures onto the caller-facing taxonomy
func extractionError(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, importer.ErrUnsupportedFormat):
		return invalid(models.FieldErrors{"format": err.Error()})
	}
	return invalid(models.FieldErrors{"file": err.Error()})
}
