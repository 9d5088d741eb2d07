package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/staff-directory-api/internal/availability"
	"github.com/staff-directory-api/internal/clock"
	"github.com/staff-directory-api/internal/metrics"
	"github.com/staff-directory-api/internal/models"
	"github.com/staff-directory-api/internal/notify"
	"github.com/staff-directory-api/internal/repository"
	"github.com/staff-directory-api/internal/validation"
)

// Command names used in notifications, logs and metrics
const (
	cmdAddStaff      = "addStaff"
	cmdEditStaff     = "editStaff"
	cmdDeleteStaff   = "deleteStaff"
	cmdMarkAbsent    = "markAbsent"
	cmdMarkAvailable = "markAvailable"
	cmdImportStaff   = "importStaff"
	cmdExtractImport = "extractImport"
	cmdCommitImport  = "commitImport"
	cmdDiscardImport = "discardImport"
	cmdExport        = "export"
)

// core is the command runner shared by the services
type core struct {
	repos     *repository.Repositories
	validator *validation.Validator
	clock     clock.Clock
	sink      notify.Sink
	metrics   *metrics.Metrics
	latency   time.Duration
	newID     func() string
	// mu serializes roster writes across services
	mu  *sync.Mutex
	log zerolog.Logger
}

// run executes one command: the simulated delay, then fn under the write
// lock when write is set, then exactly one notification. Cancelling ctx
// during the delay or while queued for the lock aborts before fn runs. Once
// a write command passes the lock it runs to completion: fn receives a
// context that is not cancelled with ctx.
func (c *core) run(ctx context.Context, command string, write bool, fn func(ctx context.Context, now time.Time) (models.Notification, error)) error {
	start := timeNow()

	err := c.wait(ctx)
	var n models.Notification
	if err == nil {
		if write {
			c.mu.Lock()
		}
		if err = ctx.Err(); err == nil {
			fnCtx := ctx
			if write {
				fnCtx = context.WithoutCancel(ctx)
			}
			n, err = fn(fnCtx, c.clock.Now())
		}
		if write {
			c.mu.Unlock()
		}
	}
	if err != nil {
		n = failure(err)
	}

	n.Command = command
	n.At = c.clock.Now()
	// Delivery must not be cut short by the caller going away.
	c.sink.Notify(context.WithoutCancel(ctx), n)

	outcome := outcomeOf(err)
	c.metrics.ObserveCommand(command, outcome, timeNow().Sub(start))

	ev := c.log.Info()
	if outcome == metrics.OutcomeError {
		ev = c.log.Error().Err(err)
	} else if err != nil {
		ev = c.log.Debug().Err(err)
	}
	ev.Str("command", command).
		Str("outcome", outcome).
		Strs("record_ids", n.RecordIDs).
		Dur("elapsed", timeNow().Sub(start)).
		Msg("Command completed")

	return err
}

func (c *core) wait(ctx context.Context) error {
	if c.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-c.clock.After(c.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// freshID returns a record id not present in the roster. Caller holds mu.
func (c *core) freshID(ctx context.Context) (string, error) {
	for {
		id := c.newID()
		exists, err := c.repos.Staff.Exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
}

// lookup returns a private copy of a stored record
func (c *core) lookup(ctx context.Context, id string) (*models.StaffRecord, error) {
	rec, err := c.repos.Staff.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("staff %s: %w", id, ErrNotFound)
	}
	return rec, nil
}

func (c *core) refreshRosterSize(ctx context.Context) {
	if n, err := c.repos.Staff.Count(ctx); err == nil {
		c.metrics.SetRosterSize(n)
	}
}

// commitDrafts validates each draft as a manual entry would be and admits the
// valid ones. Draft ids are re-checked against the current roster; an id
// taken since extraction is replaced by a fresh one. Caller holds mu.
func (c *core) commitDrafts(ctx context.Context, drafts []models.Draft, now time.Time) (*models.ImportResult, error) {
	result := &models.ImportResult{Committed: []models.StaffRecord{}}
	batch := validation.NewBatch()

	for _, d := range drafts {
		form := d.Form
		form.Normalize()

		errs := c.validator.ValidateForm(&form, now, nil)
		if errs == nil {
			errs = models.FieldErrors{}
		}
		if form.Email != "" {
			if batch.SeenEmail(form.Email) {
				errs.Add("email", "duplicate email in import")
			} else if taken, err := c.repos.Staff.EmailExists(ctx, form.Email); err != nil {
				return nil, err
			} else if taken {
				errs.Add("email", "email already in use")
			}
		}
		if len(errs) > 0 {
			result.Rejected = append(result.Rejected, models.DraftRejection{
				DraftID: d.ID,
				Line:    d.Line,
				Reason:  "validation failed",
				Fields:  errs,
			})
			continue
		}

		id := d.ID
		taken := id == "" || batch.SeenID(id)
		if !taken {
			exists, err := c.repos.Staff.Exists(ctx, id)
			if err != nil {
				return nil, err
			}
			taken = exists
		}
		if taken {
			fresh, err := c.freshID(ctx)
			if err != nil {
				return nil, err
			}
			if id != "" {
				c.log.Debug().Str("draft_id", id).Str("id", fresh).Msg("Draft id taken, reassigned")
			}
			id = fresh
		}

		rec := models.StaffRecord{ID: id}
		if err := availability.Apply(&rec, form, now); err != nil {
			return nil, err
		}
		if err := c.repos.Staff.Create(ctx, &rec); err != nil {
			return nil, err
		}
		batch.AddID(id)
		batch.AddEmail(form.Email)
		result.Committed = append(result.Committed, rec)
	}

	c.refreshRosterSize(ctx)
	return result, nil
}

func importNotification(r *models.ImportResult) models.Notification {
	ids := make([]string, len(r.Committed))
	for i, rec := range r.Committed {
		ids[i] = rec.ID
	}

	committed, rejected := len(r.Committed), len(r.Rejected)
	n := models.Notification{RecordIDs: ids}
	switch {
	case committed == 0 && rejected == 0:
		n.Kind, n.Title, n.Body = models.NotificationInfo, "Nothing to import", "No drafts were submitted."
	case rejected == 0:
		n.Kind, n.Title = models.NotificationSuccess, "Import completed"
		n.Body = fmt.Sprintf("%d staff member(s) imported.", committed)
	case committed == 0:
		n.Kind, n.Title = models.NotificationError, "Import rejected"
		n.Body = fmt.Sprintf("All %d draft(s) failed validation.", rejected)
	default:
		n.Kind, n.Title = models.NotificationWarning, "Import partially completed"
		n.Body = fmt.Sprintf("%d imported, %d rejected.", committed, rejected)
	}
	return n
}

// failure builds the notification for a failed command
func failure(err error) models.Notification {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return models.Notification{Kind: models.NotificationError, Title: "Validation failed", Body: verr.Fields.Error()}
	case errors.Is(err, ErrNotFound):
		return models.Notification{Kind: models.NotificationError, Title: "Not found", Body: err.Error()}
	case errors.Is(err, ErrSessionClosed), errors.Is(err, ErrConflict):
		return models.Notification{Kind: models.NotificationError, Title: "Conflict", Body: err.Error()}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return models.Notification{Kind: models.NotificationWarning, Title: "Operation cancelled", Body: "No changes were made."}
	}
	return models.Notification{Kind: models.NotificationError, Title: "Operation failed", Body: err.Error()}
}

func outcomeOf(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.As(err, &verr):
		return metrics.OutcomeInvalid
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrSessionClosed), errors.Is(err, ErrConflict):
		return metrics.OutcomeConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCancelled
	}
	return metrics.OutcomeError
}

func displayName(rec *models.StaffRecord) string {
	return strings.TrimSpace(rec.FirstName + " " + rec.LastName)
}
