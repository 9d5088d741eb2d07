// Package availability implements the presence state machine of a staff
// record: Available, or Absent with an optional reason, duration class and
// expected return date.
//
// Transitions are pure functions over a record value. Callers validate input
// first (see package validation) and apply transitions to a private copy that
// replaces the stored record in one step.
package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/staff-directory-api/internal/models"
)

var (
	// ErrReasonRequired indicates a MarkAbsent call without a reason.
	ErrReasonRequired = errors.New("absence reason is required")

	// ErrInvalidDuration indicates a duration outside the six classes.
	ErrInvalidDuration = errors.New("invalid absence duration")

	// ErrInvalidReturnDate indicates an unparseable return date.
	ErrInvalidReturnDate = errors.New("invalid expected return date")

	// ErrInvariant indicates an available record that still carries absence metadata.
	ErrInvariant = errors.New("available record carries absence metadata")
)

// MarkAbsent moves rec to Absent, stores the absence metadata and refreshes lastSeen
func MarkAbsent(rec *models.StaffRecord, req models.AbsenceRequest, now time.Time) error {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return ErrReasonRequired
	}
	if !req.Duration.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDuration, req.Duration)
	}

	var ret *time.Time
	if req.ExpectedReturnDate != "" {
		t, err := models.ParseDate(req.ExpectedReturnDate)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidReturnDate, err)
		}
		ret = &t
	}

	rec.IsAvailable = false
	rec.AbsenceReason = reason
	rec.AbsenceDuration = req.Duration
	rec.ExpectedReturnDate = ret
	touch(rec, now)
	return nil
}

// MarkAvailable moves rec to Available and clears the absence metadata. It
// reports whether anything changed; calling it on an available record is a
// no-op that leaves lastSeen untouched.
func MarkAvailable(rec *models.StaffRecord, now time.Time) bool {
	if rec.IsAvailable && !rec.HasAbsenceMetadata() {
		return false
	}
	rec.IsAvailable = true
	rec.ClearAbsence()
	touch(rec, now)
	return true
}

// MergePatch builds the form that results from applying patch to rec. Becoming
// available drops the stored absence metadata before the patch's own fields
// are laid over it, so stored absence metadata never survives becoming available.
func MergePatch(rec models.StaffRecord, patch models.StaffPatch) models.StaffForm {
	form := models.FormFromRecord(rec)

	if patch.IsAvailable != nil {
		available := *patch.IsAvailable
		form.IsAvailable = &available
		if available {
			form.AbsenceReason = ""
			form.AbsenceDuration = ""
			form.ExpectedReturnDate = ""
		}
	}

	setString(&form.FirstName, patch.FirstName)
	setString(&form.LastName, patch.LastName)
	setString(&form.Function, patch.Function)
	if patch.Department != nil {
		form.Department = *patch.Department
	}
	setString(&form.Location, patch.Location)
	setString(&form.Extension, patch.Extension)
	setString(&form.Email, patch.Email)
	setString(&form.AbsenceReason, patch.AbsenceReason)
	if patch.AbsenceDuration != nil {
		form.AbsenceDuration = *patch.AbsenceDuration
	}
	setString(&form.ExpectedReturnDate, patch.ExpectedReturnDate)
	setString(&form.Role, patch.Role)
	if patch.Skills != nil {
		form.Skills = append([]string(nil), (*patch.Skills)...)
	}
	if patch.Languages != nil {
		form.Languages = append([]string(nil), (*patch.Languages)...)
	}
	setString(&form.StartDate, patch.StartDate)
	setString(&form.EmergencyContact, patch.EmergencyContact)

	return form
}

// Apply writes a validated form onto rec, refreshes lastSeen and re-checks the invariants
func Apply(rec *models.StaffRecord, form models.StaffForm, now time.Time) error {
	form.ApplyTo(rec)
	touch(rec, now)
	return CheckInvariants(rec)
}

// CheckInvariants verifies that an available record has no absence metadata
func CheckInvariants(rec *models.StaffRecord) error {
	if rec.IsAvailable && rec.HasAbsenceMetadata() {
		return fmt.Errorf("%w: %s", ErrInvariant, rec.ID)
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func touch(rec *models.StaffRecord, now time.Time) {
	t := now
	rec.LastSeen = &t
}
