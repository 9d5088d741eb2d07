package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/staff-directory-api/internal/models"
)

var extensionRegex = regexp.MustCompile(`^[0-9]{4,5}$`)

// Validator checks staff forms, patches and absence requests. Violations are
// reported as a field-name to message map, never as a panic.
type Validator struct {
	validate *validator.Validate
	loc      *time.Location
}

// NewValidator creates a validator that evaluates "today" in loc (UTC when nil)
func NewValidator(loc *time.Location) *Validator {
	if loc == nil {
		loc = time.UTC
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("extension", func(fl validator.FieldLevel) bool {
		return extensionRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		return models.AbsenceDuration(fl.Field().String()).Valid()
	})

	return &Validator{validate: v, loc: loc}
}

// Today returns the calendar date of now in the validator's location
func (v *Validator) Today(now time.Time) time.Time {
	return models.DateOf(now.In(v.loc))
}

// ValidateForm validates a normalized create/edit form. previousReturn is the
// return date already stored on the record being edited: an unchanged return
// date is not re-checked against today, since it was valid when it was set.
func (v *Validator) ValidateForm(form *models.StaffForm, now time.Time, previousReturn *time.Time) models.FieldErrors {
	errs := v.structErrors(form)

	if form.Available() {
		if form.AbsenceReason != "" {
			errs.Add("absenceReason", "absence reason must be empty while available")
		}
		if form.AbsenceDuration != "" {
			errs.Add("absenceDuration", "absence duration must be empty while available")
		}
		if form.ExpectedReturnDate != "" {
			errs.Add("expectedReturnDate", "return date must be empty while available")
		}
	} else if form.ExpectedReturnDate != "" {
		if _, bad := errs["expectedReturnDate"]; !bad {
			ret, _ := models.ParseDate(form.ExpectedReturnDate)
			unchanged := previousReturn != nil && previousReturn.Equal(ret)
			v.checkReturnDate(errs, form.AbsenceDuration, ret, now, !unchanged)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidatePatch rejects patches that contradict themselves before they are merged
func (v *Validator) ValidatePatch(patch *models.StaffPatch) models.FieldErrors {
	errs := models.FieldErrors{}
	if patch.IsAvailable != nil && *patch.IsAvailable && patch.TouchesAbsenceMetadata() {
		if patch.AbsenceReason != nil && *patch.AbsenceReason != "" {
			errs.Add("absenceReason", "absence reason must be empty while available")
		}
		if patch.AbsenceDuration != nil && *patch.AbsenceDuration != "" {
			errs.Add("absenceDuration", "absence duration must be empty while available")
		}
		if patch.ExpectedReturnDate != nil && *patch.ExpectedReturnDate != "" {
			errs.Add("expectedReturnDate", "return date must be empty while available")
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateAbsence validates a MarkAbsent request at transition time now
func (v *Validator) ValidateAbsence(req *models.AbsenceRequest, now time.Time) models.FieldErrors {
	req.Reason = strings.TrimSpace(req.Reason)
	req.Duration = models.AbsenceDuration(strings.ToLower(strings.TrimSpace(string(req.Duration))))
	req.ExpectedReturnDate = strings.TrimSpace(req.ExpectedReturnDate)

	errs := v.structErrors(req)
	if req.ExpectedReturnDate != "" {
		if _, bad := errs["expectedReturnDate"]; !bad {
			ret, _ := models.ParseDate(req.ExpectedReturnDate)
			v.checkReturnDate(errs, req.Duration, ret, now, true)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// checkReturnDate enforces that a return date only accompanies multi-day
// durations and, when fresh, lies strictly after today.
func (v *Validator) checkReturnDate(errs models.FieldErrors, d models.AbsenceDuration, ret, now time.Time, fresh bool) {
	if d.Valid() && !d.AllowsReturnDate() {
		errs.Add("expectedReturnDate", fmt.Sprintf("return date only applies to %s, %s or %s absences",
			models.DurationDays, models.DurationWeek, models.DurationWeeks))
		return
	}
	if fresh && !ret.After(v.Today(now)) {
		errs.Add("expectedReturnDate", "return date must be after today")
	}
}

func (v *Validator) structErrors(s interface{}) models.FieldErrors {
	errs := models.FieldErrors{}
	err := v.validate.Struct(s)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs.Add("form", err.Error())
		return errs
	}
	for _, fe := range fieldErrs {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "invalid email format"
	case "extension":
		return "extension must be 4 or 5 digits"
	case "duration":
		return "duration must be one of: hour, day, days, week, weeks, undetermined"
	case "datetime":
		return "invalid date, expected YYYY-MM-DD"
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}

// Batch tracks values already seen within one import so duplicates inside
// the same artifact are caught before commit
type Batch struct {
	emails map[string]bool
	ids    map[string]bool
}

// NewBatch creates an empty batch tracker
func NewBatch() *Batch {
	return &Batch{
		emails: make(map[string]bool),
		ids:    make(map[string]bool),
	}
}

// SeenEmail reports whether the email was already added (case-insensitive)
func (b *Batch) SeenEmail(email string) bool {
	return b.emails[strings.ToLower(email)]
}

// AddEmail marks the email as used by this batch
func (b *Batch) AddEmail(email string) {
	if email != "" {
		b.emails[strings.ToLower(email)] = true
	}
}

// SeenID reports whether the id was already added
func (b *Batch) SeenID(id string) bool {
	return b.ids[id]
}

// AddID marks the id as used by this batch
func (b *Batch) AddID(id string) {
	b.ids[id] = true
}
