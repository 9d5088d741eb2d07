package validation

import (
	"testing"
	"time"

	"github.com/staff-directory-api/internal/models"
)

var now = time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

func boolPtr(b bool) *bool { return &b }

func validForm() models.StaffForm {
	return models.StaffForm{
		FirstName:  "Kodjo",
		LastName:   "AKUE",
		Function:   "Receptionist",
		Department: models.DepartmentReception,
		Extension:  "1234",
		Email:      "kodjo.akue@example.org",
	}
}

func TestValidateForm(t *testing.T) {
	validator := NewValidator(time.UTC)

	tests := []struct {
		name       string
		mutate     func(f *models.StaffForm)
		wantErrors int
		wantFields []string
	}{
		{
			name:       "valid available member",
			mutate:     func(f *models.StaffForm) {},
			wantErrors: 0,
		},
		{
			name: "valid absent member with future return",
			mutate: func(f *models.StaffForm) {
				f.IsAvailable = boolPtr(false)
				f.AbsenceReason = "mission"
				f.AbsenceDuration = models.DurationWeek
				f.ExpectedReturnDate = "2026-10-25"
			},
			wantErrors: 0,
		},
		{
			name:       "missing email",
			mutate:     func(f *models.StaffForm) { f.Email = "" },
			wantErrors: 1,
			wantFields: []string{"email"},
		},
		{
			name:       "invalid email format",
			mutate:     func(f *models.StaffForm) { f.Email = "not-an-email" },
			wantErrors: 1,
			wantFields: []string{"email"},
		},
		{
			name:       "extension too short",
			mutate:     func(f *models.StaffForm) { f.Extension = "123" },
			wantErrors: 1,
			wantFields: []string{"extension"},
		},
		{
			name:       "extension too long",
			mutate:     func(f *models.StaffForm) { f.Extension = "123456" },
			wantErrors: 1,
			wantFields: []string{"extension"},
		},
		{
			name:       "extension not numeric",
			mutate:     func(f *models.StaffForm) { f.Extension = "12a4" },
			wantErrors: 1,
			wantFields: []string{"extension"},
		},
		{
			name:       "five digit extension",
			mutate:     func(f *models.StaffForm) { f.Extension = "12345" },
			wantErrors: 0,
		},
		{
			name: "absence fields while available",
			mutate: func(f *models.StaffForm) {
				f.AbsenceReason = "leave"
				f.AbsenceDuration = models.DurationDay
			},
			wantErrors: 2,
			wantFields: []string{"absenceReason", "absenceDuration"},
		},
		{
			name: "unknown duration",
			mutate: func(f *models.StaffForm) {
				f.IsAvailable = boolPtr(false)
				f.AbsenceDuration = "month"
			},
			wantErrors: 1,
			wantFields: []string{"absenceDuration"},
		},
		{
			name: "return date today is not in the future",
			mutate: func(f *models.StaffForm) {
				f.IsAvailable = boolPtr(false)
				f.AbsenceDuration = models.DurationDays
				f.ExpectedReturnDate = "2026-10-18"
			},
			wantErrors: 1,
			wantFields: []string{"expectedReturnDate"},
		},
		{
			name: "return date with hour duration",
			mutate: func(f *models.StaffForm) {
				f.IsAvailable = boolPtr(false)
				f.AbsenceDuration = models.DurationHour
				f.ExpectedReturnDate = "2026-10-19"
			},
			wantErrors: 1,
			wantFields: []string{"expectedReturnDate"},
		},
		{
			name: "malformed return date",
			mutate: func(f *models.StaffForm) {
				f.IsAvailable = boolPtr(false)
				f.AbsenceDuration = models.DurationDays
				f.ExpectedReturnDate = "19/10/2026"
			},
			wantErrors: 1,
			wantFields: []string{"expectedReturnDate"},
		},
		{
			name:       "malformed start date",
			mutate:     func(f *models.StaffForm) { f.StartDate = "yesterday" },
			wantErrors: 1,
			wantFields: []string{"startDate"},
		},
		{
			name: "multiple validation errors",
			mutate: func(f *models.StaffForm) {
				f.FirstName = ""
				f.LastName = ""
				f.Function = ""
				f.Department = ""
				f.Extension = ""
				f.Email = "bad"
			},
			wantErrors: 6,
			wantFields: []string{"firstName", "lastName", "function", "department", "extension", "email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			form.Normalize()

			errs := validator.ValidateForm(&form, now, nil)
			if len(errs) != tt.wantErrors {
				t.Errorf("ValidateForm() got %d errors, want %d. Errors: %v", len(errs), tt.wantErrors, errs)
			}
			for _, field := range tt.wantFields {
				if _, ok := errs[field]; !ok {
					t.Errorf("Expected error for field '%s' but not found", field)
				}
			}
		})
	}
}

func TestValidateForm_WhitespaceOnlyIsMissing(t *testing.T) {
	validator := NewValidator(time.UTC)
	form := validForm()
	form.FirstName = "   "
	form.Normalize()

	errs := validator.ValidateForm(&form, now, nil)
	if _, ok := errs["firstName"]; !ok {
		t.Errorf("whitespace-only first name should be rejected, got %v", errs)
	}
}

func TestValidateForm_UnchangedPastReturnDateIsAccepted(t *testing.T) {
	validator := NewValidator(time.UTC)
	past := time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)

	form := validForm()
	form.IsAvailable = boolPtr(false)
	form.AbsenceDuration = models.DurationWeeks
	form.ExpectedReturnDate = "2026-10-10"
	form.Normalize()

	if errs := validator.ValidateForm(&form, now, &past); errs != nil {
		t.Errorf("unchanged return date should not be re-checked, got %v", errs)
	}
	if errs := validator.ValidateForm(&form, now, nil); errs == nil {
		t.Error("fresh past return date should be rejected")
	}
}

func TestValidateForm_TodayUsesLocation(t *testing.T) {
	// 23:30 UTC on the 18th is already the 19th in Tokyo
	loc := time.FixedZone("UTC+9", 9*3600)
	validator := NewValidator(loc)
	late := time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC)

	form := validForm()
	form.IsAvailable = boolPtr(false)
	form.AbsenceDuration = models.DurationDays
	form.ExpectedReturnDate = "2026-10-19"
	form.Normalize()

	if errs := validator.ValidateForm(&form, late, nil); errs == nil {
		t.Error("return date equal to local today should be rejected")
	}
}

func TestValidateAbsence(t *testing.T) {
	validator := NewValidator(time.UTC)

	tests := []struct {
		name       string
		req        models.AbsenceRequest
		wantFields []string
	}{
		{
			name: "valid with return date",
			req:  models.AbsenceRequest{Reason: "congé", Duration: models.DurationDays, ExpectedReturnDate: "2026-10-19"},
		},
		{
			name: "valid undetermined",
			req:  models.AbsenceRequest{Reason: "sick leave", Duration: models.DurationUndetermined},
		},
		{
			name:       "missing reason",
			req:        models.AbsenceRequest{Reason: "  ", Duration: models.DurationDay},
			wantFields: []string{"reason"},
		},
		{
			name:       "missing duration",
			req:        models.AbsenceRequest{Reason: "mission"},
			wantFields: []string{"duration"},
		},
		{
			name:       "return date in the past",
			req:        models.AbsenceRequest{Reason: "mission", Duration: models.DurationWeek, ExpectedReturnDate: "2026-10-01"},
			wantFields: []string{"expectedReturnDate"},
		},
		{
			name:       "return date with undetermined duration",
			req:        models.AbsenceRequest{Reason: "mission", Duration: models.DurationUndetermined, ExpectedReturnDate: "2026-11-01"},
			wantFields: []string{"expectedReturnDate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			errs := validator.ValidateAbsence(&req, now)
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("ValidateAbsence() got %v, want fields %v", errs, tt.wantFields)
			}
			for _, field := range tt.wantFields {
				if _, ok := errs[field]; !ok {
					t.Errorf("Expected error for field '%s' but not found", field)
				}
			}
		})
	}
}

func TestValidatePatch(t *testing.T) {
	validator := NewValidator(time.UTC)
	reason := "leave"
	empty := ""

	if errs := validator.ValidatePatch(&models.StaffPatch{IsAvailable: boolPtr(true), AbsenceReason: &reason}); errs == nil {
		t.Error("available patch carrying a reason should be rejected")
	}
	if errs := validator.ValidatePatch(&models.StaffPatch{IsAvailable: boolPtr(true), AbsenceReason: &empty}); errs != nil {
		t.Errorf("clearing the reason while becoming available is fine, got %v", errs)
	}
	if errs := validator.ValidatePatch(&models.StaffPatch{IsAvailable: boolPtr(false), AbsenceReason: &reason}); errs != nil {
		t.Errorf("absent patch with a reason is fine, got %v", errs)
	}
}

func TestBatch(t *testing.T) {
	b := NewBatch()
	b.AddEmail("Anna@Example.org")
	if !b.SeenEmail("anna@example.org") {
		t.Error("email lookups should be case-insensitive")
	}
	if b.SeenID("x") {
		t.Error("unexpected id")
	}
	b.AddID("x")
	if !b.SeenID("x") {
		t.Error("id should be tracked")
	}
}
