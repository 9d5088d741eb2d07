package models

import (
	"sort"
	"strings"
	"time"
)

// FieldErrors maps a form field name to a human-readable message
type FieldErrors map[string]string

// Add records a message for field, keeping the first message reported
func (fe FieldErrors) Add(field, message string) {
	if _, ok := fe[field]; !ok {
		fe[field] = message
	}
}

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return strings.Join(parts, "; ")
}

// StaffForm is the create/edit payload: a StaffRecord without id and lastSeen.
// Dates are carried as YYYY-MM-DD strings so malformed input surfaces as a field error.
type StaffForm struct {
	FirstName  string     `json:"firstName" yaml:"firstName" validate:"required"`
	LastName   string     `json:"lastName" yaml:"lastName" validate:"required"`
	Function   string     `json:"function" yaml:"function" validate:"required"`
	Department Department `json:"department" yaml:"department" validate:"required"`
	Location   string     `json:"location,omitempty" yaml:"location,omitempty"`
	Extension  string     `json:"extension" yaml:"extension" validate:"required,extension"`
	Email      string     `json:"email" yaml:"email" validate:"required,email"`

	// IsAvailable defaults to true when omitted on creation
	IsAvailable        *bool           `json:"isAvailable,omitempty" yaml:"isAvailable,omitempty"`
	AbsenceReason      string          `json:"absenceReason,omitempty" yaml:"absenceReason,omitempty"`
	AbsenceDuration    AbsenceDuration `json:"absenceDuration,omitempty" yaml:"absenceDuration,omitempty" validate:"omitempty,duration"`
	ExpectedReturnDate string          `json:"expectedReturnDate,omitempty" yaml:"expectedReturnDate,omitempty" validate:"omitempty,datetime=2006-01-02"`

	Role             string   `json:"role,omitempty" yaml:"role,omitempty"`
	Skills           []string `json:"skills,omitempty" yaml:"skills,omitempty"`
	Languages        []string `json:"languages,omitempty" yaml:"languages,omitempty"`
	StartDate        string   `json:"startDate,omitempty" yaml:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EmergencyContact string   `json:"emergencyContact,omitempty" yaml:"emergencyContact,omitempty"`
}

// Available resolves the optional availability flag, defaulting to true
func (f *StaffForm) Available() bool {
	return f.IsAvailable == nil || *f.IsAvailable
}

// Normalize trims surrounding whitespace and drops empty tags
func (f *StaffForm) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Function = strings.TrimSpace(f.Function)
	f.Department = Department(strings.TrimSpace(string(f.Department)))
	f.Location = strings.TrimSpace(f.Location)
	f.Extension = strings.TrimSpace(f.Extension)
	f.Email = strings.TrimSpace(f.Email)
	f.AbsenceReason = strings.TrimSpace(f.AbsenceReason)
	f.AbsenceDuration = AbsenceDuration(strings.ToLower(strings.TrimSpace(string(f.AbsenceDuration))))
	f.ExpectedReturnDate = strings.TrimSpace(f.ExpectedReturnDate)
	f.Role = strings.TrimSpace(f.Role)
	f.Skills = compactTags(f.Skills)
	f.Languages = compactTags(f.Languages)
	f.StartDate = strings.TrimSpace(f.StartDate)
	f.EmergencyContact = strings.TrimSpace(f.EmergencyContact)
}

func compactTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// FormFromRecord projects a record back into its editable form
func FormFromRecord(r StaffRecord) StaffForm {
	available := r.IsAvailable
	return StaffForm{
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Function:           r.Function,
		Department:         r.Department,
		Location:           r.Location,
		Extension:          r.Extension,
		Email:              r.Email,
		IsAvailable:        &available,
		AbsenceReason:      r.AbsenceReason,
		AbsenceDuration:    r.AbsenceDuration,
		ExpectedReturnDate: FormatDate(r.ExpectedReturnDate),
		Role:               r.Role,
		Skills:             cloneStrings(r.Skills),
		Languages:          cloneStrings(r.Languages),
		StartDate:          FormatDate(r.StartDate),
		EmergencyContact:   r.EmergencyContact,
	}
}

// ApplyTo copies the form onto r. The form must already be validated; dates that
// fail to parse are left unset.
func (f StaffForm) ApplyTo(r *StaffRecord) {
	r.FirstName = f.FirstName
	r.LastName = f.LastName
	r.Function = f.Function
	r.Department = f.Department
	r.Location = f.Location
	r.Extension = f.Extension
	r.Email = f.Email
	r.IsAvailable = f.Available()
	r.AbsenceReason = f.AbsenceReason
	r.AbsenceDuration = f.AbsenceDuration
	r.ExpectedReturnDate = optionalDate(f.ExpectedReturnDate)
	r.Role = f.Role
	r.Skills = cloneStrings(f.Skills)
	r.Languages = cloneStrings(f.Languages)
	r.StartDate = optionalDate(f.StartDate)
	r.EmergencyContact = f.EmergencyContact
	if r.IsAvailable {
		r.ClearAbsence()
	}
}

func optionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil
	}
	return &t
}

// StaffPatch is a field-level edit; nil fields are left untouched
type StaffPatch struct {
	FirstName  *string     `json:"firstName,omitempty"`
	LastName   *string     `json:"lastName,omitempty"`
	Function   *string     `json:"function,omitempty"`
	Department *Department `json:"department,omitempty"`
	Location   *string     `json:"location,omitempty"`
	Extension  *string     `json:"extension,omitempty"`
	Email      *string     `json:"email,omitempty"`

	IsAvailable        *bool            `json:"isAvailable,omitempty"`
	AbsenceReason      *string          `json:"absenceReason,omitempty"`
	AbsenceDuration    *AbsenceDuration `json:"absenceDuration,omitempty"`
	ExpectedReturnDate *string          `json:"expectedReturnDate,omitempty"`

	Role             *string   `json:"role,omitempty"`
	Skills           *[]string `json:"skills,omitempty"`
	Languages        *[]string `json:"languages,omitempty"`
	StartDate        *string   `json:"startDate,omitempty"`
	EmergencyContact *string   `json:"emergencyContact,omitempty"`
}

// TouchesAvailability reports whether the patch changes any availability field
func (p StaffPatch) TouchesAvailability() bool {
	return p.IsAvailable != nil || p.AbsenceReason != nil || p.AbsenceDuration != nil || p.ExpectedReturnDate != nil
}

// TouchesAbsenceMetadata reports whether the patch sets any absence field
func (p StaffPatch) TouchesAbsenceMetadata() bool {
	return p.AbsenceReason != nil || p.AbsenceDuration != nil || p.ExpectedReturnDate != nil
}

// AbsenceRequest is the payload of a MarkAbsent transition
type AbsenceRequest struct {
	Reason             string          `json:"reason" validate:"required"`
	Duration           AbsenceDuration `json:"duration" validate:"required,duration"`
	ExpectedReturnDate string          `json:"expectedReturnDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}
