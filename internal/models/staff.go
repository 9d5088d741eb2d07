package models

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format used by forms, seed files and exports
const DateLayout = "2006-01-02"

// Department is an organizational unit. The set is open: known departments carry
// a display label, any other non-empty value is accepted as-is.
type Department string

const (
	DepartmentDirection      Department = "direction"
	DepartmentReception      Department = "reception"
	DepartmentHumanResources Department = "human-resources"
	DepartmentFinance        Department = "finance"
	DepartmentIT             Department = "it"
	DepartmentLegal          Department = "legal"
	DepartmentCommunication  Department = "communication"
	DepartmentSecurity       Department = "security"
	DepartmentLogistics      Department = "logistics"
)

// KnownDepartments lists the departments that have a display label, in display order
var KnownDepartments = []Department{
	DepartmentDirection,
	DepartmentReception,
	DepartmentHumanResources,
	DepartmentFinance,
	DepartmentIT,
	DepartmentLegal,
	DepartmentCommunication,
	DepartmentSecurity,
	DepartmentLogistics,
}

// Label returns the display label for the department
func (d Department) Label() string {
	switch d {
	case DepartmentDirection:
		return "General Management"
	case DepartmentReception:
		return "Front Desk"
	case DepartmentHumanResources:
		return "Human Resources"
	case DepartmentFinance:
		return "Finance & Accounting"
	case DepartmentIT:
		return "Information Technology"
	case DepartmentLegal:
		return "Legal Affairs"
	case DepartmentCommunication:
		return "Communication"
	case DepartmentSecurity:
		return "Security"
	case DepartmentLogistics:
		return "Logistics"
	}
	return string(d)
}

// Known reports whether the department has a dedicated label
func (d Department) Known() bool {
	for _, k := range KnownDepartments {
		if k == d {
			return true
		}
	}
	return false
}

// AvailabilityStatus is the presence state of a staff member
type AvailabilityStatus string

const (
	StatusAvailable AvailabilityStatus = "available"
	StatusAbsent    AvailabilityStatus = "absent"
)

// AvailabilityStatuses lists every availability state
var AvailabilityStatuses = []AvailabilityStatus{StatusAvailable, StatusAbsent}

// Label returns the display label for the status
func (s AvailabilityStatus) Label() string {
	switch s {
	case StatusAvailable:
		return "Available"
	case StatusAbsent:
		return "Absent"
	}
	return string(s)
}

// AbsenceDuration classifies how long an absence is expected to last
type AbsenceDuration string

const (
	DurationHour         AbsenceDuration = "hour"
	DurationDay          AbsenceDuration = "day"
	DurationDays         AbsenceDuration = "days"
	DurationWeek         AbsenceDuration = "week"
	DurationWeeks        AbsenceDuration = "weeks"
	DurationUndetermined AbsenceDuration = "undetermined"
)

// AbsenceDurations lists every duration class in display order
var AbsenceDurations = []AbsenceDuration{
	DurationHour,
	DurationDay,
	DurationDays,
	DurationWeek,
	DurationWeeks,
	DurationUndetermined,
}

// Label returns the display label for the duration
func (d AbsenceDuration) Label() string {
	switch d {
	case DurationHour:
		return "About an hour"
	case DurationDay:
		return "One day"
	case DurationDays:
		return "Several days"
	case DurationWeek:
		return "One week"
	case DurationWeeks:
		return "Several weeks"
	case DurationUndetermined:
		return "Undetermined"
	}
	return string(d)
}

// Valid reports whether d is one of the six duration classes
func (d AbsenceDuration) Valid() bool {
	switch d {
	case DurationHour, DurationDay, DurationDays, DurationWeek, DurationWeeks, DurationUndetermined:
		return true
	}
	return false
}

// AllowsReturnDate reports whether an expected return date may accompany this duration
func (d AbsenceDuration) AllowsReturnDate() bool {
	switch d {
	case DurationDays, DurationWeek, DurationWeeks:
		return true
	}
	return false
}

// StaffRecord represents one member of the staff roster
type StaffRecord struct {
	ID         string     `json:"id" yaml:"id"`
	FirstName  string     `json:"firstName" yaml:"firstName"`
	LastName   string     `json:"lastName" yaml:"lastName"`
	Function   string     `json:"function" yaml:"function"`
	Department Department `json:"department" yaml:"department"`
	Location   string     `json:"location,omitempty" yaml:"location,omitempty"`
	Extension  string     `json:"extension" yaml:"extension"`
	Email      string     `json:"email" yaml:"email"`

	IsAvailable        bool            `json:"isAvailable" yaml:"isAvailable"`
	AbsenceReason      string          `json:"absenceReason,omitempty" yaml:"absenceReason,omitempty"`
	AbsenceDuration    AbsenceDuration `json:"absenceDuration,omitempty" yaml:"absenceDuration,omitempty"`
	ExpectedReturnDate *time.Time      `json:"expectedReturnDate,omitempty" yaml:"expectedReturnDate,omitempty"`

	Role             string     `json:"role,omitempty" yaml:"role,omitempty"`
	Skills           []string   `json:"skills,omitempty" yaml:"skills,omitempty"`
	Languages        []string   `json:"languages,omitempty" yaml:"languages,omitempty"`
	StartDate        *time.Time `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EmergencyContact string     `json:"emergencyContact,omitempty" yaml:"emergencyContact,omitempty"`

	LastSeen *time.Time `json:"lastSeen,omitempty" yaml:"lastSeen,omitempty"`
}

// Status returns the availability state of the record
func (r *StaffRecord) Status() AvailabilityStatus {
	if r.IsAvailable {
		return StatusAvailable
	}
	return StatusAbsent
}

// FullName returns "LastName FirstName", the directory's sort and display key
func (r *StaffRecord) FullName() string {
	return strings.TrimSpace(r.LastName + " " + r.FirstName)
}

// HasAbsenceMetadata reports whether any absence field is set
func (r *StaffRecord) HasAbsenceMetadata() bool {
	return r.AbsenceReason != "" || r.AbsenceDuration != "" || r.ExpectedReturnDate != nil
}

// ClearAbsence removes the reason, duration and expected return date
func (r *StaffRecord) ClearAbsence() {
	r.AbsenceReason = ""
	r.AbsenceDuration = ""
	r.ExpectedReturnDate = nil
}

// Clone returns a deep copy so callers can never alias roster state
func (r StaffRecord) Clone() StaffRecord {
	c := r
	c.Skills = cloneStrings(r.Skills)
	c.Languages = cloneStrings(r.Languages)
	c.ExpectedReturnDate = cloneTime(r.ExpectedReturnDate)
	c.StartDate = cloneTime(r.StartDate)
	c.LastSeen = cloneTime(r.LastSeen)
	return c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// ParseDate parses a calendar date into midnight UTC
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// FormatDate renders an optional calendar date, empty when unset
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// DateOf returns the calendar date of t in its own location, as midnight UTC
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
