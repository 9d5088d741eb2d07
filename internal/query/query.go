// Package query implements the roster query pipeline: free-text search,
// categorical filters and a stable sort, composed in a fixed order over a
// roster snapshot. It never mutates its input.
package query

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/staff-directory-api/internal/models"
)

// Engine runs queries with a fixed collation for the sort stage
type Engine struct {
	tag language.Tag
}

// New creates an engine sorting text keys with the collation rules of tag
func New(tag language.Tag) *Engine {
	return &Engine{tag: tag}
}

// NewFromString parses a BCP-47 tag, falling back to French on error
func NewFromString(tag string) *Engine {
	t, err := language.Parse(tag)
	if err != nil {
		t = language.French
	}
	return New(t)
}

var defaultEngine = New(language.French)

// Run applies spec to roster with the default engine
func Run(roster []models.StaffRecord, spec models.QuerySpec) []models.StaffRecord {
	return defaultEngine.Run(roster, spec)
}

// Run returns a new slice holding the records of roster selected by spec.
// Stages run in order: search, department, availability, role, location,
// absence status, sort. Records are shared with the input; callers that hand
// results outside the process boundary clone them first.
func (e *Engine) Run(roster []models.StaffRecord, spec models.QuerySpec) []models.StaffRecord {
	// Caser and Collator keep internal buffers and are not safe for concurrent use.
	fold := cases.Fold()

	out := make([]models.StaffRecord, 0, len(roster))
	term := fold.String(strings.TrimSpace(spec.SearchTerm))
	role := fold.String(strings.TrimSpace(spec.Role))
	location := fold.String(strings.TrimSpace(spec.Location))

	for i := range roster {
		r := &roster[i]
		if term != "" && !matchesSearch(fold, r, term) {
			continue
		}
		if !models.IsBypass(spec.Department) && string(r.Department) != spec.Department {
			continue
		}
		if !matchesAvailability(r, spec.Availability) {
			continue
		}
		if !models.IsBypass(role) && fold.String(strings.TrimSpace(r.Role)) != role {
			continue
		}
		if location != "" && !strings.Contains(fold.String(r.Location), location) {
			continue
		}
		if !matchesAbsence(r, spec.AbsenceStatus) {
			continue
		}
		out = append(out, *r)
	}

	if spec.SortBy != models.SortNone {
		e.sort(out, spec.SortBy, spec.SortDirection)
	}
	return out
}

// Validate reports unknown selector values as field errors
func Validate(spec models.QuerySpec) models.FieldErrors {
	errs := models.FieldErrors{}
	if !spec.Availability.Valid() {
		errs.Add("availability", "availability must be one of: all, available, unavailable")
	}
	if !spec.AbsenceStatus.Valid() {
		errs.Add("absenceStatus", "absenceStatus must be one of: all, present, absent")
	}
	if !spec.SortBy.Valid() {
		errs.Add("sortBy", "sortBy must be one of: name, department, function, lastSeen")
	}
	if !spec.SortDirection.Valid() {
		errs.Add("sortDirection", "sortDirection must be asc or desc")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func matchesSearch(fold cases.Caser, r *models.StaffRecord, term string) bool {
	fields := []string{
		r.FirstName,
		r.LastName,
		r.Function,
		string(r.Department),
		r.Email,
		r.Extension,
		r.Role,
	}
	for _, f := range fields {
		if f != "" && strings.Contains(fold.String(f), term) {
			return true
		}
	}
	for _, tags := range [][]string{r.Skills, r.Languages} {
		for _, tag := range tags {
			if strings.Contains(fold.String(tag), term) {
				return true
			}
		}
	}
	return false
}

func matchesAvailability(r *models.StaffRecord, f models.AvailabilityFilter) bool {
	switch f {
	case models.AvailabilityAvailable:
		return r.IsAvailable
	case models.AvailabilityUnavailable:
		return !r.IsAvailable
	}
	return true
}

func matchesAbsence(r *models.StaffRecord, f models.AbsenceFilter) bool {
	switch f {
	case models.AbsencePresent:
		return r.IsAvailable
	case models.AbsenceAbsent:
		return !r.IsAvailable
	}
	return true
}

func (e *Engine) sort(records []models.StaffRecord, field models.SortField, dir models.SortDirection) {
	col := collate.New(e.tag, collate.IgnoreCase)

	var cmp func(a, b *models.StaffRecord) int
	switch field {
	case models.SortByName:
		cmp = func(a, b *models.StaffRecord) int {
			if c := col.CompareString(a.LastName, b.LastName); c != 0 {
				return c
			}
			return col.CompareString(a.FirstName, b.FirstName)
		}
	case models.SortByDepartment:
		cmp = func(a, b *models.StaffRecord) int {
			return col.CompareString(a.Department.Label(), b.Department.Label())
		}
	case models.SortByFunction:
		cmp = func(a, b *models.StaffRecord) int {
			return col.CompareString(a.Function, b.Function)
		}
	case models.SortByLastSeen:
		cmp = func(a, b *models.StaffRecord) int {
			return compareTime(a.LastSeen, b.LastSeen)
		}
	default:
		return
	}

	desc := dir == models.SortDesc
	sort.SliceStable(records, func(i, j int) bool {
		if desc {
			return cmp(&records[j], &records[i]) < 0
		}
		return cmp(&records[i], &records[j]) < 0
	})
}

// compareTime orders timestamps with nil as the earliest value
func compareTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}
