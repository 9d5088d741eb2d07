// Package stats computes roster summaries. Every function is pure and
// recomputed from the snapshot it is given; nothing is cached.
package stats

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/staff-directory-api/internal/models"
)

// Compute summarizes a roster snapshot
func Compute(roster []models.StaffRecord) models.Statistics {
	s := models.Statistics{
		TotalStaff:          len(roster),
		DepartmentBreakdown: Departments(roster),
		RoleBreakdown:       Roles(roster),
		AbsencesByReason:    AbsenceReasons(roster),
	}
	for i := range roster {
		if roster[i].IsAvailable {
			s.AvailableNow++
		}
	}
	s.UnavailableNow = s.TotalStaff - s.AvailableNow
	s.AvailabilityRate = Rate(s.AvailableNow, s.TotalStaff)
	return s
}

// Rate returns part/total as a percentage rounded to two decimals, 0 for an empty total
func Rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}

// Departments counts records per department, largest first, ties by first appearance
func Departments(roster []models.StaffRecord) []models.DepartmentCount {
	index := make(map[models.Department]int)
	out := []models.DepartmentCount{}
	for i := range roster {
		r := &roster[i]
		pos, ok := index[r.Department]
		if !ok {
			pos = len(out)
			index[r.Department] = pos
			out = append(out, models.DepartmentCount{Department: r.Department, Label: r.Department.Label()})
		}
		out[pos].Count++
		if r.IsAvailable {
			out[pos].AvailableCount++
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Roles counts records per non-empty role, largest first. Roles are grouped
// case-insensitively, as the role filter matches them; a group is labelled
// with the first spelling seen.
func Roles(roster []models.StaffRecord) []models.RoleCount {
	fold := cases.Fold()
	index := make(map[string]int)
	out := []models.RoleCount{}
	for i := range roster {
		role := strings.TrimSpace(roster[i].Role)
		if role == "" {
			continue
		}
		key := fold.String(role)
		pos, ok := index[key]
		if !ok {
			pos = len(out)
			index[key] = pos
			out = append(out, models.RoleCount{Role: role})
		}
		out[pos].Count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// AbsenceReasons groups absent records by reason; a missing reason counts as unspecified
func AbsenceReasons(roster []models.StaffRecord) []models.ReasonCount {
	index := make(map[string]int)
	out := []models.ReasonCount{}
	for i := range roster {
		r := &roster[i]
		if r.IsAvailable {
			continue
		}
		reason := strings.TrimSpace(r.AbsenceReason)
		if reason == "" {
			reason = models.UnspecifiedReason
		}
		pos, ok := index[reason]
		if !ok {
			pos = len(out)
			index[reason] = pos
			out = append(out, models.ReasonCount{Reason: reason})
		}
		out[pos].Count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
