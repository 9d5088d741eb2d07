package models

// FilterAll is the sentinel that disables a categorical filter stage
const FilterAll = "all"

// AvailabilityFilter selects records by today's availability
type AvailabilityFilter string

const (
	AvailabilityAll         AvailabilityFilter = FilterAll
	AvailabilityAvailable   AvailabilityFilter = "available"
	AvailabilityUnavailable AvailabilityFilter = "unavailable"
)

// Valid reports whether f is a known selector (the zero value counts as "all")
func (f AvailabilityFilter) Valid() bool {
	switch f {
	case "", AvailabilityAll, AvailabilityAvailable, AvailabilityUnavailable:
		return true
	}
	return false
}

// AbsenceFilter selects records by administrative absence status
type AbsenceFilter string

const (
	AbsenceAll     AbsenceFilter = FilterAll
	AbsencePresent AbsenceFilter = "present"
	AbsenceAbsent  AbsenceFilter = "absent"
)

// Valid reports whether f is a known selector (the zero value counts as "all")
func (f AbsenceFilter) Valid() bool {
	switch f {
	case "", AbsenceAll, AbsencePresent, AbsenceAbsent:
		return true
	}
	return false
}

// SortField names the key of the final sort stage
type SortField string

const (
	SortNone         SortField = ""
	SortByName       SortField = "name"
	SortByDepartment SortField = "department"
	SortByFunction   SortField = "function"
	SortByLastSeen   SortField = "lastSeen"
)

// Valid reports whether f is a supported sort key
func (f SortField) Valid() bool {
	switch f {
	case SortNone, SortByName, SortByDepartment, SortByFunction, SortByLastSeen:
		return true
	}
	return false
}

// SortDirection orders the sort stage
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Valid reports whether d is a supported direction (the zero value means ascending)
func (d SortDirection) Valid() bool {
	return d == "" || d == SortAsc || d == SortDesc
}

// QuerySpec combines the search, filter and sort selectors of a roster view
type QuerySpec struct {
	SearchTerm    string             `json:"searchTerm" form:"q"`
	Department    string             `json:"department" form:"department"`
	Availability  AvailabilityFilter `json:"availability" form:"availability"`
	Role          string             `json:"role,omitempty" form:"role"`
	Location      string             `json:"location,omitempty" form:"location"`
	AbsenceStatus AbsenceFilter      `json:"absenceStatus,omitempty" form:"absenceStatus"`
	SortBy        SortField          `json:"sortBy,omitempty" form:"sortBy"`
	SortDirection SortDirection      `json:"sortDirection,omitempty" form:"sortDirection"`
}

// IsBypass reports whether a categorical selector value disables its stage
func IsBypass(selector string) bool {
	return selector == "" || selector == FilterAll
}
