package models

// UnspecifiedReason groups absent records that carry no reason
const UnspecifiedReason = "unspecified"

// Statistics summarizes a roster snapshot
type Statistics struct {
	TotalStaff          int               `json:"totalStaff"`
	AvailableNow        int               `json:"availableNow"`
	UnavailableNow      int               `json:"unavailableNow"`
	AvailabilityRate    float64           `json:"availabilityRate"`
	DepartmentBreakdown []DepartmentCount `json:"departmentBreakdown"`
	RoleBreakdown       []RoleCount       `json:"roleBreakdown"`
	AbsencesByReason    []ReasonCount     `json:"absencesByReason"`
}

// DepartmentCount is one row of the department breakdown
type DepartmentCount struct {
	Department     Department `json:"department"`
	Label          string     `json:"label"`
	Count          int        `json:"count"`
	AvailableCount int        `json:"availableCount"`
}

// RoleCount is one row of the role breakdown
type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// ReasonCount is one row of the absence-reason breakdown
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}
