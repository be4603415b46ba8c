package models

import (
	"fmt"

	"biopay/pkg/clockfmt"
)

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "PRESENT"
	StatusLate    AttendanceStatus = "LATE"
	StatusAbsent  AttendanceStatus = "ABSENT"
)

// AttendanceEntry is one check-in/check-out pair. Date is the zero-padded
// ISO business day; CheckIn and CheckOut are 12-hour clock strings.
type AttendanceEntry struct {
	ID         string           `json:"id"`
	EmployeeID string           `json:"userId"`
	Date       string           `json:"date"`
	CheckIn    string           `json:"checkIn"`
	CheckOut   string           `json:"checkOut,omitempty"`
	TotalHours float64          `json:"totalHours"`
	Status     AttendanceStatus `json:"status"`
}

// IsOpen reports whether the entry is still waiting for a check-out.
func (a *AttendanceEntry) IsOpen() bool {
	return a.CheckOut == ""
}

// Duration renders worked time, or "Active..." while the entry is open.
func (a *AttendanceEntry) Duration() string {
	if a.IsOpen() {
		return "Active..."
	}
	return clockfmt.FormatHoursMinutes(a.TotalHours)
}

// FormatTime renders the check-in/out pair for display.
func (a *AttendanceEntry) FormatTime() string {
	if a.IsOpen() {
		return fmt.Sprintf("In: %s", a.CheckIn)
	}
	return fmt.Sprintf("In: %s | Out: %s", a.CheckIn, a.CheckOut)
}

// IsValid checks the fields every stored entry must carry.
func (a *AttendanceEntry) IsValid() bool {
	if a.ID == "" || a.EmployeeID == "" {
		return false
	}
	if len(a.Date) != len(clockfmt.DateLayout) {
		return false
	}
	if a.TotalHours < 0 {
		return false
	}
	if a.IsOpen() && a.TotalHours != 0 {
		return false
	}
	switch a.Status {
	case StatusPresent, StatusLate, StatusAbsent:
		return true
	}
	return false
}
