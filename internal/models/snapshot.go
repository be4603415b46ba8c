package models

import "strings"

// Snapshot is the full application state at one point in time. Engine
// functions take a snapshot by value and return a new one.
type Snapshot struct {
	Employees  []Employee         `json:"employees"`
	Attendance []AttendanceEntry  `json:"attendance"`
	Payroll    []PayrollPeriod    `json:"payroll"`
	Activities []ActivityLogEntry `json:"activities"`
}

// Clone returns a copy that shares no slice backing arrays with s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Employees:  make([]Employee, len(s.Employees)),
		Attendance: append([]AttendanceEntry(nil), s.Attendance...),
		Payroll:    append([]PayrollPeriod(nil), s.Payroll...),
		Activities: append([]ActivityLogEntry(nil), s.Activities...),
	}
	for i, e := range s.Employees {
		out.Employees[i] = e.Clone()
	}
	return out
}

// FindEmployee looks up an employee by id.
func (s *Snapshot) FindEmployee(id string) (*Employee, bool) {
	for i := range s.Employees {
		if s.Employees[i].ID == id {
			return &s.Employees[i], true
		}
	}
	return nil, false
}

// IsEmpty reports whether nothing has been stored yet.
func (s *Snapshot) IsEmpty() bool {
	return len(s.Employees) == 0 && len(s.Attendance) == 0 && len(s.Payroll) == 0
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
