package models

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleHR     Role = "HR"
	RoleWorker Role = "WORKER"
)

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, bool) {
	switch Role(upper(s)) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleHR:
		return RoleHR, true
	case RoleWorker:
		return RoleWorker, true
	}
	return "", false
}

type Employee struct {
	ID            string   `json:"id"`
	Name          string   `json:"name" validate:"required"`
	Email         string   `json:"email" validate:"required,email"`
	Role          Role     `json:"role" validate:"oneof=ADMIN HR WORKER"`
	Department    string   `json:"department,omitempty"`
	HourlyRate    *float64 `json:"hourlyRate,omitempty" validate:"omitempty,gte=0"`
	JoinedAt      string   `json:"joinedAt"`
	FingerprintID string   `json:"fingerprintId,omitempty"`
}

// CanViewAll reports whether the employee sees organisation-wide data.
// ADMIN and HR do; workers only see their own records.
func (e *Employee) CanViewAll() bool {
	return e.Role == RoleAdmin || e.Role == RoleHR
}

// IsAdmin is kept for command gating: roster changes are open to ADMIN and HR.
func (e *Employee) IsAdmin() bool {
	return e.CanViewAll()
}

// DepartmentOr returns the department or fallback when it is empty.
func (e *Employee) DepartmentOr(fallback string) string {
	if e.Department == "" {
		return fallback
	}
	return e.Department
}

// Clone returns a copy that shares no pointers with e.
func (e Employee) Clone() Employee {
	if e.HourlyRate != nil {
		rate := *e.HourlyRate
		e.HourlyRate = &rate
	}
	return e
}

// Rate is a convenience for building an optional hourly rate.
func Rate(v float64) *float64 {
	return &v
}
