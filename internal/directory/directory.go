// Package directory validates and applies roster changes. Removing an
// employee also removes every attendance entry and payroll period they own,
// in the same returned snapshot.
package directory

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"biopay/internal/aggregate"
	"biopay/internal/ledger"
	"biopay/internal/models"
	"biopay/internal/payroll"
	"biopay/pkg/clockfmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrDuplicateEmail  = errors.New("an employee with this email already exists")
	ErrNotFound        = errors.New("employee not found")
	ErrInvalidEmployee = errors.New("invalid employee")
	ErrDuplicateID     = errors.New("an employee with this id already exists")
	ErrReservedID      = errors.New("employee id is reserved")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Patch lists the fields an update may change. Nil fields are kept.
type Patch struct {
	Name       *string
	Email      *string
	Role       *models.Role
	Department *string
	HourlyRate *float64
}

// Removal describes what Remove took out of the snapshot. TerminateSession
// tells the caller to end any session bound to the removed employee.
type Removal struct {
	Employee             models.Employee
	RemovedAttendanceIDs []string
	RemovedPayrollIDs    []string
	TerminateSession     bool
}

// Validate checks the struct rules on an employee record.
func Validate(e *models.Employee) error {
	if err := validate.Struct(e); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidEmployee, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidEmployee, err)
	}
	return nil
}

// emailTaken reports whether email is used by anyone other than exceptID.
func emailTaken(roster []models.Employee, email, exceptID string) bool {
	for i := range roster {
		if roster[i].ID != exceptID && strings.EqualFold(roster[i].Email, email) {
			return true
		}
	}
	return false
}

// Add appends e to the roster. Empty id, join date and fingerprint token are
// filled in from now. A supplied id must be unused and must not be the
// all-employees scope marker.
func Add(roster []models.Employee, e models.Employee, now time.Time) ([]models.Employee, models.Employee, error) {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.TrimSpace(e.Email)
	if e.Role == "" {
		e.Role = models.RoleWorker
	}

	if err := Validate(&e); err != nil {
		return roster, models.Employee{}, err
	}
	if emailTaken(roster, e.Email, "") {
		return roster, models.Employee{}, ErrDuplicateEmail
	}

	e.ID = strings.TrimSpace(e.ID)
	if e.ID == aggregate.AllEmployees {
		return roster, models.Employee{}, fmt.Errorf("%w: %q", ErrReservedID, e.ID)
	}
	if e.ID != "" && indexOf(roster, e.ID) >= 0 {
		return roster, models.Employee{}, fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
	}
	if e.ID == "" {
		e.ID = "u-" + uuid.NewString()
	}
	if e.JoinedAt == "" {
		e.JoinedAt = clockfmt.FormatDate(now)
	}
	if e.FingerprintID == "" {
		e.FingerprintID = fmt.Sprintf("fp-%d", 1000+rand.IntN(9000))
	}

	out := make([]models.Employee, 0, len(roster)+1)
	out = append(out, roster...)
	out = append(out, e)
	return out, e, nil
}

// Update applies p to the employee with id. Keeping one's own email is not a
// duplicate.
func Update(roster []models.Employee, id string, p Patch) ([]models.Employee, models.Employee, error) {
	idx := indexOf(roster, id)
	if idx < 0 {
		return roster, models.Employee{}, ErrNotFound
	}

	e := roster[idx]
	if p.Name != nil {
		e.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		e.Email = strings.TrimSpace(*p.Email)
	}
	if p.Role != nil {
		e.Role = *p.Role
	}
	if p.Department != nil {
		e.Department = *p.Department
	}
	if p.HourlyRate != nil {
		e.HourlyRate = models.Rate(*p.HourlyRate)
	}

	if err := Validate(&e); err != nil {
		return roster, models.Employee{}, err
	}
	if emailTaken(roster, e.Email, id) {
		return roster, models.Employee{}, ErrDuplicateEmail
	}

	out := append([]models.Employee(nil), roster...)
	out[idx] = e
	return out, e, nil
}

// Remove deletes the employee with id and everything that references them.
func Remove(s models.Snapshot, id string) (models.Snapshot, Removal, error) {
	idx := indexOf(s.Employees, id)
	if idx < 0 {
		return s, Removal{}, ErrNotFound
	}

	removed := s.Employees[idx]

	out := s
	out.Employees = make([]models.Employee, 0, len(s.Employees)-1)
	out.Employees = append(out.Employees, s.Employees[:idx]...)
	out.Employees = append(out.Employees, s.Employees[idx+1:]...)

	var r Removal
	r.Employee = removed
	r.TerminateSession = true
	out.Attendance, r.RemovedAttendanceIDs = ledger.RemoveEmployee(s.Attendance, id)
	out.Payroll, r.RemovedPayrollIDs = payroll.RemoveEmployee(s.Payroll, id)

	return out, r, nil
}

// Search matches term case-insensitively against name, email and id. An
// empty term returns the whole roster.
func Search(roster []models.Employee, term string) []models.Employee {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []models.Employee
	for _, e := range roster {
		if term == "" ||
			strings.Contains(strings.ToLower(e.Name), term) ||
			strings.Contains(strings.ToLower(e.Email), term) ||
			strings.Contains(strings.ToLower(e.ID), term) {
			out = append(out, e.Clone())
		}
	}
	return out
}

// FindByEmail is the case-insensitive login lookup.
func FindByEmail(roster []models.Employee, email string) (models.Employee, bool) {
	email = strings.TrimSpace(email)
	for _, e := range roster {
		if strings.EqualFold(e.Email, email) {
			return e.Clone(), true
		}
	}
	return models.Employee{}, false
}

// Orphans lists attendance and payroll ids whose employee is not on the
// roster. A consistent snapshot has none.
func Orphans(s models.Snapshot) (attendanceIDs, payrollIDs []string) {
	known := make(map[string]struct{}, len(s.Employees))
	for _, e := range s.Employees {
		known[e.ID] = struct{}{}
	}
	for _, a := range s.Attendance {
		if _, ok := known[a.EmployeeID]; !ok {
			attendanceIDs = append(attendanceIDs, a.ID)
		}
	}
	for _, p := range s.Payroll {
		if _, ok := known[p.EmployeeID]; !ok {
			payrollIDs = append(payrollIDs, p.ID)
		}
	}
	return attendanceIDs, payrollIDs
}

func indexOf(roster []models.Employee, id string) int {
	for i := range roster {
		if roster[i].ID == id {
			return i
		}
	}
	return -1
}
