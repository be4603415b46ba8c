package repository

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"biopay/internal/models"
	"biopay/pkg/clockfmt"
)

const seedDays = 35

// SeedSnapshot builds the demo organisation: an admin, an HR officer and two
// workers with five weeks of weekday attendance and one paid period each for
// the current month.
func SeedSnapshot(now time.Time, rng *rand.Rand) models.Snapshot {
	employees := []models.Employee{
		{ID: "u1", Name: "Admin User", Email: "admin@biopay.com", Role: models.RoleAdmin, JoinedAt: "2023-01-01"},
		{ID: "u2", Name: "Sarah HR", Email: "sarah@biopay.com", Role: models.RoleHR, JoinedAt: "2023-02-15"},
		{ID: "w1", Name: "John Doe", Email: "john@biopay.com", Role: models.RoleWorker, Department: "Manufacturing", HourlyRate: models.Rate(25), JoinedAt: "2023-03-10", FingerprintID: "fp-1001"},
		{ID: "w2", Name: "Jane Smith", Email: "jane@biopay.com", Role: models.RoleWorker, Department: "Logistics", HourlyRate: models.Rate(22), JoinedAt: "2023-04-05", FingerprintID: "fp-1002"},
	}

	var attendance []models.AttendanceEntry
	for i := 0; i < seedDays; i++ {
		day := now.AddDate(0, 0, -i)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		for _, id := range []string{"w1", "w2"} {
			hours := 7.5 + rng.Float64()*2
			attendance = append(attendance, models.AttendanceEntry{
				ID:         fmt.Sprintf("gen-%s-%d", id, i),
				EmployeeID: id,
				Date:       clockfmt.FormatDate(day),
				CheckIn:    "08:00 AM",
				CheckOut:   "05:00 PM",
				TotalHours: math.Round(hours*100) / 100,
				Status:     models.StatusPresent,
			})
		}
	}

	month := now.Month().String()
	payroll := []models.PayrollPeriod{
		{ID: "p1", EmployeeID: "w1", Month: month, Year: now.Year(), TotalHours: 168.5, GrossPay: 4212.5, Deductions: 420, NetPay: 3792.5, Status: models.PayrollPaid},
		{ID: "p2", EmployeeID: "w2", Month: month, Year: now.Year(), TotalHours: 158.2, GrossPay: 3480.4, Deductions: 310, NetPay: 3170.4, Status: models.PayrollPaid},
	}

	today := clockfmt.FormatDate(now)
	activities := []models.ActivityLogEntry{
		{ID: "2", Text: "Shift patterns synchronized", Time: "07:30 AM", Date: today, Status: models.ActivitySuccess},
		{ID: "1", Text: "Biometric kernel ready", Time: "07:00 AM", Date: today, Status: models.ActivityInfo},
	}

	return models.Snapshot{
		Employees:  employees,
		Attendance: attendance,
		Payroll:    payroll,
		Activities: activities,
	}
}
