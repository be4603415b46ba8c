// Package aggregate derives read-only hour totals from the attendance ledger
// for dashboards and payroll input.
package aggregate

import (
	"fmt"
	"strings"
	"time"

	"biopay/internal/models"
	"biopay/pkg/clockfmt"
)

// AllEmployees aggregates across the whole ledger (ADMIN/HR views).
const AllEmployees = "*"

// Point is one day of a chart series.
type Point struct {
	Label string  `json:"name"`
	Date  string  `json:"fullDate"`
	Hours float64 `json:"hours"`
}

// Scope returns the employee filter for viewer.
func Scope(viewer *models.Employee) string {
	if viewer.CanViewAll() {
		return AllEmployees
	}
	return viewer.ID
}

func matches(e *models.AttendanceEntry, employeeID string) bool {
	return employeeID == AllEmployees || e.EmployeeID == employeeID
}

// DailyTotal sums worked hours on date (ISO form).
func DailyTotal(entries []models.AttendanceEntry, employeeID, date string) float64 {
	var total float64
	for i := range entries {
		if entries[i].Date == date && matches(&entries[i], employeeID) {
			total += entries[i].TotalHours
		}
	}
	return total
}

// Series returns windowDays points, oldest first, ending on today. Seven-day
// windows are labelled by weekday, longer ones by day of month.
func Series(entries []models.AttendanceEntry, employeeID string, windowDays int, today time.Time) []Point {
	if windowDays <= 0 {
		return nil
	}

	points := make([]Point, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		date := clockfmt.FormatDate(day)

		label := day.Format("02")
		if windowDays == 7 {
			label = day.Format("Mon")
		}

		points = append(points, Point{
			Label: label,
			Date:  date,
			Hours: DailyTotal(entries, employeeID, date),
		})
	}
	return points
}

// HasData reports whether any point carries hours.
func HasData(points []Point) bool {
	for _, p := range points {
		if p.Hours > 0 {
			return true
		}
	}
	return false
}

// MonthPrefix is the "YYYY-MM" prefix used for month matching.
func MonthPrefix(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// MonthlyTotal sums worked hours for entries whose ISO date starts with the
// year-month prefix. The match is textual, so dates must be zero-padded.
func MonthlyTotal(entries []models.AttendanceEntry, employeeID string, year, month int) float64 {
	prefix := MonthPrefix(year, month)
	var total float64
	for i := range entries {
		if strings.HasPrefix(entries[i].Date, prefix) && matches(&entries[i], employeeID) {
			total += entries[i].TotalHours
		}
	}
	return total
}

// TodayCount counts entries dated today across all employees.
func TodayCount(entries []models.AttendanceEntry, today time.Time) int {
	date := clockfmt.FormatDate(today)
	n := 0
	for i := range entries {
		if entries[i].Date == date {
			n++
		}
	}
	return n
}
