package service

import (
	"biopay/internal/aggregate"
	"biopay/internal/ledger"
	"biopay/internal/models"
	"biopay/internal/payroll"
	"biopay/pkg/clockfmt"
)

// Dashboard is the summary a viewer sees: a chart series for the window plus
// month-to-date figures for their scope.
type Dashboard struct {
	Viewer         models.Employee
	Scope          string
	WindowDays     int
	Series         []aggregate.Point
	HasData        bool
	MonthHours     float64
	EstimatedGross float64
	TodayCount     int
	Open           *models.AttendanceEntry
}

// Dashboard builds the summary for viewerID. Window sizes other than 7 and
// 30 fall back to 7.
func (w *Workspace) Dashboard(viewerID string, windowDays int) (Dashboard, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	viewer, err := w.employee(viewerID)
	if err != nil {
		return Dashboard{}, err
	}
	if windowDays != 30 {
		windowDays = 7
	}

	now := w.clock()
	scope := aggregate.Scope(&viewer)
	series := aggregate.Series(w.snap.Attendance, scope, windowDays, now)
	monthHours := aggregate.MonthlyTotal(w.snap.Attendance, scope, now.Year(), int(now.Month()))

	d := Dashboard{
		Viewer:         viewer,
		Scope:          scope,
		WindowDays:     windowDays,
		Series:         series,
		HasData:        aggregate.HasData(series),
		MonthHours:     monthHours,
		EstimatedGross: payroll.EstimateGross(monthHours, payroll.RateFor(&viewer)),
		TodayCount:     aggregate.TodayCount(w.snap.Attendance, now),
	}

	if idx, ok := ledger.OpenEntry(w.snap.Attendance, viewer.ID, clockfmt.FormatDate(now)); ok {
		open := w.snap.Attendance[idx]
		d.Open = &open
	}
	return d, nil
}
