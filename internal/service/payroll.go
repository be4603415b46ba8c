package service

import (
	"context"
	"fmt"
	"time"

	"biopay/internal/models"
	"biopay/internal/payroll"

	"github.com/sirupsen/logrus"
)

// PayrollFor returns the periods viewerID may see.
func (w *Workspace) PayrollFor(viewerID string) ([]models.PayrollPeriod, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	viewer, err := w.employee(viewerID)
	if err != nil {
		return nil, err
	}
	return payroll.VisibleTo(w.snap.Payroll, &viewer), nil
}

// Payslip returns the period with periodID if viewerID may see it, along
// with the employee it belongs to.
func (w *Workspace) Payslip(viewerID, periodID string) (models.Employee, models.PayrollPeriod, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	viewer, err := w.employee(viewerID)
	if err != nil {
		return models.Employee{}, models.PayrollPeriod{}, err
	}

	for _, p := range payroll.VisibleTo(w.snap.Payroll, &viewer) {
		if p.ID != periodID {
			continue
		}
		owner, err := w.employee(p.EmployeeID)
		if err != nil {
			return models.Employee{}, models.PayrollPeriod{}, err
		}
		return owner, p, nil
	}
	return models.Employee{}, models.PayrollPeriod{}, fmt.Errorf("payroll period %s not found", periodID)
}

// RunResult reports what a payroll run produced.
type RunResult struct {
	Year    int
	Month   time.Month
	Created []models.PayrollPeriod
	Skipped []string
}

// RunPayroll creates a PENDING period for every WORKER who has none for the
// month yet. Workers that already have one are reported in Skipped.
func (w *Workspace) RunPayroll(ctx context.Context, actorID string, year int, month time.Month) (RunResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.staff(actorID); err != nil {
		return RunResult{}, err
	}
	if month < time.January || month > time.December {
		return RunResult{}, fmt.Errorf("invalid month %d", month)
	}

	now := w.clock()
	next := w.snap.Clone()
	result := RunResult{Year: year, Month: month}

	for i := range next.Employees {
		e := &next.Employees[i]
		if e.Role != models.RoleWorker {
			continue
		}
		if payroll.HasPeriod(next.Payroll, e.ID, year, month.String()) {
			result.Skipped = append(result.Skipped, e.ID)
			continue
		}
		p := payroll.BuildPeriod(e, next.Attendance, year, int(month), w.taxRate, models.PayrollPending, "p-"+w.newID())
		result.Created = append(result.Created, p)
	}

	if len(result.Created) == 0 {
		w.logger.WithFields(logrus.Fields{
			"year":  year,
			"month": month.String(),
		}).Info("Payroll run produced no new periods")
		return result, nil
	}

	next.Payroll = append(append([]models.PayrollPeriod(nil), result.Created...), next.Payroll...)
	w.activity(&next, now, fmt.Sprintf("Payroll processed for %s %d (%d employees)", month, year, len(result.Created)), models.ActivitySuccess)

	if err := w.commit(ctx, next); err != nil {
		return RunResult{}, err
	}

	w.logger.WithFields(logrus.Fields{
		"actor_id": actorID,
		"year":     year,
		"month":    month.String(),
		"created":  len(result.Created),
		"skipped":  len(result.Skipped),
	}).Info("Payroll run completed")
	return result, nil
}

// Calculate runs the salary calculator with the workspace tax rate when
// taxRatePercent is negative.
func (w *Workspace) Calculate(in payroll.Input) payroll.Breakdown {
	if in.TaxRatePercent < 0 {
		in.TaxRatePercent = w.taxRate
	}
	return payroll.Calculate(in)
}
