// Package payroll turns hour totals into pay figures. Calculate does no
// rounding and no clamping; callers keep inputs finite and non-negative and
// the tax rate within 0..100.
package payroll

import (
	"fmt"
	"strings"
	"time"

	"biopay/internal/aggregate"
	"biopay/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// DefaultHourlyRate applies when an employee record carries no rate.
	DefaultHourlyRate = 20.0
	// OvertimeMultiplier scales the hourly rate for overtime hours.
	OvertimeMultiplier = 1.5
)

type Input struct {
	Hours          float64
	OvertimeHours  float64
	HourlyRate     float64
	TaxRatePercent float64
}

type Breakdown struct {
	RegularPay  float64
	OvertimePay float64
	GrossPay    float64
	TaxAmount   float64
	NetPay      float64
}

// Calculate applies
//
//	regular  = hours * rate
//	overtime = overtimeHours * rate * 1.5
//	gross    = regular + overtime
//	tax      = gross * taxRate / 100
//	net      = gross - tax
func Calculate(in Input) Breakdown {
	regular := in.Hours * in.HourlyRate
	overtime := in.OvertimeHours * in.HourlyRate * OvertimeMultiplier
	gross := regular + overtime
	tax := gross * in.TaxRatePercent / 100

	return Breakdown{
		RegularPay:  regular,
		OvertimePay: overtime,
		GrossPay:    gross,
		TaxAmount:   tax,
		NetPay:      gross - tax,
	}
}

// RateFor returns the employee's hourly rate or DefaultHourlyRate.
func RateFor(e *models.Employee) float64 {
	if e.HourlyRate == nil {
		return DefaultHourlyRate
	}
	return *e.HourlyRate
}

// EstimateGross is the dashboard estimate: month hours at the plain rate.
func EstimateGross(monthHours, rate float64) float64 {
	return monthHours * rate
}

// BuildPeriod derives a payroll period for one employee from the ledger's
// monthly total. All hours are paid at the regular rate and the tax amount
// is the only deduction. Figures are rounded to cents so the stored record
// satisfies net == gross - deductions exactly.
func BuildPeriod(
	e *models.Employee,
	entries []models.AttendanceEntry,
	year, month int,
	taxRatePercent float64,
	status models.PayrollStatus,
	id string,
) models.PayrollPeriod {
	if id == "" {
		id = "p-" + uuid.NewString()
	}

	hours := aggregate.MonthlyTotal(entries, e.ID, year, month)
	b := Calculate(Input{
		Hours:          hours,
		HourlyRate:     RateFor(e),
		TaxRatePercent: taxRatePercent,
	})

	gross := decimal.NewFromFloat(b.GrossPay).Round(2)
	deductions := decimal.NewFromFloat(b.TaxAmount).Round(2)
	net := gross.Sub(deductions)

	return models.PayrollPeriod{
		ID:         id,
		EmployeeID: e.ID,
		Month:      time.Month(month).String(),
		Year:       year,
		TotalHours: decimal.NewFromFloat(hours).Round(2).InexactFloat64(),
		GrossPay:   gross.InexactFloat64(),
		Deductions: deductions.InexactFloat64(),
		NetPay:     net.InexactFloat64(),
		Status:     status,
	}
}

// VisibleTo filters periods down to what viewer may see.
func VisibleTo(periods []models.PayrollPeriod, viewer *models.Employee) []models.PayrollPeriod {
	if viewer.CanViewAll() {
		return append([]models.PayrollPeriod(nil), periods...)
	}
	var out []models.PayrollPeriod
	for _, p := range periods {
		if p.EmployeeID == viewer.ID {
			out = append(out, p)
		}
	}
	return out
}

// RemoveEmployee drops every period owned by employeeID and reports the ids
// it removed.
func RemoveEmployee(periods []models.PayrollPeriod, employeeID string) ([]models.PayrollPeriod, []string) {
	out := make([]models.PayrollPeriod, 0, len(periods))
	var removed []string
	for _, p := range periods {
		if p.EmployeeID == employeeID {
			removed = append(removed, p.ID)
			continue
		}
		out = append(out, p)
	}
	return out, removed
}

// HasPeriod reports whether employeeID already has a period for month/year.
func HasPeriod(periods []models.PayrollPeriod, employeeID string, year int, month string) bool {
	for _, p := range periods {
		if p.EmployeeID == employeeID && p.Year == year && strings.EqualFold(p.Month, month) {
			return true
		}
	}
	return false
}

// FormatMoney renders an amount with two decimals and a dollar sign.
func FormatMoney(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// PayslipText is the plain-text salary slip for one period.
func PayslipText(e *models.Employee, p *models.PayrollPeriod) string {
	fingerprint := e.FingerprintID
	if fingerprint == "" {
		fingerprint = "N/A"
	}

	var b strings.Builder
	b.WriteString("BIOPAY SALARY SLIP\n")
	fmt.Fprintf(&b, "Employee Name: %s\n", e.Name)
	fmt.Fprintf(&b, "Employee Email: %s\n", e.Email)
	fmt.Fprintf(&b, "Biometric ID: %s\n", fingerprint)
	fmt.Fprintf(&b, "Pay Period: %s %d\n", p.Month, p.Year)
	fmt.Fprintf(&b, "Hours Worked: %.1f\n\n", p.TotalHours)
	fmt.Fprintf(&b, "Gross Pay: %s\n", FormatMoney(p.GrossPay))
	fmt.Fprintf(&b, "Tax & Other Deductions: -%s\n", FormatMoney(p.Deductions))
	fmt.Fprintf(&b, "NET PAYABLE: %s\n", FormatMoney(p.NetPay))
	fmt.Fprintf(&b, "Status: %s", p.Status)
	return b.String()
}

// DescribeBreakdown renders a calculator result for chat output.
func DescribeBreakdown(in Input, b Breakdown) string {
	return fmt.Sprintf(
		"Rate: %s/h\nRegular (%.1fh): %s\nOvertime (%.1fh): %s\nGross: %s\nTax (%.1f%%): -%s\nNet: %s",
		FormatMoney(in.HourlyRate),
		in.Hours, FormatMoney(b.RegularPay),
		in.OvertimeHours, FormatMoney(b.OvertimePay),
		FormatMoney(b.GrossPay),
		in.TaxRatePercent, FormatMoney(b.TaxAmount),
		FormatMoney(b.NetPay),
	)
}
