package service

import (
	"fmt"
	"strings"

	"biopay/internal/models"
	"biopay/internal/payroll"
	"biopay/pkg/clockfmt"
)

// FormatEntry renders one attendance row.
func FormatEntry(e *models.AttendanceEntry) string {
	if e == nil {
		return "❌ Entry not found"
	}

	status := "✅"
	if e.IsOpen() {
		status = "🟢"
	}
	return fmt.Sprintf("%s %s  %s  %s (%s)", status, e.Date, e.FormatTime(), e.Duration(), e.Status)
}

// FormatHistory renders an employee's attendance list.
func FormatHistory(entries []models.AttendanceEntry) string {
	if len(entries) == 0 {
		return "📭 No attendance records yet"
	}

	var b strings.Builder
	b.WriteString("📋 Attendance history:\n\n")
	for i := range entries {
		b.WriteString(FormatEntry(&entries[i]))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatDashboard renders the dashboard summary with a text bar chart.
func FormatDashboard(d Dashboard) string {
	var b strings.Builder

	if d.Viewer.CanViewAll() {
		fmt.Fprintf(&b, "📊 Organization dashboard (%s)\n\n", d.Viewer.Role)
		fmt.Fprintf(&b, "👥 Today attendance: %d\n", d.TodayCount)
		fmt.Fprintf(&b, "⏰ Hours this month: %s\n", clockfmt.FormatHoursMinutes(d.MonthHours))
	} else {
		fmt.Fprintf(&b, "📊 Dashboard for %s\n\n", d.Viewer.Name)
		fmt.Fprintf(&b, "⏰ Hours this month: %s\n", clockfmt.FormatHoursMinutes(d.MonthHours))
		fmt.Fprintf(&b, "💰 Est. gross pay: %s\n", payroll.FormatMoney(d.EstimatedGross))
	}

	if d.Open != nil {
		fmt.Fprintf(&b, "🟢 Checked in since %s\n", d.Open.CheckIn)
	}

	fmt.Fprintf(&b, "\n📈 Last %d days:\n", d.WindowDays)
	if !d.HasData {
		b.WriteString("No hours recorded in this window")
		return b.String()
	}

	for _, p := range d.Series {
		bar := strings.Repeat("▇", int(p.Hours+0.5))
		fmt.Fprintf(&b, "%s %5.1fh %s\n", p.Label, p.Hours, bar)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatPayrollList renders payroll periods one per line.
func FormatPayrollList(periods []models.PayrollPeriod, names map[string]string) string {
	if len(periods) == 0 {
		return "📭 No payroll records"
	}

	var b strings.Builder
	b.WriteString("💵 Payroll:\n\n")
	for _, p := range periods {
		name := names[p.EmployeeID]
		if name == "" {
			name = p.EmployeeID
		}
		fmt.Fprintf(&b, "%s  %s %d  %s  %.1fh  net %s  [%s]\n",
			p.ID, p.Month, p.Year, name, p.TotalHours, payroll.FormatMoney(p.NetPay), p.Status)
	}
	b.WriteString("\nUse /payslip <id> for details")
	return b.String()
}

// FormatEmployee renders one roster record.
func FormatEmployee(e *models.Employee) string {
	rate := "default"
	if e.HourlyRate != nil {
		rate = payroll.FormatMoney(*e.HourlyRate) + "/h"
	}
	return fmt.Sprintf("👤 %s (%s)\n   🆔 %s  📧 %s\n   🏢 %s  💲 %s  🔖 %s",
		e.Name, e.Role, e.ID, e.Email, e.DepartmentOr("General"), rate, fingerprintOr(e.FingerprintID))
}

// FormatEmployees renders a roster listing.
func FormatEmployees(roster []models.Employee) string {
	if len(roster) == 0 {
		return "📭 No employees match"
	}

	parts := make([]string, 0, len(roster))
	for i := range roster {
		parts = append(parts, FormatEmployee(&roster[i]))
	}
	return fmt.Sprintf("👥 Employees (%d):\n\n%s", len(roster), strings.Join(parts, "\n\n"))
}

// FormatActivities renders the audit trail.
func FormatActivities(items []models.ActivityLogEntry) string {
	if len(items) == 0 {
		return "📭 No activity yet"
	}

	icons := map[models.ActivityStatus]string{
		models.ActivitySuccess: "✅",
		models.ActivityInfo:    "ℹ️",
		models.ActivityWarning: "⚠️",
	}

	var b strings.Builder
	b.WriteString("🗒 Recent activity:\n\n")
	for _, a := range items {
		fmt.Fprintf(&b, "%s %s %s  %s\n", icons[a.Status], a.Date, a.Time, a.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatRunResult summarises a payroll run.
func FormatRunResult(r RunResult) string {
	if len(r.Created) == 0 {
		return fmt.Sprintf("ℹ️ Payroll for %s %d already exists for every worker", r.Month, r.Year)
	}

	var gross, net float64
	for _, p := range r.Created {
		gross += p.GrossPay
		net += p.NetPay
	}
	return fmt.Sprintf("✅ Payroll processed for %s %d\n\n📄 Periods created: %d\n⏭ Skipped: %d\n💰 Gross: %s\n💵 Net: %s",
		r.Month, r.Year, len(r.Created), len(r.Skipped), payroll.FormatMoney(gross), payroll.FormatMoney(net))
}

func fingerprintOr(id string) string {
	if id == "" {
		return "N/A"
	}
	return id
}
