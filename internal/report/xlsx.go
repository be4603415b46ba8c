package report

import (
	"fmt"
	"time"

	"biopay/internal/aggregate"
	"biopay/internal/models"
	"biopay/internal/payroll"

	"github.com/xuri/excelize/v2"
)

const (
	SheetAttendance = "Attendance"
	SheetPayroll    = "Payroll"
	SheetSummary    = "Summary"
)

// BuildWorkbook renders the snapshot as an XLSX file. The summary sheet
// covers the calendar month of now.
func BuildWorkbook(s models.Snapshot, now time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	names := make(map[string]string, len(s.Employees))
	for _, e := range s.Employees {
		names[e.ID] = e.Name
	}

	attendance := make([][]any, 0, len(s.Attendance))
	for _, a := range s.Attendance {
		attendance = append(attendance, []any{
			a.ID, a.EmployeeID, names[a.EmployeeID], a.Date, a.CheckIn, a.CheckOut, a.TotalHours, string(a.Status),
		})
	}

	periods := make([][]any, 0, len(s.Payroll))
	for _, p := range s.Payroll {
		periods = append(periods, []any{
			p.ID, p.EmployeeID, names[p.EmployeeID], p.Month, p.Year, p.TotalHours, p.GrossPay, p.Deductions, p.NetPay, string(p.Status),
		})
	}

	year, month := now.Year(), int(now.Month())
	summary := make([][]any, 0, len(s.Employees))
	for i := range s.Employees {
		e := &s.Employees[i]
		hours := aggregate.MonthlyTotal(s.Attendance, e.ID, year, month)
		rate := payroll.RateFor(e)
		summary = append(summary, []any{
			e.ID, e.Name, string(e.Role), e.DepartmentOr(""), hours, rate, payroll.EstimateGross(hours, rate),
		})
	}

	sheets := []struct {
		name   string
		header []string
		rows   [][]any
	}{
		{SheetAttendance, []string{"ID", "Employee ID", "Employee", "Date", "Check In", "Check Out", "Hours", "Status"}, attendance},
		{SheetPayroll, []string{"ID", "Employee ID", "Employee", "Month", "Year", "Hours", "Gross Pay", "Deductions", "Net Pay", "Status"}, periods},
		{SheetSummary, []string{"Employee ID", "Employee", "Role", "Department", "Hours " + aggregate.MonthPrefix(year, month), "Hourly Rate", "Est. Gross"}, summary},
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, sh := range sheets {
		index, err := f.NewSheet(sh.name)
		if err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", sh.name, err)
		}
		if i == 0 {
			f.SetActiveSheet(index)
		}
		if err := writeSheet(f, sh.name, sh.header, sh.rows); err != nil {
			return nil, fmt.Errorf("write sheet %s: %w", sh.name, err)
		}

		if err := styleHeader(f, sh.name, len(sh.header), style); err != nil {
			return nil, fmt.Errorf("style sheet %s: %w", sh.name, err)
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func styleHeader(f *excelize.File, sheet string, columns, style int) error {
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(columns)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 16)
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any) error {
	for c, v := range header {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	for r, values := range rows {
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
