package models

import "github.com/shopspring/decimal"

type PayrollStatus string

const (
	PayrollPaid       PayrollStatus = "PAID"
	PayrollPending    PayrollStatus = "PENDING"
	PayrollProcessing PayrollStatus = "PROCESSING"
)

// PayrollPeriod is one employee's payroll summary for a month. Month holds
// the English month name, e.g. "October".
type PayrollPeriod struct {
	ID         string        `json:"id"`
	EmployeeID string        `json:"userId"`
	Month      string        `json:"month"`
	Year       int           `json:"year"`
	TotalHours float64       `json:"totalHours"`
	GrossPay   float64       `json:"grossPay"`
	Deductions float64       `json:"deductions"`
	NetPay     float64       `json:"netPay"`
	Status     PayrollStatus `json:"status"`
}

// IsValid checks netPay == grossPay - deductions in decimal arithmetic so
// float noise like 0.1+0.2 does not reject a correct record.
func (p *PayrollPeriod) IsValid() bool {
	if p.EmployeeID == "" || p.TotalHours < 0 || p.GrossPay < 0 || p.Deductions < 0 {
		return false
	}
	switch p.Status {
	case PayrollPaid, PayrollPending, PayrollProcessing:
	default:
		return false
	}

	gross := decimal.NewFromFloat(p.GrossPay).Round(2)
	deductions := decimal.NewFromFloat(p.Deductions).Round(2)
	net := decimal.NewFromFloat(p.NetPay).Round(2)
	return gross.Sub(deductions).Equal(net)
}
