package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"biopay/internal/payroll"
	"biopay/internal/service"
)

func (h *Handler) calculate(chatID int64, args string) {
	fields := strings.Fields(args)
	if len(fields) < 3 || len(fields) > 4 {
		h.reply(chatID, "❌ Usage: /calc <rate> <hours> <overtime> [tax%]\nExample: /calc 25 160 10 15")
		return
	}

	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 64)
		if err != nil || v < 0 {
			h.reply(chatID, "❌ All calculator values must be non-negative numbers")
			return
		}
		values[i] = v
	}

	in := payroll.Input{
		HourlyRate:     values[0],
		Hours:          values[1],
		OvertimeHours:  values[2],
		TaxRatePercent: -1,
	}
	if len(values) == 4 {
		in.TaxRatePercent = values[3]
	}

	b := h.workspace.Calculate(in)
	if in.TaxRatePercent < 0 {
		in.TaxRatePercent = h.workspace.TaxRate()
	}
	h.reply(chatID, "🧮 Salary calculator\n\n"+payroll.DescribeBreakdown(in, b))
}

func (h *Handler) showPayroll(chatID int64) {
	e, ok := h.current(chatID)
	if !ok {
		return
	}

	periods, err := h.workspace.PayrollFor(e.ID)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}
	h.reply(chatID, service.FormatPayrollList(periods, h.employeeNames()))
}

func (h *Handler) showPayslip(chatID int64, args string) {
	e, ok := h.current(chatID)
	if !ok {
		return
	}

	id := strings.TrimSpace(args)
	if id == "" {
		h.reply(chatID, "❌ Usage: /payslip <period id>\nSee /payroll for ids")
		return
	}

	owner, period, err := h.workspace.Payslip(e.ID, id)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}
	h.reply(chatID, "🧾 "+payroll.PayslipText(&owner, &period))
}

func (h *Handler) runPayroll(chatID int64, args string) {
	e, ok := h.staff(chatID)
	if !ok {
		return
	}

	now := h.workspace.Now()
	year, month := now.Year(), now.Month()
	if args = strings.TrimSpace(args); args != "" {
		t, err := time.Parse("2006-01", args)
		if err != nil {
			h.reply(chatID, "❌ Usage: /runpayroll [YYYY-MM]\nExample: /runpayroll 2026-10")
			return
		}
		year, month = t.Year(), t.Month()
	}

	result, err := h.workspace.RunPayroll(context.Background(), e.ID, year, month)
	if err != nil {
		if !errors.Is(err, service.ErrForbidden) {
			h.logger.WithError(err).Error("Payroll run failed")
		}
		h.reply(chatID, "❌ Payroll run failed: "+err.Error())
		return
	}
	h.reply(chatID, service.FormatRunResult(result))
}

func (h *Handler) employeeNames() map[string]string {
	snap := h.workspace.Snapshot()
	names := make(map[string]string, len(snap.Employees))
	for _, e := range snap.Employees {
		names[e.ID] = e.Name
	}
	return names
}
