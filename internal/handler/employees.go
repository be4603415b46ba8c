package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"biopay/internal/directory"
	"biopay/internal/models"
	"biopay/internal/service"

	"github.com/sirupsen/logrus"
)

func (h *Handler) listEmployees(chatID int64, args string) {
	e, ok := h.staff(chatID)
	if !ok {
		return
	}

	roster, err := h.workspace.Employees(e.ID, args)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}
	h.reply(chatID, service.FormatEmployees(roster))
}

// splitFields splits a semicolon separated argument list and pads it to n.
func splitFields(args string, n int) ([]string, bool) {
	parts := strings.Split(args, ";")
	if len(parts) > n {
		return nil, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	for len(parts) < n {
		parts = append(parts, "")
	}
	return parts, true
}

func parseRate(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("hourly rate must be a non-negative number, got %q", s)
	}
	return &v, nil
}

func (h *Handler) addEmployee(chatID int64, args string) {
	actor, ok := h.staff(chatID)
	if !ok {
		return
	}

	parts, ok := splitFields(args, 5)
	if !ok || parts[0] == "" || parts[1] == "" {
		h.reply(chatID, "❌ Usage: /addemployee name;email;role;department;rate\nExample: /addemployee Eve Adams;eve@biopay.com;WORKER;Logistics;22")
		return
	}

	e := models.Employee{Name: parts[0], Email: parts[1], Department: parts[3]}
	if parts[2] != "" {
		role, ok := models.ParseRole(parts[2])
		if !ok {
			h.reply(chatID, "❌ Role must be ADMIN, HR or WORKER")
			return
		}
		e.Role = role
	}
	rate, err := parseRate(parts[4])
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}
	e.HourlyRate = rate

	added, err := h.workspace.AddEmployee(context.Background(), actor.ID, e)
	if err != nil {
		h.reply(chatID, "❌ Could not add employee: "+err.Error())
		return
	}
	h.reply(chatID, "✅ Employee added\n\n"+service.FormatEmployee(&added))
}

func (h *Handler) editEmployee(chatID int64, args string) {
	actor, ok := h.staff(chatID)
	if !ok {
		return
	}

	parts, ok := splitFields(args, 6)
	if !ok || parts[0] == "" {
		h.reply(chatID, "❌ Usage: /editemployee id;name;email;role;department;rate\nEmpty fields are kept")
		return
	}

	var p directory.Patch
	if parts[1] != "" {
		p.Name = &parts[1]
	}
	if parts[2] != "" {
		p.Email = &parts[2]
	}
	if parts[3] != "" {
		role, ok := models.ParseRole(parts[3])
		if !ok {
			h.reply(chatID, "❌ Role must be ADMIN, HR or WORKER")
			return
		}
		p.Role = &role
	}
	if parts[4] != "" {
		p.Department = &parts[4]
	}
	rate, err := parseRate(parts[5])
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}
	p.HourlyRate = rate

	updated, err := h.workspace.UpdateEmployee(context.Background(), actor.ID, parts[0], p)
	if err != nil {
		h.reply(chatID, "❌ Could not update employee: "+err.Error())
		return
	}
	h.reply(chatID, "✅ Employee updated\n\n"+service.FormatEmployee(&updated))
}

func (h *Handler) removeEmployee(chatID int64, args string) {
	actor, ok := h.staff(chatID)
	if !ok {
		return
	}

	id := strings.TrimSpace(args)
	if id == "" {
		h.reply(chatID, "❌ Usage: /removeemployee <id>")
		return
	}

	removal, err := h.workspace.RemoveEmployee(context.Background(), actor.ID, id)
	if err != nil {
		h.reply(chatID, "❌ Could not remove employee: "+err.Error())
		return
	}

	if removal.TerminateSession {
		for _, chat := range h.endSessionsFor(id) {
			h.reply(chat, "🔒 Your account was removed. Your session has ended.")
			h.logger.WithFields(logrus.Fields{
				"chat_id":     chat,
				"employee_id": id,
			}).Info("Chat session terminated")
		}
	}

	h.reply(chatID, fmt.Sprintf("🗑 %s removed\n\n📋 Attendance records deleted: %d\n💵 Payroll records deleted: %d",
		removal.Employee.Name, len(removal.RemovedAttendanceIDs), len(removal.RemovedPayrollIDs)))
}
