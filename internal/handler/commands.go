package handler

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	command := message.Command()
	args := message.CommandArguments()

	switch command {
	case "start":
		h.sendStartMessage(chatID)
	case "help":
		h.sendHelpMessage(chatID)
	case "login":
		h.login(message, args)
	case "logout":
		h.logout(message)

	// Attendance (everyone)
	case "in", "checkin":
		h.checkIn(chatID)
	case "out", "checkout":
		h.checkOut(chatID)
	case "history":
		h.showHistory(chatID, args)
	case "dashboard":
		h.showDashboard(chatID, args)

	// Payroll
	case "calc":
		h.calculate(chatID, args)
	case "payroll":
		h.showPayroll(chatID)
	case "payslip":
		h.showPayslip(chatID, args)
	case "runpayroll":
		h.runPayroll(chatID, args)

	// Directory (ADMIN/HR)
	case "employees":
		h.listEmployees(chatID, args)
	case "addemployee":
		h.addEmployee(chatID, args)
	case "editemployee":
		h.editEmployee(chatID, args)
	case "removeemployee":
		h.removeEmployee(chatID, args)

	// Reports (ADMIN/HR)
	case "activity":
		h.showActivity(chatID)
	case "export":
		h.exportWorkbook(chatID)

	default:
		h.sendUnknownCommand(chatID)
	}
}

func (h *Handler) sendUnknownCommand(chatID int64) {
	h.reply(chatID, "❌ Unknown command. Use /help to see the list of commands.")
}

func (h *Handler) sendStartMessage(chatID int64) {
	text := `👋 Welcome to BioPay!

BioPay tracks attendance and payroll for your team.

🔑 Log in with your work email:
/login <email> <pin>

💡 Then:
1. Start your day with /in
2. Finish it with /out
3. Check your hours with /dashboard

Use /help for the full list of commands.`

	h.reply(chatID, text)
}

func (h *Handler) sendHelpMessage(chatID int64) {
	text := `📋 Available commands:

🔑 Session:
/login <email> <pin> - Log in
/logout - Log out

⏰ Attendance:
/in - Check in
/out - Check out (closes today's active entry)
/history [N] - Your last N entries (default 10)
/dashboard [7|30] - Hours chart and month summary

💵 Payroll:
/calc <rate> <hours> <overtime> <tax%> - Salary calculator
    Example: /calc 25 160 10 15
/payroll - Payroll periods you can see
/payslip <id> - Salary slip for a period

🛠 ADMIN/HR:
/employees [search] - List or search employees
/addemployee name;email;role;department;rate
    Example: /addemployee Eve Adams;eve@biopay.com;WORKER;Logistics;22
/editemployee id;name;email;role;department;rate
    Empty fields are kept
/removeemployee <id> - Remove an employee and their records
/runpayroll [YYYY-MM] - Create PENDING periods for workers
/activity - Recent activity log
/export - Download an Excel report`

	h.reply(chatID, text)
}
