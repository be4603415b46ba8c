package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"biopay/internal/ledger"
	"biopay/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const defaultHistoryLimit = 10

func (h *Handler) checkIn(chatID int64) {
	e, ok := h.current(chatID)
	if !ok {
		return
	}

	entry, err := h.workspace.CheckIn(context.Background(), e.ID)
	if err != nil {
		h.logger.WithError(err).WithField("employee_id", e.ID).Error("Failed to check in")
		h.reply(chatID, "❌ Check-in failed: "+err.Error())
		return
	}

	response := fmt.Sprintf(`✅ Checked in!

⏰ Time: %s
📅 Date: %s

💡 Don't forget to check out with /out`, entry.CheckIn, entry.Date)

	msg := tgbotapi.NewMessage(chatID, response)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏰ Check out", "command_clock_out"),
		),
	)
	h.send(msg)
}

func (h *Handler) checkOut(chatID int64) {
	e, ok := h.current(chatID)
	if !ok {
		return
	}

	entry, err := h.workspace.CheckOut(context.Background(), e.ID)
	if err != nil {
		if errors.Is(err, ledger.ErrNoOpenEntry) {
			h.reply(chatID, "❌ No active check-in found for today. Use /in first.")
			return
		}
		h.logger.WithError(err).WithField("employee_id", e.ID).Error("Failed to check out")
		h.reply(chatID, "❌ Check-out failed: "+err.Error())
		return
	}

	response := fmt.Sprintf(`✅ Checked out!

📅 Date: %s
⏰ %s
⏳ Worked: %s`, entry.Date, entry.FormatTime(), entry.Duration())

	msg := tgbotapi.NewMessage(chatID, response)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏰ Check in again", "command_clock_in"),
			tgbotapi.NewInlineKeyboardButtonData("📊 Dashboard", "command_dashboard"),
		),
	)
	h.send(msg)
}

func (h *Handler) showHistory(chatID int64, args string) {
	e, ok := h.current(chatID)
	if !ok {
		return
	}

	limit := defaultHistoryLimit
	if args = strings.TrimSpace(args); args != "" {
		n, err := strconv.Atoi(args)
		if err != nil || n <= 0 {
			h.reply(chatID, "❌ Usage: /history [N], where N is a positive number")
			return
		}
		limit = n
	}

	h.reply(chatID, service.FormatHistory(h.workspace.History(e.ID, limit)))
}

func (h *Handler) showDashboard(chatID int64, args string) {
	e, ok := h.current(chatID)
	if !ok {
		return
	}

	window := 7
	if strings.TrimSpace(args) == "30" {
		window = 30
	}

	d, err := h.workspace.Dashboard(e.ID, window)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"employee_id": e.ID,
			"window":      window,
		}).Error("Failed to build dashboard")
		h.reply(chatID, "❌ Could not build the dashboard: "+err.Error())
		return
	}

	h.reply(chatID, service.FormatDashboard(d))
}
