package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"biopay/internal/models"
	"biopay/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

func (h *Handler) bind(chatID int64, employeeID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[chatID] = employeeID
}

func (h *Handler) unbind(chatID int64) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id, ok := h.sessions[chatID]
	delete(h.sessions, chatID)
	return id, ok
}

// endSessionsFor drops every chat bound to employeeID.
func (h *Handler) endSessionsFor(employeeID string) []int64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	var chats []int64
	for chatID, id := range h.sessions {
		if id == employeeID {
			chats = append(chats, chatID)
			delete(h.sessions, chatID)
		}
	}
	return chats
}

// current resolves the employee logged in on chatID. A session whose
// employee has since left the roster is dropped.
func (h *Handler) current(chatID int64) (models.Employee, bool) {
	h.mu.Lock()
	id, ok := h.sessions[chatID]
	h.mu.Unlock()
	if !ok {
		h.reply(chatID, "🔒 Please log in first: /login <email> <pin>")
		return models.Employee{}, false
	}

	e, err := h.workspace.Employee(id)
	if err != nil {
		h.unbind(chatID)
		h.reply(chatID, "🔒 Your session has ended. Please log in again.")
		return models.Employee{}, false
	}
	return e, true
}

// staff is current restricted to ADMIN and HR.
func (h *Handler) staff(chatID int64) (models.Employee, bool) {
	e, ok := h.current(chatID)
	if !ok {
		return models.Employee{}, false
	}
	if !e.CanViewAll() {
		h.reply(chatID, "⛔ "+service.ErrForbidden.Error())
		return models.Employee{}, false
	}
	return e, true
}

func (h *Handler) login(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	fields := strings.Fields(args)
	if len(fields) != 2 {
		h.reply(chatID, "❌ Usage: /login <email> <pin>")
		return
	}

	e, err := h.workspace.Login(context.Background(), fields[0], fields[1])
	if err != nil {
		if errors.Is(err, service.ErrLoginFailed) {
			h.reply(chatID, "❌ "+err.Error())
			return
		}
		h.logger.WithError(err).Error("Login failed")
		h.reply(chatID, "❌ Login failed: "+err.Error())
		return
	}

	h.bind(chatID, e.ID)
	h.logger.WithFields(logrus.Fields{
		"chat_id":     chatID,
		"employee_id": e.ID,
	}).Info("Chat session started")

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("👋 Welcome, %s!\n\nRole: %s\nUse /help to see what you can do.", e.Name, e.Role))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏰ Check in", "command_clock_in"),
			tgbotapi.NewInlineKeyboardButtonData("📊 Dashboard", "command_dashboard"),
		),
	)
	h.send(msg)
}

func (h *Handler) logout(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	id, ok := h.unbind(chatID)
	if !ok {
		h.reply(chatID, "ℹ️ You are not logged in.")
		return
	}

	if err := h.workspace.Logout(context.Background(), id); err != nil {
		h.logger.WithError(err).WithField("employee_id", id).Warn("Logout was not recorded")
	}
	h.reply(chatID, "👋 Logged out.")
}
