package handler

import (
	"sync"

	"biopay/internal/service"
	"biopay/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	client    telegram.Sender
	workspace *service.Workspace
	logger    *logrus.Logger

	mu       sync.Mutex
	sessions map[int64]string
}

func NewHandler(client telegram.Sender, workspace *service.Workspace, logger *logrus.Logger) *Handler {
	return &Handler{
		client:    client,
		workspace: workspace,
		logger:    logger,
		sessions:  make(map[int64]string),
	}
}

func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		h.HandleUpdate(update)
	}
}

// HandleUpdate dispatches a single update.
func (h *Handler) HandleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	h.handleMessage(update.Message)
}

// handleCallbackQuery handles the inline check-in/out buttons.
func (h *Handler) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID

	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, callback.Message.MessageID, tgbotapi.NewInlineKeyboardMarkup())
	h.request(edit)

	switch callback.Data {
	case "command_clock_in":
		h.checkIn(chatID)
	case "command_clock_out":
		h.checkOut(chatID)
	case "command_dashboard":
		h.showDashboard(chatID, "")
	}

	h.request(tgbotapi.NewCallback(callback.ID, ""))
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	username := ""
	if message.From != nil {
		username = message.From.UserName
	}
	h.logger.WithFields(logrus.Fields{
		"chat_id":  message.Chat.ID,
		"username": username,
	}).Info(message.Text)

	if message.IsCommand() {
		h.handleCommand(message)
		return
	}

	h.reply(message.Chat.ID, "🤖 I only understand commands. Use /help to see them.")
}

func (h *Handler) reply(chatID int64, text string) {
	h.send(tgbotapi.NewMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.client.Send(c); err != nil {
		h.logger.WithError(err).Error("Failed to send message")
	}
}

func (h *Handler) request(c tgbotapi.Chattable) {
	if _, err := h.client.Request(c); err != nil {
		h.logger.WithError(err).Debug("Bot API request failed")
	}
}
