package handler

import (
	"fmt"

	"biopay/internal/report"
	"biopay/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const activityLimit = 15

func (h *Handler) showActivity(chatID int64) {
	if _, ok := h.staff(chatID); !ok {
		return
	}
	h.reply(chatID, service.FormatActivities(h.workspace.Activities(activityLimit)))
}

func (h *Handler) exportWorkbook(chatID int64) {
	if _, ok := h.staff(chatID); !ok {
		return
	}

	now := h.workspace.Now()
	data, err := report.BuildWorkbook(h.workspace.Snapshot(), now)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build workbook")
		h.reply(chatID, "❌ Could not build the report: "+err.Error())
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("biopay-%s.xlsx", now.Format("2006-01-02")),
		Bytes: data,
	})
	doc.Caption = "📊 BioPay report"
	h.send(doc)
}
