package handler

import (
	"context"
	"strings"
	"testing"
	"time"

	"biopay/internal/models"
	"biopay/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	chatID int64
	text   string
	doc    *tgbotapi.DocumentConfig
}

type fakeSender struct {
	messages []sent
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	switch m := c.(type) {
	case tgbotapi.MessageConfig:
		f.messages = append(f.messages, sent{chatID: m.ChatID, text: m.Text})
	case tgbotapi.DocumentConfig:
		f.messages = append(f.messages, sent{chatID: m.ChatID, text: m.Caption, doc: &m})
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) last(t *testing.T) sent {
	t.Helper()
	require.NotEmpty(t, f.messages)
	return f.messages[len(f.messages)-1]
}

func (f *fakeSender) to(chatID int64) []sent {
	var out []sent
	for _, m := range f.messages {
		if m.chatID == chatID {
			out = append(out, m)
		}
	}
	return out
}

type memRepo struct{ stored *models.Snapshot }

func (r *memRepo) Load(context.Context) (*models.Snapshot, error) {
	if r.stored == nil {
		return nil, nil
	}
	s := r.stored.Clone()
	return &s, nil
}

func (r *memRepo) Save(_ context.Context, s models.Snapshot) error {
	c := s.Clone()
	r.stored = &c
	return nil
}

type clock struct{ now time.Time }

func newTestHandler(t *testing.T) (*Handler, *fakeSender, *clock) {
	t.Helper()

	logger, _ := test.NewNullLogger()
	stored := models.Snapshot{
		Employees: []models.Employee{
			{ID: "u1", Name: "Admin User", Email: "admin@biopay.com", Role: models.RoleAdmin},
			{ID: "w1", Name: "John Doe", Email: "john@biopay.com", Role: models.RoleWorker, HourlyRate: models.Rate(25)},
		},
	}
	c := &clock{now: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)}
	ws := service.NewWorkspace(&memRepo{stored: &stored}, logger, service.Options{
		Clock:   func() time.Time { return c.now },
		TaxRate: 15,
	})
	require.NoError(t, ws.Load(context.Background()))

	sender := &fakeSender{}
	return NewHandler(sender, ws, logger), sender, c
}

func command(chatID int64, text string) tgbotapi.Update {
	name := strings.SplitN(text, " ", 2)[0]
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Chat:     &tgbotapi.Chat{ID: chatID},
			From:     &tgbotapi.User{UserName: "tester"},
			Text:     text,
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}},
		},
	}
}

func TestHandler_RequiresLogin(t *testing.T) {
	h, sender, _ := newTestHandler(t)

	h.HandleUpdate(command(1, "/in"))

	assert.Contains(t, sender.last(t).text, "Please log in first")
}

func TestHandler_LoginRejectsBadPin(t *testing.T) {
	h, sender, _ := newTestHandler(t)

	h.HandleUpdate(command(1, "/login john@biopay.com 999"))
	assert.Contains(t, sender.last(t).text, "authentication failed")

	h.HandleUpdate(command(1, "/login john@biopay.com"))
	assert.Contains(t, sender.last(t).text, "Usage: /login")
}

func TestHandler_CheckInCheckOut(t *testing.T) {
	h, sender, c := newTestHandler(t)

	h.HandleUpdate(command(1, "/login john@biopay.com 123"))
	assert.Contains(t, sender.last(t).text, "Welcome, John Doe")

	h.HandleUpdate(command(1, "/out"))
	assert.Contains(t, sender.last(t).text, "No active check-in found")

	h.HandleUpdate(command(1, "/in"))
	assert.Contains(t, sender.last(t).text, "Checked in!")
	assert.Contains(t, sender.last(t).text, "09:00 AM")

	c.now = c.now.Add(7*time.Hour + 45*time.Minute)
	h.HandleUpdate(command(1, "/out"))
	assert.Contains(t, sender.last(t).text, "Worked: 7h 45m")

	h.HandleUpdate(command(1, "/history"))
	assert.Contains(t, sender.last(t).text, "In: 09:00 AM | Out: 04:45 PM")

	h.HandleUpdate(command(1, "/dashboard"))
	assert.Contains(t, sender.last(t).text, "Est. gross pay: $193.75")
}

func TestHandler_CallbackChecksIn(t *testing.T) {
	h, sender, _ := newTestHandler(t)
	h.HandleUpdate(command(1, "/login john@biopay.com 123"))

	h.HandleUpdate(tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb1",
		Data:    "command_clock_in",
		Message: &tgbotapi.Message{MessageID: 5, Chat: &tgbotapi.Chat{ID: 1}},
	}})

	assert.Contains(t, sender.last(t).text, "Checked in!")
}

func TestHandler_WorkerCannotManageRoster(t *testing.T) {
	h, sender, _ := newTestHandler(t)
	h.HandleUpdate(command(1, "/login john@biopay.com 123"))

	for _, cmd := range []string{"/employees", "/removeemployee u1", "/runpayroll", "/export", "/activity"} {
		h.HandleUpdate(command(1, cmd))
		assert.Contains(t, sender.last(t).text, "requires an ADMIN or HR account", cmd)
	}
}

func TestHandler_AdminManagesRoster(t *testing.T) {
	h, sender, _ := newTestHandler(t)
	h.HandleUpdate(command(1, "/login admin@biopay.com 123"))

	h.HandleUpdate(command(1, "/addemployee Eve Adams;eve@biopay.com;WORKER;Logistics;22"))
	assert.Contains(t, sender.last(t).text, "Employee added")
	assert.Contains(t, sender.last(t).text, "Eve Adams")

	h.HandleUpdate(command(1, "/addemployee Eve Two;EVE@biopay.com"))
	assert.Contains(t, sender.last(t).text, "already exists")

	h.HandleUpdate(command(1, "/addemployee Bad;not-an-email"))
	assert.Contains(t, sender.last(t).text, "Could not add employee")

	h.HandleUpdate(command(1, "/editemployee w1;;;;Assembly;30"))
	assert.Contains(t, sender.last(t).text, "Assembly")
	assert.Contains(t, sender.last(t).text, "$30.00/h")

	h.HandleUpdate(command(1, "/employees eve"))
	assert.Contains(t, sender.last(t).text, "Employees (1)")
}

func TestHandler_RemoveEndsSessions(t *testing.T) {
	h, sender, _ := newTestHandler(t)
	h.HandleUpdate(command(1, "/login admin@biopay.com 123"))
	h.HandleUpdate(command(2, "/login john@biopay.com 123"))

	h.HandleUpdate(command(1, "/removeemployee w1"))
	assert.Contains(t, sender.last(t).text, "John Doe removed")

	worker := sender.to(2)
	assert.Contains(t, worker[len(worker)-1].text, "Your account was removed")

	h.HandleUpdate(command(2, "/in"))
	assert.Contains(t, sender.last(t).text, "Please log in first")
}

func TestHandler_Calculator(t *testing.T) {
	h, sender, _ := newTestHandler(t)

	h.HandleUpdate(command(1, "/calc 25 160 10 15"))
	text := sender.last(t).text
	assert.Contains(t, text, "Gross: $4375.00")
	assert.Contains(t, text, "Net: $3718.75")

	h.HandleUpdate(command(1, "/calc 25 -1 0"))
	assert.Contains(t, sender.last(t).text, "non-negative")
}

func TestHandler_PayrollRunAndPayslip(t *testing.T) {
	h, sender, _ := newTestHandler(t)
	h.HandleUpdate(command(1, "/login admin@biopay.com 123"))

	h.HandleUpdate(command(1, "/runpayroll 2026-10"))
	assert.Contains(t, sender.last(t).text, "Payroll processed for October 2026")

	h.HandleUpdate(command(1, "/runpayroll 2026-10"))
	assert.Contains(t, sender.last(t).text, "already exists")

	h.HandleUpdate(command(1, "/runpayroll october"))
	assert.Contains(t, sender.last(t).text, "Usage: /runpayroll")

	h.HandleUpdate(command(2, "/login john@biopay.com 123"))
	h.HandleUpdate(command(2, "/payroll"))
	assert.Contains(t, sender.last(t).text, "October 2026")
}

func TestHandler_Export(t *testing.T) {
	h, sender, _ := newTestHandler(t)
	h.HandleUpdate(command(1, "/login admin@biopay.com 123"))

	h.HandleUpdate(command(1, "/export"))

	last := sender.last(t)
	require.NotNil(t, last.doc)
	file, ok := last.doc.File.(tgbotapi.FileBytes)
	require.True(t, ok)
	assert.Equal(t, "biopay-2026-10-14.xlsx", file.Name)
	assert.NotEmpty(t, file.Bytes)
}

func TestHandler_UnknownCommand(t *testing.T) {
	h, sender, _ := newTestHandler(t)

	h.HandleUpdate(command(1, "/frobnicate"))

	assert.Contains(t, sender.last(t).text, "Unknown command")
}
