package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"shift-manager/internal/calendar"
	"shift-manager/internal/i18n"
	"shift-manager/internal/models"
	"shift-manager/internal/service"
	"shift-manager/pkg/dates"
)

func (h *Handler) ctx() context.Context {
	return context.Background()
}

// assignShift handles "/assign <n> <yyyy-mm-dd>".
func (h *Handler) assignShift(message *tgbotapi.Message, args string) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		h.send(message.Chat.ID, h.t(i18n.BadArguments))
		return
	}

	template, ok := h.shiftByNumber(message.Chat.ID, fields[0])
	if !ok {
		return
	}

	date, err := dates.ParseDay(fields[1])
	if err != nil {
		h.send(message.Chat.ID, h.t(i18n.BadDate))
		return
	}

	switch err := h.engine.Assign(h.ctx(), *template, date); {
	case err == nil:
		h.send(message.Chat.ID, h.t(i18n.ShiftAssigned))
	case errors.Is(err, service.ErrNoCalendar):
		h.send(message.Chat.ID, h.t(i18n.NoCalendarForShift))
	case errors.Is(err, calendar.ErrAccessDenied):
		h.send(message.Chat.ID, h.t(i18n.AccessDenied))
	default:
		h.send(message.Chat.ID, h.t(i18n.OperationFailed)+err.Error())
	}
}

// unassignShift handles "/unassign <yyyy-mm-dd>".
func (h *Handler) unassignShift(message *tgbotapi.Message, args string) {
	date, err := dates.ParseDay(strings.TrimSpace(args))
	if err != nil {
		h.send(message.Chat.ID, h.t(i18n.BadDate))
		return
	}

	switch err := h.engine.Remove(h.ctx(), date); {
	case err == nil:
		h.send(message.Chat.ID, h.t(i18n.ShiftUnassigned))
	case errors.Is(err, calendar.ErrAccessDenied):
		h.send(message.Chat.ID, h.t(i18n.AccessDenied))
	default:
		h.send(message.Chat.ID, h.t(i18n.OperationFailed)+err.Error())
	}
}

// showDay handles "/day <yyyy-mm-dd>".
func (h *Handler) showDay(message *tgbotapi.Message, args string) {
	date, err := dates.ParseDay(strings.TrimSpace(args))
	if err != nil {
		h.send(message.Chat.ID, h.t(i18n.BadDate))
		return
	}

	_, template, err := h.ledger.Get(date)
	if err != nil {
		h.send(message.Chat.ID, h.t(i18n.OperationFailed)+err.Error())
		return
	}
	if template == nil {
		h.send(message.Chat.ID, h.t(i18n.NothingOnDate))
		return
	}

	h.send(message.Chat.ID, fmt.Sprintf("%s: %s (%s)", models.DayKey(date), template.Name, template.TimeRange()))
}

// showMonth handles "/month [yyyy-mm]", defaulting to the current month.
func (h *Handler) showMonth(message *tgbotapi.Message, args string) {
	base := time.Now()
	if trimmed := strings.TrimSpace(args); trimmed != "" {
		parsed, err := dates.ParseMonth(trimmed)
		if err != nil {
			h.send(message.Chat.ID, h.t(i18n.BadDate))
			return
		}
		base = parsed
	}

	first, last := dates.MonthBounds(base)
	shifts, err := h.ledger.GetRange(first, last)
	if err != nil {
		h.send(message.Chat.ID, h.t(i18n.OperationFailed)+err.Error())
		return
	}

	if len(shifts) == 0 {
		h.send(message.Chat.ID, h.t(i18n.MonthEmpty))
		return
	}

	var result strings.Builder
	result.WriteString(h.t(i18n.MonthHeader) + base.Format("2006-01") + "\n")
	for _, ds := range shifts {
		result.WriteString(fmt.Sprintf("%s: %s (%s)\n", models.DayKey(ds.Date), ds.Template.Name, ds.Template.TimeRange()))
	}

	h.send(message.Chat.ID, result.String())
}
