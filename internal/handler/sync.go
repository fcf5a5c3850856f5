package handler

import (
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"shift-manager/internal/calendar"
	"shift-manager/internal/i18n"
)

func (h *Handler) syncCalendar(message *tgbotapi.Message) {
	switch err := h.engine.Sync(h.ctx()); {
	case err == nil:
		h.send(message.Chat.ID, h.t(i18n.SyncDone))
	case errors.Is(err, calendar.ErrAccessDenied):
		h.send(message.Chat.ID, h.t(i18n.AccessDenied))
	default:
		h.send(message.Chat.ID, h.t(i18n.SyncFailed)+err.Error())
	}
}

func (h *Handler) listCalendars(message *tgbotapi.Message) {
	calendars, err := h.gateway.WritableCalendars(h.ctx())
	if err != nil {
		h.send(message.Chat.ID, h.t(i18n.OperationFailed)+err.Error())
		return
	}

	var result strings.Builder
	result.WriteString(h.t(i18n.CalendarList) + "\n")
	for _, c := range calendars {
		result.WriteString(fmt.Sprintf("- %s (%s)\n", c.Title, c.ID))
	}

	h.send(message.Chat.ID, result.String())
}

func (h *Handler) setCalendar(message *tgbotapi.Message, args string) {
	calendarID := strings.TrimSpace(args)
	if calendarID == "" {
		if id, ok := h.gateway.DefaultCalendarID(h.ctx()); ok {
			calendarID = id
		}
	}
	if calendarID == "" {
		h.send(message.Chat.ID, h.t(i18n.BadArguments))
		return
	}

	if err := h.settings.SetCalendar(calendarID); err != nil {
		h.send(message.Chat.ID, h.t(i18n.OperationFailed)+err.Error())
		return
	}

	h.send(message.Chat.ID, h.t(i18n.CalendarSelected))
}
