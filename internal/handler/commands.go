package handler

import (
	"shift-manager/internal/i18n"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleCommand(message *tgbotapi.Message) {
	command := message.Command()
	args := message.CommandArguments()

	switch command {
	case "start":
		h.send(message.Chat.ID, h.t(i18n.Welcome))
	case "help":
		h.send(message.Chat.ID, h.t(i18n.Help))

	// Shift catalog
	case "shifts":
		h.listShifts(message)
	case "addshift":
		h.addShift(message, args)
	case "updateshift":
		h.updateShift(message, args)
	case "deleteshift":
		h.deleteShift(message, args)

	// Assignments
	case "assign":
		h.assignShift(message, args)
	case "unassign":
		h.unassignShift(message, args)
	case "day":
		h.showDay(message, args)
	case "month":
		h.showMonth(message, args)

	// Calendar
	case "sync":
		h.syncCalendar(message)
	case "calendars":
		h.listCalendars(message)
	case "setcalendar":
		h.setCalendar(message, args)

	// Settings
	case "language":
		h.setLanguage(message, args)
	case "notifications":
		h.setNotifications(message, args)

	default:
		h.send(message.Chat.ID, h.t(i18n.UnknownCommand))
	}
}
