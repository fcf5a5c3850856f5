package handler

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"shift-manager/internal/i18n"
	"shift-manager/internal/models"
	"shift-manager/pkg/dates"
)

func (h *Handler) listShifts(message *tgbotapi.Message) {
	templates, err := h.catalog.List()
	if err != nil {
		h.send(message.Chat.ID, h.t(i18n.OperationFailed)+err.Error())
		return
	}

	if len(templates) == 0 {
		h.send(message.Chat.ID, h.t(i18n.NoShifts))
		return
	}

	h.send(message.Chat.ID, h.t(i18n.ShiftList)+"\n"+h.catalog.FormatList(templates))
}

// addShift handles "/addshift <name> <HH:MM> <HH:MM> [#color]" and
// "/addshift <name> allday [#color]". The shift name is a single word.
func (h *Handler) addShift(message *tgbotapi.Message, args string) {
	template, ok := h.parseShiftArgs(args)
	if !ok {
		h.send(message.Chat.ID, h.t(i18n.BadArguments))
		return
	}

	template.ID = uuid.NewString()

	settings, err := h.settings.Get()
	if err == nil && settings.SelectedCalendarID != "" {
		template.CalendarID = settings.SelectedCalendarID
	}

	if err := h.catalog.Add(*template); err != nil {
		h.send(message.Chat.ID, h.t(i18n.OperationFailed)+err.Error())
		return
	}

	h.send(message.Chat.ID, h.t(i18n.ShiftAdded))
}

// updateShift handles "/updateshift <n> <name> <HH:MM> <HH:MM> [#color]".
func (h *Handler) updateShift(message *tgbotapi.Message, args string) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		h.send(message.Chat.ID, h.t(i18n.BadArguments))
		return
	}

	existing, ok := h.shiftByNumber(message.Chat.ID, fields[0])
	if !ok {
		return
	}

	template, parsed := h.parseShiftArgs(strings.Join(fields[1:], " "))
	if !parsed {
		h.send(message.Chat.ID, h.t(i18n.BadArguments))
		return
	}

	template.ID = existing.ID
	template.CalendarID = existing.CalendarID

	if err := h.catalog.Update(*template); err != nil {
		h.send(message.Chat.ID, h.t(i18n.OperationFailed)+err.Error())
		return
	}

	h.send(message.Chat.ID, h.t(i18n.ShiftUpdated))
}

func (h *Handler) deleteShift(message *tgbotapi.Message, args string) {
	existing, ok := h.shiftByNumber(message.Chat.ID, strings.TrimSpace(args))
	if !ok {
		return
	}

	if err := h.catalog.Delete(existing.ID); err != nil {
		h.send(message.Chat.ID, h.t(i18n.OperationFailed)+err.Error())
		return
	}

	if h.config.PurgeOrphans {
		if err := h.engine.PurgeOrphans(h.ctx()); err != nil {
			logrus.WithError(err).Error("Failed to purge orphaned assignments")
		}
	}

	h.send(message.Chat.ID, h.t(i18n.ShiftDeleted))
}

// shiftByNumber resolves a 1-based catalog position like "2" to a template.
func (h *Handler) shiftByNumber(chatID int64, arg string) (*models.ShiftTemplate, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		h.send(chatID, h.t(i18n.BadArguments))
		return nil, false
	}

	templates, err := h.catalog.List()
	if err != nil {
		h.send(chatID, h.t(i18n.OperationFailed)+err.Error())
		return nil, false
	}

	if n < 1 || n > len(templates) {
		h.send(chatID, h.t(i18n.ShiftNotFound))
		return nil, false
	}

	return &templates[n-1], true
}

func (h *Handler) parseShiftArgs(args string) (*models.ShiftTemplate, bool) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return nil, false
	}

	template := &models.ShiftTemplate{
		Name:  fields[0],
		Color: "#FF0000",
	}

	rest := fields[1:]
	if strings.EqualFold(rest[0], "allday") {
		template.AllDay = true
		rest = rest[1:]
	} else {
		if len(rest) < 2 {
			return nil, false
		}
		start, err := dates.ParseClock(rest[0])
		if err != nil {
			return nil, false
		}
		end, err := dates.ParseClock(rest[1])
		if err != nil {
			return nil, false
		}
		template.StartMinute = start
		template.EndMinute = end
		rest = rest[2:]
	}

	if len(rest) > 0 {
		if !strings.HasPrefix(rest[0], "#") {
			return nil, false
		}
		template.Color = rest[0]
	}

	return template, true
}
