package handler

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"shift-manager/internal/i18n"
	"shift-manager/internal/models"
)

// setLanguage handles "/language en|nl".
func (h *Handler) setLanguage(message *tgbotapi.Message, args string) {
	language := strings.ToLower(strings.TrimSpace(args))
	if language != models.LanguageEnglish && language != models.LanguageDutch {
		h.send(message.Chat.ID, h.t(i18n.BadArguments))
		return
	}

	if err := h.settings.SetLanguage(language); err != nil {
		h.send(message.Chat.ID, h.t(i18n.OperationFailed)+err.Error())
		return
	}

	// Confirm in the newly selected language.
	h.send(message.Chat.ID, i18n.T(language, i18n.LanguageSet))
}

// setNotifications handles "/notifications on|off [minutes]".
func (h *Handler) setNotifications(message *tgbotapi.Message, args string) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		h.send(message.Chat.ID, h.t(i18n.BadArguments))
		return
	}

	var enabled bool
	switch strings.ToLower(fields[0]) {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		h.send(message.Chat.ID, h.t(i18n.BadArguments))
		return
	}

	lead := 0
	if len(fields) > 1 {
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 0 || n > 1440 {
			h.send(message.Chat.ID, h.t(i18n.BadArguments))
			return
		}
		lead = n
	}

	if err := h.settings.SetNotifications(enabled, lead); err != nil {
		h.send(message.Chat.ID, h.t(i18n.OperationFailed)+err.Error())
		return
	}

	if enabled {
		h.send(message.Chat.ID, h.t(i18n.NotificationsOn))
	} else {
		h.send(message.Chat.ID, h.t(i18n.NotificationsOff))
	}
}
