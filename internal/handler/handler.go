package handler

import (
	"shift-manager/internal/calendar"
	"shift-manager/internal/config"
	"shift-manager/internal/i18n"
	"shift-manager/internal/models"
	"shift-manager/internal/service"
	"shift-manager/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	client   *telegram.Client
	catalog  *service.ShiftCatalogService
	ledger   *service.AssignmentLedgerService
	engine   *service.ReconcileService
	settings *service.SettingsService
	gateway  calendar.Gateway
	config   *config.BotConfig
}

func NewHandler(
	client *telegram.Client,
	catalog *service.ShiftCatalogService,
	ledger *service.AssignmentLedgerService,
	engine *service.ReconcileService,
	settings *service.SettingsService,
	gateway calendar.Gateway,
	cfg *config.BotConfig,
) *Handler {
	return &Handler{
		client:   client,
		catalog:  catalog,
		ledger:   ledger,
		engine:   engine,
		settings: settings,
		gateway:  gateway,
		config:   cfg,
	}
}

func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		if update.Message == nil {
			continue
		}

		h.handleMessage(update.Message)
	}
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	logrus.Infof("[%s] %s", message.From.UserName, message.Text)

	if message.IsCommand() {
		h.handleCommand(message)
		return
	}

	h.send(message.Chat.ID, h.t(i18n.UnknownCommand))
}

func (h *Handler) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.client.Bot.Send(msg); err != nil {
		logrus.WithError(err).Error("Failed to send message")
	}
}

// t resolves a message in the currently configured language.
func (h *Handler) t(key i18n.Key) string {
	return i18n.T(h.lang(), key)
}

func (h *Handler) lang() string {
	settings, err := h.settings.Get()
	if err != nil {
		return models.LanguageEnglish
	}
	return settings.Language
}
