package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"newswire/internal/domain/entity"
	"newswire/internal/usecase/browse"
)

// Reply keyboard labels, also matched against incoming message text.
const (
	menuNews          = "📋 Новости"
	menuNotifications = "🔔 Уведомления"
)

const (
	greetingText = "Добро пожаловать!\n" +
		"Кнопка '📋 Новости' позволит приступить к просмотру новостей.\n" +
		"Кнопка '🔔 Уведомления' позволит настроить получение уведомлений."
	pickSourceText   = "Выберите источник новостей:"
	pickPageText     = "Выберите страницу:"
	notifyPromptText = "Вы хотите получать уведомления при выходе новостей?"
	subscribedText   = "✅ Теперь вы будете получать уведомления!"
	unsubscribedText = "❌ Теперь вы не будете получать уведомления!"
)

// sourceTitles maps sources to their menu button labels.
var sourceTitles = map[entity.Source]string{
	entity.SourceInformburo: "Informburo",
	entity.SourceNur:        "Nur",
}

// mainKeyboard is the persistent reply keyboard sent on /start.
func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuNews),
			tgbotapi.NewKeyboardButton(menuNotifications),
		),
	)
	kb.ResizeKeyboard = true
	kb.InputFieldPlaceholder = "Выберите пункт меню."
	return kb
}

// sourceKeyboard is the inline source picker, one button per source.
func sourceKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(entity.Sources()))
	for _, source := range entity.Sources() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(sourceTitles[source], browse.SourceToken(source)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// notifyKeyboard is the subscribe/unsubscribe prompt.
func notifyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да", browse.SubscribeToken),
			tgbotapi.NewInlineKeyboardButtonData("❌ Нет", browse.UnsubscribeToken),
		),
	)
}
