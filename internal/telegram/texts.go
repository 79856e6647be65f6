package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// UI texts in English
const (
	startText = "🕌 I deliver prayer-time notifications.\n\n" +
		"You'll get a notification at each prayer, plus an optional early reminder.\n\n" +
		"• /today — today's prayer times\n" +
		"• /status — your settings\n" +
		"• /mute <prayer>, /unmute <prayer>\n" +
		"• /offset <minutes> — reminder lead time\n" +
		"• /sound <name|silent> — alert sound"
	statusTitle = "🧾 Your current settings:"
	statusFmt   = "• Reminder offset: %d min\n• Muted: %s\n• Sound: %s\n"

	mutePromptText   = "Which prayer? e.g. /mute Sunrise"
	offsetPromptText = "How many minutes before each prayer should I remind you? (0 disables reminders)"
	soundPromptText  = "Send a sound name, or \"silent\" to turn the alert sound off."
	unknownText      = "Unknown command. Use /help to see what I can do."
)

// mainMenuKeyboard builds the persistent reply keyboard.
func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/today"),
			tgbotapi.NewKeyboardButton("/status"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/offset"),
			tgbotapi.NewKeyboardButton("/sound"),
		),
	)
}
