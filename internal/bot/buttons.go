package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BuildMainMenuButtons creates main menu shortcut buttons
func BuildMainMenuButtons() *tgbotapi.InlineKeyboardMarkup {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Today", "/today"),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Sync", "/sync"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧘 Tips", "/tips"),
			tgbotapi.NewInlineKeyboardButtonData("🔗 Connect", "/connect"),
		),
	)
	return &kb
}

// BuildQuickActionsButtons creates compact action buttons for attaching to responses
func BuildQuickActionsButtons() *tgbotapi.InlineKeyboardMarkup {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Today", "/today"),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Sync", "/sync"),
			tgbotapi.NewInlineKeyboardButtonData("🧘 Tips", "/tips"),
		),
	)
	return &kb
}

// BuildTipsButtons offers a fresh recommendation set next to the current one
func BuildTipsButtons() *tgbotapi.InlineKeyboardMarkup {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✨ New tips", "/newtips"),
			tgbotapi.NewInlineKeyboardButtonData("📊 Today", "/today"),
		),
	)
	return &kb
}

// BuildConnectButtons links to the Fitbit consent page
func BuildConnectButtons(authURL string) *tgbotapi.InlineKeyboardMarkup {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🔗 Connect Fitbit", authURL),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Check status", "/status"),
		),
	)
	return &kb
}
