package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleStart handles the /start command
func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) error {
	text := `👋 *Welcome to Restwell!*

I turn your Fitbit sleep and activity data into daily wellness tips.

*Available Commands:*

📊 /today - Latest sleep, heart rate, steps and calories
🔄 /sync - Fetch fresh data from Fitbit
🧘 /tips - Your current recommendations
✨ /newtips - Generate a new set of recommendations
🔗 /connect - Link your Fitbit account
✅ /status - Fitbit connection status

*Quick Actions:*`

	return b.sendMessage(message.Chat.ID, text, BuildMainMenuButtons())
}

// handleToday handles the /today command
func (b *Bot) handleToday(ctx context.Context, message *tgbotapi.Message) error {
	latest, err := b.client.GetLatestSnapshot(ctx)
	if err != nil {
		return b.sendMessage(message.Chat.ID, FormatError(err), BuildQuickActionsButtons())
	}

	text := FormatSnapshot("Latest Fitbit data", latest.Snapshot, latest.LastSync)
	return b.sendMessage(message.Chat.ID, text, BuildQuickActionsButtons())
}

// handleSync handles the /sync command
func (b *Bot) handleSync(ctx context.Context, message *tgbotapi.Message) error {
	result, err := b.client.Sync(ctx)
	if err != nil {
		return b.sendMessage(message.Chat.ID, FormatError(err), BuildQuickActionsButtons())
	}

	return b.sendMessage(message.Chat.ID, FormatSyncResult(result), BuildQuickActionsButtons())
}

// handleTips handles the /tips command
func (b *Bot) handleTips(ctx context.Context, message *tgbotapi.Message) error {
	recs, err := b.client.GetRecommendations(ctx)
	if err != nil {
		return b.sendMessage(message.Chat.ID, FormatError(err), BuildQuickActionsButtons())
	}

	return b.sendMessage(message.Chat.ID, FormatRecommendations(recs), BuildTipsButtons())
}

// handleNewTips handles the /newtips command
func (b *Bot) handleNewTips(ctx context.Context, message *tgbotapi.Message) error {
	recs, err := b.client.GenerateRecommendations(ctx)
	if err != nil {
		return b.sendMessage(message.Chat.ID, FormatError(err), BuildQuickActionsButtons())
	}

	return b.sendMessage(message.Chat.ID, FormatRecommendations(recs), BuildTipsButtons())
}

// handleConnect handles the /connect command
func (b *Bot) handleConnect(ctx context.Context, message *tgbotapi.Message) error {
	authURL, err := b.client.GetAuthURL(ctx)
	if err != nil {
		return b.sendMessage(message.Chat.ID, FormatError(err), BuildQuickActionsButtons())
	}

	return b.sendMessage(message.Chat.ID, FormatAuthURL(authURL), BuildConnectButtons(authURL.URL))
}

// handleStatus handles the /status command
func (b *Bot) handleStatus(ctx context.Context, message *tgbotapi.Message) error {
	status, err := b.client.GetAuthStatus(ctx)
	if err != nil {
		return b.sendMessage(message.Chat.ID, FormatError(err), BuildQuickActionsButtons())
	}

	return b.sendMessage(message.Chat.ID, FormatAuthStatus(status), BuildQuickActionsButtons())
}
