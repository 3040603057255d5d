package bot

import (
	"context"
	"fmt"
	"log/slog"
	"restwell/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of the Telegram API the bot writes to
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot represents the Telegram bot
type Bot struct {
	api    Sender
	client RestwellClient
	config *config.BotConfig
	logger *slog.Logger
}

// NewBot creates a new Telegram bot instance
func NewBot(cfg *config.BotConfig, logger *slog.Logger) (*Bot, *tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	client := NewRestwellAPI(
		cfg.Restwell.BaseURL,
		cfg.Restwell.APIKey,
		cfg.Restwell.Timeout(),
		logger,
	)

	return New(api, client, cfg, logger), api, nil
}

// New assembles a bot from its collaborators
func New(api Sender, client RestwellClient, cfg *config.BotConfig, logger *slog.Logger) *Bot {
	return &Bot{
		api:    api,
		client: client,
		config: cfg,
		logger: logger,
	}
}

// SetWebhook configures the webhook for the bot
func SetWebhook(api *tgbotapi.BotAPI, webhookURL string, logger *slog.Logger) error {
	webhookConfig, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return fmt.Errorf("invalid webhook URL: %w", err)
	}

	if _, err := api.Request(webhookConfig); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	info, err := api.GetWebhookInfo()
	if err != nil {
		return fmt.Errorf("failed to get webhook info: %w", err)
	}

	logger.Info("Webhook configured",
		"component", "bot",
		"url", info.URL,
		"pending_updates", info.PendingUpdateCount,
	)

	return nil
}

// HandleUpdate processes a Telegram update
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	var userID int64
	if update.Message != nil && update.Message.From != nil {
		userID = update.Message.From.ID
	} else if update.CallbackQuery != nil && update.CallbackQuery.From != nil {
		userID = update.CallbackQuery.From.ID
	} else {
		// Ignore updates without user info
		return nil
	}

	if !b.config.IsUserAllowed(userID) {
		b.logger.Warn("Unauthorized access attempt",
			"component", "bot",
			"user_id", userID,
		)
		return b.sendUnauthorizedMessage(update)
	}

	if update.Message != nil {
		return b.handleMessage(ctx, update.Message)
	}

	if update.CallbackQuery != nil {
		return b.handleCallback(ctx, update.CallbackQuery)
	}

	return nil
}

// handleMessage processes incoming messages
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) error {
	b.logger.Info("Received message",
		"component", "bot",
		"user_id", message.From.ID,
		"username", message.From.UserName,
		"command", message.Command(),
	)

	if !message.IsCommand() {
		return nil
	}

	switch message.Command() {
	case "start", "help":
		return b.handleStart(ctx, message)
	case "today":
		return b.handleToday(ctx, message)
	case "sync":
		return b.handleSync(ctx, message)
	case "tips":
		return b.handleTips(ctx, message)
	case "newtips":
		return b.handleNewTips(ctx, message)
	case "connect":
		return b.handleConnect(ctx, message)
	case "status":
		return b.handleStatus(ctx, message)
	default:
		return b.sendMessage(message.Chat.ID,
			"Unknown command. Use /start to see available commands.", nil)
	}
}

// handleCallback processes callback queries from inline buttons.
// Every button carries a plain command as its data.
func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	b.logger.Info("Received callback",
		"component", "bot",
		"user_id", callback.From.ID,
		"data", callback.Data,
	)

	answer := tgbotapi.NewCallback(callback.ID, "")
	if _, err := b.api.Request(answer); err != nil {
		b.logger.Error("Failed to answer callback", "component", "bot", "error", err)
	}

	if callback.Message == nil {
		return nil
	}

	if len(callback.Data) == 0 || callback.Data[0] != '/' {
		return b.sendMessage(callback.Message.Chat.ID, "Unknown action.", nil)
	}

	msg := &tgbotapi.Message{
		Chat: callback.Message.Chat,
		From: callback.From,
		Text: callback.Data,
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(callback.Data)},
		},
	}
	return b.handleMessage(ctx, msg)
}

// sendMessage sends a text message
func (b *Bot) sendMessage(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true

	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}

	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			"component", "bot",
			"chat_id", chatID,
			"error", err,
		)
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// sendUnauthorizedMessage sends an unauthorized access message
func (b *Bot) sendUnauthorizedMessage(update tgbotapi.Update) error {
	var chatID int64
	if update.Message != nil {
		chatID = update.Message.Chat.ID
	} else if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		chatID = update.CallbackQuery.Message.Chat.ID
	} else {
		return nil
	}

	return b.sendMessage(chatID,
		"⛔ You are not authorized to use this bot.", nil)
}
