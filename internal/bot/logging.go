package bot

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotLoggingMiddleware logs bot webhook requests with the chat and command they carried.
// Update bodies are never logged.
func BotLoggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var update tgbotapi.Update
		parsed := false
		if c.Request.Body != nil && c.Request.ContentLength > 0 {
			bodyBytes, err := io.ReadAll(c.Request.Body)
			if err == nil {
				// Restore the body for handlers
				c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
				parsed = json.Unmarshal(bodyBytes, &update) == nil
			}
		}

		c.Next()

		logAttrs := []slog.Attr{
			slog.String("component", "bot.webhook"),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.String("duration", time.Since(start).String()),
			slog.String("client_ip", c.ClientIP()),
		}
		if parsed {
			logAttrs = append(logAttrs, updateAttrs(update)...)
		}

		if len(c.Errors) > 0 {
			logAttrs = append(logAttrs, slog.String("errors", c.Errors.String()))
			logger.LogAttrs(c.Request.Context(), slog.LevelError, "Bot webhook request", logAttrs...)
		} else {
			logger.LogAttrs(c.Request.Context(), slog.LevelInfo, "Bot webhook request", logAttrs...)
		}
	}
}

// updateAttrs extracts the chat, sender and command of an update
func updateAttrs(update tgbotapi.Update) []slog.Attr {
	var attrs []slog.Attr
	switch {
	case update.Message != nil:
		attrs = append(attrs, slog.String("update_type", "message"))
		if update.Message.Chat != nil {
			attrs = append(attrs, slog.Int64("chat_id", update.Message.Chat.ID))
		}
		if update.Message.From != nil {
			attrs = append(attrs, slog.String("username", update.Message.From.UserName))
		}
		if update.Message.IsCommand() {
			attrs = append(attrs, slog.String("command", update.Message.Command()))
		}
	case update.CallbackQuery != nil:
		attrs = append(attrs, slog.String("update_type", "callback_query"))
		if update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil {
			attrs = append(attrs, slog.Int64("chat_id", update.CallbackQuery.Message.Chat.ID))
		}
		if update.CallbackQuery.From != nil {
			attrs = append(attrs, slog.String("username", update.CallbackQuery.From.UserName))
		}
		attrs = append(attrs, slog.String("command", update.CallbackQuery.Data))
	}
	return attrs
}
