package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	updates []tgbotapi.Update
	err     error
}

func (h *recordingHandler) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	h.updates = append(h.updates, update)
	return h.err
}

func newTestRouter(handler UpdateHandler, secret string) http.Handler {
	return NewRouter(RouterConfig{
		Bot:           handler,
		WebhookSecret: secret,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

const updateJSON = `{"update_id":7,"message":{"message_id":1,"date":0,"from":{"id":1001,"is_bot":false,"first_name":"T"},"chat":{"id":42,"type":"private"},"text":"/today","entities":[{"type":"bot_command","offset":0,"length":6}]}}`

func TestWebhook_RejectsWrongSecret(t *testing.T) {
	handler := &recordingHandler{}
	router := newTestRouter(handler, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(updateJSON))
	req.Header.Set(SecretTokenHeader, "wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, handler.updates)
}

func TestWebhook_DeliversUpdate(t *testing.T) {
	handler := &recordingHandler{}
	router := newTestRouter(handler, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(updateJSON))
	req.Header.Set(SecretTokenHeader, "s3cret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, handler.updates, 1)
	assert.Equal(t, 7, handler.updates[0].UpdateID)
	assert.Equal(t, "today", handler.updates[0].Message.Command())
}

func TestWebhook_HandlerErrorStillAcknowledged(t *testing.T) {
	handler := &recordingHandler{err: errors.New("send failed")}
	router := newTestRouter(handler, "")

	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(updateJSON))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestWebhook_InvalidBody(t *testing.T) {
	handler := &recordingHandler{}
	router := newTestRouter(handler, "")

	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, handler.updates)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&recordingHandler{}, "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "restwell-bot")
}
