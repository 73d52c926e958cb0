package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

func newOfflineBot(t *testing.T, url string) *telebot.Bot {
	t.Helper()
	b, err := telebot.NewBot(telebot.Settings{URL: url, Token: "test-token", Offline: true})
	require.NoError(t, err)
	return b
}

func TestTelebotAdapter_SendMessage(t *testing.T) {
	var gotPath string
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":12345,"type":"private"},"text":"hello"}}`))
	}))
	defer srv.Close()

	adapter := NewTelebotAdapter(newOfflineBot(t, srv.URL))
	require.NoError(t, adapter.SendMessage("12345", "hello", nil))

	assert.True(t, strings.HasSuffix(gotPath, "/sendMessage"), gotPath)
	assert.Equal(t, "12345", payload["chat_id"])
	assert.Equal(t, "hello", payload["text"])
}

func TestTelebotAdapter_SendMessageError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	adapter := NewTelebotAdapter(newOfflineBot(t, srv.URL))
	err := adapter.SendMessage("@missing", "hello", nil)
	assert.Error(t, err)
}
