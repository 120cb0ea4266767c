package alerter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/admin/kundali-service/internal/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestSendAlert(t *testing.T) {
	var got sendMessageRequest
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"ok":true,"result":{}}`)
	}))
	defer srv.Close()

	thread := int64(7)
	client := NewClient(&Config{BotToken: "T0K", ChatID: -100, MessageThreadID: &thread, BaseURL: srv.URL}, logger.Discard())
	require.NoError(t, client.SendAlert(context.Background(), "transit job failed"))

	require.Equal(t, "/botT0K/sendMessage", gotPath)
	require.Equal(t, int64(-100), got.ChatID)
	require.Equal(t, "transit job failed", got.Text)
	require.Equal(t, int64(7), *got.MessageThreadID)
}

func TestSendAlertAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"ok":false,"error_code":400,"description":"chat not found"}`)
	}))
	defer srv.Close()

	client := NewClient(&Config{BotToken: "T", ChatID: 1, BaseURL: srv.URL}, logger.Discard())
	err := client.SendAlert(context.Background(), "x")
	require.ErrorContains(t, err, "chat not found")
}

func TestNewClientRequiresConfig(t *testing.T) {
	require.Nil(t, NewClient(&Config{BotToken: "T"}, logger.Discard()))

	var client *Client
	require.Error(t, client.SendAlert(context.Background(), "x"))
}
