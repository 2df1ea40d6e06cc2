package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	require.NoError(t, SetupLogger(""))
	require.NoError(t, SetupLogger("debug"))
	assert.Error(t, SetupLogger("loud"))
	require.NoError(t, SetupLogger("info"))
}

func TestLogWarnPostsEmbed(t *testing.T) {
	var payload DiscordWebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, LogWarn(srv.URL, "Scheduler", "Tick", "1 of 3 reminders failed"))

	require.Len(t, payload.Embeds, 1)
	assert.Equal(t, "WARN Log", payload.Embeds[0].Title)
	assert.Equal(t, getColor(Warn), payload.Embeds[0].Color)
	assert.Equal(t, "1 of 3 reminders failed", payload.Embeds[0].Fields[2].Value)
}

func TestLogWebhookErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad webhook", http.StatusNotFound)
	}))
	defer srv.Close()

	assert.Error(t, LogError(srv.URL, "Scheduler", "Tick", "x"))
	assert.NoError(t, LogInfo("", "Scheduler", "Tick", "x"))
}
