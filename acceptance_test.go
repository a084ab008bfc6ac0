package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAPIOverHTTP drives the wired router through a real listener the way a
// browser client would
func TestAPIOverHTTP(t *testing.T) {
	a, mail := newTestApp(t, testConfig())
	server := httptest.NewServer(a.router)
	t.Cleanup(server.Close)

	getJSON := func(t *testing.T, path string) (int, map[string]any) {
		t.Helper()
		resp, err := http.Get(server.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return resp.StatusCode, body
	}

	t.Run("health is available on every request", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			status, body := getJSON(t, "/api/health")
			assert.Equal(t, http.StatusOK, status, fmt.Sprintf("Request %d should succeed", i+1))
			assert.Equal(t, "LASUMBA API is running", body["message"])
		}
	})

	t.Run("database status lists tables", func(t *testing.T) {
		status, body := getJSON(t, "/api/database/status")
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, body["tables"], "volunteers")
	})

	t.Run("request id is echoed", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, server.URL+"/api/health", nil)
		require.NoError(t, err)
		req.Header.Set("X-Request-ID", "req-123")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))
	})

	t.Run("volunteer application round trip", func(t *testing.T) {
		payload := `{
			"firstName": "Ada",
			"lastName": "Obi",
			"email": "ada.obi@example.com",
			"phone": "08030000000",
			"program": "MBA 1",
			"interestedActivities": ["Registration"],
			"experience": "Some Experience"
		}`
		resp, err := http.Post(server.URL+"/api/volunteer", "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		status, body := getJSON(t, "/api/volunteer/stats")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(1), body["stats"].(map[string]any)["pending"])

		a.notifier.Wait()
		assert.Len(t, mail.SentTo("ada.obi@example.com"), 1)
	})
}
