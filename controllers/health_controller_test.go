package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w, response := env.do(t, http.MethodGet, "/api/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "LASUMBA API is running", response["message"])
}

func TestDatabaseStatus(t *testing.T) {
	env := newTestEnv(t)

	w, response := env.do(t, http.MethodGet, "/api/database/status", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Database connected", response["message"])
	assert.Subset(t, response["tables"], []any{"cloths", "quotes", "volunteers", "users"})

	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w, response = env.do(t, http.MethodGet, "/api/database/status", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "DATABASE_CONNECTION_ERROR", errorCode(response))
}
