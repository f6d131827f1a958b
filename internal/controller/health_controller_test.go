package controller

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"propsite_backend/pkg/database"
)

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	db := database.GetDB()
	database.SetDB(nil)
	defer database.SetDB(db)

	resp, body = doJSON(t, app, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "down", body["database"])
}
