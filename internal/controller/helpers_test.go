package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"propsite_backend/internal/middleware"
	"propsite_backend/internal/model"
	"propsite_backend/pkg/catalog"
	"propsite_backend/pkg/database/testdb"
	"propsite_backend/pkg/utils/jwt"
)

const testJWTSecret = "controller-test-secret"

// newTestApp wires the handlers the same way cmd/api does, over a fresh
// SQLite database and the embedded catalog.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	testdb.Open(t, &model.Listing{}, &model.Enquiry{})
	require.NoError(t, catalog.Init())
	jwt.Init(testJWTSecret, time.Hour)

	app := fiber.New()
	app.Options("/api/sheets", SheetsPreflight)

	api := app.Group("/api")
	api.Get("/health", Health)
	api.Post("/enquiries", CreateEnquiry)
	api.Post("/bookings", CreateBooking)
	api.Post("/sheets", ForwardToSheets)

	api.Get("/listings", ListListings)
	api.Get("/listings/suburbs", ListSuburbs)
	api.Get("/listings/:slug", GetListingBySlug)
	api.Get("/articles", ListArticles)
	api.Get("/articles/categories", ListArticleCategories)
	api.Get("/articles/:slug", GetArticleBySlug)
	api.Get("/services", ListServices)
	api.Get("/services/:slug", GetServiceBySlug)

	api.Post("/admin/login", AdminLogin)
	admin := api.Group("/admin", middleware.AuthMiddleware())
	admin.Get("/me", Me)
	admin.Get("/stats", GetDashboardStats)
	admin.Get("/enquiries", ListEnquiries)
	admin.Get("/enquiries/:id", GetEnquiry)
	admin.Put("/enquiries/:id/status", UpdateEnquiryStatus)
	admin.Get("/listings", ListAllListings)
	admin.Post("/listings/:id/images", UploadListingImage)

	return app
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.GenerateToken("office@example.com", jwt.RoleAdmin)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, body
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}, token string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, raw := doRequest(t, app, req)
	out := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

// fieldNames collects the field names of a validation error response.
func fieldNames(body map[string]interface{}) []string {
	details, _ := body["details"].([]interface{})
	names := make([]string, 0, len(details))
	for _, d := range details {
		if m, ok := d.(map[string]interface{}); ok {
			names = append(names, m["field"].(string))
		}
	}
	return names
}

func jsonRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
