package controller

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListArticles(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/articles", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(6), body["total"])

	_, body = doJSON(t, app, http.MethodGet, "/api/articles?category=property-management", nil, "")
	assert.ElementsMatch(t,
		[]string{"what-a-property-manager-does", "routine-inspections-explained"},
		slugsOf(t, body, "articles"))

	_, body = doJSON(t, app, http.MethodGet, "/api/articles?category=Property-Management", nil, "")
	assert.Equal(t, float64(0), body["total"])
}

func TestArticleCategoriesAndSlug(t *testing.T) {
	app := newTestApp(t)

	_, body := doJSON(t, app, http.MethodGet, "/api/articles/categories", nil, "")
	assert.Len(t, body["categories"], 5)

	resp, body := doJSON(t, app, http.MethodGet, "/api/articles/commercial-lease-basics", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "commercial", body["category"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/articles/missing-article", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Article not found", body["error"])
}

func TestServices(t *testing.T) {
	app := newTestApp(t)

	_, body := doJSON(t, app, http.MethodGet, "/api/services", nil, "")
	assert.Equal(t, float64(5), body["total"])

	_, body = doJSON(t, app, http.MethodGet, "/api/services?category=residential", nil, "")
	assert.ElementsMatch(t,
		[]string{"residential-property-management", "leasing-services"},
		slugsOf(t, body, "services"))

	resp, _ := doJSON(t, app, http.MethodGet, "/api/services/strata-management", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/services/pool-cleaning", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Service not found", body["error"])
}
