// internal/dashboard/server_test.go
package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avpetrescu/catalog-admin/internal/config"
)

// fakeCatalogAPI is a stand-in for the real API server.
func fakeCatalogAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/login/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostFormValue("username") == "admin" && r.PostFormValue("password") == "secret" {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"message": "Login successful!",
				"user_id": 7,
				"token":   "jwt",
			})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "invalid username or password"})
	})
	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(`[{"id":1,"name":"Widget","description":"A widget","price":9.99,"image_url":"/images/widget.jpg"}]`))
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Product added successfully!",
			"product": 2,
		})
	})
	return httptest.NewServer(mux)
}

func newTestDashboard(t *testing.T, apiURL string) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server, err := NewServer(config.DashboardConfig{
		Port:          "0",
		APIBaseURL:    apiURL,
		SessionSecret: "test-session-secret",
		MessageTTL:    3,
	})
	require.NoError(t, err)
	return server
}

// postForm posts url-encoded fields, carrying over session cookies.
func postForm(t *testing.T, server *Server, path string, fields url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(fields.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

// mergeCookies overlays updated cookies on the existing set, newest
// value winning per name.
func mergeCookies(old, updated []*http.Cookie) []*http.Cookie {
	byName := make(map[string]*http.Cookie)
	for _, c := range old {
		byName[c.Name] = c
	}
	for _, c := range updated {
		byName[c.Name] = c
	}
	merged := make([]*http.Cookie, 0, len(byName))
	for _, c := range byName {
		merged = append(merged, c)
	}
	return merged
}

func getPage(t *testing.T, server *Server, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestDashboardShowsLoginFormWhenLoggedOut(t *testing.T) {
	api := fakeCatalogAPI(t)
	defer api.Close()
	server := newTestDashboard(t, api.URL)

	rec := getPage(t, server, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Login")
	assert.NotContains(t, body, "Add New Product")
}

func TestDashboardLoginFlow(t *testing.T) {
	api := fakeCatalogAPI(t)
	defer api.Close()
	server := newTestDashboard(t, api.URL)

	rec := postForm(t, server, "/login", url.Values{
		"username": {"admin"},
		"password": {"secret"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	page := getPage(t, server, cookies)
	require.Equal(t, http.StatusOK, page.Code)
	body := page.Body.String()
	assert.Contains(t, body, "Login successful! User ID: 7")
	assert.Contains(t, body, "Add New Product")
	assert.Contains(t, body, "Widget")
	assert.NotContains(t, body, "Enter username")
}

func TestDashboardFailedLoginStaysLoggedOut(t *testing.T) {
	api := fakeCatalogAPI(t)
	defer api.Close()
	server := newTestDashboard(t, api.URL)

	rec := postForm(t, server, "/login", url.Values{
		"username": {"admin"},
		"password": {"wrong"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	page := getPage(t, server, rec.Result().Cookies())
	body := page.Body.String()
	assert.Contains(t, body, "Invalid username or password.")
	assert.Contains(t, body, "Enter username")
	assert.NotContains(t, body, "Add New Product")
}

func TestDashboardLogoutFlow(t *testing.T) {
	api := fakeCatalogAPI(t)
	defer api.Close()
	server := newTestDashboard(t, api.URL)

	login := postForm(t, server, "/login", url.Values{
		"username": {"admin"},
		"password": {"secret"},
	}, nil)
	cookies := login.Result().Cookies()

	logout := postForm(t, server, "/logout", url.Values{}, cookies)
	require.Equal(t, http.StatusSeeOther, logout.Code)
	cookies = mergeCookies(cookies, logout.Result().Cookies())

	page := getPage(t, server, cookies)
	body := page.Body.String()
	assert.Contains(t, body, "You have been logged out.")
	assert.Contains(t, body, "Enter username")
}
