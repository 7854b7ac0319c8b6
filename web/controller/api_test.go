package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/MarcosLesca/dashboard-api/database"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDBPath = "test.db"

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	os.Remove(testDBPath)
	require.NoError(t, database.InitDB(testDBPath))

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(sessions.Sessions("dashboard-api", cookie.NewStore([]byte("test-secret"))))

	api := engine.Group("/api")
	NewAuthController(api.Group("/auth"), 60)
	NewDashboardController(api.Group("/dashboards"))
	NewWidgetController(api.Group("/widgets"))

	return engine
}

func teardown() {
	if database.GetDB() != nil {
		if db, err := database.GetDB().DB(); err == nil {
			db.Close()
		}
	}
	os.Remove(testDBPath)
}

// apiClient drives the router with its own cookie jar, one per simulated user.
type apiClient struct {
	engine  *gin.Engine
	cookies map[string]*http.Cookie
}

func newAPIClient(engine *gin.Engine) *apiClient {
	return &apiClient{engine: engine, cookies: make(map[string]*http.Cookie)}
}

func (cl *apiClient) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	cl.engine.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		cl.cookies[c.Name] = c
	}
	return w
}

func (cl *apiClient) register(t *testing.T, username, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return cl.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"username":   username,
		"email":      email,
		"first_name": "Test",
		"last_name":  "User",
		"password":   password,
	})
}

func (cl *apiClient) login(t *testing.T, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return cl.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": email, "password": password})
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestAuthRegisterAndLogin(t *testing.T) {
	engine := setupRouter(t)
	defer teardown()

	alice := newAPIClient(engine)

	w := alice.register(t, "alice", "alice@example.com", "password123")
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "User created successfully", body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, user, "password", "password must never be echoed")

	// Duplicate registration fails with a field-keyed error
	w = alice.register(t, "alice", "alice@example.com", "password123")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeJSON(t, w), "email")

	// No session yet
	w = alice.do(t, http.MethodGet, "/api/auth/profile", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong password and unknown email share one generic message
	w = alice.login(t, "alice@example.com", "nope-wrong")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []any{"Invalid credentials"}, decodeJSON(t, w)["non_field_errors"])
	w = alice.login(t, "ghost@example.com", "password123")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []any{"Invalid credentials"}, decodeJSON(t, w)["non_field_errors"])

	w = alice.login(t, "alice@example.com", "password123")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successful", decodeJSON(t, w)["message"])

	// The session now resolves the identity without re-sending credentials
	w = alice.do(t, http.MethodGet, "/api/auth/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decodeJSON(t, w)["username"])

	// Logout invalidates the session
	w = alice.do(t, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = alice.do(t, http.MethodGet, "/api/auth/profile", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileUpdate(t *testing.T) {
	engine := setupRouter(t)
	defer teardown()

	alice := newAPIClient(engine)
	alice.register(t, "alice", "alice@example.com", "password123")
	alice.login(t, "alice@example.com", "password123")

	w := alice.do(t, http.MethodPut, "/api/auth/profile", gin.H{"first_name": "Alicia"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "Alicia", body["first_name"])
	assert.Equal(t, "alice", body["username"])

	// Malformed email is a field error
	w = alice.do(t, http.MethodPut, "/api/auth/profile", gin.H{"email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeJSON(t, w), "email")
}

func TestDashboardScenario(t *testing.T) {
	engine := setupRouter(t)
	defer teardown()

	alice := newAPIClient(engine)
	alice.register(t, "alice", "alice@example.com", "password123")
	alice.login(t, "alice@example.com", "password123")

	// A client-supplied owner is ignored; the session decides
	w := alice.do(t, http.MethodPost, "/api/dashboards", gin.H{
		"name":        "Sales",
		"description": "quarterly numbers",
		"owner":       999,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	dashboard := decodeJSON(t, w)
	dashboardId := int(dashboard["id"].(float64))
	assert.NotEqual(t, float64(999), dashboard["owner"])
	assert.Equal(t, "Test User", dashboard["owner_name"])

	w = alice.do(t, http.MethodPost, "/api/widgets", gin.H{
		"name":        "Revenue Chart",
		"widget_type": "chart",
		"dashboard":   dashboardId,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = alice.do(t, http.MethodGet, fmt.Sprintf("/api/dashboards/%d/widgets", dashboardId), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var widgets []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &widgets))
	require.Len(t, widgets, 1)
	assert.Equal(t, "Revenue Chart", widgets[0]["name"])

	// Bob sees no foreign dashboards in lists...
	bob := newAPIClient(engine)
	bob.register(t, "bob", "bob@example.com", "password123")
	bob.login(t, "bob@example.com", "password123")

	w = bob.do(t, http.MethodGet, "/api/dashboards", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dashboards []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dashboards))
	assert.Empty(t, dashboards)

	// ...but may read any dashboard by id (read-open)
	w = bob.do(t, http.MethodGet, fmt.Sprintf("/api/dashboards/%d", dashboardId), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Writes stay owner-only
	w = bob.do(t, http.MethodDelete, fmt.Sprintf("/api/dashboards/%d", dashboardId), nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You do not have permission to perform this action.", decodeJSON(t, w)["detail"])

	// The nested widget list has no read-open exception
	w = bob.do(t, http.MethodGet, fmt.Sprintf("/api/dashboards/%d/widgets", dashboardId), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found.", decodeJSON(t, w)["detail"])

	// Logical delete by the owner hides the dashboard from everyone
	w = alice.do(t, http.MethodDelete, fmt.Sprintf("/api/dashboards/%d", dashboardId), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = bob.do(t, http.MethodGet, fmt.Sprintf("/api/dashboards/%d", dashboardId), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWidgetValidationAndScoping(t *testing.T) {
	engine := setupRouter(t)
	defer teardown()

	alice := newAPIClient(engine)
	alice.register(t, "alice", "alice@example.com", "password123")
	alice.login(t, "alice@example.com", "password123")

	w := alice.do(t, http.MethodPost, "/api/dashboards", gin.H{"name": "Sales"})
	require.Equal(t, http.StatusCreated, w.Code)
	dashboardId := int(decodeJSON(t, w)["id"].(float64))

	// Unknown widget type
	w = alice.do(t, http.MethodPost, "/api/widgets", gin.H{
		"name":        "Bad",
		"widget_type": "gauge",
		"dashboard":   dashboardId,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeJSON(t, w), "widget_type")

	// Missing required fields are reported per field
	w = alice.do(t, http.MethodPost, "/api/widgets", gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeJSON(t, w)
	assert.Contains(t, body, "name")
	assert.Contains(t, body, "widget_type")
	assert.Contains(t, body, "dashboard")

	// Creating on someone else's dashboard is indistinguishable from a
	// missing dashboard
	bob := newAPIClient(engine)
	bob.register(t, "bob", "bob@example.com", "password123")
	bob.login(t, "bob@example.com", "password123")
	w = bob.do(t, http.MethodPost, "/api/widgets", gin.H{
		"name":        "Spy Widget",
		"widget_type": "chart",
		"dashboard":   dashboardId,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// All widget endpoints require authentication
	anon := newAPIClient(engine)
	w = anon.do(t, http.MethodGet, "/api/widgets", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication credentials were not provided.", decodeJSON(t, w)["detail"])
}
