package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sato4sk/items-api/controllers"
	"github.com/sato4sk/items-api/database/testdb"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return controllers.NewRouter(controllers.NewHandler(testdb.Connect(t)))
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("X-API-TOKEN", token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var data map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	return data
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var data []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	return data
}

func registerUser(t *testing.T, router *gin.Engine, email, password string) map[string]any {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/users/",
		fmt.Sprintf(`{"email":%q,"password":%q}`, email, password), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeObject(t, w)
}

func createItem(t *testing.T, router *gin.Engine, userID int, token, title, desc string) {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, fmt.Sprintf("/users/%d/items/", userID),
		fmt.Sprintf(`{"title":%q,"description":%q}`, title, desc), token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRegisterIssuesToken(t *testing.T) {
	router := newTestRouter(t)

	data := registerUser(t, router, "deadpool@example.com", "chimichangas4life")

	user, ok := data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "deadpool@example.com", user["email"])
	assert.Equal(t, float64(1), user["id"])
	assert.Equal(t, true, user["is_active"])
	assert.NotContains(t, user, "hashed_password")

	assert.Equal(t, "FAKE_ENCODE::user_id##1", data["X-API-TOKEN"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "deadpool@example.com", "chimichangas4life")

	w := doRequest(t, router, http.MethodPost, "/users/",
		`{"email":"deadpool@example.com","password":"other"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `{"detail":"Email already registered"}`, w.Body.String())
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t)
	created := registerUser(t, router, "deadpool@example.com", "chimichangas4life")

	w := doRequest(t, router, http.MethodGet,
		"/login/?email=deadpool%40example.com&password=chimichangas4life", "", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := decodeObject(t, w)
	assert.Equal(t, "success", data["login_status"])
	assert.Equal(t, created["X-API-TOKEN"], data["X-API-TOKEN"])
}

func TestLoginWrongPassword(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "deadpool@example.com", "chimichangas4life")

	w := doRequest(t, router, http.MethodGet,
		"/login/?email=deadpool%40example.com&password=wrong", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, `{"detail":"Incorrect username or password"}`, w.Body.String())
}

func TestHealthCheckAuth(t *testing.T) {
	router := newTestRouter(t)
	created := registerUser(t, router, "deadpool@example.com", "chimichangas4life")
	token := created["X-API-TOKEN"].(string)

	w := doRequest(t, router, http.MethodGet, "/health-check", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "ok", decodeObject(t, w)["status"])

	// authenticate with invalid token
	w = doRequest(t, router, http.MethodGet, "/health-check", "", "invalid")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, `{"detail":"User is not authenticated"}`, w.Body.String())

	// without token
	w = doRequest(t, router, http.MethodGet, "/health-check", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, `{"detail":"X-API-TOKEN is None"}`, w.Body.String())
}

func TestGetUser(t *testing.T) {
	router := newTestRouter(t)
	created := registerUser(t, router, "deadpool@example.com", "chimichangas4life")
	token := created["X-API-TOKEN"].(string)

	w := doRequest(t, router, http.MethodGet, "/users/1", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeObject(t, w)
	assert.Equal(t, "deadpool@example.com", data["email"])
	assert.Equal(t, float64(1), data["id"])

	w = doRequest(t, router, http.MethodGet, "/users/999", "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, `{"detail":"User not found"}`, w.Body.String())
}

func TestListUsersPagination(t *testing.T) {
	router := newTestRouter(t)
	created := registerUser(t, router, "a@example.com", "password")
	registerUser(t, router, "b@example.com", "password")
	registerUser(t, router, "c@example.com", "password")
	token := created["X-API-TOKEN"].(string)

	w := doRequest(t, router, http.MethodGet, "/users/", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decodeList(t, w), 3)

	w = doRequest(t, router, http.MethodGet, "/users/?skip=1&limit=1", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decodeList(t, w), 1)
}

func TestReadMyItems(t *testing.T) {
	router := newTestRouter(t)
	created := registerUser(t, router, "deadpool@example.com", "chimichangas4life")
	token := created["X-API-TOKEN"].(string)
	createItem(t, router, 1, token, "item1", "item1_desc")

	// another user's item must not show up
	registerUser(t, router, "dummy@", "dummypass")
	createItem(t, router, 2, token, "dummy_item", "dummy")

	w := doRequest(t, router, http.MethodGet, "/me/items", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	items := decodeList(t, w)
	require.Len(t, items, 1)
	assert.Equal(t, "item1", items[0]["title"])
	assert.Equal(t, "item1_desc", items[0]["description"])
}

func TestListItems(t *testing.T) {
	router := newTestRouter(t)
	created := registerUser(t, router, "deadpool@example.com", "chimichangas4life")
	token := created["X-API-TOKEN"].(string)
	createItem(t, router, 1, token, "item1", "item1_desc")
	createItem(t, router, 1, token, "item2", "item2_desc")

	w := doRequest(t, router, http.MethodGet, "/items/", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decodeList(t, w), 2)
}

func TestDeactivateUserReassignsItems(t *testing.T) {
	router := newTestRouter(t)
	created1 := registerUser(t, router, "user1@example.com", "password1")
	created2 := registerUser(t, router, "user2@example.com", "password2")
	registerUser(t, router, "user3@example.com", "password3")
	token1 := created1["X-API-TOKEN"].(string)
	token2 := created2["X-API-TOKEN"].(string)

	createItem(t, router, 2, token2, "item2", "item2_desc")
	createItem(t, router, 1, token1, "item1", "item1_desc")

	// any authenticated user may deactivate any user
	w := doRequest(t, router, http.MethodPost, "/users/2/delete", "", token1)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeObject(t, w)
	assert.Equal(t, float64(2), data["id"])
	assert.Equal(t, false, data["is_active"])

	// user 1 now owns both items
	w = doRequest(t, router, http.MethodGet, "/me/items", "", token1)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	items := decodeList(t, w)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, float64(1), item["owner_id"])
	}

	// user 1's active status is unaffected
	w = doRequest(t, router, http.MethodGet, "/users/1", "", token1)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decodeObject(t, w)["is_active"])

	// logging in as user 2 now fails
	w = doRequest(t, router, http.MethodGet,
		"/login/?email=user2%40example.com&password=password2", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, `{"detail":"User is not active"}`, w.Body.String())

	// and their old token no longer authenticates
	w = doRequest(t, router, http.MethodGet, "/health-check", "", token2)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, `{"detail":"User is not active"}`, w.Body.String())
}

func TestDeactivateLastActiveUser(t *testing.T) {
	router := newTestRouter(t)
	created := registerUser(t, router, "only@example.com", "password")
	token := created["X-API-TOKEN"].(string)

	w := doRequest(t, router, http.MethodPost, "/users/1/delete", "", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `{"detail":"No eligible recipient for items"}`, w.Body.String())

	// nothing was persisted, the user can still authenticate
	w = doRequest(t, router, http.MethodGet, "/health-check", "", token)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestDeactivateUnknownUser(t *testing.T) {
	router := newTestRouter(t)
	created := registerUser(t, router, "deadpool@example.com", "chimichangas4life")
	token := created["X-API-TOKEN"].(string)

	w := doRequest(t, router, http.MethodPost, "/users/999/delete", "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, `{"detail":"User not found"}`, w.Body.String())
}
