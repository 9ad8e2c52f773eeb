package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerAndLogin(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, _ := signup(t, app, "a@x.com", "secret1", "Alice")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, body := signin(t, app, "a@x.com", "secret1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestChatRoutes_RequireAuthentication(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/v1/chat/create", "/api/v1/chat/message"} {
		resp, body := postJSON(t, app, path, map[string]string{}, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		assert.Equal(t, "You are not logged in", body["message"], path)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestChatRelayFlow(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app)
	authHeader := map[string]string{fiber.HeaderAuthorization: "Bearer " + token}

	resp, body := postJSON(t, app, "/api/v1/chat/create", map[string]string{"title": "sales numbers"}, authHeader)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	chatID, _ := body["id"].(string)
	require.NotEmpty(t, chatID)

	resp, body = postJSON(t, app, "/api/v1/chat/message", map[string]string{
		"chatId": chatID, "content": "what changed in Q3?",
	}, authHeader)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "created", body["message"])

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	listResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	raw, err := io.ReadAll(listResp.Body)
	require.NoError(t, err)
	var chats []map[string]any
	require.NoError(t, json.Unmarshal(raw, &chats))
	require.Len(t, chats, 1)
	assert.Equal(t, chatID, chats[0]["id"])
	assert.Equal(t, "sales numbers", chats[0]["title"])
}

func TestChatCreate_InvalidInput(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app)
	authHeader := map[string]string{fiber.HeaderAuthorization: "Bearer " + token}

	resp, _ := postJSON(t, app, "/api/v1/chat/create", map[string]string{"title": ""}, authHeader)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = postJSON(t, app, "/api/v1/chat/message", map[string]string{"chatId": "", "content": ""}, authHeader)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
