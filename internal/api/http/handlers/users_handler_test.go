package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/datachat-gateway/internal/api/http"
	"github.com/spec-kit/datachat-gateway/internal/api/http/handlers"
	"github.com/spec-kit/datachat-gateway/internal/auth"
	"github.com/spec-kit/datachat-gateway/internal/config"
	"github.com/spec-kit/datachat-gateway/internal/observability"
	"github.com/spec-kit/datachat-gateway/internal/persistence"
	"github.com/spec-kit/datachat-gateway/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	authService := service.NewAuthService(
		config.AuthConfig{JWTSecret: "test-secret", BcryptCost: bcrypt.MinCost},
		service.NewFakeUserRepository(),
	)
	chatService := service.NewChatService(service.NewFakeChatRepository())
	analysisService := service.NewAnalysisService(config.AnalysisConfig{}, &persistence.Redis{}, zap.NewNop())
	middleware := auth.NewMiddleware(authService.TokenManager())

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", &persistence.Postgres{}, &persistence.Redis{}),
		Users:          handlers.NewUsersHandler(authService, middleware),
		Chat:           handlers.NewChatHandler(chatService),
		Analysis:       handlers.NewAnalysisHandler(analysisService),
		AuthMiddleware: middleware,
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return decoded
}

func signup(t *testing.T, app *fiber.App, email, password, name string) (*http.Response, map[string]any) {
	t.Helper()
	return postJSON(t, app, "/api/v1/user/signup", map[string]string{
		"email": email, "password": password, "name": name,
	}, nil)
}

func signin(t *testing.T, app *fiber.App, email, password string) (*http.Response, map[string]any) {
	t.Helper()
	return postJSON(t, app, "/api/v1/user/signin", map[string]string{
		"email": email, "password": password,
	}, nil)
}

func TestSignupSigninAuthenticateFlow(t *testing.T) {
	app := newTestApp(t)

	resp, body := signup(t, app, "a@x.com", "secret1", "Alice")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User created successfully", body["message"])

	resp, body = signin(t, app, "a@x.com", "secret1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Login Successful", body["message"])
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	resp, body = postJSON(t, app, "/api/v1/user/authenticate", nil, map[string]string{
		fiber.HeaderAuthorization: "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["LoggedIn"])
	assert.Equal(t, "You are logged in", body["message"])

	// Repeated checks with the same token keep succeeding.
	resp, body = postJSON(t, app, "/api/v1/user/authenticate", nil, map[string]string{
		fiber.HeaderAuthorization: "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["LoggedIn"])
}

func TestSignup_Failures(t *testing.T) {
	app := newTestApp(t)

	t.Run("invalid inputs", func(t *testing.T) {
		for _, payload := range []map[string]string{
			{"email": "not-an-email", "password": "secret1", "name": "Alice"},
			{"email": "a@x.com", "password": "short", "name": "Alice"},
			{"email": "a@x.com", "password": "secret1", "name": "Al"},
			{},
		} {
			resp, body := postJSON(t, app, "/api/v1/user/signup", payload, nil)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			assert.Equal(t, "Invalid inputs", body["message"])
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		resp, _ := signup(t, app, "dup@x.com", "secret1", "Alice")
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, body := signup(t, app, "dup@x.com", "other-password", "Mallory")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "User already exists", body["message"])
	})
}

func TestSignin_Failures(t *testing.T) {
	app := newTestApp(t)
	resp, _ := signup(t, app, "a@x.com", "secret1", "Alice")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("wrong password", func(t *testing.T) {
		resp, body := signin(t, app, "a@x.com", "wrong-pass")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.NotContains(t, body["message"], "password")
	})

	t.Run("unregistered email matches wrong-password response", func(t *testing.T) {
		wrongResp, wrongBody := signin(t, app, "a@x.com", "wrong-pass")
		unknownResp, unknownBody := signin(t, app, "nobody@x.com", "secret1")

		assert.Equal(t, http.StatusUnauthorized, unknownResp.StatusCode)
		assert.Equal(t, wrongResp.StatusCode, unknownResp.StatusCode)
		assert.Equal(t, wrongBody["message"], unknownBody["message"],
			"response must not reveal whether the email exists")
		assert.NotContains(t, unknownBody["message"], "not found")
	})

	t.Run("missing password", func(t *testing.T) {
		resp, _ := signin(t, app, "a@x.com", "")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestAuthenticate_Negative(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{name: "missing header", headers: nil},
		{name: "garbage token", headers: map[string]string{fiber.HeaderAuthorization: "Bearer garbage"}},
		{name: "wrong scheme", headers: map[string]string{fiber.HeaderAuthorization: "Basic abc"}},
		{name: "bare token", headers: map[string]string{fiber.HeaderAuthorization: "abc"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp, body := postJSON(t, app, "/api/v1/user/authenticate", nil, test.headers)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, false, body["LoggedIn"])
			assert.Equal(t, "You are not logged in", body["message"])
		})
	}
}
