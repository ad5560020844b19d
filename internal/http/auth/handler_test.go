package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/khusela/internal/auth"
	authhttp "github.com/MrJamesThe3rd/khusela/internal/http/auth"
)

func newServer(t *testing.T, users auth.Authenticator) http.Handler {
	t.Helper()

	mr := miniredis.RunT(t)
	denylist := auth.NewRedisDenylist(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	svc := auth.NewService(users, auth.NewTokens("test-secret", 8*time.Hour, denylist))

	r := chi.NewRouter()
	r.Route("/api/auth", authhttp.NewHandler(svc).Routes)

	return r
}

func do(h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Login(t *testing.T) {
	identity := &auth.Identity{UserID: uuid.New(), Username: "admin", Role: auth.RoleAdmin}

	type testCase struct {
		name       string
		body       string
		setupMock  func(m *auth.MockAuthenticator)
		wantStatus int
		wantError  string
	}

	tests := []testCase{
		{
			name: "Success",
			body: `{"username":"admin","password":"Admin@1234"}`,
			setupMock: func(m *auth.MockAuthenticator) {
				m.EXPECT().Authenticate(gomock.Any(), "admin", "Admin@1234").Return(identity, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "MissingPassword",
			body:       `{"username":"admin"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Username and password are required.",
		},
		{
			name: "BadCredentials",
			body: `{"username":"admin","password":"nope"}`,
			setupMock: func(m *auth.MockAuthenticator) {
				m.EXPECT().Authenticate(gomock.Any(), "admin", "nope").Return(nil, auth.ErrInvalidCredentials)
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid username or password.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			users := auth.NewMockAuthenticator(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(users)
			}

			rec := do(newServer(t, users), http.MethodPost, "/api/auth/login", tt.body, "")

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
				return
			}

			assert.NotEmpty(t, body["token"])
			assert.Equal(t, "Admin", body["user"].(map[string]any)["role"])
		})
	}
}

func TestHandler_VerifyAndLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	identity := &auth.Identity{UserID: uuid.New(), Username: "thandi", Role: auth.RoleHR}

	users := auth.NewMockAuthenticator(ctrl)
	users.EXPECT().Authenticate(gomock.Any(), "thandi", "secret1").Return(identity, nil)

	srv := newServer(t, users)

	rec := do(srv, http.MethodPost, "/api/auth/login", `{"username":"thandi","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	rec = do(srv, http.MethodGet, "/api/auth/verify", "", login.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"valid":true`)
	assert.Contains(t, rec.Body.String(), `"username":"thandi"`)

	rec = do(srv, http.MethodPost, "/api/auth/logout", "", login.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(srv, http.MethodGet, "/api/auth/verify", "", login.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(srv, http.MethodGet, "/api/auth/verify", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
