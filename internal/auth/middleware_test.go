package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carpool-service/internal/auth"
	"carpool-service/internal/mocks"
	"carpool-service/pkg/jwt"
	"carpool-service/pkg/logger"
)

func newTestRouter(users *mocks.UserStore, sessions *mocks.SessionStore) http.Handler {
	mw := auth.NewMiddleware(users, sessions, logger.New("test"))

	ok := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

	r := chi.NewRouter()
	r.Use(mw.OptionalAuth)
	r.With(mw.RequireAuth).Get("/private", ok)
	r.With(mw.RequireAdmin).Get("/admin-only", ok)
	return r
}

func loginToken(t *testing.T, userID string) (token, jti string) {
	t.Helper()
	token, jti, err := jwt.Generate(userID, "someone", "user")
	require.NoError(t, err)
	return token, jti
}

func TestRequireAuthWithoutToken(t *testing.T) {
	r := newTestRouter(new(mocks.UserStore), new(mocks.SessionStore))

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthWithLiveSession(t *testing.T) {
	sessions := new(mocks.SessionStore)
	token, jti := loginToken(t, "u1")
	sessions.On("SessionExists", mock.Anything, jti).Return(true, nil)

	r := newTestRouter(new(mocks.UserStore), sessions)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthAfterLogout(t *testing.T) {
	sessions := new(mocks.SessionStore)
	token, jti := loginToken(t, "u1")
	// session key gone: the still-valid token must be refused
	sessions.On("SessionExists", mock.Anything, jti).Return(false, nil)

	r := newTestRouter(new(mocks.UserStore), sessions)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminForbidsNonAdmin(t *testing.T) {
	users := new(mocks.UserStore)
	sessions := new(mocks.SessionStore)
	token, jti := loginToken(t, "u1")
	sessions.On("SessionExists", mock.Anything, jti).Return(true, nil)
	users.On("IsAdmin", mock.Anything, "u1").Return(false, nil)

	r := newTestRouter(users, sessions)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	users.AssertExpectations(t)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	users := new(mocks.UserStore)
	sessions := new(mocks.SessionStore)
	token, jti := loginToken(t, "boss")
	sessions.On("SessionExists", mock.Anything, jti).Return(true, nil)
	users.On("IsAdmin", mock.Anything, "boss").Return(true, nil)

	r := newTestRouter(users, sessions)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdminWithoutToken(t *testing.T) {
	r := newTestRouter(new(mocks.UserStore), new(mocks.SessionStore))

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
