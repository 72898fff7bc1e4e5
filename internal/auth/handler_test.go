package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"carpool-service/internal/auth"
	"carpool-service/internal/mocks"
	"carpool-service/internal/models"
	"carpool-service/internal/store"
	"carpool-service/pkg/jwt"
	"carpool-service/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := jwt.Init("test-secret", time.Hour); err != nil {
		panic(err)
	}
	m.Run()
}

func newHandler(users *mocks.UserStore, sessions *mocks.SessionStore) *auth.Handler {
	log := logger.New("test")
	svc := auth.NewService(users, sessions, log)
	mw := auth.NewMiddleware(users, sessions, log)
	return auth.NewHandler(svc, mw)
}

func TestRegisterStoresUserRole(t *testing.T) {
	users := new(mocks.UserStore)
	sessions := new(mocks.SessionStore)

	// the request body even tries to claim admin; the field does not exist
	// on the DTO and the stored role is what the store decides
	body := `{"username":"sara01","email":"sara@example.com","password":"secret1",` +
		`"name":"Sara","phone":"+923001234567","role":"admin"}`

	users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Return(&models.User{ID: "u1", Username: "sara01", Role: models.RoleUser}, nil)
	sessions.On("StoreSession", mock.Anything, mock.AnythingOfType("string"), "u1", mock.Anything).
		Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	newHandler(users, sessions).HandleRegister(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp auth.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleUser, resp.User.Role)

	created := users.Calls[0].Arguments.Get(1).(*models.User)
	assert.Empty(t, created.Role, "handler must not forward a role")
	users.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestRegisterValidation(t *testing.T) {
	users := new(mocks.UserStore)
	sessions := new(mocks.SessionStore)

	body := `{"username":"x","email":"bad","password":"1","name":"","phone":""}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	newHandler(users, sessions).HandleRegister(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid data provided", resp["message"])
	assert.NotEmpty(t, resp["errors"])
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterDuplicateConflict(t *testing.T) {
	users := new(mocks.UserStore)
	sessions := new(mocks.SessionStore)

	users.On("Create", mock.Anything, mock.Anything).Return(nil, store.ErrDuplicate)

	body := `{"username":"sara01","email":"sara@example.com","password":"secret1",` +
		`"name":"Sara","phone":"+923001234567"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	newHandler(users, sessions).HandleRegister(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	users := new(mocks.UserStore)
	sessions := new(mocks.SessionStore)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	users.On("GetByUsername", mock.Anything, "sara01").
		Return(&models.User{ID: "u1", Username: "sara01", PasswordHash: string(hash)}, nil)
	users.On("GetByUsername", mock.Anything, "nobody").
		Return(nil, store.ErrNotFound)

	h := newHandler(users, sessions)

	// wrong password
	req := httptest.NewRequest(http.MethodPost, "/api/login",
		bytes.NewBufferString(`{"username":"sara01","password":"wrong"}`))
	w := httptest.NewRecorder()
	h.HandleLogin(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// unknown user
	req = httptest.NewRequest(http.MethodPost, "/api/login",
		bytes.NewBufferString(`{"username":"nobody","password":"whatever"}`))
	w = httptest.NewRecorder()
	h.HandleLogin(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginSuccess(t *testing.T) {
	users := new(mocks.UserStore)
	sessions := new(mocks.SessionStore)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	users.On("GetByUsername", mock.Anything, "sara01").
		Return(&models.User{ID: "u1", Username: "sara01", Role: models.RoleUser, PasswordHash: string(hash)}, nil)
	sessions.On("StoreSession", mock.Anything, mock.AnythingOfType("string"), "u1", mock.Anything).
		Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		bytes.NewBufferString(`{"username":"sara01","password":"correct-horse"}`))
	w := httptest.NewRecorder()
	newHandler(users, sessions).HandleLogin(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp auth.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	claims, err := jwt.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	sessions.AssertExpectations(t)
}

func TestLogoutDeletesSession(t *testing.T) {
	users := new(mocks.UserStore)
	sessions := new(mocks.SessionStore)
	sessions.On("DeleteSession", mock.Anything, "jti-1").Return(nil)

	claims := &jwt.Claims{
		UserID:           "u1",
		RegisteredClaims: gojwt.RegisteredClaims{ID: "jti-1"},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req = req.WithContext(auth.WithClaims(context.Background(), claims))

	w := httptest.NewRecorder()
	newHandler(users, sessions).HandleLogout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	sessions.AssertExpectations(t)
}
