package handlers

import (
	"net/http"
	"testing"

	"github.com/mattertouch/storefront/app/middlewares"
	"github.com/mattertouch/storefront/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSessionStore records session writes instead of emitting cookies.
type fakeSessionStore struct {
	userID  string
	cleared bool
}

func (s *fakeSessionStore) GetUserID(r *http.Request) string { return s.userID }

func (s *fakeSessionStore) SetUserID(w http.ResponseWriter, r *http.Request, userID string) error {
	s.userID = userID
	return nil
}

func (s *fakeSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	s.userID = ""
	s.cleared = true
	return nil
}

func newAuthHandlerFixture(t *testing.T) (*fixture, *AuthHandler, *fakeSessionStore) {
	t.Helper()
	f := newFixture(t)
	store := &fakeSessionStore{}
	return f, NewAuthHandler(f.rnd, f.authSvc, store, f.validate), store
}

func TestRegisterEndpoint(t *testing.T) {
	f, h, _ := newAuthHandlerFixture(t)

	rec := doJSON(t, http.MethodPost, "/api/auth/register", "/api/auth/register", `{"email":"new@example.com","password":"secret123","name":"小王"}`, nil, h.Register)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		UserID string `json:"userId"`
	}
	decodeBody(t, rec, &body)
	require.NotEmpty(t, body.UserID)

	// The cart exists before the user's first cart request.
	var cart models.Cart
	require.NoError(t, f.db.First(&cart, "user_id = ?", body.UserID).Error)
}

func TestRegisterEndpointValidation(t *testing.T) {
	_, h, _ := newAuthHandlerFixture(t)

	for _, body := range []string{
		`{"password":"secret123"}`,
		`{"email":"not-an-email","password":"secret123"}`,
		`{"email":"new@example.com","password":"short"}`,
	} {
		rec := doJSON(t, http.MethodPost, "/api/auth/register", "/api/auth/register", body, nil, h.Register)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestRegisterEndpointDuplicateEmail(t *testing.T) {
	_, h, _ := newAuthHandlerFixture(t)
	body := `{"email":"dup@example.com","password":"secret123"}`

	rec := doJSON(t, http.MethodPost, "/api/auth/register", "/api/auth/register", body, nil, h.Register)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, http.MethodPost, "/api/auth/register", "/api/auth/register", body, nil, h.Register)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEndpointSetsSession(t *testing.T) {
	f, h, store := newAuthHandlerFixture(t)

	user, err := f.authSvc.Register(t.Context(), "login@example.com", "secret123", nil)
	require.NoError(t, err)

	rec := doJSON(t, http.MethodPost, "/api/auth/login", "/api/auth/login", `{"email":"login@example.com","password":"secret123"}`, nil, h.Login)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID, store.userID)

	// The password hash must not appear in the response.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	f, h, store := newAuthHandlerFixture(t)

	_, err := f.authSvc.Register(t.Context(), "login@example.com", "secret123", nil)
	require.NoError(t, err)

	rec := doJSON(t, http.MethodPost, "/api/auth/login", "/api/auth/login", `{"email":"login@example.com","password":"wrong"}`, nil, h.Login)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, store.userID)
}

func TestLogoutEndpoint(t *testing.T) {
	_, h, store := newAuthHandlerFixture(t)
	store.userID = "someone"

	rec := doJSON(t, http.MethodPost, "/api/auth/logout", "/api/auth/logout", "", nil, h.Logout)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, store.cleared)
	assert.Empty(t, store.userID)
}

func TestVerifyPasswordEndpoint(t *testing.T) {
	f, h, _ := newAuthHandlerFixture(t)

	user, err := f.authSvc.Register(t.Context(), "verify@example.com", "secret123", nil)
	require.NoError(t, err)
	identity := &middlewares.Identity{UserID: user.ID, Role: user.Role}

	rec := doJSON(t, http.MethodPost, "/api/auth/verify-password", "/api/auth/verify-password", `{"password":"secret123"}`, identity, h.VerifyPassword)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Valid bool `json:"valid"`
	}
	decodeBody(t, rec, &body)
	assert.True(t, body.Valid)

	rec = doJSON(t, http.MethodPost, "/api/auth/verify-password", "/api/auth/verify-password", `{"password":"wrong"}`, identity, h.VerifyPassword)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// No session at all.
	rec = doJSON(t, http.MethodPost, "/api/auth/verify-password", "/api/auth/verify-password", `{"password":"secret123"}`, nil, h.VerifyPassword)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
