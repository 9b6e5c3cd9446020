package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLogin(t *testing.T) {
	s, mock, tokens, err := NewMockTestServer(testSecret)
	require.NoError(t, err)
	defer func() { _ = mock.Close() }()
	RegisterLoginEndpoint(s)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectUserByEmail("alice@example.com", 7, string(hash))

	req := httptest.NewRequest("POST", "/login",
		strings.NewReader(`{"email": "alice@example.com", "password": "hunter2"}`))
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.User.Password)

	// The issued token authenticates as the stored user.
	subject, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, 7, subject)
	assert.NoError(t, mock.VerifyExpectations())
}

func TestLoginWrongPassword(t *testing.T) {
	s, mock, _, err := NewMockTestServer(testSecret)
	require.NoError(t, err)
	RegisterLoginEndpoint(s)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectUserByEmail("alice@example.com", 7, string(hash))

	req := httptest.NewRequest("POST", "/login",
		strings.NewReader(`{"email": "alice@example.com", "password": "wrong"}`))
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
}

func TestLoginUnknownEmailLooksLikeBadPassword(t *testing.T) {
	s, mock, _, err := NewMockTestServer(testSecret)
	require.NoError(t, err)
	RegisterLoginEndpoint(s)

	mock.ExpectUserNotFound("nobody@example.com")

	req := httptest.NewRequest("POST", "/login",
		strings.NewReader(`{"email": "nobody@example.com", "password": "x"}`))
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
}

func TestLoginRequiresCredentials(t *testing.T) {
	s, mock, _, err := NewMockTestServer(testSecret)
	require.NoError(t, err)
	RegisterLoginEndpoint(s)

	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"email": "a@b.c"}`))
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.VerifyExpectations())
}
