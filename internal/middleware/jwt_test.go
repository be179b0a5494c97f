package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(Identity{ID: "user-1", Email: "alice@x.com", Role: "user"})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@x.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestIdentityIdentifier(t *testing.T) {
	assert.Equal(t, "alice@x.com", Identity{ID: "user-1", Email: "Alice@X.com"}.Identifier())
	assert.Equal(t, "user-1", Identity{ID: "USER-1"}.Identifier())
	assert.Equal(t, "", Identity{}.Identifier())
}

func TestApplyJWTMiddleware(t *testing.T) {
	var seen Identity
	handler := ApplyJWTMiddleware(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentityFromContext(r.Context())
		assert.True(t, ok)
		seen = identity
		w.WriteHeader(http.StatusOK)
	})

	// Missing header
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/messages/conversations/list", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong scheme
	req := httptest.NewRequest("GET", "/messages/conversations/list", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Invalid token
	req = httptest.NewRequest("GET", "/messages/conversations/list", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token flows through with identity attached
	token, err := GenerateToken(Identity{ID: "user-1", Email: "alice@x.com", Role: "admin"})
	assert.NoError(t, err)
	req = httptest.NewRequest("GET", "/messages/conversations/list", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", seen.ID)
	assert.Equal(t, "admin", seen.Role)
}
