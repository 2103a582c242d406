package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"preauth-service/internal/app/config"
	"preauth-service/internal/pkg/constvars"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func newTestMiddlewares() *Middlewares {
	return NewMiddlewares(zap.NewNop(), &config.InternalConfig{
		JWT: config.JWT{Secret: testSecret, ExpTimeInHour: 1},
	})
}

func signToken(t *testing.T, role, secret string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedEndpoint(m *Middlewares, roles ...string) http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return m.Authenticate(m.RequireRole(roles...)(inner))
}

func TestAuthenticateMissingToken(t *testing.T) {
	m := newTestMiddlewares()
	handler := protectedEndpoint(m, constvars.AuthRoleProvider)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/cases", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	m := newTestMiddlewares()
	handler := protectedEndpoint(m, constvars.AuthRoleProvider)

	request := httptest.NewRequest(http.MethodGet, "/cases", nil)
	request.Header.Set(constvars.HeaderAuthorization, "Basic abc123")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticateWrongSecret(t *testing.T) {
	m := newTestMiddlewares()
	handler := protectedEndpoint(m, constvars.AuthRoleProvider)

	request := httptest.NewRequest(http.MethodGet, "/cases", nil)
	request.Header.Set(constvars.HeaderAuthorization, "Bearer "+signToken(t, constvars.AuthRoleProvider, "other-secret", time.Now().Add(time.Hour)))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	m := newTestMiddlewares()
	handler := protectedEndpoint(m, constvars.AuthRoleProvider)

	request := httptest.NewRequest(http.MethodGet, "/cases", nil)
	request.Header.Set(constvars.HeaderAuthorization, "Bearer "+signToken(t, constvars.AuthRoleProvider, testSecret, time.Now().Add(-time.Hour)))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequireRoleForbidsOtherRole(t *testing.T) {
	m := newTestMiddlewares()
	handler := protectedEndpoint(m, constvars.AuthRoleInsurer)

	request := httptest.NewRequest(http.MethodPost, "/cases/abc/decision", nil)
	request.Header.Set(constvars.HeaderAuthorization, "Bearer "+signToken(t, constvars.AuthRoleProvider, testSecret, time.Now().Add(time.Hour)))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestRequireRoleAllowsNamedRoles(t *testing.T) {
	m := newTestMiddlewares()
	handler := protectedEndpoint(m, constvars.AuthRoleProvider, constvars.AuthRoleInsurer)

	for _, role := range []string{constvars.AuthRoleProvider, constvars.AuthRoleInsurer} {
		request := httptest.NewRequest(http.MethodGet, "/cases", nil)
		request.Header.Set(constvars.HeaderAuthorization, "Bearer "+signToken(t, role, testSecret, time.Now().Add(time.Hour)))
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code, "role %s should pass", role)
	}
}
