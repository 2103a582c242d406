package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"preauth-service/internal/pkg/constvars"
	"preauth-service/internal/pkg/exceptions"
	"preauth-service/internal/pkg/utils"

	"github.com/golang-jwt/jwt/v4"
)

type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticate parses the bearer token and stores the caller's role and
// subject in the request context. Tokens are HMAC-signed with the shared
// service secret.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(constvars.HeaderAuthorization)
		if header == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		claims := new(accessClaims)
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method: " + token.Method.Alg())
			}
			return []byte(m.InternalConfig.JWT.Secret), nil
		})
		if err != nil || !token.Valid {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_AUTH_ROLE_KEY, claims.Role)
		ctx = context.WithValue(ctx, constvars.CONTEXT_AUTH_SUBJECT_KEY, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route to the named roles. It must sit behind
// Authenticate.
func (m *Middlewares) RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(constvars.CONTEXT_AUTH_ROLE_KEY).(string)
			if !ok || role == "" {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
				return
			}
			if _, permitted := allowed[role]; !permitted {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleNotAllowed(nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
