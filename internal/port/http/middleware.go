package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/Taraansh/e-commerce/internal/domain/entity"
	"github.com/Taraansh/e-commerce/internal/platform/auth"
	"github.com/Taraansh/e-commerce/internal/platform/logger"
	"github.com/Taraansh/e-commerce/internal/service"
)

// contextKey avoids collisions with other packages' context values.
type contextKey string

const userCtxKey = contextKey("user")

// TokenVerifier validates a session token. Satisfied by auth.TokenManager.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

var _ TokenVerifier = (*auth.TokenManager)(nil)

// Authenticator verifies the bearer token, loads the account it names, and
// stores it in the request context.
func Authenticator(verifier TokenVerifier, users *service.UserService, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeError(w, auth.ErrInvalidToken)
				return
			}
			claims, err := verifier.Verify(token)
			if err != nil {
				writeError(w, auth.ErrInvalidToken)
				return
			}
			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				log.Warnf("token valid but user %s not loadable: %v", claims.UserID, err)
				writeError(w, auth.ErrInvalidToken)
				return
			}
			ctx := context.WithValue(r.Context(), userCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTypes rejects authenticated requests whose account type is not in
// the allow list.
func RequireTypes(types ...entity.UserType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := userFromContext(r.Context())
			if user == nil {
				writeError(w, auth.ErrInvalidToken)
				return
			}
			for _, t := range types {
				if user.Type == t {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, service.ErrForbidden)
		})
	}
}

func userFromContext(ctx context.Context) *entity.User {
	user, _ := ctx.Value(userCtxKey).(*entity.User)
	return user
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
