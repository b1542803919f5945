package middleware

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/stepupp/account-server-go/internal/errors"
	"github.com/stepupp/account-server-go/internal/httputil"
	"github.com/stepupp/account-server-go/internal/model"
	"github.com/stepupp/account-server-go/internal/service"
)

type contextKey string

const UserContextKey contextKey = "user"

func GetUser(ctx context.Context) *model.PublicUser {
	if user, ok := ctx.Value(UserContextKey).(*model.PublicUser); ok {
		return user
	}
	return nil
}

// AuthMiddleware resolves a bearer session credential to the account it
// was issued for and makes it available to downstream handlers.
type AuthMiddleware struct {
	sessions *service.SessionService
}

func NewAuthMiddleware(sessions *service.SessionService) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			httputil.WriteError(w, apperrors.Unauthorized("No token provided"))
			return
		}

		user, err := m.sessions.GetProfile(r.Context(), token)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
