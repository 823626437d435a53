package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Dan9191/finance-tracker/internal/service"
	"github.com/Dan9191/finance-tracker/internal/utils"
	"github.com/sirupsen/logrus"
)

type contextKey int

const (
	userIDKey contextKey = iota
	usernameKey
	requestInfoKey
)

// TokenParser verifies bearer tokens.
type TokenParser interface {
	ParseToken(token string) (*service.Claims, error)
}

// Auth rejects requests without a valid bearer token and stores the token's
// user in the request context.
func Auth(parser TokenParser, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.WriteError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				utils.WriteError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}

			claims, err := parser.ParseToken(strings.TrimSpace(parts[1]))
			if errors.Is(err, service.ErrTokenExpired) {
				utils.WriteError(w, http.StatusUnauthorized, "token expired")
				return
			}
			if err != nil {
				log.WithError(err).Debug("Rejected bearer token")
				utils.WriteError(w, http.StatusForbidden, "invalid token")
				return
			}

			if info, ok := r.Context().Value(requestInfoKey).(*requestInfo); ok {
				info.userID = claims.UserID
			}
			ctx := WithUser(r.Context(), claims.UserID, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, userID, username string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, usernameKey, username)
}

// UserID returns the authenticated user id stored by Auth.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// Username returns the authenticated username stored by Auth.
func Username(ctx context.Context) string {
	name, _ := ctx.Value(usernameKey).(string)
	return name
}
