package middlewares

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fnbapp/backend/app/apperror"
	"github.com/fnbapp/backend/app/models"
	"github.com/fnbapp/backend/app/repositories"
	"github.com/fnbapp/backend/app/services"
)

type contextKey string

const (
	ContextKeyUserID    contextKey = "userID"
	ContextKeyUserEmail contextKey = "userEmail"
)

func writeAuthError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.Code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    appErr.Code,
		"status":  "Error",
		"message": appErr.Message,
	})
}

// Authenticate verifies the bearer access token and stores the subject's id
// and email in the request context.
func Authenticate(tokens *services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, apperror.ErrInvalidCredentials)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				writeAuthError(w, apperror.ErrInvalidCredentials)
				return
			}

			claims, err := tokens.Verify(parts[1], services.TokenKindAccess)
			if err != nil {
				writeAuthError(w, apperror.ErrInvalidCredentials)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, claims.UserID)
			ctx = context.WithValue(ctx, ContextKeyUserEmail, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole re-fetches the account row so a role or status change takes
// effect immediately, regardless of what an older token claims. Roles form
// an ordered hierarchy: an admin passes a staff-only check.
func RequireRole(userRepo repositories.UserRepositoryImpl, minRole uint) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok || userID == "" {
				writeAuthError(w, apperror.ErrInvalidCredentials)
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logrus.Errorf("RequireRole: failed to load user %s: %v", userID, err)
				writeAuthError(w, apperror.ErrInvalidCredentials)
				return
			}
			if user == nil {
				writeAuthError(w, apperror.ErrInvalidCredentials)
				return
			}

			if user.Status != models.StatusActive {
				writeAuthError(w, apperror.ErrForbidden)
				return
			}
			if !models.RoleSatisfies(user.RoleID, minRole) {
				writeAuthError(w, apperror.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextKeyUserID).(string)
	return id, ok
}

func UserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(ContextKeyUserEmail).(string)
	return email, ok
}
