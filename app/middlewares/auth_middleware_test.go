package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fnbapp/backend/app/models"
	"github.com/fnbapp/backend/app/services"
)

// stubUserRepo serves a fixed set of accounts by id; the write methods are
// never reached by the middleware under test.
type stubUserRepo struct {
	byID map[string]*models.User
}

func (s *stubUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.byID[id], nil
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, nil
}
func (s *stubUserRepo) FindByEmailAndCode(ctx context.Context, email, code string) (*models.User, error) {
	return nil, nil
}
func (s *stubUserRepo) ClearVerificationCode(ctx context.Context, userID string) error { return nil }
func (s *stubUserRepo) SaveResetToken(ctx context.Context, userID string, token *string, expiresAt *time.Time) error {
	return nil
}
func (s *stubUserRepo) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	return nil, nil
}
func (s *stubUserRepo) ClearResetToken(ctx context.Context, userID string) error { return nil }
func (s *stubUserRepo) UpdatePassword(ctx context.Context, userID string, newPasswordHash string) error {
	return nil
}
func (s *stubUserRepo) UpdateProfile(ctx context.Context, userID, username, phone string) error {
	return nil
}
func (s *stubUserRepo) UpdatePhoto(ctx context.Context, userID, photoURL string) error  { return nil }
func (s *stubUserRepo) UpdateStatus(ctx context.Context, userID, status string) error   { return nil }
func (s *stubUserRepo) ListPaginated(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	return nil, 0, nil
}

func newTestTokens(t *testing.T) *services.TokenService {
	t.Helper()
	tokens, err := services.NewTokenService("test-secret", "HS256", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	return tokens
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	tokens := newTestTokens(t)
	protected := Authenticate(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		email, ok := UserEmailFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "user-1", id)
		assert.Equal(t, "alice@example.com", email)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing header rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh token rejected on access guard", func(t *testing.T) {
		refresh, err := tokens.Issue(services.TokenKindRefresh, "alice@example.com", "user-1", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid access token passes context through", func(t *testing.T) {
		access, err := tokens.Issue(services.TokenKindAccess, "alice@example.com", "user-1", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	repo := &stubUserRepo{byID: map[string]*models.User{
		"user-1":  {ID: "user-1", RoleID: models.RoleUser, Status: models.StatusActive},
		"staff-1": {ID: "staff-1", RoleID: models.RoleStaff, Status: models.StatusActive},
		"admin-1": {ID: "admin-1", RoleID: models.RoleAdmin, Status: models.StatusActive},
		"frozen":  {ID: "frozen", RoleID: models.RoleAdmin, Status: models.StatusSuspended},
	}}

	serve := func(minRole uint, userID string) *httptest.ResponseRecorder {
		guard := RequireRole(repo, minRole)(okHandler())
		req := httptest.NewRequest("GET", "/", nil)
		if userID != "" {
			req = req.WithContext(context.WithValue(req.Context(), ContextKeyUserID, userID))
		}
		w := httptest.NewRecorder()
		guard.ServeHTTP(w, req)
		return w
	}

	t.Run("no identity in context", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(models.RoleUser, "").Code)
	})

	t.Run("unknown account rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(models.RoleUser, "ghost").Code)
	})

	t.Run("user blocked from staff tier", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, serve(models.RoleStaff, "user-1").Code)
	})

	t.Run("staff passes staff tier", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(models.RoleStaff, "staff-1").Code)
	})

	t.Run("admin passes staff tier", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(models.RoleStaff, "admin-1").Code)
	})

	t.Run("suspended account blocked everywhere", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, serve(models.RoleUser, "frozen").Code)
	})
}
