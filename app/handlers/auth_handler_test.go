package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unrolled/render"

	"github.com/fnbapp/backend/app/apperror"
	"github.com/fnbapp/backend/app/helpers"
	"github.com/fnbapp/backend/app/models"
	"github.com/fnbapp/backend/app/services"
)

// memoryUserRepo is an in-memory stand-in for the credential store, keyed by
// account id with an email index.
type memoryUserRepo struct {
	users map[string]*models.User
	seq   int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]*models.User{}}
}

func (m *memoryUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return apperror.ErrDuplicateIdentity
		}
	}
	m.seq++
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", m.seq)
	}
	if user.RoleID == 0 {
		user.RoleID = models.RoleUser
	}
	if user.Status == "" {
		user.Status = models.StatusActive
	}
	m.users[user.ID] = user
	return nil
}

func (m *memoryUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return m.users[id], nil
}

func (m *memoryUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memoryUserRepo) FindByEmailAndCode(ctx context.Context, email, code string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email && u.VerificationCode != nil && *u.VerificationCode == code {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memoryUserRepo) ClearVerificationCode(ctx context.Context, userID string) error {
	if u, ok := m.users[userID]; ok {
		u.VerificationCode = nil
	}
	return nil
}

func (m *memoryUserRepo) SaveResetToken(ctx context.Context, userID string, token *string, expiresAt *time.Time) error {
	if u, ok := m.users[userID]; ok {
		u.ResetToken = token
		u.ResetTokenExpires = expiresAt
	}
	return nil
}

func (m *memoryUserRepo) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	for _, u := range m.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memoryUserRepo) ClearResetToken(ctx context.Context, userID string) error {
	if u, ok := m.users[userID]; ok {
		u.ResetToken = nil
		u.ResetTokenExpires = nil
	}
	return nil
}

func (m *memoryUserRepo) UpdatePassword(ctx context.Context, userID string, newPasswordHash string) error {
	if u, ok := m.users[userID]; ok {
		u.PasswordHash = newPasswordHash
	}
	return nil
}

func (m *memoryUserRepo) UpdateProfile(ctx context.Context, userID, username, phone string) error {
	if u, ok := m.users[userID]; ok {
		u.Username = username
		u.Phone = phone
	}
	return nil
}

func (m *memoryUserRepo) UpdatePhoto(ctx context.Context, userID, photoURL string) error {
	if u, ok := m.users[userID]; ok {
		u.Photo = &photoURL
	}
	return nil
}

func (m *memoryUserRepo) UpdateStatus(ctx context.Context, userID, status string) error {
	if u, ok := m.users[userID]; ok {
		u.Status = status
	}
	return nil
}

func (m *memoryUserRepo) ListPaginated(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

// recordedMail captures outbound mail instead of delivering it.
type recordedMail struct {
	To   string
	Kind string
	Code string
}

type recordingMailer struct {
	sent []recordedMail
}

func (r *recordingMailer) SendVerificationCode(to, code string) error {
	r.sent = append(r.sent, recordedMail{To: to, Kind: "verification", Code: code})
	return nil
}

func (r *recordingMailer) SendPasswordResetCode(to, code string, expiryMinutes int) error {
	r.sent = append(r.sent, recordedMail{To: to, Kind: "reset", Code: code})
	return nil
}

func (r *recordingMailer) SendOrderConfirmation(to, orderID string, total decimal.Decimal) error {
	r.sent = append(r.sent, recordedMail{To: to, Kind: "order"})
	return nil
}

func newTestAuthHandler(t *testing.T) (*AuthHandler, *memoryUserRepo, *recordingMailer) {
	t.Helper()

	tokens, err := services.NewTokenService("test-secret", "HS256", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	repo := newMemoryUserRepo()
	mailer := &recordingMailer{}
	handler := NewAuthHandler(
		render.New(),
		repo,
		tokens,
		mailer,
		helpers.NewBcryptHasher(),
		validator.New(),
		15*time.Minute,
	)
	return handler, repo, mailer
}

func doJSON(t *testing.T, fn http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	fn(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestCreateUser(t *testing.T) {
	t.Run("sign-up sends verification code", func(t *testing.T) {
		handler, repo, mailer := newTestAuthHandler(t)

		w := doJSON(t, handler.CreateUser, CreateUserRequest{
			Username:    "alice",
			Email:       "alice@example.com",
			Password:    "secret1",
			PhoneNumber: "555-0100",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeEnvelope(t, w)
		assert.Equal(t, "Success", resp.Status)

		user, _ := repo.FindByEmail(context.Background(), "alice@example.com")
		require.NotNil(t, user)
		assert.Equal(t, models.RoleUser, user.RoleID)
		require.NotNil(t, user.VerificationCode)
		assert.False(t, user.IsVerified())

		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "verification", mailer.sent[0].Kind)
		assert.Equal(t, *user.VerificationCode, mailer.sent[0].Code)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		handler, _, _ := newTestAuthHandler(t)
		body := CreateUserRequest{
			Username:    "alice",
			Email:       "alice@example.com",
			Password:    "secret1",
			PhoneNumber: "555-0100",
		}

		first := doJSON(t, handler.CreateUser, body)
		assert.Equal(t, http.StatusOK, first.Code)

		second := doJSON(t, handler.CreateUser, body)
		assert.Equal(t, http.StatusBadRequest, second.Code)
		resp := decodeEnvelope(t, second)
		assert.Equal(t, "Error", resp.Status)
		assert.Equal(t, "Email already registered", resp.Message)
	})

	t.Run("validation failure rejected", func(t *testing.T) {
		handler, _, _ := newTestAuthHandler(t)

		w := doJSON(t, handler.CreateUser, CreateUserRequest{
			Username:    "al",
			Email:       "not-an-email",
			Password:    "x",
			PhoneNumber: "1",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVerifyCode(t *testing.T) {
	handler, repo, mailer := newTestAuthHandler(t)

	doJSON(t, handler.CreateUser, CreateUserRequest{
		Username:    "alice",
		Email:       "alice@example.com",
		Password:    "secret1",
		PhoneNumber: "555-0100",
	})
	require.Len(t, mailer.sent, 1)
	code := mailer.sent[0].Code

	t.Run("wrong code rejected", func(t *testing.T) {
		wrong := "000000"
		if wrong == code {
			wrong = "111111"
		}
		w := doJSON(t, handler.VerifyCode, VerifyCodeRequest{
			Email:            "alice@example.com",
			VerificationCode: wrong,
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("correct code issues token pair and clears the code", func(t *testing.T) {
		w := doJSON(t, handler.VerifyCode, VerifyCodeRequest{
			Email:            "alice@example.com",
			VerificationCode: code,
		})
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeEnvelope(t, w)
		result := resp.Result.(map[string]interface{})
		assert.NotEmpty(t, result["access_token"])
		assert.NotEmpty(t, result["refresh_token"])
		assert.Equal(t, "bearer", result["token_type"])

		user, _ := repo.FindByEmail(context.Background(), "alice@example.com")
		assert.True(t, user.IsVerified())
	})

	t.Run("code is single-use", func(t *testing.T) {
		w := doJSON(t, handler.VerifyCode, VerifyCodeRequest{
			Email:            "alice@example.com",
			VerificationCode: code,
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func signUpAndVerify(t *testing.T, handler *AuthHandler, mailer *recordingMailer, email, password string) {
	t.Helper()
	doJSON(t, handler.CreateUser, CreateUserRequest{
		Username:    "alice",
		Email:       email,
		Password:    password,
		PhoneNumber: "555-0100",
	})
	code := mailer.sent[len(mailer.sent)-1].Code
	w := doJSON(t, handler.VerifyCode, VerifyCodeRequest{Email: email, VerificationCode: code})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSignIn(t *testing.T) {
	handler, _, mailer := newTestAuthHandler(t)
	signUpAndVerify(t, handler, mailer, "alice@example.com", "secret1")

	t.Run("valid credentials issue a pair", func(t *testing.T) {
		w := doJSON(t, handler.SignIn, SignInRequest{Email: "alice@example.com", Password: "secret1"})
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeEnvelope(t, w)
		result := resp.Result.(map[string]interface{})
		assert.NotEmpty(t, result["access_token"])
		assert.NotEmpty(t, result["refresh_token"])
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		wrongPassword := doJSON(t, handler.SignIn, SignInRequest{Email: "alice@example.com", Password: "wrong"})
		unknownEmail := doJSON(t, handler.SignIn, SignInRequest{Email: "ghost@example.com", Password: "secret1"})

		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
		assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	})
}

func TestRefreshToken(t *testing.T) {
	handler, _, mailer := newTestAuthHandler(t)
	signUpAndVerify(t, handler, mailer, "alice@example.com", "secret1")

	signIn := doJSON(t, handler.SignIn, SignInRequest{Email: "alice@example.com", Password: "secret1"})
	require.Equal(t, http.StatusOK, signIn.Code)
	result := decodeEnvelope(t, signIn).Result.(map[string]interface{})
	access := result["access_token"].(string)
	refresh := result["refresh_token"].(string)

	t.Run("refresh token yields a fresh access token", func(t *testing.T) {
		w := doJSON(t, handler.RefreshToken, RefreshTokenRequest{RefreshToken: refresh})
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeEnvelope(t, w)
		refreshed := resp.Result.(map[string]interface{})
		assert.NotEmpty(t, refreshed["access_token"])
		// no rotation: the refresh token is not reissued
		assert.Nil(t, refreshed["refresh_token"])
	})

	t.Run("access token rejected on the refresh endpoint", func(t *testing.T) {
		w := doJSON(t, handler.RefreshToken, RefreshTokenRequest{RefreshToken: access})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestForgotPassword(t *testing.T) {
	handler, repo, mailer := newTestAuthHandler(t)
	signUpAndVerify(t, handler, mailer, "alice@example.com", "secret1")
	sentBefore := len(mailer.sent)

	real := doJSON(t, handler.ForgotPassword, ForgotPasswordRequest{Email: "alice@example.com"})
	ghost := doJSON(t, handler.ForgotPassword, ForgotPasswordRequest{Email: "ghost@example.com"})

	// existing and unknown accounts get byte-identical envelopes
	assert.Equal(t, http.StatusOK, real.Code)
	assert.Equal(t, http.StatusOK, ghost.Code)
	assert.Equal(t, real.Body.String(), ghost.Body.String())

	// but only the real account gets mail and a stored token
	assert.Len(t, mailer.sent, sentBefore+1)
	assert.Equal(t, "reset", mailer.sent[sentBefore].Kind)

	user, _ := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NotNil(t, user.ResetToken)
	require.NotNil(t, user.ResetTokenExpires)
}

func TestResetPassword(t *testing.T) {
	handler, repo, mailer := newTestAuthHandler(t)
	signUpAndVerify(t, handler, mailer, "alice@example.com", "secret1")

	doJSON(t, handler.ForgotPassword, ForgotPasswordRequest{Email: "alice@example.com"})
	token := mailer.sent[len(mailer.sent)-1].Code

	t.Run("wrong token rejected", func(t *testing.T) {
		w := doJSON(t, handler.ResetPassword, ResetPasswordRequest{Token: "nope99", NewPassword: "newsecret"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("valid token resets the password once", func(t *testing.T) {
		w := doJSON(t, handler.ResetPassword, ResetPasswordRequest{Token: token, NewPassword: "newsecret"})
		require.Equal(t, http.StatusOK, w.Code)

		signIn := doJSON(t, handler.SignIn, SignInRequest{Email: "alice@example.com", Password: "newsecret"})
		assert.Equal(t, http.StatusOK, signIn.Code)

		old := doJSON(t, handler.SignIn, SignInRequest{Email: "alice@example.com", Password: "secret1"})
		assert.Equal(t, http.StatusUnauthorized, old.Code)

		user, _ := repo.FindByEmail(context.Background(), "alice@example.com")
		assert.Nil(t, user.ResetToken)
	})

	t.Run("token replay rejected", func(t *testing.T) {
		w := doJSON(t, handler.ResetPassword, ResetPasswordRequest{Token: token, NewPassword: "another1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		user, _ := repo.FindByEmail(context.Background(), "alice@example.com")
		expired := "777777"
		past := time.Now().Add(-time.Minute)
		require.NoError(t, repo.SaveResetToken(context.Background(), user.ID, &expired, &past))

		w := doJSON(t, handler.ResetPassword, ResetPasswordRequest{Token: expired, NewPassword: "another1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
