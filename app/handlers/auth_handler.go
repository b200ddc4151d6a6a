package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"

	"github.com/fnbapp/backend/app/apperror"
	"github.com/fnbapp/backend/app/helpers"
	"github.com/fnbapp/backend/app/middlewares"
	"github.com/fnbapp/backend/app/models"
	"github.com/fnbapp/backend/app/repositories"
	"github.com/fnbapp/backend/app/services"
)

// AuthHandler orchestrates sign-up, verification, sign-in, refresh and the
// password reset flows by composing the credential store, token service and
// mail gateway.
type AuthHandler struct {
	render    *render.Render
	userRepo  repositories.UserRepositoryImpl
	tokens    *services.TokenService
	mailer    services.MailSender
	hasher    helpers.Hasher
	validator *validator.Validate
	resetTTL  time.Duration
}

func NewAuthHandler(
	r *render.Render,
	userRepo repositories.UserRepositoryImpl,
	tokens *services.TokenService,
	mailer services.MailSender,
	hasher helpers.Hasher,
	validate *validator.Validate,
	resetTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		render:    r,
		userRepo:  userRepo,
		tokens:    tokens,
		mailer:    mailer,
		hasher:    hasher,
		validator: validate,
		resetTTL:  resetTTL,
	}
}

type CreateUserRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	PhoneNumber string `json:"phone_number" validate:"required,min=7,max=20"`
}

type VerifyCodeRequest struct {
	Email            string `json:"email" validate:"required,email"`
	VerificationCode string `json:"verification_code" validate:"required,len=6"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type tokenPairResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

func (h *AuthHandler) decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.New(http.StatusBadRequest, "Invalid request body")
	}
	defer r.Body.Close()
	return h.validator.Struct(dst)
}

// CreateUser handles the public sign-up path. The account always starts as
// an ordinary user; privileged roles are only assignable through the admin
// surface. Success is returned before email delivery is confirmed.
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	h.createUser(w, r, models.RoleUser)
}

func (h *AuthHandler) createUser(w http.ResponseWriter, r *http.Request, roleID uint) {
	var req CreateUserRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(h.render, w, err)
		return
	}

	existing, err := h.userRepo.FindByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if existing != nil {
		writeError(h.render, w, apperror.ErrDuplicateIdentity)
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	code := services.GenerateNumericCode(6)
	user := &models.User{
		Username:         req.Username,
		Email:            req.Email,
		Phone:            req.PhoneNumber,
		PasswordHash:     hash,
		RoleID:           roleID,
		VerificationCode: &code,
	}

	// The pre-check above is advisory; concurrent sign-ups racing on the
	// same email are settled by the unique constraint here.
	if err := h.userRepo.Create(r.Context(), user); err != nil {
		writeError(h.render, w, err)
		return
	}

	if err := h.mailer.SendVerificationCode(user.Email, code); err != nil {
		logrus.WithField("email", user.Email).Errorf("failed to send verification email: %v", err)
	}

	writeSuccess(h.render, w, "User created successfully. Please check your email for verification code.", nil)
}

// VerifyCode proves email ownership. Wrong code and unknown email produce
// the same failure, so the endpoint cannot be used to enumerate accounts.
func (h *AuthHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req VerifyCodeRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(h.render, w, err)
		return
	}

	user, err := h.userRepo.FindByEmailAndCode(r.Context(), req.Email, req.VerificationCode)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if user == nil {
		writeError(h.render, w, apperror.ErrInvalidCredentials)
		return
	}

	if err := h.userRepo.ClearVerificationCode(r.Context(), user.ID); err != nil {
		writeError(h.render, w, err)
		return
	}

	access, refresh, err := h.tokens.IssuePair(user.Email, user.ID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	writeSuccess(h.render, w, "", tokenPairResult{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	})
}

// SignIn fails identically for an unknown email and a wrong password.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(h.render, w, err)
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if user == nil || !h.hasher.Compare(user.PasswordHash, req.Password) {
		writeError(h.render, w, apperror.ErrInvalidCredentials)
		return
	}

	access, refresh, err := h.tokens.IssuePair(user.Email, user.ID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	writeSuccess(h.render, w, "", tokenPairResult{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	})
}

// RefreshToken mints a new access token from a valid refresh token. The
// refresh token itself is not rotated.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(h.render, w, err)
		return
	}

	claims, err := h.tokens.Verify(req.RefreshToken, services.TokenKindRefresh)
	if err != nil {
		writeError(h.render, w, apperror.ErrInvalidCredentials)
		return
	}

	// Re-resolve the account; a deleted account invalidates its tokens.
	user, err := h.userRepo.FindByEmail(r.Context(), claims.Subject)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if user == nil {
		writeError(h.render, w, apperror.ErrInvalidCredentials)
		return
	}

	access, err := h.tokens.Issue(services.TokenKindAccess, user.Email, user.ID, h.tokens.AccessTTL())
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	writeSuccess(h.render, w, "", tokenPairResult{
		AccessToken: access,
		TokenType:   "bearer",
	})
}

// ForgotPassword always answers with the same envelope whether or not the
// account exists; the side effects only happen when it does.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(h.render, w, err)
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	if user != nil {
		token := services.GenerateNumericCode(6)
		expires := time.Now().Add(h.resetTTL)
		if err := h.userRepo.SaveResetToken(r.Context(), user.ID, &token, &expires); err != nil {
			writeError(h.render, w, err)
			return
		}

		if err := h.mailer.SendPasswordResetCode(user.Email, token, int(h.resetTTL.Minutes())); err != nil {
			logrus.WithField("email", user.Email).Errorf("failed to send password reset email: %v", err)
		}
	}

	writeSuccess(h.render, w, "If an account with this email exists, a password reset link has been sent to your email", nil)
}

// ResetPassword re-validates token match and expiry at commit time, not just
// at lookup time; the token is single-use.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(h.render, w, err)
		return
	}

	user, err := h.userRepo.FindByResetToken(r.Context(), req.Token)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if !resetTokenValid(user, req.Token, time.Now()) {
		writeError(h.render, w, apperror.ErrInvalidOrExpiredToken)
		return
	}

	hash, err := h.hasher.Hash(req.NewPassword)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	if err := h.userRepo.UpdatePassword(r.Context(), user.ID, hash); err != nil {
		writeError(h.render, w, err)
		return
	}
	if err := h.userRepo.ClearResetToken(r.Context(), user.ID); err != nil {
		writeError(h.render, w, err)
		return
	}

	writeSuccess(h.render, w, "Password reset successfully", nil)
}

func resetTokenValid(user *models.User, token string, now time.Time) bool {
	return user != nil &&
		user.ResetToken != nil && *user.ResetToken == token &&
		user.ResetTokenExpires != nil && now.Before(*user.ResetTokenExpires)
}

// Protected echoes the authenticated account id; it sits behind the
// user-tier role guard.
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.UserIDFromContext(r.Context())
	if !ok {
		writeError(h.render, w, apperror.ErrInvalidCredentials)
		return
	}

	writeSuccess(h.render, w, "", map[string]interface{}{
		"message": "This route is protected",
		"user":    userID,
	})
}
