package services

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/fnbapp/backend/app/apperror"
	"github.com/golang-jwt/jwt/v5"
)

// TokenKind tags a signed token so an access token cannot be replayed as a
// refresh token and vice versa. The tag travels inside the signed payload,
// letting both kinds share one secret and one verification routine.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access_token"
	TokenKindRefresh TokenKind = "refresh_token"
)

// TokenClaims is the self-contained assertion carried by every issued token.
// The subject is the account email; ID is the account id.
type TokenClaims struct {
	UserID string `json:"id"`
	Kind   string `json:"type"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService builds a token service from the process-wide secret and
// algorithm name. Only HMAC algorithms are accepted; an empty name defaults
// to HS256.
func NewTokenService(secret, algorithm string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing secret must not be empty")
	}
	if algorithm == "" {
		algorithm = "HS256"
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not an HMAC method", algorithm)
	}

	return &TokenService{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// Issue signs a token embedding subject email, account id, kind tag and an
// absolute expiry of now+ttl.
func (s *TokenService) Issue(kind TokenKind, email, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID: userID,
		Kind:   string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s: %w", kind, err)
	}
	return signed, nil
}

// IssuePair mints the access/refresh pair handed out at sign-in and after a
// successful email verification.
func (s *TokenService) IssuePair(email, userID string) (access string, refresh string, err error) {
	access, err = s.Issue(TokenKindAccess, email, userID, s.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.Issue(TokenKindRefresh, email, userID, s.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Verify checks signature, expiry and the kind tag. Any failure collapses to
// ErrInvalidCredentials so callers cannot distinguish a forged token from a
// stale one.
func (s *TokenService) Verify(tokenString string, expected TokenKind) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.ErrInvalidCredentials
	}
	if claims.Kind != string(expected) {
		return nil, apperror.ErrInvalidCredentials
	}
	return claims, nil
}

func (s *TokenService) AccessTTL() time.Duration {
	return s.accessTTL
}

const codeDigits = "0123456789"

// GenerateNumericCode returns a random digit string used for email
// verification and password reset codes. The codes are scoped per account and
// overwritten on reissue, so collisions are acceptable.
func GenerateNumericCode(length int) string {
	if length <= 0 {
		length = 6
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = codeDigits[rand.Intn(len(codeDigits))]
	}
	return string(b)
}
