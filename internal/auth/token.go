package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tempohq/tempo/backend/internal/domain"
)

// CookieName is the cookie that carries the session token.
const CookieName = "token"

var (
	// ErrInvalidToken covers signature mismatch, malformed tokens and expiry.
	// Callers treat all three as "unauthenticated".
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingSubject is a structurally valid token without a sub claim.
	ErrMissingSubject = errors.New("token missing subject claim")
)

// Claims is the session token payload.
type Claims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttlSeconds int) *TokenManager {
	if ttlSeconds <= 0 {
		ttlSeconds = 86400
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// Issue signs a token carrying the user's id, email and role.
func (tm *TokenManager) Issue(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	ss, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return ss, expiresAt, nil
}

// Parse verifies the signature and expiry and returns the claims. Validation
// is strictly cryptographic/structural; the subject is not resolved here.
func (tm *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	return claims, nil
}
