package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/campusbook/venue-booking/internal/entity"
)

// Claims carried by every issued session token. The ID field (jti) keys
// the revocable session record in Redis.
type Claims struct {
	UserID int64           `json:"user_id"`
	Role   entity.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret     []byte
	expiration time.Duration
}

func NewTokenManager(secret string, expiration time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), expiration: expiration}
}

// Issue signs a new HS256 token for the user and returns the token string
// together with its claims, so callers can register the session under
// claims.ID.
func (m *TokenManager) Issue(user *entity.User) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, claims, nil
}

// Parse validates the signature and expiry of a bearer token and returns
// its claims. It does not consult the session store; revocation is checked
// separately.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, entity.ErrUnauthorized
	}
	return claims, nil
}

// Expiration is the lifetime applied to issued tokens and their sessions.
func (m *TokenManager) Expiration() time.Duration {
	return m.expiration
}
