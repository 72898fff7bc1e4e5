package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the JWT payload. The ID (jti) doubles as the session
// key in Redis, so logout can kill a token before it expires.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"` // "user" or "admin"
	gojwt.RegisteredClaims
}

var (
	secret []byte
	ttl    = 24 * time.Hour
)

// Init must be called once at startup with the JWT_SECRET value.
func Init(s string, sessionTTL time.Duration) error {
	if s == "" {
		return errors.New("JWT_SECRET is required")
	}
	secret = []byte(s)
	if sessionTTL > 0 {
		ttl = sessionTTL
	}
	return nil
}

// TTL reports the configured token lifetime.
func TTL() time.Duration { return ttl }

// Generate creates a signed JWT for the given user and returns the token
// together with its jti.
func Generate(userID, username, role string) (token, jti string, err error) {
	jti = uuid.New().String()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        jti,
			Subject:   userID,
			IssuedAt:  gojwt.NewNumericDate(time.Now()),
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err = gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(secret)
	return token, jti, err
}

// Validate parses and validates a raw JWT string.
func Validate(raw string) (*Claims, error) {
	token, err := gojwt.ParseWithClaims(raw, &Claims{}, func(t *gojwt.Token) (any, error) {
		if _, ok := t.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
