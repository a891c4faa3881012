package stubserver

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// claims carries the authenticated user's id alongside the registered set.
// The role is deliberately not embedded: the auth middleware reloads the
// user so a role change takes effect on the next request.
type claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

func mintToken(secret, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString([]byte(secret))
}

func parseToken(secret, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	return c.UserID, nil
}
