package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Anneshtika/library-management-website/model"
)

// Claims is the token shape the identity provider issues: sub is the user
// id, name and role ride alongside.
type Claims struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Actor maps the claims onto a caller identity. Anything other than "admin"
// is a plain user.
func (c *Claims) Actor() model.Actor {
	role := model.RoleUser
	if strings.EqualFold(c.Role, string(model.RoleAdmin)) {
		role = model.RoleAdmin
	}
	return model.Actor{ID: c.Subject, Name: c.Name, Role: role}
}

func Issue(secret string, a model.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Name: a.Name,
		Role: string(a.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseAuth validates a raw Authorization header value (with or without the
// Bearer prefix) and returns its claims.
func ParseAuth(authHeader string, secret string) (*Claims, error) {
	tokenStr := strings.TrimSpace(authHeader)
	if strings.HasPrefix(strings.ToLower(tokenStr), "bearer ") {
		tokenStr = strings.TrimSpace(tokenStr[7:])
	}
	if tokenStr == "" {
		return nil, errors.New("missing token")
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("sub missing in claims")
	}
	return claims, nil
}
