package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"healthy-backend/internal/domain"
)

// JWTer issues and parses bearer tokens keyed on a user's email. TTL 0 means
// the token carries no exp claim.
type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func (j *JWTer) Issue(email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", fmt.Errorf("issue token: %w: empty email", domain.ErrInvalidInput)
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:  email,
		Issuer:   j.Issuer,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if j.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(j.TTL))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// Extract returns the email the token was issued for. Every failure is
// reported as domain.ErrInvalidToken.
func (j *JWTer) Extract(tokenStr string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(60 * time.Second),
	}
	if j.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.Issuer))
	}

	var claims jwt.RegisteredClaims
	t, err := jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (interface{}, error) {
		return j.Secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !t.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
