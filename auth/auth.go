package auth

import (
	"context"
	"errors"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

// Settings describe how tokens are signed and which claims are required.
type Settings struct {
	Secret   string
	Issuer   string
	Audience []string
}

// CustomClaims carries the profile fields we copy onto the user row.
type CustomClaims struct {
	Nickname string `json:"nickname"`
}

func (c *CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// CreateToken signs an HS256 token for subject.
func CreateToken(s Settings, subject, nickname string) (string, error) {
	if s.Secret == "" {
		return "", errors.New("auth: JWT secret key not set")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"sub":      subject,
			"nickname": nickname,
			"iss":      s.Issuer,
			"aud":      s.Audience,
			"iat":      now.Unix(),
			"exp":      now.Add(tokenTTL).Unix(),
		})

	return token.SignedString([]byte(s.Secret))
}

// NewValidator returns a validator accepting tokens produced by CreateToken.
func NewValidator(s Settings) (*validator.Validator, error) {
	if s.Secret == "" {
		return nil, errors.New("auth: JWT secret key not set")
	}

	keyFunc := func(ctx context.Context) (interface{}, error) {
		return []byte(s.Secret), nil
	}

	return validator.New(
		keyFunc,
		validator.HS256,
		s.Issuer,
		s.Audience,
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
}
