package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies service tokens presented by dashboard and reporting
// clients. Token issuance belongs to the external auth system; this engine
// only shares the signing key.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	// GenerateServiceToken mints a short-lived token for operational tooling
	// (scripted resolution runs, smoke tests).
	GenerateServiceToken(subject string, ttl time.Duration) (string, error)
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		secretKey: secretKey,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateServiceToken(subject string, ttl time.Duration) (string, error) {
	claims := map[string]interface{}{
		"sub":  subject,
		"type": "service",
		"exp":  time.Now().Add(ttl).Unix(),
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}
