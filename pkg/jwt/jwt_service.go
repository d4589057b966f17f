package jwt

import (
	"Go-Recipe-Admin/internal/utils"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type (
	JWTService interface {
		GenerateServiceToken(subject string) (string, error)
	}

	jwtServiceClaim struct {
		Scope string `json:"scope"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		ttl       time.Duration
	}
)

const serviceScope = "recipes:write"

func NewJWTService() JWTService {
	return NewJWTServiceWithSecret(utils.GetConfig("JWT_SECRET"))
}

func NewJWTServiceWithSecret(secret string) JWTService {
	return &jwtService{
		secretKey: secret,
		issuer:    "RECIPE-ADMIN",
		ttl:       5 * time.Minute,
	}
}

// GenerateServiceToken signs a short-lived token the recipe API accepts for
// calls made on behalf of the admin app.
func (j *jwtService) GenerateServiceToken(subject string) (string, error) {
	now := time.Now()
	claims := jwtServiceClaim{
		serviceScope,
		jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}
