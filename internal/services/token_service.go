package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lbrrrrrr/enjoyyoga/internal/models"
)

type TokenService struct {
	masterToken string
	jwtSecret   string
	tokenTTL    time.Duration
}

func NewTokenService(masterToken, jwtSecret string, tokenTTL time.Duration) *TokenService {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &TokenService{
		masterToken: masterToken,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
	}
}

// ValidateMasterToken checks if the provided token matches the master token
func (s *TokenService) ValidateMasterToken(token string) bool {
	return s.masterToken != "" && token == s.masterToken
}

// CreateJWTToken creates a signed admin token for the given account.
func (s *TokenService) CreateJWTToken(user *models.AdminUser) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"sub":    user.Username,
		"access": string(user.Access),
		"exp":    expiresAt.Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ValidateJWTToken validates a JWT token and returns its claims
func (s *TokenService) ValidateJWTToken(tokenString string) (*models.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	access, _ := claims["access"].(string)
	exp, _ := claims["exp"].(float64)
	if sub == "" || access == "" {
		return nil, errors.New("missing token claims")
	}

	return &models.Token{
		Sub:       sub,
		Access:    models.AccessLevel(access),
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}
