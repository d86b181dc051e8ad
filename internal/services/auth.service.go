package services

import (
	"errors"
	"time"

	"renthub/config"
	"renthub/internal/logger"
	. "renthub/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenLifetime = 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims is the JWT payload issued at login and checked by the auth
// middleware on every protected route.
type Claims struct {
	UserID uuid.UUID `json:"userId"`
	Role   UserRole  `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	secret []byte
	log    logger.Logger
}

func NewAuthService(config config.Config) (*AuthService, error) {
	log := logger.New("AuthService")

	if config.JWTSecret == "" && config.Environment != "development" {
		return nil, log.ErrMsg("JWT secret is required outside development")
	}

	secret := config.JWTSecret
	if secret == "" {
		secret = "development-only-secret"
	}

	return &AuthService{
		secret: []byte(secret),
		log:    log,
	}, nil
}

// GenerateToken issues a signed HS256 token for the user.
func (s *AuthService) GenerateToken(user *User) (string, error) {
	log := s.log.Function("GenerateToken")

	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", log.Err("failed to sign token", err, "userID", user.ID)
	}

	return signed, nil
}

// ValidateToken parses and verifies a token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
