package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stockroom/internal/models"
	"stockroom/internal/utils"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	UserID    int    `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	jwt.RegisteredClaims
}

// TokenService выпускает и проверяет HS256-токены. Секрет живёт в процессе:
// Rotate меняет его целиком под мьютексом, все ранее выданные токены умирают.
type TokenService struct {
	mu     sync.RWMutex
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		generated, err := utils.NewSigningSecret(128)
		if err != nil {
			return nil, err
		}
		secret = generated
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

func (s *TokenService) Issue(user *models.User) (string, error) {
	s.mu.RLock()
	secret := s.secret
	s.mu.RUnlock()

	now := time.Now()
	claims := &Claims{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify: битый, чужой и просроченный токен снаружи неразличимы.
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	s.mu.RLock()
	secret := s.secret
	s.mu.RUnlock()

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		// принимаем только HMAC
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Rotate: редкая операторская операция; после неё все старые токены невалидны.
func (s *TokenService) Rotate() error {
	generated, err := utils.NewSigningSecret(128)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.secret = []byte(generated)
	s.mu.Unlock()
	return nil
}
