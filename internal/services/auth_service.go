package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account locked")
)

type AuthService interface {
	HashPassword(plain string) (string, error)
	Login(email, password string) (*models.User, error)
}

type authService struct {
	users  repositories.UserRepository
	alerts AlertService // может быть nil

	cost          int
	lockThreshold int
	lockFor       time.Duration

	// валидный bcrypt-дайджест той же стоимости: неизвестный email
	// проходит то же сравнение, чтобы не отличаться по времени
	dummyHash []byte
}

func NewAuthService(users repositories.UserRepository, alerts AlertService, cost, lockThreshold int, lockFor time.Duration) (AuthService, error) {
	filler, err := utils.NewSigningSecret(32)
	if err != nil {
		return nil, fmt.Errorf("generate dummy password: %w", err)
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(filler), cost)
	if err != nil {
		return nil, fmt.Errorf("generate dummy hash: %w", err)
	}
	return &authService{
		users:         users,
		alerts:        alerts,
		cost:          cost,
		lockThreshold: lockThreshold,
		lockFor:       lockFor,
		dummyHash:     dummy,
	}, nil
}

func (s *authService) HashPassword(plain string) (string, error) {
	if strings.TrimSpace(plain) == "" {
		return "", fmt.Errorf("password is required")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Login проверяет пароль и ведёт счётчик блокировки. Порядок важен:
// заблокированный аккаунт отклоняется до bcrypt и без инкремента.
func (s *authService) Login(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user.LockUntil != nil && user.LockUntil.After(time.Now()) {
		return nil, ErrAccountLocked
	}

	if !checkPassword(password, user.PasswordHash) {
		justLocked, ferr := s.users.RecordFailure(email, s.lockThreshold, s.lockFor)
		if ferr != nil {
			return nil, fmt.Errorf("record login failure: %w", ferr)
		}
		if justLocked {
			log.Printf("[auth][login] account locked userID=%d after %d failures", user.ID, s.lockThreshold)
			if s.alerts != nil {
				s.alerts.NotifyLockout(user, s.lockFor)
			}
		}
		return nil, ErrInvalidCredentials
	}

	// успех безусловно снимает блокировку и счётчик
	if err := s.users.ResetLockState(user.ID); err != nil {
		return nil, fmt.Errorf("reset lock state: %w", err)
	}
	user.FailedAttempts = 0
	user.LockUntil = nil
	return user, nil
}

// checkPassword: битый или пустой дайджест считается несовпадением,
// ошибка bcrypt наружу не выходит.
func checkPassword(plain, digest string) bool {
	if strings.TrimSpace(digest) == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
