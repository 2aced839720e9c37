package services

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stockroom/internal/models"
)

// --- fakes ---

type fakeUserRepo struct {
	user   *models.User
	getErr error

	resetCalls int
}

func (f *fakeUserRepo) Create(u *models.User) error          { return nil }
func (f *fakeUserRepo) GetByID(id int) (*models.User, error) { return f.user, nil }

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.user == nil || f.user.Email != email {
		return nil, sql.ErrNoRows
	}
	u := *f.user
	return &u, nil
}

// RecordFailure повторяет семантику SQL-версии: инкремент и установка
// lock_until на пороге одним шагом.
func (f *fakeUserRepo) RecordFailure(email string, threshold int, lockFor time.Duration) (bool, error) {
	if f.user == nil || f.user.Email != email {
		return false, nil
	}
	f.user.FailedAttempts++
	if f.user.FailedAttempts >= threshold && f.user.LockUntil == nil {
		t := time.Now().Add(lockFor)
		f.user.LockUntil = &t
	}
	return f.user.LockUntil != nil && f.user.FailedAttempts == threshold, nil
}

func (f *fakeUserRepo) ResetLockState(id int) error {
	f.resetCalls++
	f.user.FailedAttempts = 0
	f.user.LockUntil = nil
	return nil
}

type fakeAlerts struct {
	lockouts []string
}

func (f *fakeAlerts) NotifyLockout(user *models.User, lockFor time.Duration) {
	f.lockouts = append(f.lockouts, user.Email)
}

// --- helpers ---

const testLockThreshold = 5

func newTestAuthService(t *testing.T, repo *fakeUserRepo, alerts AlertService) AuthService {
	t.Helper()
	svc, err := NewAuthService(repo, alerts, bcrypt.MinCost, testLockThreshold, 10*time.Minute)
	require.NoError(t, err)
	return svc
}

func userWithPassword(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           1,
		FirstName:    "Alice",
		Email:        email,
		PasswordHash: string(hash),
	}
}

// --- tests ---

func TestLoginSuccess(t *testing.T) {
	repo := &fakeUserRepo{user: userWithPassword(t, "alice@example.com", "correct horse battery")}
	svc := newTestAuthService(t, repo, nil)

	user, err := svc.Login("Alice@Example.com ", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, 1, repo.resetCalls)
}

func TestLoginWrongPasswordIncrementsCounter(t *testing.T) {
	repo := &fakeUserRepo{user: userWithPassword(t, "alice@example.com", "correct horse battery")}
	svc := newTestAuthService(t, repo, nil)

	_, err := svc.Login("alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, repo.user.FailedAttempts)
	assert.Nil(t, repo.user.LockUntil)
}

func TestLockoutAfterThresholdFailures(t *testing.T) {
	repo := &fakeUserRepo{user: userWithPassword(t, "alice@example.com", "correct horse battery")}
	alerts := &fakeAlerts{}
	svc := newTestAuthService(t, repo, alerts)

	for i := 0; i < testLockThreshold; i++ {
		_, err := svc.Login("alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
	require.NotNil(t, repo.user.LockUntil)
	assert.Equal(t, []string{"alice@example.com"}, alerts.lockouts)

	// даже правильный пароль отклоняется, пока идёт блокировка
	_, err := svc.Login("alice@example.com", "correct horse battery")
	assert.ErrorIs(t, err, ErrAccountLocked)

	// заблокированный аккаунт счётчик дальше не крутит
	_, err = svc.Login("alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrAccountLocked)
	assert.Equal(t, testLockThreshold, repo.user.FailedAttempts)
	assert.Len(t, alerts.lockouts, 1)
}

func TestLockExpiryAllowsLogin(t *testing.T) {
	repo := &fakeUserRepo{user: userWithPassword(t, "alice@example.com", "correct horse battery")}
	svc := newTestAuthService(t, repo, nil)

	expired := time.Now().Add(-time.Minute)
	repo.user.FailedAttempts = testLockThreshold
	repo.user.LockUntil = &expired

	user, err := svc.Login("alice@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, 0, user.FailedAttempts)
	assert.Nil(t, user.LockUntil)
	assert.Equal(t, 0, repo.user.FailedAttempts)
}

func TestSuccessResetsCounterBelowThreshold(t *testing.T) {
	repo := &fakeUserRepo{user: userWithPassword(t, "alice@example.com", "correct horse battery")}
	svc := newTestAuthService(t, repo, nil)

	repo.user.FailedAttempts = 3

	_, err := svc.Login("alice@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, 0, repo.user.FailedAttempts)
	assert.Equal(t, 1, repo.resetCalls)
}

func TestUnknownEmail(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestAuthService(t, repo, nil)

	_, err := svc.Login("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMalformedStoredDigest(t *testing.T) {
	repo := &fakeUserRepo{user: &models.User{ID: 1, Email: "alice@example.com", PasswordHash: "not-a-bcrypt-hash"}}
	svc := newTestAuthService(t, repo, nil)

	_, err := svc.Login("alice@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, repo.user.FailedAttempts)
}

func TestStoreFailureIsNotCredentialsError(t *testing.T) {
	repo := &fakeUserRepo{getErr: errors.New("connection refused")}
	svc := newTestAuthService(t, repo, nil)

	_, err := svc.Login("alice@example.com", "whatever")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, ErrAccountLocked)
}

func TestHashPasswordRoundTrip(t *testing.T) {
	svc := newTestAuthService(t, &fakeUserRepo{}, nil)

	hash, err := svc.HashPassword("s3cret passphrase")
	require.NoError(t, err)
	assert.True(t, checkPassword("s3cret passphrase", hash))
	assert.False(t, checkPassword("other", hash))

	_, err = svc.HashPassword("   ")
	assert.Error(t, err)
}
