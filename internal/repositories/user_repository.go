package repositories

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"stockroom/internal/models"
)

var ErrEmailTaken = errors.New("email is already in use")

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)

	// lockout state
	RecordFailure(email string, threshold int, lockFor time.Duration) (justLocked bool, err error)
	ResetLockState(id int) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (first_name, last_name, email, password_hash, failed_attempts, lock_until)
		VALUES ($1,$2,$3,$4,0,NULL)
		RETURNING id
	`
	err := r.DB.QueryRow(q,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
	).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	const q = `
		SELECT id, first_name, last_name, email, password_hash, failed_attempts, lock_until
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.DB.QueryRow(q, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `
		SELECT id, first_name, last_name, email, password_hash, failed_attempts, lock_until
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.DB.QueryRow(q, email))
}

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var lockUntil sql.NullTime
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.FailedAttempts, &lockUntil,
	)
	if err != nil {
		return nil, err
	}
	if lockUntil.Valid {
		t := lockUntil.Time
		u.LockUntil = &t
	}
	return u, nil
}

// RecordFailure инкрементирует счётчик и ставит блокировку одним UPDATE,
// чтобы параллельные попытки входа не теряли обновления.
func (r *userRepository) RecordFailure(email string, threshold int, lockFor time.Duration) (bool, error) {
	const q = `
		UPDATE users
		SET failed_attempts = failed_attempts + 1,
		    lock_until = CASE
		        WHEN failed_attempts + 1 >= $2 THEN NOW() + make_interval(secs => $3)
		        ELSE lock_until
		    END
		WHERE email = $1
		RETURNING failed_attempts, lock_until
	`
	var attempts int
	var lockUntil sql.NullTime
	err := r.DB.QueryRow(q, email, threshold, int(lockFor.Seconds())).Scan(&attempts, &lockUntil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	// блокировка наступила именно на этой попытке
	return lockUntil.Valid && attempts == threshold, nil
}

func (r *userRepository) ResetLockState(id int) error {
	const q = `
		UPDATE users
		SET failed_attempts = 0, lock_until = NULL
		WHERE id = $1
	`
	_, err := r.DB.Exec(q, id)
	return err
}
