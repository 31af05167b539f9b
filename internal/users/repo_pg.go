package users

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PGRepo struct {
	DB *sql.DB
}

const selectUser = `
SELECT id, email, name, picture, password_hash, auth_provider, tone, language, email_length, created_at, last_login_at
FROM users`

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, name, picture, password_hash, auth_provider, tone, language, email_length, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Picture,
		user.PasswordHash,
		user.AuthProvider,
		user.Preferences.Tone,
		user.Preferences.Language,
		user.Preferences.EmailLength,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrUserExists
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	return r.getOne(ctx, selectUser+"\nWHERE id = $1\nLIMIT 1", userID)
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.getOne(ctx, selectUser+"\nWHERE email = $1\nLIMIT 1", email)
}

func (r *PGRepo) getOne(ctx context.Context, query string, arg string) (User, error) {
	var user User
	var lastLogin sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Picture,
		&user.PasswordHash,
		&user.AuthProvider,
		&user.Preferences.Tone,
		&user.Preferences.Language,
		&user.Preferences.EmailLength,
		&user.CreatedAt,
		&lastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time.UTC()
		user.LastLoginAt = &t
	}
	return user, nil
}

func (r *PGRepo) UpdateProfile(ctx context.Context, userID, name, picture string) error {
	const query = `UPDATE users SET name = $2, picture = $3 WHERE id = $1`
	return r.execOne(ctx, query, userID, name, picture)
}

func (r *PGRepo) UpdatePreferences(ctx context.Context, userID string, prefs Preferences) error {
	const query = `UPDATE users SET tone = $2, language = $3, email_length = $4 WHERE id = $1`
	return r.execOne(ctx, query, userID, prefs.Tone, prefs.Language, prefs.EmailLength)
}

func (r *PGRepo) TouchLogin(ctx context.Context, userID string, at time.Time) error {
	const query = `UPDATE users SET last_login_at = $2 WHERE id = $1`
	return r.execOne(ctx, query, userID, at.UTC())
}

func (r *PGRepo) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
