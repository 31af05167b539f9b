package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPGRepoCreateMapsUniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key"})

	repo := &PGRepo{DB: db}
	err = repo.Create(context.Background(), User{ID: "u1", Email: "ada@example.com", Preferences: DefaultPreferences()})
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	created := time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "email", "name", "picture", "password_hash", "auth_provider",
		"tone", "language", "email_length", "created_at", "last_login_at",
	}).AddRow("u1", "ada@example.com", "Ada", "", "hash", "password", "formal", "english", "long", created, nil)

	mock.ExpectQuery("SELECT id, email, name").WithArgs("ada@example.com").WillReturnRows(rows)
	mock.ExpectQuery("SELECT id, email, name").WithArgs("nobody@example.com").WillReturnError(sql.ErrNoRows)

	repo := &PGRepo{DB: db}
	user, err := repo.GetByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if user.Preferences.Tone != "formal" || user.Preferences.EmailLength != "long" {
		t.Fatalf("unexpected preferences %+v", user.Preferences)
	}
	if user.LastLoginAt != nil {
		t.Fatalf("expected nil last login")
	}
	if _, err := repo.GetByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdatePreferencesMissingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("UPDATE users SET tone").
		WithArgs("missing", "casual", "english", "short").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &PGRepo{DB: db}
	err = repo.UpdatePreferences(context.Background(), "missing", Preferences{Tone: "casual", Language: "english", EmailLength: "short"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
