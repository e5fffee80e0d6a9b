package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/mandazavee22/Pharmaceutical-Inventory-Tracking/domain"
)

var (
	// ErrNotFound is returned when a row lookup matches nothing.
	ErrNotFound = errors.New("record not found")
	// ErrItemUsed is returned when a delete targets an acquired item.
	ErrItemUsed = errors.New("item already used")
	// ErrDuplicateUser is returned when a username or email is taken.
	ErrDuplicateUser = errors.New("username or email already exists")
)

// Store owns all reads and writes against the inventory database.
type Store struct {
	db *sqlx.DB
}

// New constructs a Store.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// CreateUser inserts a new user. The password must already be hashed.
// The username/email collision check is a case-sensitive exact match.
func (s *Store) CreateUser(ctx context.Context, email, username, passwordHash string) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users WHERE username = ? OR email = ?`, username, email); err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, ErrDuplicateUser
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO users (email, username, password) VALUES (?, ?, ?)`, email, username, passwordHash)
	if err != nil {
		// The UNIQUE constraints back up the pre-check.
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return 0, ErrDuplicateUser
		}
		return 0, err
	}
	return res.LastInsertId()
}

// FindUserByUsername looks a user up for login.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (domain.User, error) {
	var u domain.User
	err := s.db.GetContext(ctx, &u, `SELECT id, email, username, password, created_at FROM users WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, ErrNotFound
	}
	return u, err
}

// CountUsers reports the number of registered users.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`)
	return n, err
}
