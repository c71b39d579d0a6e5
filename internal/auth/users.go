package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	CreatedAt   string `json:"created_at"`
	LastLogin   string `json:"last_login"`
}

// UserStore persists accounts in the shared SQL database.
type UserStore struct{ db *sql.DB }

func NewUserStore(db *sql.DB) *UserStore { return &UserStore{db: db} }

// Create registers a new account with a bcrypt-hashed password.
func (s *UserStore) Create(ctx context.Context, username, password, displayName string) (User, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=$1`, username).Scan(&exists)
	if err == nil {
		return User{}, ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	if displayName == "" {
		displayName = username
	}
	now := time.Now().UTC().Format(time.RFC3339)
	u := User{
		ID:          uuid.NewString(),
		Username:    username,
		DisplayName: displayName,
		CreatedAt:   now,
		LastLogin:   now,
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, display_name, created_at, last_login)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		u.ID, u.Username, string(hash), u.DisplayName, u.CreatedAt, u.LastLogin)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// Authenticate checks the credentials and bumps last_login on success.
func (s *UserStore) Authenticate(ctx context.Context, username, password string) (User, error) {
	var u User
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, display_name, created_at, last_login
		 FROM users WHERE username=$1`, username).
		Scan(&u.ID, &u.Username, &hash, &u.DisplayName, &u.CreatedAt, &u.LastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	u.LastLogin = time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx,
		`UPDATE users SET last_login=$1 WHERE id=$2`, u.LastLogin, u.ID); err != nil {
		return User{}, err
	}
	return u, nil
}

// Get returns a user by ID.
func (s *UserStore) Get(ctx context.Context, id string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, display_name, created_at, last_login FROM users WHERE id=$1`, id).
		Scan(&u.ID, &u.Username, &u.DisplayName, &u.CreatedAt, &u.LastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}
