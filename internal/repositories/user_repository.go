package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/merahburam/ameo-assets/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username or email already taken")
)

// UserRepository abstracts user persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	GetUserByID(ctx context.Context, userID int) (models.User, error)
	BulkUsernames(ctx context.Context, ids []int) (map[int]string, error)
}

// UserRepo is a sqlx implementation of UserRepository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// CreateUser inserts a new account.
func (r *UserRepo) CreateUser(ctx context.Context, username, email, passwordHash string) (models.User, error) {
	var user models.User
	err := r.db.QueryRowxContext(ctx, `INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id, username, email, password_hash, created_at`, username, email, passwordHash).
		StructScan(&user)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return models.User{}, ErrUserExists
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByUsername fetches an account by its unique username.
func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT id, username, email, password_hash, created_at FROM users WHERE username=$1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// GetUserByID fetches an account by id.
func (r *UserRepo) GetUserByID(ctx context.Context, userID int) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT id, username, email, password_hash, created_at FROM users WHERE id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// BulkUsernames resolves a set of user ids to usernames.
func (r *UserRepo) BulkUsernames(ctx context.Context, ids []int) (map[int]string, error) {
	result := map[int]string{}
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.db.QueryxContext(ctx, `SELECT id, username FROM users WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		var username string
		if err := rows.Scan(&id, &username); err != nil {
			return nil, err
		}
		result[id] = username
	}
	return result, rows.Err()
}
