package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/model"
)

func (db *Postgres) CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	query := `
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, name, email, password_hash, bio, created_at
	`
	var user model.User
	err := db.Pool.QueryRow(ctx, query, uuid.NewString(), name, email, passwordHash).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Bio,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, name, email, password_hash, bio, created_at
		FROM users
		WHERE email = $1
	`
	var user model.User
	err := db.Pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Bio,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	query := `
		SELECT id, name, email, password_hash, bio, created_at
		FROM users
		WHERE id = $1
	`
	var user model.User
	err := db.Pool.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Bio,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) UpdateUserProfile(ctx context.Context, userID string, name, bio *string) (*model.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($2, name),
		    bio = COALESCE($3, bio)
		WHERE id = $1
		RETURNING id, name, email, password_hash, bio, created_at
	`
	var user model.User
	err := db.Pool.QueryRow(ctx, query, userID, name, bio).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Bio,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
