package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"creator-moderation/internal/database"
	"creator-moderation/internal/models"
)

// UserRepository exposes the restricted user projection moderation is
// allowed to see.
type UserRepository interface {
	ListAdmins(ctx context.Context) ([]models.UserSummary, error)
	GetSummary(ctx context.Context, id int) (*models.UserSummary, error)
}

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) ListAdmins(ctx context.Context) ([]models.UserSummary, error) {
	return listAdmins(ctx, r.db)
}

func (r *userRepository) GetSummary(ctx context.Context, id int) (*models.UserSummary, error) {
	var u models.UserSummary
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, email, role FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

func listAdmins(ctx context.Context, q querier) ([]models.UserSummary, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, username, email, role FROM users WHERE role = ? ORDER BY id`, models.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	var admins []models.UserSummary
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role); err != nil {
			return nil, err
		}
		admins = append(admins, u)
	}
	return admins, rows.Err()
}
