package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"creator-moderation/internal/database"
	"creator-moderation/internal/models"
)

// ContentRepository reads the user-generated content moderation screens.
// Reviews and messages are written by the marketplace CRUD layer.
type ContentRepository interface {
	GetReview(ctx context.Context, id int) (*models.Review, error)
	GetMessage(ctx context.Context, id int) (*models.Message, error)
}

type contentRepository struct {
	db *database.DB
}

func NewContentRepository(db *database.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) GetReview(ctx context.Context, id int) (*models.Review, error) {
	var review models.Review
	var text sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, creator_id, overall_rating, review_text FROM reviews WHERE id = ?`, id,
	).Scan(&review.ID, &review.CreatorID, &review.OverallRating, &text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get review %d: %w", id, err)
	}
	if text.Valid {
		review.ReviewText = &text.String
	}
	return &review, nil
}

func (r *contentRepository) GetMessage(ctx context.Context, id int) (*models.Message, error) {
	var message models.Message
	var content sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, sender_id, content FROM messages WHERE id = ?`, id,
	).Scan(&message.ID, &message.SenderID, &content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get message %d: %w", id, err)
	}
	if content.Valid {
		message.Content = &content.String
	}
	return &message, nil
}
