package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"creator-moderation/internal/database"
	"creator-moderation/internal/models"
)

// notificationBatchSize keeps each multi-row INSERT well under SQLite's
// bound-parameter limit.
const notificationBatchSize = 100

const notificationColumnCount = 7

type NotificationRepository interface {
	ListForUser(ctx context.Context, userID int) ([]models.Notification, error)
}

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID int) ([]models.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, user_id, type, title, message, COALESCE(link_url, ''), metadata, is_read, created_at
        FROM notifications WHERE user_id = ? ORDER BY id
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		var metadata string
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message,
			&n.LinkURL, &metadata, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(metadata), &n.Metadata); err != nil {
			return nil, fmt.Errorf("decode notification %d metadata: %w", n.ID, err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// insertNotifications writes all notifications with multi-row INSERTs.
func insertNotifications(ctx context.Context, q querier, notifications []models.Notification) error {
	for start := 0; start < len(notifications); start += notificationBatchSize {
		end := start + notificationBatchSize
		if end > len(notifications) {
			end = len(notifications)
		}
		batch := notifications[start:end]

		placeholders := make([]string, len(batch))
		args := make([]interface{}, 0, len(batch)*notificationColumnCount)
		for i, n := range batch {
			metadata, err := json.Marshal(n.Metadata)
			if err != nil {
				return fmt.Errorf("encode notification metadata: %w", err)
			}
			placeholders[i] = "(?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)"
			args = append(args, n.UserID, n.Type, n.Title, n.Message, n.LinkURL, string(metadata), n.IsRead)
		}

		query := `INSERT INTO notifications (user_id, type, title, message, link_url, metadata, is_read, created_at) VALUES ` +
			strings.Join(placeholders, ", ")
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert notifications: %w", err)
		}
	}
	return nil
}
