// internal/models/notification.go
package models

import "time"

type NotificationType string

const NotificationTypeContentFlagged NotificationType = "content_flagged"

type Notification struct {
	ID        int                   `json:"id"`
	UserID    int                   `json:"user_id"`
	Type      NotificationType      `json:"type"`
	Title     string                `json:"title"`
	Message   string                `json:"message"`
	LinkURL   string                `json:"link_url"`
	Metadata  FlaggedContentPayload `json:"metadata"`
	IsRead    bool                  `json:"is_read"`
	CreatedAt time.Time             `json:"created_at"`
}

// FlaggedContentPayload is stored as the notification's JSON metadata.
type FlaggedContentPayload struct {
	FlagID          int         `json:"flag_id"`
	ContentType     ContentType `json:"content_type"`
	ContentID       int         `json:"content_id"`
	FlaggedUserID   int         `json:"flagged_user_id"`
	MatchedKeywords []string    `json:"matched_keywords"`
	Severity        int         `json:"severity"`
}
