// internal/models/content_flag.go
package models

import "time"

type ContentType string

const (
	ContentTypeMessage ContentType = "message"
	ContentTypeReview  ContentType = "review"
)

type FlagStatus string

const (
	FlagStatusPending     FlagStatus = "pending"
	FlagStatusReviewed    FlagStatus = "reviewed"
	FlagStatusDismissed   FlagStatus = "dismissed"
	FlagStatusActionTaken FlagStatus = "action_taken"
)

// FlagStatuses lists every status in display order.
var FlagStatuses = []FlagStatus{
	FlagStatusPending,
	FlagStatusReviewed,
	FlagStatusDismissed,
	FlagStatusActionTaken,
}

// IsResolution reports whether s is a status an administrator may move a
// pending flag to.
func (s FlagStatus) IsResolution() bool {
	switch s {
	case FlagStatusReviewed, FlagStatusDismissed, FlagStatusActionTaken:
		return true
	}
	return false
}

type ContentFlag struct {
	ID              int         `json:"id"`
	ContentType     ContentType `json:"content_type"`
	ContentID       int         `json:"content_id"`
	UserID          int         `json:"user_id"`
	FlagReason      string      `json:"flag_reason"`
	MatchedKeywords []string    `json:"matched_keywords"`
	Severity        int         `json:"severity"`
	Status          FlagStatus  `json:"status"`
	ReviewedBy      *int        `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time  `json:"reviewed_at,omitempty"`
	AdminNotes      *string     `json:"admin_notes,omitempty"`
	ActionTaken     *string     `json:"action_taken,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// FlagWithUser is a pending-queue entry. User is nil when the author no
// longer exists.
type FlagWithUser struct {
	ContentFlag
	User *UserSummary `json:"user"`
}

type FlagInput struct {
	ContentType     ContentType
	ContentID       int
	UserID          int
	Reasons         []string
	MatchedKeywords []string
	Severity        int
}

type ResolveFlagInput struct {
	FlagID      int        `json:"-"`
	AdminID     int        `json:"admin_id"`
	Status      FlagStatus `json:"status"`
	Notes       *string    `json:"notes,omitempty"`
	ActionTaken *string    `json:"action_taken,omitempty"`
}

type FlagStatistics struct {
	Pending     int `json:"pending"`
	Reviewed    int `json:"reviewed"`
	Dismissed   int `json:"dismissed"`
	ActionTaken int `json:"action_taken"`
	Total       int `json:"total"`
}
