// internal/models/content.go
package models

// Review, Message and User are owned by other subsystems; only the fields
// moderation reads are mapped.

type Review struct {
	ID            int     `json:"id"`
	CreatorID     int     `json:"creator_id"`
	OverallRating int     `json:"overall_rating"`
	ReviewText    *string `json:"review_text,omitempty"`
}

type Message struct {
	ID       int     `json:"id"`
	SenderID int     `json:"sender_id"`
	Content  *string `json:"content,omitempty"`
}

const RoleAdmin = "admin"

type UserSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
