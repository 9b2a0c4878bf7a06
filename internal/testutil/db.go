// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-moderation/internal/database"
)

// NewDB opens a fresh SQLite database in a temporary directory.
func NewDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "Failed to open database")

	t.Cleanup(func() {
		assert.NoError(t, db.Close(), "Failed to close database")
	})
	return db
}

func InsertUser(t *testing.T, db *database.DB, username, role string) int {
	t.Helper()
	return insert(t, db, `INSERT INTO users (username, email, role) VALUES (?, ?, ?)`,
		username, username+"@example.com", role)
}

// InsertReview stores a review; a nil text is stored as NULL.
func InsertReview(t *testing.T, db *database.DB, creatorID, rating int, text *string) int {
	t.Helper()
	return insert(t, db, `INSERT INTO reviews (creator_id, overall_rating, review_text) VALUES (?, ?, ?)`,
		creatorID, rating, nullString(text))
}

func InsertMessage(t *testing.T, db *database.DB, senderID int, content *string) int {
	t.Helper()
	return insert(t, db, `INSERT INTO messages (sender_id, content) VALUES (?, ?)`,
		senderID, nullString(content))
}

func CountRows(t *testing.T, db *database.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func Ptr[T any](v T) *T {
	return &v
}

func insert(t *testing.T, db *database.DB, query string, args ...interface{}) int {
	t.Helper()
	result, err := db.Exec(query, args...)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return int(id)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
