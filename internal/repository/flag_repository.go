package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"creator-moderation/internal/database"
	"creator-moderation/internal/models"
)

// NotificationBuilder turns a freshly inserted flag and the administrator
// roster into the notifications to write alongside it.
type NotificationBuilder func(flag models.ContentFlag, admins []models.UserSummary) []models.Notification

type FlagRepository interface {
	CreateWithNotifications(ctx context.Context, flag *models.ContentFlag, build NotificationBuilder) (int, error)
	GetByID(ctx context.Context, id int) (*models.ContentFlag, error)
	ListPending(ctx context.Context) ([]models.FlagWithUser, error)
	CountByStatus(ctx context.Context) (models.FlagStatistics, error)
	Resolve(ctx context.Context, input models.ResolveFlagInput, at time.Time) error
}

type flagRepository struct {
	db *database.DB
}

func NewFlagRepository(db *database.DB) FlagRepository {
	return &flagRepository{db: db}
}

const flagColumns = `f.id, f.content_type, f.content_id, f.user_id, f.flag_reason, f.matched_keywords,
        f.severity, f.status, f.reviewed_by, f.reviewed_at, f.admin_notes, f.action_taken, f.created_at`

// CreateWithNotifications inserts the flag as pending and fans out one
// notification per administrator in the same transaction. It returns the
// number of notifications written.
func (r *flagRepository) CreateWithNotifications(ctx context.Context, flag *models.ContentFlag, build NotificationBuilder) (int, error) {
	keywords := flag.MatchedKeywords
	if keywords == nil {
		keywords = []string{}
	}
	encoded, err := json.Marshal(keywords)
	if err != nil {
		return 0, fmt.Errorf("encode matched keywords: %w", err)
	}

	var sent int
	var created *models.ContentFlag
	err = r.db.InTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
            INSERT INTO content_flags (content_type, content_id, user_id, flag_reason, matched_keywords, severity, status, created_at)
            VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
        `, flag.ContentType, flag.ContentID, flag.UserID, flag.FlagReason, string(encoded), flag.Severity, models.FlagStatusPending)
		if err != nil {
			return fmt.Errorf("insert content flag: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}

		created, err = getFlag(ctx, tx, int(id))
		if err != nil {
			return err
		}

		admins, err := listAdmins(ctx, tx)
		if err != nil {
			return err
		}
		if build == nil || len(admins) == 0 {
			return nil
		}

		notifications := build(*created, admins)
		if err := insertNotifications(ctx, tx, notifications); err != nil {
			return err
		}
		sent = len(notifications)
		return nil
	})
	if err != nil {
		return 0, err
	}

	*flag = *created
	return sent, nil
}

func (r *flagRepository) GetByID(ctx context.Context, id int) (*models.ContentFlag, error) {
	return getFlag(ctx, r.db, id)
}

func getFlag(ctx context.Context, q querier, id int) (*models.ContentFlag, error) {
	row := q.QueryRowContext(ctx, `SELECT `+flagColumns+` FROM content_flags f WHERE f.id = ?`, id)
	flag, err := scanFlag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFlagNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get content flag %d: %w", id, err)
	}
	return flag, nil
}

// ListPending returns pending flags newest first with a restricted view of
// each author.
func (r *flagRepository) ListPending(ctx context.Context) ([]models.FlagWithUser, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT `+flagColumns+`, u.id, u.username, u.email, u.role
        FROM content_flags f
        LEFT JOIN users u ON u.id = f.user_id
        WHERE f.status = ?
        ORDER BY f.created_at DESC, f.id DESC
    `, models.FlagStatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending flags: %w", err)
	}
	defer rows.Close()

	entries := []models.FlagWithUser{}
	for rows.Next() {
		var (
			fr       flagRow
			userID   sql.NullInt64
			username sql.NullString
			email    sql.NullString
			role     sql.NullString
		)
		dest := append(fr.dest(), &userID, &username, &email, &role)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan pending flag: %w", err)
		}
		flag, err := fr.toModel()
		if err != nil {
			return nil, err
		}

		entry := models.FlagWithUser{ContentFlag: *flag}
		if userID.Valid {
			entry.User = &models.UserSummary{
				ID:       int(userID.Int64),
				Username: username.String,
				Email:    email.String,
				Role:     role.String,
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *flagRepository) CountByStatus(ctx context.Context) (models.FlagStatistics, error) {
	var stats models.FlagStatistics

	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM content_flags GROUP BY status`)
	if err != nil {
		return stats, fmt.Errorf("count flags by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status models.FlagStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return stats, err
		}
		switch status {
		case models.FlagStatusPending:
			stats.Pending = count
		case models.FlagStatusReviewed:
			stats.Reviewed = count
		case models.FlagStatusDismissed:
			stats.Dismissed = count
		case models.FlagStatusActionTaken:
			stats.ActionTaken = count
		}
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}

	stats.Total = stats.Pending + stats.Reviewed + stats.Dismissed + stats.ActionTaken
	return stats, nil
}

// Resolve moves a pending flag to input.Status. Flags that already left
// pending are reported with ErrFlagAlreadyResolved and left untouched.
func (r *flagRepository) Resolve(ctx context.Context, input models.ResolveFlagInput, at time.Time) error {
	result, err := r.db.ExecContext(ctx, `
        UPDATE content_flags
        SET status = ?, reviewed_by = ?, reviewed_at = ?, admin_notes = ?, action_taken = ?
        WHERE id = ? AND status = ?
    `, input.Status, input.AdminID, at.UTC(), input.Notes, input.ActionTaken, input.FlagID, models.FlagStatusPending)
	if err != nil {
		return fmt.Errorf("resolve content flag %d: %w", input.FlagID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, input.FlagID); err != nil {
		return err
	}
	return ErrFlagAlreadyResolved
}

type flagRow struct {
	flag        models.ContentFlag
	keywords    string
	reviewedBy  sql.NullInt64
	reviewedAt  sql.NullTime
	adminNotes  sql.NullString
	actionTaken sql.NullString
}

func (fr *flagRow) dest() []interface{} {
	f := &fr.flag
	return []interface{}{
		&f.ID, &f.ContentType, &f.ContentID, &f.UserID, &f.FlagReason, &fr.keywords,
		&f.Severity, &f.Status, &fr.reviewedBy, &fr.reviewedAt, &fr.adminNotes, &fr.actionTaken, &f.CreatedAt,
	}
}

func (fr *flagRow) toModel() (*models.ContentFlag, error) {
	flag := fr.flag
	if err := json.Unmarshal([]byte(fr.keywords), &flag.MatchedKeywords); err != nil {
		return nil, fmt.Errorf("decode matched keywords of flag %d: %w", flag.ID, err)
	}
	if flag.MatchedKeywords == nil {
		flag.MatchedKeywords = []string{}
	}
	if fr.reviewedBy.Valid {
		id := int(fr.reviewedBy.Int64)
		flag.ReviewedBy = &id
	}
	if fr.reviewedAt.Valid {
		at := fr.reviewedAt.Time
		flag.ReviewedAt = &at
	}
	if fr.adminNotes.Valid {
		notes := fr.adminNotes.String
		flag.AdminNotes = &notes
	}
	if fr.actionTaken.Valid {
		action := fr.actionTaken.String
		flag.ActionTaken = &action
	}
	return &flag, nil
}

func scanFlag(row rowScanner) (*models.ContentFlag, error) {
	var fr flagRow
	if err := row.Scan(fr.dest()...); err != nil {
		return nil, err
	}
	return fr.toModel()
}
