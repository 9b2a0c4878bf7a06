package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"creator-moderation/internal/database"
	"creator-moderation/internal/models"
)

type KeywordRuleRepository interface {
	ListActive(ctx context.Context) ([]models.KeywordRule, error)
	List(ctx context.Context, filter models.KeywordRuleFilter) ([]models.KeywordRule, error)
	GetByID(ctx context.Context, id int) (*models.KeywordRule, error)
	Create(ctx context.Context, rule *models.KeywordRule) error
	Update(ctx context.Context, id int, update models.KeywordRuleUpdate) (*models.KeywordRule, error)
	SeedDefaults(ctx context.Context, rules []models.KeywordRule) (int, error)
}

type keywordRuleRepository struct {
	db *database.DB
}

func NewKeywordRuleRepository(db *database.DB) KeywordRuleRepository {
	return &keywordRuleRepository{db: db}
}

const keywordRuleColumns = `id, keyword, category, severity, description, is_active, created_at, updated_at`

func (r *keywordRuleRepository) ListActive(ctx context.Context) ([]models.KeywordRule, error) {
	active := true
	return r.List(ctx, models.KeywordRuleFilter{Active: &active})
}

func (r *keywordRuleRepository) List(ctx context.Context, filter models.KeywordRuleFilter) ([]models.KeywordRule, error) {
	query := `SELECT ` + keywordRuleColumns + ` FROM keyword_rules WHERE 1=1`
	args := []interface{}{}

	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Active != nil {
		query += " AND is_active = ?"
		args = append(args, *filter.Active)
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list keyword rules: %w", err)
	}
	defer rows.Close()

	rules := []models.KeywordRule{}
	for rows.Next() {
		rule, err := scanKeywordRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan keyword rule: %w", err)
		}
		rules = append(rules, *rule)
	}
	return rules, rows.Err()
}

func (r *keywordRuleRepository) GetByID(ctx context.Context, id int) (*models.KeywordRule, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+keywordRuleColumns+` FROM keyword_rules WHERE id = ?`, id)
	rule, err := scanKeywordRule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeywordRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get keyword rule %d: %w", id, err)
	}
	return rule, nil
}

func (r *keywordRuleRepository) Create(ctx context.Context, rule *models.KeywordRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `
        INSERT INTO keyword_rules (keyword, category, severity, description, is_active, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
    `, rule.Keyword, rule.Category, rule.Severity, rule.Description, rule.IsActive)
	if isUniqueViolation(err) {
		return ErrDuplicateKeyword
	}
	if err != nil {
		return fmt.Errorf("insert keyword rule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	created, err := r.GetByID(ctx, int(id))
	if err != nil {
		return err
	}
	*rule = *created
	return nil
}

// Update edits severity, category, description or activation. Keywords are
// immutable and rules are never deleted so past flags stay explainable.
func (r *keywordRuleRepository) Update(ctx context.Context, id int, update models.KeywordRuleUpdate) (*models.KeywordRule, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := update.Apply(*current)
	if err := next.Validate(); err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx, `
        UPDATE keyword_rules
        SET category = ?, severity = ?, description = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
        WHERE id = ?
    `, next.Category, next.Severity, next.Description, next.IsActive, id)
	if err != nil {
		return nil, fmt.Errorf("update keyword rule %d: %w", id, err)
	}

	return r.GetByID(ctx, id)
}

// SeedDefaults inserts every rule whose keyword is not stored yet and returns
// how many were added. The unique keyword index makes concurrent seeding safe.
func (r *keywordRuleRepository) SeedDefaults(ctx context.Context, rules []models.KeywordRule) (int, error) {
	inserted := 0
	err := r.db.InTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
            INSERT OR IGNORE INTO keyword_rules (keyword, category, severity, description, is_active, created_at, updated_at)
            VALUES (?, ?, ?, ?, TRUE, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
        `)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, rule := range rules {
			if err := rule.Validate(); err != nil {
				return fmt.Errorf("default rule %q: %w", rule.Keyword, err)
			}
			result, err := stmt.ExecContext(ctx, rule.Keyword, rule.Category, rule.Severity, rule.Description)
			if err != nil {
				return err
			}
			n, err := result.RowsAffected()
			if err != nil {
				return err
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed keyword rules: %w", err)
	}
	return inserted, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanKeywordRule(row rowScanner) (*models.KeywordRule, error) {
	var rule models.KeywordRule
	err := row.Scan(&rule.ID, &rule.Keyword, &rule.Category, &rule.Severity,
		&rule.Description, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}
