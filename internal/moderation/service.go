// Package moderation evaluates reviews and messages, records flags and
// drives the administrator review queue.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"creator-moderation/internal/metrics"
	"creator-moderation/internal/models"
	"creator-moderation/internal/repository"
	"creator-moderation/internal/screening"
)

const (
	LowRatingThreshold = 2
	LowRatingReason    = "Low rating (1-2 stars)"
	LowRatingSeverity  = 1
)

type Deps struct {
	Screener *screening.Screener
	Content  repository.ContentRepository
	Flags    repository.FlagRepository
	Metrics  *metrics.ModerationMetrics
	Logger   *zap.Logger
	Now      func() time.Time
}

type Service struct {
	screener *screening.Screener
	content  repository.ContentRepository
	flags    repository.FlagRepository
	metrics  *metrics.ModerationMetrics
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(deps Deps) *Service {
	s := &Service{
		screener: deps.Screener,
		content:  deps.Content,
		flags:    deps.Flags,
		metrics:  deps.Metrics,
		logger:   deps.Logger,
		now:      deps.Now,
	}
	if s.metrics == nil {
		s.metrics = metrics.NewNop()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Screen runs the lexical screener without recording anything.
func (s *Service) Screen(ctx context.Context, text string) screening.Result {
	result := s.screener.Screen(ctx, text)
	s.metrics.RecordScreening(result.IsFlagged)
	return result
}

// ModerateReview evaluates a review and flags it when the rating is low or
// the text trips the screener. A review that no longer exists is ignored.
// The returned flag is nil when nothing was flagged.
func (s *Service) ModerateReview(ctx context.Context, reviewID int) (*models.ContentFlag, error) {
	defer s.metrics.ObserveEvaluation(string(models.ContentTypeReview), time.Now())

	review, err := s.content.GetReview(ctx, reviewID)
	if errors.Is(err, repository.ErrReviewNotFound) {
		s.logger.Debug("review vanished before moderation", zap.Int("review_id", reviewID))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load review %d: %w", reviewID, err)
	}

	input := models.FlagInput{
		ContentType: models.ContentTypeReview,
		ContentID:   review.ID,
		UserID:      review.CreatorID,
	}
	shouldFlag := false

	if review.OverallRating <= LowRatingThreshold {
		shouldFlag = true
		input.Reasons = append(input.Reasons, LowRatingReason)
		input.Severity = LowRatingSeverity
	}

	if review.ReviewText != nil && strings.TrimSpace(*review.ReviewText) != "" {
		result := s.Screen(ctx, *review.ReviewText)
		if result.IsFlagged {
			shouldFlag = true
			input.Reasons = append(input.Reasons, result.Reasons...)
			input.MatchedKeywords = result.MatchedKeywords
			if result.Severity > input.Severity {
				input.Severity = result.Severity
			}
		}
	}

	if !shouldFlag {
		return nil, nil
	}
	return s.FlagContent(ctx, input)
}

// ModerateMessage screens a message and flags it on any violation. Missing
// messages and messages without content are ignored.
func (s *Service) ModerateMessage(ctx context.Context, messageID int) (*models.ContentFlag, error) {
	defer s.metrics.ObserveEvaluation(string(models.ContentTypeMessage), time.Now())

	message, err := s.content.GetMessage(ctx, messageID)
	if errors.Is(err, repository.ErrMessageNotFound) {
		s.logger.Debug("message vanished before moderation", zap.Int("message_id", messageID))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load message %d: %w", messageID, err)
	}
	if message.Content == nil || strings.TrimSpace(*message.Content) == "" {
		return nil, nil
	}

	result := s.Screen(ctx, *message.Content)
	if !result.IsFlagged {
		return nil, nil
	}

	return s.FlagContent(ctx, models.FlagInput{
		ContentType:     models.ContentTypeMessage,
		ContentID:       message.ID,
		UserID:          message.SenderID,
		Reasons:         result.Reasons,
		MatchedKeywords: result.MatchedKeywords,
		Severity:        result.Severity,
	})
}

// FlagContent records a pending flag and notifies every administrator in one
// transaction.
func (s *Service) FlagContent(ctx context.Context, input models.FlagInput) (*models.ContentFlag, error) {
	keywords := input.MatchedKeywords
	if keywords == nil {
		keywords = []string{}
	}
	flag := &models.ContentFlag{
		ContentType:     input.ContentType,
		ContentID:       input.ContentID,
		UserID:          input.UserID,
		FlagReason:      JoinReasons(input.Reasons),
		MatchedKeywords: keywords,
		Severity:        input.Severity,
	}

	sent, err := s.flags.CreateWithNotifications(ctx, flag, buildAdminNotifications)
	if err != nil {
		return nil, fmt.Errorf("flag %s %d: %w", input.ContentType, input.ContentID, err)
	}

	s.metrics.RecordFlag(string(flag.ContentType), sent)
	s.logger.Info("content flagged",
		zap.Int("flag_id", flag.ID),
		zap.String("content_type", string(flag.ContentType)),
		zap.Int("content_id", flag.ContentID),
		zap.Int("user_id", flag.UserID),
		zap.Strings("matched_keywords", flag.MatchedKeywords),
		zap.Int("severity", flag.Severity),
		zap.Int("notified_admins", sent),
	)
	return flag, nil
}

func JoinReasons(reasons []string) string {
	return strings.Join(reasons, ", ")
}

func buildAdminNotifications(flag models.ContentFlag, admins []models.UserSummary) []models.Notification {
	notifications := make([]models.Notification, 0, len(admins))
	for _, admin := range admins {
		notifications = append(notifications, models.Notification{
			UserID:  admin.ID,
			Type:    models.NotificationTypeContentFlagged,
			Title:   "Content flagged for review",
			Message: fmt.Sprintf("A %s by user #%d was flagged: %s", flag.ContentType, flag.UserID, flag.FlagReason),
			LinkURL: fmt.Sprintf("/admin/moderation/flags/%d", flag.ID),
			Metadata: models.FlaggedContentPayload{
				FlagID:          flag.ID,
				ContentType:     flag.ContentType,
				ContentID:       flag.ContentID,
				FlaggedUserID:   flag.UserID,
				MatchedKeywords: flag.MatchedKeywords,
				Severity:        flag.Severity,
			},
		})
	}
	return notifications
}
