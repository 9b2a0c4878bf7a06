package moderation

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"creator-moderation/internal/models"
)

var (
	ErrInvalidFlagStatus = errors.New("status must be one of reviewed, dismissed, action_taken")
	ErrAdminRequired     = errors.New("admin id is required")
)

func (s *Service) PendingFlags(ctx context.Context) ([]models.FlagWithUser, error) {
	return s.flags.ListPending(ctx)
}

func (s *Service) FlagStatistics(ctx context.Context) (models.FlagStatistics, error) {
	return s.flags.CountByStatus(ctx)
}

func (s *Service) GetFlag(ctx context.Context, id int) (*models.ContentFlag, error) {
	return s.flags.GetByID(ctx, id)
}

// ReviewFlaggedContent resolves a pending flag. A flag that was already
// resolved yields repository.ErrFlagAlreadyResolved and is not modified.
func (s *Service) ReviewFlaggedContent(ctx context.Context, input models.ResolveFlagInput) (*models.ContentFlag, error) {
	if !input.Status.IsResolution() {
		return nil, ErrInvalidFlagStatus
	}
	if input.AdminID <= 0 {
		return nil, ErrAdminRequired
	}

	if err := s.flags.Resolve(ctx, input, s.now()); err != nil {
		return nil, err
	}

	s.metrics.RecordResolution(string(input.Status))
	s.logger.Info("content flag resolved",
		zap.Int("flag_id", input.FlagID),
		zap.Int("admin_id", input.AdminID),
		zap.String("status", string(input.Status)),
	)
	return s.flags.GetByID(ctx, input.FlagID)
}
