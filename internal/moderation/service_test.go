package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"creator-moderation/internal/database"
	"creator-moderation/internal/metrics"
	"creator-moderation/internal/models"
	"creator-moderation/internal/repository"
	"creator-moderation/internal/screening"
	"creator-moderation/internal/testutil"
)

type fixture struct {
	db      *database.DB
	rules   repository.KeywordRuleRepository
	flags   repository.FlagRepository
	metrics *metrics.ModerationMetrics
	svc     *Service
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	m, err := metrics.NewModerationMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	f := &fixture{
		db:      db,
		rules:   repository.NewKeywordRuleRepository(db),
		flags:   repository.NewFlagRepository(db),
		metrics: m,
		now:     time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC),
	}
	_, err = f.rules.SeedDefaults(context.Background(), screening.DefaultRules())
	require.NoError(t, err)

	f.svc = NewService(Deps{
		Screener: screening.NewScreener(f.rules, nil, nil),
		Content:  repository.NewContentRepository(db),
		Flags:    f.flags,
		Metrics:  m,
		Now:      func() time.Time { return f.now },
	})
	return f
}

func TestModerateReviewLowRatingWithoutText(t *testing.T) {
	f := newFixture(t)
	creator := testutil.InsertUser(t, f.db, "creator", "creator")
	reviewID := testutil.InsertReview(t, f.db, creator, 1, nil)

	flag, err := f.svc.ModerateReview(context.Background(), reviewID)
	require.NoError(t, err)
	require.NotNil(t, flag)

	assert.Equal(t, models.ContentTypeReview, flag.ContentType)
	assert.Equal(t, reviewID, flag.ContentID)
	assert.Equal(t, creator, flag.UserID)
	assert.Equal(t, LowRatingReason, flag.FlagReason)
	assert.Equal(t, []string{}, flag.MatchedKeywords)
	assert.Equal(t, LowRatingSeverity, flag.Severity)
	assert.Equal(t, models.FlagStatusPending, flag.Status)
	assert.Equal(t, 1, testutil.CountRows(t, f.db, "content_flags"))
}

func TestModerateReviewKeywordOnHighRating(t *testing.T) {
	f := newFixture(t)
	creator := testutil.InsertUser(t, f.db, "creator", "creator")
	reviewID := testutil.InsertReview(t, f.db, creator, 5, testutil.Ptr("Great, but this was a scam"))

	flag, err := f.svc.ModerateReview(context.Background(), reviewID)
	require.NoError(t, err)
	require.NotNil(t, flag)

	assert.Contains(t, flag.MatchedKeywords, "scam")
	assert.GreaterOrEqual(t, flag.Severity, 4)
	assert.Equal(t, "Contains spam keyword: scam", flag.FlagReason)
}

func TestModerateReviewCombinesLowRatingAndKeywords(t *testing.T) {
	f := newFixture(t)
	reviewID := testutil.InsertReview(t, f.db, 3, 2, testutil.Ptr("I will sue, this is fraud"))

	flag, err := f.svc.ModerateReview(context.Background(), reviewID)
	require.NoError(t, err)
	require.NotNil(t, flag)

	assert.Equal(t,
		LowRatingReason+", Contains legal keyword: fraud, Contains legal keyword: sue",
		flag.FlagReason)
	assert.ElementsMatch(t, []string{"fraud", "sue"}, flag.MatchedKeywords)
	assert.Equal(t, 5, flag.Severity)
}

func TestModerateReviewCleanIsNotFlagged(t *testing.T) {
	f := newFixture(t)
	reviewID := testutil.InsertReview(t, f.db, 3, 4, testutil.Ptr("Delivered on time, would hire again"))

	flag, err := f.svc.ModerateReview(context.Background(), reviewID)
	require.NoError(t, err)
	assert.Nil(t, flag)
	assert.Zero(t, testutil.CountRows(t, f.db, "content_flags"))
	assert.Equal(t, 1.0, promtest.ToFloat64(f.metrics.ScreeningsTotal.WithLabelValues("clean")))
}

func TestModerateMissingContentIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	flag, err := f.svc.ModerateReview(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, flag)

	flag, err = f.svc.ModerateMessage(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, flag)

	assert.Zero(t, testutil.CountRows(t, f.db, "content_flags"))
}

func TestModerateMessageWithoutContentIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, content := range []*string{nil, testutil.Ptr(""), testutil.Ptr("   ")} {
		id := testutil.InsertMessage(t, f.db, 5, content)
		flag, err := f.svc.ModerateMessage(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, flag)
	}
	assert.Zero(t, testutil.CountRows(t, f.db, "content_flags"))
}

func TestModerateMessageNotifiesAdmins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.InsertUser(t, f.db, "alice", models.RoleAdmin)
	testutil.InsertUser(t, f.db, "bob", models.RoleAdmin)
	sender := testutil.InsertUser(t, f.db, "sender", "company")

	id := testutil.InsertMessage(t, f.db, sender, testutil.Ptr("ping me on Telegram so we can pay outside the platform"))
	flag, err := f.svc.ModerateMessage(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, flag)

	assert.ElementsMatch(t, []string{"telegram", "pay outside"}, flag.MatchedKeywords)
	assert.Equal(t, 3, flag.Severity)
	assert.Equal(t, 2, testutil.CountRows(t, f.db, "notifications"))
	assert.Equal(t, 1.0, promtest.ToFloat64(f.metrics.FlagsCreatedTotal.WithLabelValues("message")))
	assert.Equal(t, 2.0, promtest.ToFloat64(f.metrics.NotificationsTotal))

	notifications, err := repository.NewNotificationRepository(f.db).ListForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Content flagged for review", notifications[0].Title)
	assert.Equal(t, "/admin/moderation/flags/1", notifications[0].LinkURL)
	assert.Equal(t, flag.ID, notifications[0].Metadata.FlagID)
}

func TestModerateMessageProfanity(t *testing.T) {
	f := newFixture(t)
	id := testutil.InsertMessage(t, f.db, 5, testutil.Ptr("this is shit"))

	flag, err := f.svc.ModerateMessage(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, flag)
	assert.Equal(t, screening.ProfanityReason, flag.FlagReason)
	assert.Equal(t, []string{}, flag.MatchedKeywords)
	assert.Equal(t, screening.ProfanitySeverity, flag.Severity)
}

func TestRepeatedEvaluationRecordsEachFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := testutil.InsertMessage(t, f.db, 5, testutil.Ptr("crypto giveaway"))

	for i := 0; i < 2; i++ {
		flag, err := f.svc.ModerateMessage(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, flag)
	}
	assert.Equal(t, 2, testutil.CountRows(t, f.db, "content_flags"))
}

func TestDeactivatedRuleKeepsHistoricalFlags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := testutil.InsertMessage(t, f.db, 5, testutil.Ptr("add me on whatsapp"))

	flag, err := f.svc.ModerateMessage(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, flag)

	rules, err := f.rules.List(ctx, models.KeywordRuleFilter{})
	require.NoError(t, err)
	for _, rule := range rules {
		if rule.Keyword == "whatsapp" {
			_, err := f.rules.Update(ctx, rule.ID, models.KeywordRuleUpdate{IsActive: testutil.Ptr(false)})
			require.NoError(t, err)
		}
	}

	again, err := f.svc.ModerateMessage(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, again)

	stored, err := f.svc.GetFlag(ctx, flag.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"whatsapp"}, stored.MatchedKeywords)
}

func TestReviewFlaggedContent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := testutil.InsertUser(t, f.db, "alice", models.RoleAdmin)
	reviewID := testutil.InsertReview(t, f.db, 3, 1, nil)

	flag, err := f.svc.ModerateReview(ctx, reviewID)
	require.NoError(t, err)
	require.NotNil(t, flag)

	stats, err := f.svc.FlagStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Pending)

	resolved, err := f.svc.ReviewFlaggedContent(ctx, models.ResolveFlagInput{
		FlagID:  flag.ID,
		AdminID: admin,
		Status:  models.FlagStatusDismissed,
		Notes:   testutil.Ptr("honest feedback"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.FlagStatusDismissed, resolved.Status)
	require.NotNil(t, resolved.ReviewedAt)
	assert.True(t, f.now.Equal(*resolved.ReviewedAt))

	pending, err := f.svc.PendingFlags(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	stats, err = f.svc.FlagStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.FlagStatistics{Dismissed: 1, Total: 1}, stats)
	assert.Equal(t, 1.0, promtest.ToFloat64(f.metrics.FlagsResolvedTotal.WithLabelValues("dismissed")))

	_, err = f.svc.ReviewFlaggedContent(ctx, models.ResolveFlagInput{
		FlagID:  flag.ID,
		AdminID: admin,
		Status:  models.FlagStatusActionTaken,
	})
	assert.ErrorIs(t, err, repository.ErrFlagAlreadyResolved)
}

func TestReviewFlaggedContentValidatesInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ReviewFlaggedContent(ctx, models.ResolveFlagInput{FlagID: 1, AdminID: 1, Status: models.FlagStatusPending})
	assert.ErrorIs(t, err, ErrInvalidFlagStatus)

	_, err = f.svc.ReviewFlaggedContent(ctx, models.ResolveFlagInput{FlagID: 1, AdminID: 1, Status: "banned"})
	assert.ErrorIs(t, err, ErrInvalidFlagStatus)

	_, err = f.svc.ReviewFlaggedContent(ctx, models.ResolveFlagInput{FlagID: 1, Status: models.FlagStatusReviewed})
	assert.ErrorIs(t, err, ErrAdminRequired)

	_, err = f.svc.ReviewFlaggedContent(ctx, models.ResolveFlagInput{FlagID: 99, AdminID: 1, Status: models.FlagStatusReviewed})
	assert.ErrorIs(t, err, repository.ErrFlagNotFound)
}

type failingSeeder struct{}

func (failingSeeder) SeedDefaults(context.Context, []models.KeywordRule) (int, error) {
	return 0, errors.New("disk full")
}

func TestSeedKeywordPolicySwallowsErrors(t *testing.T) {
	m := metrics.NewNop()
	inserted := SeedKeywordPolicy(context.Background(), failingSeeder{}, screening.DefaultRules(), m, zap.NewNop())
	assert.Zero(t, inserted)
	assert.Zero(t, promtest.ToFloat64(m.SeededRulesTotal))
}

func TestSeedKeywordPolicyCountsInserted(t *testing.T) {
	db := testutil.NewDB(t)
	rules := repository.NewKeywordRuleRepository(db)
	m := metrics.NewNop()

	defaults := screening.DefaultRules()
	assert.Equal(t, len(defaults), SeedKeywordPolicy(context.Background(), rules, defaults, m, zap.NewNop()))
	assert.Zero(t, SeedKeywordPolicy(context.Background(), rules, defaults, m, zap.NewNop()))
	assert.Equal(t, float64(len(defaults)), promtest.ToFloat64(m.SeededRulesTotal))
}

func TestJoinReasons(t *testing.T) {
	assert.Equal(t, "", JoinReasons(nil))
	assert.Equal(t, "a, b", JoinReasons([]string{"a", "b"}))
}
