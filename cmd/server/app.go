// cmd/server/app.go
package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"creator-moderation/internal/config"
	"creator-moderation/internal/database"
	"creator-moderation/internal/logging"
	"creator-moderation/internal/metrics"
	"creator-moderation/internal/moderation"
	"creator-moderation/internal/repository"
	"creator-moderation/internal/screening"
)

// app holds everything the subcommands share.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	db        *database.DB
	registry  *prometheus.Registry
	metrics   *metrics.ModerationMetrics
	rules     repository.KeywordRuleRepository
	ruleCache *screening.CachedRuleSource
	service   *moderation.Service
}

func newApp(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.dbPath != "" {
		cfg.Database.Path = opts.dbPath
	}

	logger, err := logging.New(logging.Config{
		Environment: cfg.Log.Environment,
		Level:       cfg.Log.Level,
		Service:     "moderation",
	})
	if err != nil {
		return nil, err
	}

	db, err := database.New(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.NewModerationMetrics(registry)
	if err != nil {
		db.Close()
		return nil, err
	}

	rules := repository.NewKeywordRuleRepository(db)
	var source screening.RuleSource = rules
	var ruleCache *screening.CachedRuleSource
	if cfg.Moderation.RuleCacheTTL > 0 {
		ruleCache = screening.NewCachedRuleSource(rules, cfg.Moderation.RuleCacheTTL)
		source = ruleCache
	}

	service := moderation.NewService(moderation.Deps{
		Screener: screening.NewScreener(source, screening.NewProfanityClassifier(), logger.Named("screening")),
		Content:  repository.NewContentRepository(db),
		Flags:    repository.NewFlagRepository(db),
		Metrics:  m,
		Logger:   logger.Named("moderation"),
	})

	return &app{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		registry:  registry,
		metrics:   m,
		rules:     rules,
		ruleCache: ruleCache,
		service:   service,
	}, nil
}

func (a *app) seed(ctx context.Context) int {
	inserted := moderation.SeedKeywordPolicy(ctx, a.rules, screening.DefaultRules(), a.metrics, a.logger)
	if a.ruleCache != nil {
		a.ruleCache.Invalidate()
	}
	return inserted
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", zap.Error(err))
	}
	_ = a.logger.Sync()
}
