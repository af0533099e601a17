package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aretw0/portrait"
	"github.com/aretw0/portrait/internal/config"
	"github.com/aretw0/portrait/internal/logging"
	"github.com/aretw0/portrait/internal/presentation/message"
	"github.com/aretw0/portrait/pkg/adapters/feed"
	"github.com/aretw0/portrait/pkg/adapters/file"
	"github.com/aretw0/portrait/pkg/adapters/memory"
	"github.com/aretw0/portrait/pkg/adapters/redis"
	"github.com/aretw0/portrait/pkg/domain"
	"github.com/aretw0/portrait/pkg/observability"
	"github.com/aretw0/portrait/pkg/persistence"
	"github.com/aretw0/portrait/pkg/ports"
	"github.com/aretw0/portrait/pkg/session"
)

// app is the wiring shared by every command that runs the engine.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	engine   *portrait.Engine
	sessions *session.Manager
	closers  []func() error
}

func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")

	cfg, err := config.Load(path, envFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logging.New(level, cfg.Secrets()...), nil
}

// loadGraph reads the questions and the texts catalogue named by cfg.
func loadGraph(ctx context.Context, cfg config.Config, logger *slog.Logger) (*domain.Graph, domain.Texts, error) {
	media := file.NewMediaDir(cfg.ImagesDir)
	graph, err := file.NewLoader(cfg.QuestionsPath, file.WithLogger(logger), file.WithMedia(media)).Load(ctx)
	if err != nil {
		return nil, domain.Texts{}, fmt.Errorf("failed to load questions: %w", err)
	}
	texts, err := file.NewTextsLoader(cfg.TextsPath, file.WithLogger(logger)).LoadTexts(ctx, domain.DefaultTexts())
	if err != nil {
		return nil, domain.Texts{}, fmt.Errorf("failed to load texts: %w", err)
	}
	return graph, texts, nil
}

func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	graph, texts, err := loadGraph(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	metrics, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	a := &app{cfg: cfg, logger: logger}
	opts := []portrait.Option{
		portrait.WithLogger(logger),
		portrait.WithTexts(texts),
		portrait.WithEntryBranches(cfg.EntryBranches...),
		portrait.WithInterstitial(cfg.Interstitial),
		portrait.WithSubscribeURL(cfg.ChannelLink),
		portrait.WithWelcomeMedia(file.NewMediaDir(cfg.ImagesDir).Resolve(0)),
		portrait.WithLifecycleHooks(observability.Combine(
			observability.LoggingHooks(logger),
			metrics.Hooks(),
		)),
	}
	store, err := a.store(ctx)
	if err != nil {
		return nil, err
	}
	opts = append(opts, portrait.WithStore(store))
	if summarizer := a.feed(ctx); summarizer != nil {
		opts = append(opts, portrait.WithFeed(summarizer))
	}

	a.engine = portrait.New(graph, opts...)
	a.sessions = session.NewManager(a.engine, session.WithLogger(logger))
	return a, nil
}

func (a *app) store(ctx context.Context) (ports.SessionStore, error) {
	if a.cfg.SessionStore != config.StoreRedis {
		return memory.NewStore(), nil
	}

	opts := []redis.StoreOption{redis.WithSessionTTL(a.cfg.SessionTTL)}
	if a.cfg.SessionKey != "" {
		key, err := persistence.ParseKey(a.cfg.SessionKey)
		if err != nil {
			return nil, err
		}
		codec, err := persistence.NewEncryptedCodec(persistence.EncryptionConfig{ActiveKey: key}, nil)
		if err != nil {
			return nil, err
		}
		opts = append(opts, redis.WithCodec(codec))
	}

	store := redis.NewStoreFromAddr(a.cfg.RedisAddr, a.cfg.RedisPassword, opts...)
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to reach session store at %s: %w", a.cfg.RedisAddr, err)
	}
	a.closers = append(a.closers, store.Close)
	return store, nil
}

func (a *app) feed(ctx context.Context) ports.FeedSummarizer {
	if a.cfg.RSSFeedURL == "" {
		a.logger.Warn("RSS_FEED_URL is not set, results will have no feed block")
		return nil
	}
	summarizer := feed.New(a.cfg.RSSFeedURL, feed.WithLogger(a.logger))
	if a.cfg.RedisAddr == "" {
		return summarizer
	}

	cached := redis.NewCachedFeedFromAddr(a.cfg.RedisAddr, a.cfg.RedisPassword, summarizer,
		redis.WithTTL(a.cfg.FeedCacheTTL),
		redis.WithLogger(a.logger),
	)
	if err := cached.Ping(ctx); err != nil {
		a.logger.Warn("redis unreachable, feed will be fetched on every result", "addr", a.cfg.RedisAddr, "err", err)
	}
	a.closers = append(a.closers, cached.Close)
	return cached
}

func (a *app) links() message.Links {
	return message.Links{Channel: a.cfg.ChannelLink, Community: a.cfg.CommunityLink}
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn("failed to close resource", "err", err)
		}
	}
}
