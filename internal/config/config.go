// Package config loads runtime settings from an optional .env file, an
// optional YAML file and the process environment, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/portrait/internal/logging"
	"github.com/aretw0/portrait/pkg/persistence"
)

// DefaultPath is the YAML file read when no path is given.
const DefaultPath = "portrait.yaml"

// Session store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds every setting of the bot and its companion servers.
type Config struct {
	BotToken      string        `yaml:"bot_token"`
	QuestionsPath string        `yaml:"questions_path"`
	TextsPath     string        `yaml:"texts_path"`
	ImagesDir     string        `yaml:"images_dir"`
	CommunityLink string        `yaml:"community_link"`
	ChannelLink   string        `yaml:"channel_link"`
	RSSFeedURL    string        `yaml:"rss_feed_url"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	FeedCacheTTL  time.Duration `yaml:"feed_cache_ttl"`
	SessionStore  string        `yaml:"session_store"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	SessionKey    string        `yaml:"session_key"`
	HTTPAddr      string        `yaml:"http_addr"`
	LogLevel      string        `yaml:"log_level"`
	Interstitial  bool          `yaml:"interstitial"`
	EntryBranches []int         `yaml:"entry_branches"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		QuestionsPath: "questions_succ.csv",
		TextsPath:     "texts.csv",
		ImagesDir:     "images",
		CommunityLink: "https://t.me/+25yK94v9nCoyNzFi",
		ChannelLink:   "https://t.me/day_capitalist",
		FeedCacheTTL:  10 * time.Minute,
		SessionStore:  StoreMemory,
		HTTPAddr:      ":8080",
		LogLevel:      "info",
		Interstitial:  true,
		EntryBranches: []int{1},
	}
}

// Load builds the configuration. envFile and path may be empty; a missing
// .env is ignored, and a missing YAML file is ignored only when path is
// empty or DefaultPath.
func Load(path, envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	cfg := Default()

	explicit := path != "" && path != DefaultPath
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// defaults only
	default:
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"BOT_TOKEN":      &c.BotToken,
		"CSV_PATH":       &c.QuestionsPath,
		"TEXTS_PATH":     &c.TextsPath,
		"IMAGES_DIR":     &c.ImagesDir,
		"COMMUNITY_LINK": &c.CommunityLink,
		"CHANNEL_LINK":   &c.ChannelLink,
		"RSS_FEED_URL":   &c.RSSFeedURL,
		"REDIS_ADDR":     &c.RedisAddr,
		"REDIS_PASSWORD": &c.RedisPassword,
		"HTTP_ADDR":      &c.HTTPAddr,
		"LOG_LEVEL":      &c.LogLevel,
		"SESSION_STORE":  &c.SessionStore,
		"SESSION_KEY":    &c.SessionKey,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	if v, ok := os.LookupEnv("FEED_CACHE_TTL"); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid FEED_CACHE_TTL %q: %w", v, err)
		}
		c.FeedCacheTTL = ttl
	}
	if v, ok := os.LookupEnv("SESSION_TTL"); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL %q: %w", v, err)
		}
		c.SessionTTL = ttl
	}
	if v, ok := os.LookupEnv("INTERSTITIAL"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid INTERSTITIAL %q: %w", v, err)
		}
		c.Interstitial = enabled
	}
	if v, ok := os.LookupEnv("ENTRY_BRANCHES"); ok && v != "" {
		branches, err := parseInts(v)
		if err != nil {
			return fmt.Errorf("invalid ENTRY_BRANCHES %q: %w", v, err)
		}
		c.EntryBranches = branches
	}
	return nil
}

// Validate checks the settings every command relies on.
func (c Config) Validate() error {
	var errs []error
	if c.QuestionsPath == "" {
		errs = append(errs, errors.New("questions path is empty"))
	}
	if c.FeedCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("feed cache ttl must not be negative, got %s", c.FeedCacheTTL))
	}
	switch c.SessionStore {
	case StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("redis session store needs REDIS_ADDR"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown session store %q, supported: memory, redis", c.SessionStore))
	}
	if c.SessionTTL < 0 {
		errs = append(errs, fmt.Errorf("session ttl must not be negative, got %s", c.SessionTTL))
	}
	if c.SessionKey != "" {
		if _, err := persistence.ParseKey(c.SessionKey); err != nil {
			errs = append(errs, fmt.Errorf("invalid session key: %w", err))
		}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if len(c.EntryBranches) == 0 {
		errs = append(errs, errors.New("at least one entry branch is required"))
	}
	for _, b := range c.EntryBranches {
		if b <= 0 {
			errs = append(errs, fmt.Errorf("entry branch must be positive, got %d", b))
		}
	}
	return errors.Join(errs...)
}

// ValidateBot additionally requires the Telegram token.
func (c Config) ValidateBot() error {
	if c.BotToken == "" {
		return errors.Join(errors.New("BOT_TOKEN is not set"), c.Validate())
	}
	return c.Validate()
}

// Secrets lists the values the logger must mask.
func (c Config) Secrets() []string {
	return []string{c.BotToken, c.RedisPassword, c.SessionKey}
}

func parseInts(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
