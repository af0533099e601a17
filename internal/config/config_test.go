package config_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/portrait/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BOT_TOKEN", "CSV_PATH", "TEXTS_PATH", "IMAGES_DIR", "COMMUNITY_LINK",
		"CHANNEL_LINK", "RSS_FEED_URL", "REDIS_ADDR", "REDIS_PASSWORD",
		"FEED_CACHE_TTL", "HTTP_ADDR", "LOG_LEVEL", "INTERSTITIAL", "ENTRY_BRANCHES",
		"SESSION_STORE", "SESSION_TTL", "SESSION_KEY",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := config.Load("", "")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.NoError(t, cfg.Validate())
	assert.Error(t, cfg.ValidateBot())
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "bot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
questions_path: data/questions.yaml
http_addr: ":9000"
feed_cache_ttl: 2m
interstitial: false
entry_branches: [1, 2, 5]
`), 0o644))

	t.Setenv("HTTP_ADDR", ":9100")
	t.Setenv("BOT_TOKEN", "123:abc")

	cfg, err := config.Load(path, filepath.Join(dir, "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "data/questions.yaml", cfg.QuestionsPath)
	assert.Equal(t, ":9100", cfg.HTTPAddr, "environment wins over the file")
	assert.Equal(t, 2*time.Minute, cfg.FeedCacheTTL)
	assert.False(t, cfg.Interstitial)
	assert.Equal(t, []int{1, 2, 5}, cfg.EntryBranches)
	assert.Equal(t, "texts.csv", cfg.TextsPath, "unset keys keep defaults")
	assert.NoError(t, cfg.ValidateBot())
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("BOT_TOKEN=from-dotenv\nFEED_CACHE_TTL=30s\nENTRY_BRANCHES=2, 3\n"), 0o644))
	t.Chdir(dir)

	cfg, err := config.Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.BotToken)
	assert.Equal(t, 30*time.Second, cfg.FeedCacheTTL)
	assert.Equal(t, []int{2, 3}, cfg.EntryBranches)
	assert.Contains(t, cfg.Secrets(), "from-dotenv")
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	_, err := config.Load(filepath.Join(dir, "missing.yaml"), "")
	assert.Error(t, err, "an explicit config path must exist")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("entry_branches: nope: ["), 0o644))
	_, err = config.Load(bad, "")
	assert.Error(t, err)

	t.Setenv("FEED_CACHE_TTL", "soon")
	_, err = config.Load("", filepath.Join(dir, "none.env"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "chatty"
	cfg.EntryBranches = []int{0}
	cfg.FeedCacheTTL = -time.Second

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chatty")
	assert.Contains(t, err.Error(), "entry branch")
	assert.Contains(t, err.Error(), "ttl")
}

func TestValidate_SessionStore(t *testing.T) {
	cfg := config.Default()
	cfg.SessionStore = config.StoreRedis
	require.Error(t, cfg.Validate(), "redis store without an address")

	cfg.RedisAddr = "localhost:6379"
	assert.NoError(t, cfg.Validate())

	cfg.SessionKey = "not-a-key"
	assert.ErrorContains(t, cfg.Validate(), "session key")

	cfg.SessionKey = base64.StdEncoding.EncodeToString(make([]byte, 32))
	assert.NoError(t, cfg.Validate())
	assert.Contains(t, cfg.Secrets(), cfg.SessionKey)

	cfg.SessionStore = "sqlite"
	assert.ErrorContains(t, cfg.Validate(), "sqlite")
}

func TestLoad_SessionEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("SESSION_TTL", "24h")
	t.Setenv("REDIS_ADDR", "cache:6379")

	cfg, err := config.Load("", "")
	require.NoError(t, err)
	assert.Equal(t, config.StoreRedis, cfg.SessionStore)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.NoError(t, cfg.Validate())

	t.Setenv("SESSION_TTL", "a day")
	_, err = config.Load("", "")
	assert.Error(t, err)
}
