package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngramcorrector/pkg/options"
)

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(`
# comment
NGC_TEST_ADDR = :9999
NGC_TEST_QUOTED="hello"
NGC_TEST_SET=from-file
broken line
`), 0o644))

	t.Setenv("NGC_TEST_SET", "from-env")
	os.Unsetenv("NGC_TEST_ADDR")
	os.Unsetenv("NGC_TEST_QUOTED")
	t.Cleanup(func() {
		os.Unsetenv("NGC_TEST_ADDR")
		os.Unsetenv("NGC_TEST_QUOTED")
	})

	require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, ":9999", os.Getenv("NGC_TEST_ADDR"))
	assert.Equal(t, "hello", os.Getenv("NGC_TEST_QUOTED"))
	assert.Equal(t, "from-env", os.Getenv("NGC_TEST_SET"))
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("NGC_INT", "42")
	t.Setenv("NGC_BAD_INT", "x")
	t.Setenv("NGC_BOOL", "yes")

	assert.Equal(t, 42, GetEnvInt("NGC_INT", 1))
	assert.Equal(t, 1, GetEnvInt("NGC_BAD_INT", 1))
	assert.Equal(t, 7, GetEnvInt("NGC_UNSET_INT", 7))
	assert.True(t, GetEnvBool("NGC_BOOL", false))
	assert.True(t, GetEnvBool("NGC_UNSET_BOOL", true))
	assert.Equal(t, "d", GetEnv("NGC_UNSET", "d"))
}

func TestLoadServerConfig(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":1234")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CACHE_SIZE", "10")
	t.Setenv("LOG_JSON", "true")

	cfg := LoadServerConfig()
	assert.Equal(t, ":1234", cfg.HTTPAddr)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 10, cfg.CacheSize)
	assert.True(t, cfg.LogJSON)
}

func TestParseCorrectorFile(t *testing.T) {
	cf, err := ParseCorrectorFile([]byte(`
order: 2
max_threshold: 3
ignore_case: true
extra_words: [gopher, kubernetes]
`))
	require.NoError(t, err)
	assert.Equal(t, 2, cf.Order)
	assert.Equal(t, 3, cf.MaxThreshold)
	assert.Equal(t, options.DefaultOptions.InLexiconThreshold, cf.InLexiconThreshold)
	assert.Equal(t, options.DefaultOptions.MinCandidates, cf.MinCandidates)
	assert.True(t, cf.IgnoreCase)
	assert.True(t, cf.PreserveCase)
	assert.Len(t, cf.ModelOptions(), 1)

	o := options.DefaultOptions
	for _, opt := range cf.Options() {
		opt.Apply(&o)
	}
	assert.Equal(t, 3, o.MaxThreshold)
	assert.True(t, o.IgnoreCase)
	assert.True(t, o.PreserveCase)
}

func TestParseCorrectorFileInvalid(t *testing.T) {
	for name, data := range map[string]string{
		"order":      "order: 0",
		"threshold":  "max_threshold: -1",
		"candidates": "min_candidates: 0",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCorrectorFile([]byte(data))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := ParseCorrectorFile([]byte("order: [1"))
	assert.Error(t, err)
}

func TestLoadCorrectorFile(t *testing.T) {
	cf, err := LoadCorrectorFile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCorrectorFile(), *cf)
	assert.Empty(t, cf.ModelOptions())

	path := filepath.Join(t.TempDir(), "corrector.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preserve_case: false\n"), 0o644))
	cf, err = LoadCorrectorFile(path)
	require.NoError(t, err)
	assert.False(t, cf.PreserveCase)

	_, err = LoadCorrectorFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("debug", true)
	require.NoError(t, err)
	assert.Equal(t, "debug", l.GetLevel().String())

	_, err = NewLogger("loud", false)
	assert.Error(t, err)
}
