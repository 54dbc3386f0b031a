package bootstrap

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/squidword/squidword/config"
)

func validEnv() map[string]string {
	return map[string]string{
		"CLEVER_CLIENT_ID":     "id",
		"CLEVER_CLIENT_SECRET": "secret",
		"SECRET_KEY":           "0123456789abcdef",
		"BASE_URL":             "https://app.example.com/",
	}
}

func TestParseConfig_Valid(t *testing.T) {
	cfg, err := parseConfig(env.Options{Environment: validEnv()})

	require.NoError(t, err)
	assert.Equal(t, "https://app.example.com", cfg.HTTP.BaseURL)
	assert.Equal(t, "https://app.example.com/oauth/callback", cfg.HTTP.RedirectURL())
	assert.Equal(t, config.SessionStoreCookie, cfg.Session.Store)
}

func TestParseConfig_FailsFast(t *testing.T) {
	for _, missing := range []string{"CLEVER_CLIENT_ID", "CLEVER_CLIENT_SECRET", "SECRET_KEY", "BASE_URL"} {
		t.Run(missing, func(t *testing.T) {
			environ := validEnv()
			delete(environ, missing)

			_, err := parseConfig(env.Options{Environment: environ})

			require.Error(t, err)
			assert.Contains(t, err.Error(), missing)
		})
	}
}

func TestParseConfig_ValidationErrors(t *testing.T) {
	environ := validEnv()
	environ["SECRET_KEY"] = "short"
	environ["BASE_URL"] = "not-a-url"

	_, err := parseConfig(env.Options{Environment: environ})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECRET_KEY")
	assert.Contains(t, err.Error(), "BASE_URL")
}

func TestInitLogger_Level(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
	}{
		{level: "", debugSeen: false, infoSeen: true},
		{level: "debug", debugSeen: true, infoSeen: true},
		{level: "WARN", debugSeen: false, infoSeen: false},
		{level: "verbose", debugSeen: false, infoSeen: true},
	}

	for _, tt := range tests {
		t.Run("level="+tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := initLogger(&buf, tt.level)
			logger.Debug("debug-line")
			logger.Info("info-line")

			assert.Equal(t, tt.debugSeen, strings.Contains(buf.String(), "debug-line"))
			assert.Equal(t, tt.infoSeen, strings.Contains(buf.String(), "info-line"))
			assert.Same(t, logger, slog.Default())
		})
	}
}
