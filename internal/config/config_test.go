package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(append([]string{"--env-file", ""}, args...)))

	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, DriverBolt, cfg.Token.Driver)
	assert.Equal(t, "session.db", filepath.Base(cfg.Token.Path))
}

func TestLoad_EnvAndFlags(t *testing.T) {
	t.Setenv("CLASSROOM_BASE_URL", "https://lms.example.com/api")
	t.Setenv("CLASSROOM_TIMEOUT", "3s")
	t.Setenv("CLASSROOM_TOKEN_DRIVER", "redis")

	cfg, err := Load(newFlags(t, "--timeout", "5s", "--log-level", "debug"))
	require.NoError(t, err)

	assert.Equal(t, "https://lms.example.com/api", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, DriverRedis, cfg.Token.Driver)
}

func TestLoad_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CLASSROOM_TOKEN_DRIVER=memory\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("CLASSROOM_TOKEN_DRIVER") })

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--env-file", path}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Token.Driver)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "unknown driver", args: []string{"--token-driver", "sqlite"}},
		{name: "postgres without dsn", args: []string{"--token-driver", "postgres"}},
		{name: "bad log level", args: []string{"--log-level", "loud"}},
		{name: "negative timeout", args: []string{"--timeout", "-1s"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(newFlags(t, tc.args...))
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
