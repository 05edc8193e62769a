package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnvironment(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		EnvPort, EnvGoogleClientID, EnvGoogleClientSecret, EnvGoogleRedirectURI, EnvSessionSecret,
		EnvRedisAddress, EnvRedisPassword, EnvRedisUsername,
		EnvStorageHost, EnvStoragePort, EnvStorageUsername, EnvStoragePassword, EnvStorageDatabase,
		EnvFallbackURL,
	} {
		t.Setenv(name, "")
	}
}

func validOAuth() OAuthConfig {
	return OAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "https://links.example.com/auth/callback",
	}
}

func TestLoadConfig_FromEnvironmentOnly(t *testing.T) {
	clearEnvironment(t)
	t.Setenv(EnvGoogleClientID, "env-client")
	t.Setenv(EnvGoogleClientSecret, "env-secret")
	t.Setenv(EnvGoogleRedirectURI, "https://traceable-link.example.com/auth/callback")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "env-client", cfg.OAuth.ClientID)
	assert.Equal(t, "env-secret", cfg.OAuth.ClientSecret)
	assert.Equal(t, "https://accounts.google.com", cfg.OAuth.IssuerURL)
	assert.Equal(t, []string{"openid", "email", "profile"}, cfg.OAuth.Scopes)
	assert.Equal(t, "offline", cfg.OAuth.AccessType)
	assert.Equal(t, "memory", cfg.Sessions.Store)
	assert.True(t, cfg.UsesInsecureSessionSecret())
	assert.Equal(t, []string{SinkStdout}, cfg.ClickLog.Sinks)
	assert.False(t, cfg.Tracking.RefreshPendingOnReentry)
	assert.Zero(t, cfg.Tracking.DedupWindow)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	clearEnvironment(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := `
server:
  port: 8080
oauth:
  client_id: file-client
  client_secret: file-secret
  redirect_url: https://file.example.com/auth/callback
sessions:
  secret: file-session-secret
tracking:
  dedup_window: 30s
  allowed_target_hosts: ["Coda.IO "]
click_log:
  sinks: [stdout, file]
  file:
    path: /tmp/clicks.jsonl
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	t.Setenv(EnvPort, "4000")
	t.Setenv(EnvSessionSecret, "env-session-secret")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "file-client", cfg.OAuth.ClientID)
	assert.Equal(t, "env-session-secret", cfg.Sessions.Secret)
	assert.False(t, cfg.UsesInsecureSessionSecret())
	assert.Equal(t, 30*time.Second, cfg.Tracking.DedupWindow)
	assert.Equal(t, []string{"coda.io"}, cfg.Tracking.AllowedTargetHosts)
	assert.True(t, cfg.ClickLog.HasSink(SinkFile))
	assert.False(t, cfg.ClickLog.HasSink(SinkRedis))
}

func TestLoadConfig_MissingFile(t *testing.T) {
	clearEnvironment(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		config    *Config
		wantError bool
		errMsg    string
	}{
		{
			name:      "valid minimal config",
			config:    &Config{OAuth: validOAuth()},
			wantError: false,
		},
		{
			name:      "missing client id",
			config:    &Config{OAuth: OAuthConfig{ClientSecret: "s", RedirectURI: "https://a.example.com/cb"}},
			wantError: true,
			errMsg:    "client id is required",
		},
		{
			name:      "missing redirect url",
			config:    &Config{OAuth: OAuthConfig{ClientID: "c", ClientSecret: "s"}},
			wantError: true,
			errMsg:    "redirect_url is required",
		},
		{
			name: "invalid access type",
			config: &Config{OAuth: OAuthConfig{
				ClientID: "c", ClientSecret: "s", RedirectURI: "https://a.example.com/cb", AccessType: "forever",
			}},
			wantError: true,
			errMsg:    "invalid oauth access type",
		},
		{
			name:      "invalid log level",
			config:    &Config{OAuth: validOAuth(), Log: LogConfig{Level: "loud"}},
			wantError: true,
			errMsg:    "invalid log level",
		},
		{
			name:      "invalid session store",
			config:    &Config{OAuth: validOAuth(), Sessions: SessionConfig{Store: "disk"}},
			wantError: true,
			errMsg:    "invalid session store",
		},
		{
			name:      "redis session store without redis config",
			config:    &Config{OAuth: validOAuth(), Sessions: SessionConfig{Store: "redis"}},
			wantError: true,
			errMsg:    "redis config is required",
		},
		{
			name: "redis session store with redis config",
			config: &Config{
				OAuth:    validOAuth(),
				Sessions: SessionConfig{Store: "redis"},
				Redis:    &RedisConfig{Address: "localhost:6379"},
			},
			wantError: false,
		},
		{
			name: "colliding redis indices",
			config: &Config{
				OAuth:    validOAuth(),
				Sessions: SessionConfig{Store: "redis"},
				Redis:    &RedisConfig{Address: "localhost:6379", SessionIndex: 3, CacheIndex: 3, ClickIndex: 4},
			},
			wantError: true,
			errMsg:    "should be different",
		},
		{
			name:      "negative dedup window",
			config:    &Config{OAuth: validOAuth(), Tracking: TrackingConfig{DedupWindow: -time.Second}},
			wantError: true,
			errMsg:    "cannot be negative",
		},
		{
			name:      "relative fallback url",
			config:    &Config{OAuth: validOAuth(), Tracking: TrackingConfig{FallbackURL: "/oops"}},
			wantError: true,
			errMsg:    "tracking.fallback_url",
		},
		{
			name:      "unknown click sink",
			config:    &Config{OAuth: validOAuth(), ClickLog: ClickLogConfig{Sinks: []string{"kafka"}}},
			wantError: true,
			errMsg:    "invalid click_log.sinks[0]",
		},
		{
			name:      "duplicate click sink",
			config:    &Config{OAuth: validOAuth(), ClickLog: ClickLogConfig{Sinks: []string{"stdout", "stdout"}}},
			wantError: true,
			errMsg:    "duplicates sink",
		},
		{
			name:      "file sink without path",
			config:    &Config{OAuth: validOAuth(), ClickLog: ClickLogConfig{Sinks: []string{"file"}}},
			wantError: true,
			errMsg:    "click_log.file.path is required",
		},
		{
			name: "postgres sink without database",
			config: &Config{OAuth: validOAuth(), ClickLog: ClickLogConfig{
				Sinks:    []string{"postgres"},
				Postgres: &PostgresSinkConfig{Host: "db", Username: "links"},
			}},
			wantError: true,
			errMsg:    "click_log.postgres.database is required",
		},
		{
			name:      "redis sink requires redis config",
			config:    &Config{OAuth: validOAuth(), ClickLog: ClickLogConfig{Sinks: []string{"redis"}}},
			wantError: true,
			errMsg:    "redis config is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.config)
			if tt.wantError {
				if err == nil {
					t.Errorf("validateConfig() expected error but got none")
				} else if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("validateConfig() error = %v, want error containing %v", err, tt.errMsg)
				}
			} else {
				if err != nil {
					t.Errorf("validateConfig() unexpected error = %v", err)
				}
			}
		})
	}
}

func TestValidateClickLogConfig_AppliesRedisSinkDefaults(t *testing.T) {
	cfg := &Config{ClickLog: ClickLogConfig{Sinks: []string{SinkRedis}}}

	require.NoError(t, cfg.validateClickLogConfig())
	require.NotNil(t, cfg.ClickLog.Redis)
	assert.Equal(t, DefaultRedisSinkConfig.Stream, cfg.ClickLog.Redis.Stream)
	assert.Equal(t, DefaultRedisSinkConfig.MaxLen, cfg.ClickLog.Redis.MaxLen)
	assert.Equal(t, DefaultClickLogConfig.BufferSize, cfg.ClickLog.BufferSize)
}
