package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads the YAML file at configPath, applies environment overrides and validates the result.
// An empty configPath skips the file so the service can be configured from the environment alone.
func LoadConfig(configPath string) (*Config, error) {
	var config Config

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvironmentOverrides(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

var (
	EnvPort               = "PORT"
	EnvGoogleClientID     = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret = "GOOGLE_CLIENT_SECRET"
	EnvGoogleRedirectURI  = "GOOGLE_REDIRECT_URI"
	EnvSessionSecret      = "SESSION_SECRET"
	EnvRedisAddress       = "TRACELINK_REDIS_ADDRESS"
	EnvRedisPassword      = "TRACELINK_REDIS_PASSWORD"
	EnvRedisUsername      = "TRACELINK_REDIS_USERNAME"
	EnvStorageHost        = "TRACELINK_STORAGE_HOST"
	EnvStoragePort        = "TRACELINK_STORAGE_PORT"
	EnvStorageUsername    = "TRACELINK_STORAGE_USERNAME"
	EnvStoragePassword    = "TRACELINK_STORAGE_PASSWORD"
	EnvStorageDatabase    = "TRACELINK_STORAGE_DATABASE"
	EnvFallbackURL        = "TRACELINK_FALLBACK_URL"
)

func applyEnvironmentOverrides(config *Config) {
	if portStr := os.Getenv(EnvPort); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			config.Server.Port = port
		}
	}

	if clientID := os.Getenv(EnvGoogleClientID); clientID != "" {
		config.OAuth.ClientID = clientID
	}

	if clientSecret := os.Getenv(EnvGoogleClientSecret); clientSecret != "" {
		config.OAuth.ClientSecret = clientSecret
	}

	if redirectURL := os.Getenv(EnvGoogleRedirectURI); redirectURL != "" {
		config.OAuth.RedirectURI = redirectURL
	}

	if secret := os.Getenv(EnvSessionSecret); secret != "" {
		config.Sessions.Secret = secret
	}

	if address := os.Getenv(EnvRedisAddress); address != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		config.Redis.Address = address
	}

	if redisPassword := os.Getenv(EnvRedisPassword); redisPassword != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		config.Redis.Password = redisPassword
	}

	if redisUsername := os.Getenv(EnvRedisUsername); redisUsername != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		config.Redis.Username = redisUsername
	}

	if host := os.Getenv(EnvStorageHost); host != "" {
		if config.ClickLog.Postgres == nil {
			config.ClickLog.Postgres = &PostgresSinkConfig{}
		}
		config.ClickLog.Postgres.Host = host
	}

	if portStr := os.Getenv(EnvStoragePort); portStr != "" {
		if config.ClickLog.Postgres == nil {
			config.ClickLog.Postgres = &PostgresSinkConfig{}
		}
		if port, err := strconv.Atoi(portStr); err == nil {
			config.ClickLog.Postgres.Port = port
		}
	}

	if username := os.Getenv(EnvStorageUsername); username != "" {
		if config.ClickLog.Postgres == nil {
			config.ClickLog.Postgres = &PostgresSinkConfig{}
		}
		config.ClickLog.Postgres.Username = username
	}

	if password := os.Getenv(EnvStoragePassword); password != "" {
		if config.ClickLog.Postgres == nil {
			config.ClickLog.Postgres = &PostgresSinkConfig{}
		}
		config.ClickLog.Postgres.Password = password
	}

	if database := os.Getenv(EnvStorageDatabase); database != "" {
		if config.ClickLog.Postgres == nil {
			config.ClickLog.Postgres = &PostgresSinkConfig{}
		}
		config.ClickLog.Postgres.Database = database
	}

	if fallbackURL := os.Getenv(EnvFallbackURL); fallbackURL != "" {
		config.Tracking.FallbackURL = fallbackURL
	}
}

func validateConfig(config *Config) error {

	err := config.validateServerConfig()
	if err != nil {
		return err
	}

	err = config.validateOAuthConfig()
	if err != nil {
		return err
	}

	err = config.validateLogConfig()
	if err != nil {
		return err
	}

	err = config.validateCORSConfig()
	if err != nil {
		return err
	}

	err = config.validateSessionConfig()
	if err != nil {
		return err
	}

	err = config.validateTrackingConfig()
	if err != nil {
		return err
	}

	err = config.validateClickLogConfig()
	if err != nil {
		return err
	}

	if config.RequiresRedis() {
		err = config.validateRedisConfig()
		if err != nil {
			return err
		}
	}

	return nil
}

// RequiresRedis reports whether any configured component is backed by redis.
func (c *Config) RequiresRedis() bool {
	if c.Sessions.Store == "redis" {
		return true
	}

	if c.Tracking.DedupWindow > 0 && c.Tracking.DedupCache == "redis" {
		return true
	}

	return c.ClickLog.HasSink(SinkRedis)
}

// HasSink reports whether the named click sink is enabled.
func (c ClickLogConfig) HasSink(name string) bool {
	for _, sink := range c.Sinks {
		if sink == name {
			return true
		}
	}
	return false
}

func (c *Config) validateServerConfig() error {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerConfig.Port
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.Debug != nil && c.Server.Debug.Enabled {
		if c.Server.Debug.Host == "" {
			c.Server.Debug.Host = DefaultDebugConfig.Host
		}
		if c.Server.Debug.Port <= 0 || c.Server.Debug.Port >= 65535 {
			c.Server.Debug.Port = DefaultDebugConfig.Port
		}
	}

	return nil
}

func (c *Config) validateOAuthConfig() error {
	if c.OAuth.ClientID == "" {
		return fmt.Errorf("oauth client id is required")
	}

	if c.OAuth.ClientSecret == "" {
		return fmt.Errorf("oauth client secret is required")
	}

	if c.OAuth.IssuerURL == "" {
		c.OAuth.IssuerURL = DefaultOAuthConfig.IssuerURL
	}

	if err := validateURL(c.OAuth.IssuerURL, "issuer_url"); err != nil {
		return err
	}

	if err := validateURL(c.OAuth.RedirectURI, "redirect_url"); err != nil {
		return err
	}

	if len(c.OAuth.Scopes) == 0 {
		c.OAuth.Scopes = DefaultOAuthConfig.Scopes
	}

	if c.OAuth.AccessType == "" {
		c.OAuth.AccessType = DefaultOAuthConfig.AccessType
	} else {
		switch c.OAuth.AccessType {
		case "offline", "online":
		default:
			return fmt.Errorf("invalid oauth access type: %s, options are offline or online", c.OAuth.AccessType)
		}
	}

	if c.OAuth.Timeout <= 0 {
		c.OAuth.Timeout = DefaultOAuthConfig.Timeout
	}

	return nil
}

func (c *Config) validateLogConfig() error {
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogConfig.Format
	} else {
		switch c.Log.Format {
		case "text", "json":
		default:
			return fmt.Errorf("invalid log format: %s, options are text or json", c.Log.Format)
		}
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogConfig.Level
	} else {
		switch c.Log.Level {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("invalid log level: %s, options are debug, info, warn, error", c.Log.Level)
		}
	}

	return nil
}

func (c *Config) validateCORSConfig() error {
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = DefaultCORSConfig.AllowedOrigins
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = DefaultCORSConfig.AllowedMethods
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = DefaultCORSConfig.AllowedHeaders
	}
	if c.CORS.MaxAgeSeconds == 0 {
		c.CORS.MaxAgeSeconds = DefaultCORSConfig.MaxAgeSeconds
	}

	return nil
}

func (c *Config) validateSessionConfig() error {
	if c.Sessions.Store == "" {
		c.Sessions.Store = DefaultSessionConfig.Store
	} else {
		switch c.Sessions.Store {
		case "memory", "redis":
		default:
			return fmt.Errorf("invalid session store: %s, options are 'memory' or 'redis'", c.Sessions.Store)
		}
	}

	if c.Sessions.Name == "" {
		c.Sessions.Name = DefaultSessionConfig.Name
	}

	if c.Sessions.Lifetime == 0 {
		c.Sessions.Lifetime = DefaultSessionConfig.Lifetime
	} else if c.Sessions.Lifetime < time.Minute {
		return fmt.Errorf("sessions.lifetime cannot be less than 1 minute")
	}

	if c.Sessions.Secret == "" {
		c.Sessions.Secret = DefaultSessionConfig.Secret
	}

	return nil
}

// UsesInsecureSessionSecret reports whether the built-in fallback secret is in effect.
func (c *Config) UsesInsecureSessionSecret() bool {
	return c.Sessions.Secret == InsecureSessionSecret
}

func (c *Config) validateTrackingConfig() error {
	if c.Tracking.DedupWindow < 0 {
		return fmt.Errorf("tracking.dedup_window cannot be negative")
	}

	if c.Tracking.DedupCache == "" {
		c.Tracking.DedupCache = DefaultTrackingConfig.DedupCache
	} else {
		switch c.Tracking.DedupCache {
		case "memory", "redis":
		default:
			return fmt.Errorf("invalid tracking.dedup_cache: %s, options are 'memory' or 'redis'", c.Tracking.DedupCache)
		}
	}

	for i, host := range c.Tracking.AllowedTargetHosts {
		host = strings.ToLower(strings.TrimSpace(host))
		if host == "" {
			return fmt.Errorf("tracking.allowed_target_hosts[%d] is empty", i)
		}
		c.Tracking.AllowedTargetHosts[i] = host
	}

	if c.Tracking.FallbackURL != "" {
		if err := validateAbsoluteURL(c.Tracking.FallbackURL, "tracking.fallback_url"); err != nil {
			return err
		}
	}

	return nil
}

func (c *Config) validateClickLogConfig() error {
	if len(c.ClickLog.Sinks) == 0 {
		c.ClickLog.Sinks = DefaultClickLogConfig.Sinks
	}

	if c.ClickLog.BufferSize == 0 {
		c.ClickLog.BufferSize = DefaultClickLogConfig.BufferSize
	} else if c.ClickLog.BufferSize < 0 {
		return fmt.Errorf("click_log.buffer_size cannot be negative")
	}

	seen := make(map[string]bool, len(c.ClickLog.Sinks))
	for i, sink := range c.ClickLog.Sinks {
		if seen[sink] {
			return fmt.Errorf("click_log.sinks[%d] duplicates sink %q", i, sink)
		}
		seen[sink] = true

		switch sink {
		case SinkStdout:
		case SinkFile:
			if c.ClickLog.File == nil || c.ClickLog.File.Path == "" {
				return fmt.Errorf("click_log.file.path is required when the file sink is enabled")
			}
		case SinkRedis:
			if c.ClickLog.Redis == nil {
				defaultConfig := DefaultRedisSinkConfig
				c.ClickLog.Redis = &defaultConfig
			}
			if c.ClickLog.Redis.Stream == "" {
				c.ClickLog.Redis.Stream = DefaultRedisSinkConfig.Stream
			}
			if c.ClickLog.Redis.MaxLen <= 0 {
				c.ClickLog.Redis.MaxLen = DefaultRedisSinkConfig.MaxLen
			}
		case SinkPostgres:
			if err := c.validatePostgresSinkConfig(); err != nil {
				return err
			}
		case SinkSQLite:
			if c.ClickLog.SQLite == nil || c.ClickLog.SQLite.Path == "" {
				return fmt.Errorf("click_log.sqlite.path is required when the sqlite sink is enabled")
			}
		default:
			return fmt.Errorf("invalid click_log.sinks[%d]: %s, options are stdout, file, redis, postgres, sqlite", i, sink)
		}
	}

	return nil
}

func (c *Config) validatePostgresSinkConfig() error {
	pg := c.ClickLog.Postgres
	if pg == nil {
		return fmt.Errorf("click_log.postgres is required when the postgres sink is enabled")
	}

	if pg.Host == "" {
		return fmt.Errorf("click_log.postgres.host is required when the postgres sink is enabled")
	}

	if pg.Port == 0 {
		pg.Port = DefaultPostgresSinkConfig.Port
	}

	if pg.Username == "" {
		return fmt.Errorf("click_log.postgres.username is required when the postgres sink is enabled")
	}

	if pg.Database == "" {
		return fmt.Errorf("click_log.postgres.database is required when the postgres sink is enabled")
	}

	return nil
}

func (c *Config) validateRedisConfig() error {
	if c.Redis == nil {
		return fmt.Errorf("redis config is required by the configured session store, dedup cache or click sink")
	}

	if c.Redis.Address == "" && c.Redis.Sentinel == nil {
		return fmt.Errorf("redis address is required")
	}

	if c.Redis.Address != "" {
		if _, _, err := net.SplitHostPort(c.Redis.Address); err != nil {
			return fmt.Errorf("invalid redis address format (expected host:port): %w", err)
		}
	}

	// Apply default indices if not set
	if c.Redis.SessionIndex == 0 && c.Redis.CacheIndex == 0 && c.Redis.ClickIndex == 0 {
		c.Redis.SessionIndex = DefaultRedisConfig.SessionIndex
		c.Redis.CacheIndex = DefaultRedisConfig.CacheIndex
		c.Redis.ClickIndex = DefaultRedisConfig.ClickIndex
	}

	indices := map[string]int{
		"session_index": c.Redis.SessionIndex,
		"cache_index":   c.Redis.CacheIndex,
		"click_index":   c.Redis.ClickIndex,
	}

	const maxRedisDB = 15
	for name, index := range indices {
		if index < 0 {
			return fmt.Errorf("redis %s must be non-negative, got %d", name, index)
		}
		if index > maxRedisDB {
			return fmt.Errorf("redis %s %d exceeds typical maximum of %d", name, index, maxRedisDB)
		}
	}

	if c.Redis.SessionIndex == c.Redis.CacheIndex {
		return fmt.Errorf("redis session_index and cache_index should be different to avoid data collision (both are %d)", c.Redis.SessionIndex)
	}

	if c.Redis.ClickIndex == c.Redis.SessionIndex {
		return fmt.Errorf("redis click_index and session_index should be different to avoid data collision (both are %d)", c.Redis.ClickIndex)
	}

	if c.Redis.ClickIndex == c.Redis.CacheIndex {
		return fmt.Errorf("redis click_index and cache_index should be different to avoid data collision (both are %d)", c.Redis.ClickIndex)
	}

	if c.Redis.Sentinel != nil {
		if c.Redis.Sentinel.MasterName == "" {
			return fmt.Errorf("sentinel master_name is required")
		}
		if len(c.Redis.Sentinel.SentinelAddresses) == 0 {
			return fmt.Errorf("at least one sentinel address is required")
		}
	}
	return nil
}
