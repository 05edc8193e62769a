package config

import (
	"time"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	OAuth    OAuthConfig    `yaml:"oauth"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Sessions SessionConfig  `yaml:"sessions"`
	Redis    *RedisConfig   `yaml:"redis"`
	Tracking TrackingConfig `yaml:"tracking"`
	ClickLog ClickLogConfig `yaml:"click_log"`
}

type ServerConfig struct {
	Port  int                `yaml:"port"`
	Debug *ServerDebugConfig `yaml:"debug"`
}

var DefaultServerConfig = ServerConfig{
	Port: 3000,
}

type ServerDebugConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

var DefaultDebugConfig = ServerDebugConfig{
	Enabled: false,
	Host:    "localhost",
	Port:    5123,
}

type OAuthConfig struct {
	ClientID     string        `yaml:"client_id"`
	ClientSecret string        `yaml:"client_secret"`
	IssuerURL    string        `yaml:"issuer_url"`
	RedirectURI  string        `yaml:"redirect_url"`
	Scopes       []string      `yaml:"scopes"`
	AccessType   string        `yaml:"access_type"`
	Timeout      time.Duration `yaml:"timeout"`
}

var DefaultOAuthConfig = OAuthConfig{
	IssuerURL:  "https://accounts.google.com",
	Scopes:     []string{"openid", "email", "profile"},
	AccessType: "offline",
	Timeout:    10 * time.Second,
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

var DefaultLogConfig = LogConfig{
	Level:  "info",
	Format: "text",
}

type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	ExposedHeaders   []string `yaml:"exposed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAgeSeconds    int      `yaml:"max_age_seconds"`
}

var DefaultCORSConfig = CORSConfig{
	AllowedOrigins: []string{"http://localhost:3000"},
	AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	AllowedHeaders: []string{"*"},
	MaxAgeSeconds:  300,
}

type SessionConfig struct {
	Store    string        `yaml:"store"`
	Lifetime time.Duration `yaml:"lifetime"`
	Name     string        `yaml:"name"`
	Secure   bool          `yaml:"secure"`
	Secret   string        `yaml:"secret"`
}

// InsecureSessionSecret is used when no secret is configured. Startup logs a warning when it is in effect.
const InsecureSessionSecret = "supersecret"

var DefaultSessionConfig = SessionConfig{
	Store:    "memory",
	Lifetime: 24 * time.Hour,
	Name:     "trace_link_session",
	Secure:   true,
	Secret:   InsecureSessionSecret,
}

type RedisConfig struct {
	Address      string               `yaml:"address"`
	Username     string               `yaml:"username"`
	Password     string               `yaml:"password"`
	Sentinel     *RedisSentinelConfig `yaml:"sentinel"`
	SessionIndex int                  `yaml:"session_index"`
	CacheIndex   int                  `yaml:"cache_index"`
	ClickIndex   int                  `yaml:"click_index"`
}

var DefaultRedisConfig = RedisConfig{
	SessionIndex: 0,
	CacheIndex:   1,
	ClickIndex:   2,
}

type RedisSentinelConfig struct {
	MasterName        string   `yaml:"master_name"`
	SentinelAddresses []string `yaml:"addresses"`
	SentinelPassword  string   `yaml:"password"`
	SentinelUsername  string   `yaml:"username"`
}

// TrackingConfig controls how the gateway treats pending links and click events.
// RefreshPendingOnReentry replaces the pending link when an already logged in visitor
// follows a new link, SingleUsePending clears the pending link once it has been
// forwarded, and a non-zero DedupWindow suppresses repeated click events for the same
// visitor and link.
type TrackingConfig struct {
	RefreshPendingOnReentry bool          `yaml:"refresh_pending_on_reentry"`
	SingleUsePending        bool          `yaml:"single_use_pending"`
	DedupWindow             time.Duration `yaml:"dedup_window"`
	DedupCache              string        `yaml:"dedup_cache"`
	AllowedTargetHosts      []string      `yaml:"allowed_target_hosts"`
	FallbackURL             string        `yaml:"fallback_url"`
}

var DefaultTrackingConfig = TrackingConfig{
	DedupCache: "memory",
}

type ClickLogConfig struct {
	Sinks      []string            `yaml:"sinks"`
	BufferSize int                 `yaml:"buffer_size"`
	File       *FileSinkConfig     `yaml:"file"`
	Redis      *RedisSinkConfig    `yaml:"redis"`
	Postgres   *PostgresSinkConfig `yaml:"postgres"`
	SQLite     *SQLiteSinkConfig   `yaml:"sqlite"`
}

const (
	SinkStdout   = "stdout"
	SinkFile     = "file"
	SinkRedis    = "redis"
	SinkPostgres = "postgres"
	SinkSQLite   = "sqlite"
)

var DefaultClickLogConfig = ClickLogConfig{
	Sinks:      []string{SinkStdout},
	BufferSize: 256,
}

type FileSinkConfig struct {
	Path string `yaml:"path"`
}

type RedisSinkConfig struct {
	Stream string `yaml:"stream"`
	MaxLen int64  `yaml:"max_len"`
}

var DefaultRedisSinkConfig = RedisSinkConfig{
	Stream: "trace_link:clicks",
	MaxLen: 100000,
}

type PostgresSinkConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

var DefaultPostgresSinkConfig = PostgresSinkConfig{
	Port: 5432,
}

type SQLiteSinkConfig struct {
	Path string `yaml:"path"`
}
