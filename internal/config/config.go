// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Application environments accepted by app.nodeEnv.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvStaging     = "staging"
	EnvTest        = "test"
)

// Top-level section keys of a configuration tree.
const (
	SectionApp      = "app"
	SectionDatabase = "database"
	SectionAuth     = "auth"
	SectionRedis    = "redis"
	SectionAdmin    = "admin"
	SectionEmail    = "email"
	SectionStorage  = "storage"
	SectionQueue    = "queue"
	SectionLogging  = "logging"
	SectionFeatures = "features"
)

// Config is a validated configuration. Every field has been checked against
// [Schema] and absent optional fields carry their schema defaults. Values of
// this type are produced by [Validate] and must be treated as read-only.
type Config struct {
	// App holds the HTTP application identity, listening port and limits.
	App App `json:"app"`

	// Database holds the PostgreSQL connection and schema management settings.
	Database Database `json:"database"`

	// Auth holds token secrets, hashing cost, lockout policy and OAuth clients.
	Auth Auth `json:"auth"`

	// Redis holds cache connection settings.
	Redis Redis `json:"redis"`

	// Admin holds the bootstrap administrator account.
	Admin Admin `json:"admin"`

	// Email holds outgoing mail settings.
	Email Email `json:"email"`

	// Storage holds S3-compatible object storage settings.
	Storage Storage `json:"storage"`

	// Queue holds message broker settings.
	Queue Queue `json:"queue"`

	// Logging controls the logger built by the logger package.
	Logging Logging `json:"logging"`

	// Features holds feature toggles.
	Features Features `json:"features"`
}

// App holds application-level settings.
type App struct {
	Name              string `json:"name"`
	URL               string `json:"url"`
	Port              int    `json:"port"`
	NodeEnv           string `json:"nodeEnv"`
	CORSOrigin        string `json:"corsOrigin"`
	FrontendURL       string `json:"frontendUrl"`
	RateLimitMax      int    `json:"rateLimitMax"`
	RateLimitWindowMs int    `json:"rateLimitWindowMs"`
}

// Database holds connection settings for the relational database backend.
type Database struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`

	// Synchronize lets the ORM alter the schema on startup. The environment
	// loader derives it as the negation of RunMigrations.
	Synchronize   bool `json:"synchronize"`
	Logging       bool `json:"logging"`
	SSL           bool `json:"ssl"`
	RunMigrations bool `json:"runMigrations"`
	DropSchema    bool `json:"dropSchema"`

	// EnableRLS turns on PostgreSQL row-level security policies.
	EnableRLS bool `json:"enableRls"`
}

// Auth holds authentication settings.
type Auth struct {
	JWTSecret           string         `json:"jwtSecret"`
	JWTRefreshSecret    string         `json:"jwtRefreshSecret"`
	JWTExpiresIn        string         `json:"jwtExpiresIn"`
	JWTRefreshExpiresIn string         `json:"jwtRefreshExpiresIn"`
	BcryptRounds        int            `json:"bcryptRounds"`
	MaxLoginAttempts    int            `json:"maxLoginAttempts"`
	LockoutDurationMs   int            `json:"lockoutDurationMs"`
	Google              *OAuthProvider `json:"google,omitempty"`
	GitHub              *OAuthProvider `json:"github,omitempty"`
}

// OAuthProvider holds the client credentials of one OAuth identity provider.
type OAuthProvider struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	CallbackURL  string `json:"callbackUrl"`
}

// Redis holds cache connection settings.
type Redis struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Password  string `json:"password,omitempty"`
	DB        int    `json:"db"`
	TTL       int    `json:"ttl"`
	KeyPrefix string `json:"keyPrefix"`
}

// Admin holds the bootstrap administrator account.
type Admin struct {
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	AllowedIPs []string `json:"allowedIps,omitempty"`
}

// Email holds outgoing mail settings.
type Email struct {
	Enabled bool   `json:"enabled"`
	From    string `json:"from"`
	APIKey  string `json:"apiKey,omitempty"`
	SMTP    *SMTP  `json:"smtp,omitempty"`
}

// SMTP holds the optional SMTP relay used instead of the API provider.
type SMTP struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Secure   bool   `json:"secure"`
	User     string `json:"user"`
	Password string `json:"password"`
}

// Storage holds S3-compatible object storage settings.
type Storage struct {
	Endpoint  string `json:"endpoint"`
	Port      int    `json:"port"`
	UseSSL    bool   `json:"useSsl"`
	Region    string `json:"region"`
	AccessKey string `json:"accessKey"`
	SecretKey string `json:"secretKey"`
	Bucket    string `json:"bucket"`
}

// Queue holds message broker settings.
type Queue struct {
	URI                string          `json:"uri"`
	Exchange           string          `json:"exchange"`
	DeadLetterExchange string          `json:"deadLetterExchange"`
	ConnectionInit     *ConnectionInit `json:"connectionInit,omitempty"`
}

// ConnectionInit controls how the broker connection is established at startup.
type ConnectionInit struct {
	Wait    bool `json:"wait"`
	Timeout int  `json:"timeout"`
	Reject  bool `json:"reject"`
}

// Logging controls the application logger.
type Logging struct {
	Level      string   `json:"level"`
	Format     string   `json:"format"`
	Transports []string `json:"transports"`
	File       *LogFile `json:"file,omitempty"`
}

// LogFile holds the rotation settings of the file transport.
type LogFile struct {
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"maxSizeMb"`
	MaxBackups int    `json:"maxBackups"`
	MaxAgeDays int    `json:"maxAgeDays"`
	Compress   bool   `json:"compress"`
}

// Features holds feature toggles.
type Features struct {
	EnableSwagger           bool `json:"enableSwagger"`
	EnableMetrics           bool `json:"enableMetrics"`
	EnableRateLimit         bool `json:"enableRateLimit"`
	EnableEmailVerification bool `json:"enableEmailVerification"`
}

// IsProduction reports whether app.nodeEnv is "production".
func (c *Config) IsProduction() bool {
	return c.App.NodeEnv == EnvProduction
}

// IsDevelopment reports whether app.nodeEnv is "development".
func (c *Config) IsDevelopment() bool {
	return c.App.NodeEnv == EnvDevelopment
}

// Values renders c back into a configuration tree keyed like [Schema].
func (c *Config) Values() (Values, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("error encoding config: %w", err)
	}

	var v Values
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return v, nil
}

// Masked renders c with every secret replaced by [MaskedValue].
func (c *Config) Masked() (Values, error) {
	v, err := c.Values()
	if err != nil {
		return nil, err
	}
	return Mask(v), nil
}

// DSN returns the PostgreSQL connection URL for d.
func (d Database) DSN() string {
	sslMode := "disable"
	if d.SSL {
		sslMode = "require"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.Username, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Database,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}
	return u.String()
}

// PoolConfig parses [Database.DSN] into a pgx pool configuration. No
// connection is opened.
func (d Database) PoolConfig() (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(d.DSN())
	if err != nil {
		return nil, fmt.Errorf("error parsing database config: %w", err)
	}
	return poolCfg, nil
}

// Addr returns the host:port address of the Redis server.
func (r Redis) Addr() string {
	return net.JoinHostPort(r.Host, strconv.Itoa(r.Port))
}

// EndpointURL returns the base URL of the object storage endpoint.
func (s Storage) EndpointURL() string {
	scheme := "http"
	if s.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + net.JoinHostPort(s.Endpoint, strconv.Itoa(s.Port))
}
