// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// envSource holds the raw text of every supported environment variable.
// Values are parsed by [ParseBool], [ParseInt] and [ParseStringList] rather
// than by the env library so that unparsable input falls back to defaults
// instead of failing startup. An empty value counts as unset.
type envSource struct {
	App struct {
		Name              string `env:"APP_NAME"`
		URL               string `env:"APP_URL"`
		Port              string `env:"PORT"`
		NodeEnv           string `env:"NODE_ENV"`
		CORSOrigin        string `env:"CORS_ORIGIN"`
		FrontendURL       string `env:"FRONTEND_URL"`
		RateLimitMax      string `env:"RATE_LIMIT_MAX"`
		RateLimitWindowMs string `env:"RATE_LIMIT_WINDOW_MS"`
	}

	Database struct {
		Host          string `env:"DATABASE_HOST"`
		Port          string `env:"DATABASE_PORT"`
		Username      string `env:"DATABASE_USERNAME"`
		Password      string `env:"DATABASE_PASSWORD"`
		Name          string `env:"DATABASE_NAME"`
		SSL           string `env:"DATABASE_SSL"`
		Logging       string `env:"DATABASE_LOGGING"`
		UseMigrations string `env:"DATABASE_USE_MIGRATIONS"`
		DropSchema    string `env:"DATABASE_DROP_SCHEMA"`
		EnableRLS     string `env:"DATABASE_ENABLE_RLS"`
	}

	Auth struct {
		JWTSecret           string `env:"JWT_SECRET"`
		JWTRefreshSecret    string `env:"JWT_REFRESH_SECRET"`
		JWTExpiresIn        string `env:"JWT_EXPIRES_IN"`
		JWTRefreshExpiresIn string `env:"JWT_REFRESH_EXPIRES_IN"`
		BcryptRounds        string `env:"BCRYPT_ROUNDS"`
		MaxLoginAttempts    string `env:"MAX_LOGIN_ATTEMPTS"`
		LockoutDurationMs   string `env:"LOCKOUT_DURATION_MS"`
		Google              oauthEnv `envPrefix:"GOOGLE_"`
		GitHub              oauthEnv `envPrefix:"GITHUB_"`
	}

	Redis struct {
		Host      string `env:"REDIS_HOST"`
		Port      string `env:"REDIS_PORT"`
		Password  string `env:"REDIS_PASSWORD"`
		DB        string `env:"REDIS_DB"`
		TTL       string `env:"REDIS_TTL"`
		KeyPrefix string `env:"REDIS_KEY_PREFIX"`
	}

	Admin struct {
		Email      string `env:"ADMIN_EMAIL"`
		Password   string `env:"ADMIN_PASSWORD"`
		AllowedIPs string `env:"ADMIN_ALLOWED_IPS"`
	}

	Email struct {
		Enabled string `env:"EMAIL_ENABLED"`
		From    string `env:"EMAIL_FROM"`
		APIKey  string `env:"EMAIL_API_KEY"`
		SMTP    struct {
			Host     string `env:"HOST"`
			Port     string `env:"PORT"`
			Secure   string `env:"SECURE"`
			User     string `env:"USER"`
			Password string `env:"PASSWORD"`
		} `envPrefix:"SMTP_"`
	}

	Storage struct {
		Endpoint  string `env:"ENDPOINT"`
		Port      string `env:"PORT"`
		UseSSL    string `env:"USE_SSL"`
		Region    string `env:"REGION"`
		AccessKey string `env:"ACCESS_KEY"`
		SecretKey string `env:"SECRET_KEY"`
		Bucket    string `env:"BUCKET"`
	} `envPrefix:"STORAGE_"`

	Queue struct {
		URI         string `env:"URI"`
		Exchange    string `env:"EXCHANGE"`
		DLX         string `env:"DLX"`
		InitWait    string `env:"INIT_WAIT"`
		InitTimeout string `env:"INIT_TIMEOUT"`
		InitReject  string `env:"INIT_REJECT"`
	} `envPrefix:"RABBITMQ_"`

	Logging struct {
		Level          string `env:"LEVEL"`
		Format         string `env:"FORMAT"`
		Transports     string `env:"TRANSPORTS"`
		FilePath       string `env:"FILE_PATH"`
		FileMaxSizeMB  string `env:"FILE_MAX_SIZE_MB"`
		FileMaxBackups string `env:"FILE_MAX_BACKUPS"`
		FileMaxAgeDays string `env:"FILE_MAX_AGE_DAYS"`
		FileCompress   string `env:"FILE_COMPRESS"`
	} `envPrefix:"LOG_"`

	Features struct {
		Swagger           string `env:"SWAGGER"`
		Metrics           string `env:"METRICS"`
		RateLimit         string `env:"RATE_LIMIT"`
		EmailVerification string `env:"EMAIL_VERIFICATION"`
	} `envPrefix:"FEATURE_"`
}

type oauthEnv struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	CallbackURL  string `env:"CALLBACK_URL"`
}

// LoadFromEnv builds a partial configuration from environment variables,
// each name optionally preceded by prefix (e.g. "MYAPP_" reads
// MYAPP_DATABASE_HOST).
//
// Fields with a schema default always receive a value; required fields
// without a variable are left out for [Validate] to report. The
// database.synchronize flag is derived as the negation of
// DATABASE_USE_MIGRATIONS. Optional sub-sections (OAuth providers, SMTP,
// log file, broker connection init) are only produced when every variable
// they require is set.
func LoadFromEnv(prefix string) (Values, error) {
	return loadEnv(prefix, true)
}

// LoadEnvOverrides is like [LoadFromEnv] but holds only the variables that
// are set and parse. Merged over presets and files it lets the environment
// win without resetting their values to schema defaults.
func LoadEnvOverrides(prefix string) (Values, error) {
	return loadEnv(prefix, false)
}

func loadEnv(prefix string, defaults bool) (Values, error) {
	var src envSource
	if err := env.ParseWithOptions(&src, env.Options{Prefix: prefix}); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return envLayer{envSource: &src, defaults: defaults}.values(), nil
}

// LoadEnvFile loads KEY=VALUE lines from path into the process environment.
// Variables that are already set are kept unless override is true.
func LoadEnvFile(path string, override bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrEnvFileNotFound, path)
		}
		return fmt.Errorf("error reading env file %s: %w", path, err)
	}

	load := godotenv.Load
	if override {
		load = godotenv.Overload
	}
	if err := load(path); err != nil {
		return fmt.Errorf("error loading env file %s: %w", path, err)
	}
	return nil
}

// envLayer turns parsed variables into a partial configuration. Unset or
// unparsable variables take the schema default when defaults is true and are
// left out otherwise.
type envLayer struct {
	*envSource
	defaults bool
}

func (l envLayer) values() Values {
	out := Values{}
	sections := map[string]Values{
		SectionApp:      l.app(),
		SectionDatabase: l.database(),
		SectionAuth:     l.auth(),
		SectionRedis:    l.redis(),
		SectionAdmin:    l.admin(),
		SectionEmail:    l.email(),
		SectionStorage:  l.storage(),
		SectionQueue:    l.queue(),
		SectionLogging:  l.logging(),
		SectionFeatures: l.features(),
	}
	for name, section := range sections {
		if len(section) > 0 || l.defaults {
			out[name] = section
		}
	}
	return out
}

func (l envLayer) fields(path ...string) *envFields {
	return &envFields{out: Values{}, path: path, defaults: l.defaults}
}

func (l envLayer) app() Values {
	f := l.fields(SectionApp)
	f.str("name", l.App.Name)
	f.str("url", l.App.URL)
	f.integer("port", l.App.Port)
	f.str("nodeEnv", l.App.NodeEnv)
	f.str("corsOrigin", l.App.CORSOrigin)
	f.str("frontendUrl", l.App.FrontendURL)
	f.integer("rateLimitMax", l.App.RateLimitMax)
	f.integer("rateLimitWindowMs", l.App.RateLimitWindowMs)
	return f.out
}

func (l envLayer) database() Values {
	f := l.fields(SectionDatabase)
	f.str("host", l.Database.Host)
	f.integer("port", l.Database.Port)
	f.str("username", l.Database.Username)
	f.str("password", l.Database.Password)
	f.str("database", l.Database.Name)
	f.boolean("ssl", l.Database.SSL)
	f.boolean("logging", l.Database.Logging)
	f.boolean("dropSchema", l.Database.DropSchema)
	f.boolean("enableRls", l.Database.EnableRLS)

	f.boolean("runMigrations", l.Database.UseMigrations)
	if useMigrations, ok := f.out["runMigrations"].(bool); ok {
		// migrations own the schema whenever they are enabled
		f.out["synchronize"] = !useMigrations
	}
	return f.out
}

func (l envLayer) auth() Values {
	f := l.fields(SectionAuth)
	f.str("jwtSecret", l.Auth.JWTSecret)
	f.str("jwtRefreshSecret", l.Auth.JWTRefreshSecret)
	f.str("jwtExpiresIn", l.Auth.JWTExpiresIn)
	f.str("jwtRefreshExpiresIn", l.Auth.JWTRefreshExpiresIn)
	f.integer("bcryptRounds", l.Auth.BcryptRounds)
	f.integer("maxLoginAttempts", l.Auth.MaxLoginAttempts)
	f.integer("lockoutDurationMs", l.Auth.LockoutDurationMs)

	if google, ok := l.Auth.Google.values(); ok {
		f.out["google"] = google
	}
	if github, ok := l.Auth.GitHub.values(); ok {
		f.out["github"] = github
	}
	return f.out
}

func (o oauthEnv) values() (Values, bool) {
	if !allPresent(o.ClientID, o.ClientSecret, o.CallbackURL) {
		return nil, false
	}
	return Values{
		"clientId":     o.ClientID,
		"clientSecret": o.ClientSecret,
		"callbackUrl":  o.CallbackURL,
	}, true
}

func (l envLayer) redis() Values {
	f := l.fields(SectionRedis)
	f.str("host", l.Redis.Host)
	f.integer("port", l.Redis.Port)
	f.str("password", l.Redis.Password)
	f.integer("db", l.Redis.DB)
	f.integer("ttl", l.Redis.TTL)
	f.str("keyPrefix", l.Redis.KeyPrefix)
	return f.out
}

func (l envLayer) admin() Values {
	f := l.fields(SectionAdmin)
	f.str("email", l.Admin.Email)
	f.str("password", l.Admin.Password)
	f.list("allowedIps", l.Admin.AllowedIPs)
	return f.out
}

func (l envLayer) email() Values {
	f := l.fields(SectionEmail)
	f.boolean("enabled", l.Email.Enabled)
	f.str("from", l.Email.From)
	f.str("apiKey", l.Email.APIKey)

	smtp := l.Email.SMTP
	if allPresent(smtp.Host, smtp.User, smtp.Password) {
		sf := l.fields(SectionEmail, "smtp")
		sf.str("host", smtp.Host)
		sf.integer("port", smtp.Port)
		sf.boolean("secure", smtp.Secure)
		sf.str("user", smtp.User)
		sf.str("password", smtp.Password)
		f.out["smtp"] = sf.out
	}
	return f.out
}

func (l envLayer) storage() Values {
	f := l.fields(SectionStorage)
	f.str("endpoint", l.Storage.Endpoint)
	f.integer("port", l.Storage.Port)
	f.boolean("useSsl", l.Storage.UseSSL)
	f.str("region", l.Storage.Region)
	f.str("accessKey", l.Storage.AccessKey)
	f.str("secretKey", l.Storage.SecretKey)
	f.str("bucket", l.Storage.Bucket)
	return f.out
}

func (l envLayer) queue() Values {
	f := l.fields(SectionQueue)
	f.str("uri", l.Queue.URI)
	f.str("exchange", l.Queue.Exchange)
	f.str("deadLetterExchange", l.Queue.DLX)

	if l.Queue.InitTimeout != "" {
		cf := l.fields(SectionQueue, "connectionInit")
		cf.boolean("wait", l.Queue.InitWait)
		cf.integer("timeout", l.Queue.InitTimeout)
		cf.boolean("reject", l.Queue.InitReject)
		f.out["connectionInit"] = cf.out
	}
	return f.out
}

func (l envLayer) logging() Values {
	f := l.fields(SectionLogging)
	f.str("level", l.Logging.Level)
	f.str("format", l.Logging.Format)
	f.list("transports", l.Logging.Transports)

	if l.Logging.FilePath != "" {
		ff := l.fields(SectionLogging, "file")
		ff.str("path", l.Logging.FilePath)
		ff.integer("maxSizeMb", l.Logging.FileMaxSizeMB)
		ff.integer("maxBackups", l.Logging.FileMaxBackups)
		ff.integer("maxAgeDays", l.Logging.FileMaxAgeDays)
		ff.boolean("compress", l.Logging.FileCompress)
		f.out["file"] = ff.out
	}
	return f.out
}

func (l envLayer) features() Values {
	f := l.fields(SectionFeatures)
	f.boolean("enableSwagger", l.Features.Swagger)
	f.boolean("enableMetrics", l.Features.Metrics)
	f.boolean("enableRateLimit", l.Features.RateLimit)
	f.boolean("enableEmailVerification", l.Features.EmailVerification)
	return f.out
}

// envFields collects the fields of one section.
type envFields struct {
	out      Values
	path     []string
	defaults bool
}

func (f *envFields) str(key, raw string) {
	if raw != "" {
		f.out[key] = raw
		return
	}
	f.fallback(key)
}

func (f *envFields) integer(key, raw string) {
	if n, ok := parseInt(raw); ok {
		f.out[key] = n
		return
	}
	f.fallback(key)
}

func (f *envFields) boolean(key, raw string) {
	if b, ok := parseBool(raw); ok {
		f.out[key] = b
		return
	}
	f.fallback(key)
}

func (f *envFields) list(key, raw string) {
	if list := ParseStringList(raw, nil); len(list) > 0 {
		f.out[key] = list
		return
	}
	f.fallback(key)
}

// fallback sets the schema default of key, if any, when defaults are on.
func (f *envFields) fallback(key string) {
	if !f.defaults {
		return
	}
	field, ok := fieldAt(append(append([]string{}, f.path...), key)...)
	if ok && field.Default != nil {
		f.out[key] = cloneDefault(field.Default)
	}
}

func allPresent(raw ...string) bool {
	for _, r := range raw {
		if r == "" {
			return false
		}
	}
	return true
}
