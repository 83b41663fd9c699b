package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Kind is the value type a schema field accepts.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindStringList
	KindSection
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindBool:
		return "boolean"
	case KindStringList:
		return "list of strings"
	case KindSection:
		return "section"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Field declares one configuration key.
//
// Rules and ItemRules are go-playground/validator tags; ItemRules applies
// to every element of a [KindStringList] field. A required [KindSection] is
// validated even when absent so that its defaults and required children are
// reported; an optional one is skipped when absent.
type Field struct {
	Name      string
	Kind      Kind
	Required  bool
	Default   any
	Rules     string
	ItemRules string
	Fields    []Field
}

func str(name string, def string, rules string) Field {
	f := Field{Name: name, Kind: KindString, Rules: rules}
	if def != "" {
		f.Default = def
	}
	return f
}

func requiredStr(name, rules string) Field {
	return Field{Name: name, Kind: KindString, Required: true, Rules: rules}
}

func optionalStr(name, rules string) Field {
	return Field{Name: name, Kind: KindString, Rules: rules}
}

func integer(name string, def int, rules string) Field {
	return Field{Name: name, Kind: KindInt, Default: def, Rules: rules}
}

func boolean(name string, def bool) Field {
	return Field{Name: name, Kind: KindBool, Default: def}
}

func section(name string, required bool, fields ...Field) Field {
	return Field{Name: name, Kind: KindSection, Required: required, Fields: fields}
}

const (
	portRules   = "min=1,max=65535"
	secretRules = "min=16"
)

func oauthProvider(name string) Field {
	return section(name, false,
		requiredStr("clientId", "min=1"),
		requiredStr("clientSecret", "min=1"),
		requiredStr("callbackUrl", "url"),
	)
}

// Schema describes every section of a [Config]. It is built once and shared
// by all validation calls.
var Schema = []Field{
	section(SectionApp, true,
		str("name", "app", "min=1"),
		str("url", "http://localhost:3000", "url"),
		integer("port", 3000, portRules),
		str("nodeEnv", EnvDevelopment, "oneof=development production staging test"),
		str("corsOrigin", "*", "min=1"),
		str("frontendUrl", "http://localhost:3000", "url"),
		integer("rateLimitMax", 100, "min=1"),
		integer("rateLimitWindowMs", 60000, "min=1000"),
	),
	section(SectionDatabase, true,
		requiredStr("host", "min=1"),
		integer("port", 5432, portRules),
		requiredStr("username", "min=1"),
		requiredStr("password", "min=1"),
		requiredStr("database", "min=1"),
		boolean("synchronize", false),
		boolean("logging", false),
		boolean("ssl", false),
		boolean("runMigrations", true),
		boolean("dropSchema", false),
		boolean("enableRls", false),
	),
	section(SectionAuth, true,
		requiredStr("jwtSecret", secretRules),
		requiredStr("jwtRefreshSecret", secretRules),
		str("jwtExpiresIn", "15m", "timespan"),
		str("jwtRefreshExpiresIn", "7d", "timespan"),
		integer("bcryptRounds", 12, fmt.Sprintf("min=%d,max=%d", bcrypt.MinCost, bcrypt.MaxCost)),
		integer("maxLoginAttempts", 5, "min=1"),
		integer("lockoutDurationMs", 900000, "min=0"),
		oauthProvider("google"),
		oauthProvider("github"),
	),
	section(SectionRedis, true,
		str("host", "localhost", "min=1"),
		integer("port", 6379, portRules),
		optionalStr("password", ""),
		integer("db", 0, "min=0,max=15"),
		integer("ttl", 3600, "min=0"),
		str("keyPrefix", "app:", ""),
	),
	section(SectionAdmin, true,
		requiredStr("email", "email"),
		requiredStr("password", "min=8"),
		Field{Name: "allowedIps", Kind: KindStringList, ItemRules: "ip"},
	),
	section(SectionEmail, true,
		boolean("enabled", false),
		str("from", "noreply@example.com", "email"),
		optionalStr("apiKey", ""),
		section("smtp", false,
			requiredStr("host", "min=1"),
			integer("port", 587, portRules),
			boolean("secure", false),
			requiredStr("user", "min=1"),
			requiredStr("password", "min=1"),
		),
	),
	section(SectionStorage, true,
		requiredStr("endpoint", "min=1"),
		integer("port", 9000, portRules),
		boolean("useSsl", false),
		str("region", "us-east-1", "min=1"),
		requiredStr("accessKey", "min=1"),
		requiredStr("secretKey", "min=1"),
		requiredStr("bucket", "min=3,max=63"),
	),
	section(SectionQueue, true,
		requiredStr("uri", "url"),
		str("exchange", "app.events", "min=1"),
		str("deadLetterExchange", "app.dlx", "min=1"),
		section("connectionInit", false,
			boolean("wait", true),
			integer("timeout", 30000, "min=0"),
			boolean("reject", true),
		),
	),
	section(SectionLogging, true,
		str("level", "info", "oneof=error warn info debug verbose"),
		str("format", "json", "oneof=json pretty"),
		Field{
			Name:      "transports",
			Kind:      KindStringList,
			Default:   []string{"console"},
			Rules:     "min=1",
			ItemRules: "oneof=console file",
		},
		section("file", false,
			requiredStr("path", "min=1"),
			integer("maxSizeMb", 10, "min=1"),
			integer("maxBackups", 5, "min=0"),
			integer("maxAgeDays", 14, "min=0"),
			boolean("compress", true),
		),
	),
	section(SectionFeatures, true,
		boolean("enableSwagger", false),
		boolean("enableMetrics", true),
		boolean("enableRateLimit", true),
		boolean("enableEmailVerification", false),
	),
}

// fieldAt returns the schema entry found by walking path from the top level.
func fieldAt(path ...string) (Field, bool) {
	fields := Schema
	var found Field
	for _, name := range path {
		ok := false
		for _, f := range fields {
			if f.Name == name {
				found, ok = f, true
				break
			}
		}
		if !ok {
			return Field{}, false
		}
		fields = found.Fields
	}
	return found, len(path) > 0
}
