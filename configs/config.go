package configs

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAuthURL     = "https://accounts.google.com/o/oauth2/auth"
	defaultTokenURL    = "https://oauth2.googleapis.com/token"
	defaultUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
)

type Config struct {
	App     AppConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Session SessionConfig
	OAuth   OAuthConfig
}

type AppConfig struct {
	Name          string
	Port          int
	CORSOrigins   string
	LogLevel      string
	LogPretty     bool
	NotesPerUser  bool
	ConsulAddress string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Addr     string
	Password string
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
}

// Enabled reports whether sign-in can be offered at all.
func (o OAuthConfig) Enabled() bool {
	return o.ClientID != "" && o.ClientSecret != ""
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads the process environment, after merging a .env file when one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	var missing, invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		return def
	}

	port, err := strconv.Atoi(opt("PORT", "4000"))
	if err != nil || port <= 0 || port > 65535 {
		invalid = append(invalid, "PORT")
	}
	ttl, err := time.ParseDuration(opt("SESSION_TTL", "24h"))
	if err != nil || ttl <= 0 {
		invalid = append(invalid, "SESSION_TTL")
	}
	perUser, err := strconv.ParseBool(opt("NOTES_PER_USER", "false"))
	if err != nil {
		invalid = append(invalid, "NOTES_PER_USER")
	}
	pretty, err := strconv.ParseBool(opt("LOG_PRETTY", "false"))
	if err != nil {
		invalid = append(invalid, "LOG_PRETTY")
	}

	cfg := Config{
		App: AppConfig{
			Name:          opt("APP_NAME", "rush-tracker"),
			Port:          port,
			CORSOrigins:   opt("CORS_ORIGINS", "http://localhost:3000"),
			LogLevel:      opt("LOG_LEVEL", "info"),
			LogPretty:     pretty,
			NotesPerUser:  perUser,
			ConsulAddress: opt("CONSUL_ADDRESS", ""),
		},
		Mongo: MongoConfig{
			URI:      req("MONGO_URI"),
			Database: opt("MONGO_DATABASE", "rush"),
		},
		Redis: RedisConfig{
			Addr:     opt("REDIS_ADDR", "localhost:6379"),
			Password: opt("REDIS_PASSWORD", ""),
		},
		Session: SessionConfig{
			Secret: req("SESSION_SECRET"),
			TTL:    ttl,
		},
		OAuth: OAuthConfig{
			ClientID:     opt("OAUTH_CLIENT_ID", ""),
			ClientSecret: opt("OAUTH_CLIENT_SECRET", ""),
			RedirectURL:  opt("OAUTH_REDIRECT_URL", fmt.Sprintf("http://localhost:%d/auth/callback", port)),
			AuthURL:      opt("OAUTH_AUTH_URL", defaultAuthURL),
			TokenURL:     opt("OAUTH_TOKEN_URL", defaultTokenURL),
			UserInfoURL:  opt("OAUTH_USERINFO_URL", defaultUserInfoURL),
		},
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}
	return cfg, nil
}
