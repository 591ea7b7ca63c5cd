package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendFirestore = "firestore"
	BackendSQLite    = "sqlite"
	BackendMemory    = "memory"

	AuthFirebase = "firebase"
	AuthJWT      = "jwt"
)

type Config struct {
	Port            string
	Backend         string
	SQLitePath      string
	CredentialsFile string
	ProjectID       string
	AuthMode        string
	JWTSecret       string
	GinMode         string

	RecaptchaSiteKey     string
	RecaptchaCredentials string

	ChatDelay  time.Duration
	ChatJitter time.Duration
}

// Load reads .env (if present), then EXALE_* environment variables and an
// optional .exale.yaml.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("backend", BackendFirestore)
	v.SetDefault("sqlite_path", "exale.db")
	v.SetDefault("auth_mode", AuthFirebase)
	v.SetDefault("gin_mode", "release")
	v.SetDefault("chat_delay", 600*time.Millisecond)
	v.SetDefault("chat_jitter", 800*time.Millisecond)

	v.SetConfigName(".exale")
	v.SetEnvPrefix("EXALE")
	v.AutomaticEnv()
	if override := os.Getenv("EXALE_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:                 v.GetString("port"),
		Backend:              strings.ToLower(v.GetString("backend")),
		SQLitePath:           v.GetString("sqlite_path"),
		CredentialsFile:      v.GetString("credentials_file"),
		ProjectID:            v.GetString("project_id"),
		AuthMode:             strings.ToLower(v.GetString("auth_mode")),
		JWTSecret:            v.GetString("jwt_secret"),
		GinMode:              v.GetString("gin_mode"),
		RecaptchaSiteKey:     v.GetString("recaptcha_site_key"),
		RecaptchaCredentials: v.GetString("recaptcha_credentials"),
		ChatDelay:            v.GetDuration("chat_delay"),
		ChatJitter:           v.GetDuration("chat_jitter"),
	}
	// Same variable names as the Firebase tooling, when the prefixed ones are unset.
	if cfg.CredentialsFile == "" {
		cfg.CredentialsFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET_KEY")
	}
	if cfg.RecaptchaCredentials == "" {
		cfg.RecaptchaCredentials = cfg.CredentialsFile
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFirestore, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (expected firestore|sqlite|memory)", c.Backend)
	}
	switch c.AuthMode {
	case AuthFirebase:
		if c.Backend != BackendFirestore {
			return fmt.Errorf("auth mode %q needs the firestore backend", c.AuthMode)
		}
	case AuthJWT:
		if c.JWTSecret == "" {
			return fmt.Errorf("auth mode %q needs EXALE_JWT_SECRET or JWT_SECRET_KEY", c.AuthMode)
		}
	default:
		return fmt.Errorf("unknown auth mode %q (expected firebase|jwt)", c.AuthMode)
	}
	return nil
}

// RecaptchaEnabled reports whether public intake should verify captcha tokens.
func (c *Config) RecaptchaEnabled() bool {
	return c.RecaptchaSiteKey != "" && c.ProjectID != ""
}
