package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Admin    AdminConfig
	Storage  StorageConfig
	Checkout CheckoutConfig
	Upload   UploadConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type AdminConfig struct {
	// Password doubles as the session-token signing secret.
	Password string
}

type StorageConfig struct {
	// DatabaseURL is the cleaned Postgres connection string, empty when the
	// JSON-file backend should be used.
	DatabaseURL string
	DataDir     string
}

type CheckoutConfig struct {
	WhatsAppNumber string
}

type UploadConfig struct {
	CloudinaryURL string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// DefaultWhatsAppNumber is the store's order line, overridable per deployment.
const DefaultWhatsAppNumber = "221773249642"

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("WHATSAPP_NUMBER", DefaultWhatsAppNumber)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	rawDB := viper.GetString("DATABASE_URL")
	if rawDB == "" {
		rawDB = viper.GetString("POSTGRES_URL")
	}
	dbURL, err := CleanDatabaseURL(rawDB)
	if err != nil {
		log.Printf("Warning: Ignoring invalid database URL, falling back to file storage: %v", err)
		dbURL = ""
	}

	var origins []string
	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Admin: AdminConfig{
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
		Storage: StorageConfig{
			DatabaseURL: dbURL,
			DataDir:     viper.GetString("DATA_DIR"),
		},
		Checkout: CheckoutConfig{
			WhatsAppNumber: sanitizePhone(viper.GetString("WHATSAPP_NUMBER")),
		},
		Upload: UploadConfig{
			CloudinaryURL: viper.GetString("CLOUDINARY_URL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: origins,
		},
	}
}

// Validate checks the settings the core refuses to run without.
func (c *Config) Validate() error {
	if len(c.Admin.Password) < 4 {
		return errors.New("ADMIN_PASSWORD must be set and at least 4 characters")
	}
	return nil
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env != "production"
}

// CleanDatabaseURL strips the copy-paste artifacts that tend to surround a
// managed-Postgres connection string (a leading "psql" invocation, quoting)
// and validates the result. An empty input selects the file backend and is
// not an error.
func CleanDatabaseURL(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", nil
	}
	if rest, ok := strings.CutPrefix(value, "psql "); ok {
		value = strings.TrimSpace(rest)
	}
	value = strings.Trim(value, `"'`)
	if value == "" {
		return "", nil
	}

	parsed, err := url.Parse(value)
	if err != nil {
		return "", fmt.Errorf("parse database URL: %w", err)
	}
	switch parsed.Scheme {
	case "postgres", "postgresql":
		return value, nil
	default:
		return "", fmt.Errorf("unsupported database URL scheme %q", parsed.Scheme)
	}
}

func sanitizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return DefaultWhatsAppNumber
	}
	return b.String()
}
