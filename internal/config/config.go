package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// CoordinatorAccount is a static coordinator credential pair.
type CoordinatorAccount struct {
	Username string
	Password string
}

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	DatabaseURL            string
	RedisURL               string
	JWTSecret              string
	TokenTTL               time.Duration
	AdminUsername          string
	AdminPassword          string
	Coordinators           []CoordinatorAccount
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	UploadsDir             string
	AudioDir               string
	StatsCacheTTL          time.Duration
	CORSAllowOrigins       string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ACADEMY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Academy API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "5000")
	v.SetDefault("token.ttl", "24h")
	v.SetDefault("admin.username", "admin")
	v.SetDefault("cloudinary.folder", "academy/uploads")
	v.SetDefault("uploads.dir", "./uploads")
	v.SetDefault("audio.dir", "./audio")
	v.SetDefault("stats.cache_ttl", "5m")
	v.SetDefault("cors.allow_origins", "*")

	ttl, err := time.ParseDuration(v.GetString("token.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid token ttl: %w", err)
	}

	statsTTL, err := time.ParseDuration(v.GetString("stats.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid stats cache ttl: %w", err)
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		JWTSecret:              v.GetString("jwt.secret"),
		TokenTTL:               ttl,
		AdminUsername:          v.GetString("admin.username"),
		AdminPassword:          v.GetString("admin.password"),
		Coordinators:           parseCoordinators(v.GetString("coordinator.username"), v.GetString("coordinator.password"), v.GetString("coordinator.accounts")),
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		UploadsDir:             v.GetString("uploads.dir"),
		AudioDir:               v.GetString("audio.dir"),
		StatsCacheTTL:          statsTTL,
		CORSAllowOrigins:       v.GetString("cors.allow_origins"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.AdminPassword == "" {
		return Config{}, fmt.Errorf("admin password must be provided")
	}

	return cfg, nil
}

// parseCoordinators merges the primary coordinator pair with the optional
// "user:pass,user:pass" accounts list.
func parseCoordinators(username, password, accounts string) []CoordinatorAccount {
	var result []CoordinatorAccount

	if username != "" && password != "" {
		result = append(result, CoordinatorAccount{Username: username, Password: password})
	}

	for _, entry := range strings.Split(accounts, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 2)
		if len(parts) != 2 {
			continue
		}
		user := strings.TrimSpace(parts[0])
		pass := strings.TrimSpace(parts[1])
		if user != "" && pass != "" {
			result = append(result, CoordinatorAccount{Username: user, Password: pass})
		}
	}

	return result
}
