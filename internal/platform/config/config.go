package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	CORSAllowedOrigin string

	// Token Config
	AccessTokenSecret          string
	AccessTokenExpiryDuration  time.Duration
	RefreshTokenSecret         string
	RefreshTokenExpiryDuration time.Duration
	JWTIssuer                  string

	// Object storage (S3 compatible, e.g. MinIO)
	S3Endpoint      string `mapstructure:"S3_ENDPOINT"`
	S3Region        string `mapstructure:"S3_REGION"`
	S3Bucket        string `mapstructure:"S3_BUCKET"`
	S3AccessKey     string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey     string `mapstructure:"S3_SECRET_KEY"`
	S3PublicBaseURL string `mapstructure:"S3_PUBLIC_BASE_URL"`

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`

	// Analytics
	PosthogAPIKey string `mapstructure:"POSTHOG_API_KEY"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("CORS_ALLOWED_ORIGIN", "http://localhost:3000")
	viper.SetDefault("ACCESS_TOKEN_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("ACCESS_TOKEN_EXPIRY_DURATION", "1h")
	viper.SetDefault("REFRESH_TOKEN_SECRET", "default_insecure_refresh_secret_please_change_this_!@#$")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "240h")
	viper.SetDefault("JWT_ISSUER", "vidtube-backend")
	viper.SetDefault("S3_ENDPOINT", "")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("S3_BUCKET", "vidtube-media")
	viper.SetDefault("S3_ACCESS_KEY", "")
	viper.SetDefault("S3_SECRET_KEY", "")
	viper.SetDefault("S3_PUBLIC_BASE_URL", "")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.CORSAllowedOrigin = viper.GetString("CORS_ALLOWED_ORIGIN")

	cfg.AccessTokenSecret = viper.GetString("ACCESS_TOKEN_SECRET")
	if cfg.AccessTokenSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: ACCESS_TOKEN_SECRET not set. Using default insecure key.")
	}

	accessExpiryStr := viper.GetString("ACCESS_TOKEN_EXPIRY_DURATION")
	accessExpiry, err := time.ParseDuration(accessExpiryStr)
	if err != nil {
		accessExpiry = time.Hour
		log.Printf("Warning: Invalid value for ACCESS_TOKEN_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", accessExpiryStr, accessExpiry.String())
	}
	cfg.AccessTokenExpiryDuration = accessExpiry

	cfg.RefreshTokenSecret = viper.GetString("REFRESH_TOKEN_SECRET")
	if cfg.RefreshTokenSecret == "default_insecure_refresh_secret_please_change_this_!@#$" {
		log.Println("Warning: REFRESH_TOKEN_SECRET is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
	}

	refreshExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refreshExpiry, err := time.ParseDuration(refreshExpiryStr)
	if err != nil {
		refreshExpiry = time.Hour * 24 * 10
		log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", refreshExpiryStr, refreshExpiry.String())
	}
	cfg.RefreshTokenExpiryDuration = refreshExpiry

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.S3Endpoint = viper.GetString("S3_ENDPOINT")
	cfg.S3Region = viper.GetString("S3_REGION")
	cfg.S3Bucket = viper.GetString("S3_BUCKET")
	cfg.S3AccessKey = viper.GetString("S3_ACCESS_KEY")
	cfg.S3SecretKey = viper.GetString("S3_SECRET_KEY")
	cfg.S3PublicBaseURL = viper.GetString("S3_PUBLIC_BASE_URL")
	if cfg.S3Endpoint == "" {
		log.Println("Warning: S3_ENDPOINT not set. Media uploads will not function.")
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}
