package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort      string        `mapstructure:"APP_PORT"`
	DatabaseURL  string        `mapstructure:"DATABASE_URL"`
	DatabaseName string        `mapstructure:"DATABASE_NAME"`
	Env          string        `mapstructure:"ENV"`
	JWTSecret    string        `mapstructure:"JWT_SECRET"`
	JWTTTL       time.Duration `mapstructure:"JWT_TTL"`
	LogLevel     string        `mapstructure:"LOG_LEVEL"`
	ClientURL    string        `mapstructure:"CLIENT_URL"`

	// Rate limiting, per client IP.
	MaxRequestsPerWindow int           `mapstructure:"MAX_REQUESTS_PER_WINDOW"`
	RateLimitWindow      time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Cloudinary credentials.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// QRBaseURL is the guest menu URL encoded into QR codes.
	QRBaseURL string `mapstructure:"QR_BASE_URL"`

	OrderRetention     time.Duration `mapstructure:"ORDER_RETENTION"`
	OrderPurgeSchedule string        `mapstructure:"ORDER_PURGE_SCHEDULE"`

	// Translation API (RapidAPI text-translator).
	RapidAPIKey  string `mapstructure:"RAPIDAPI_KEY"`
	RapidAPIHost string `mapstructure:"RAPIDAPI_HOST"`

	// Optional first-run super admin.
	SuperAdminEmail    string `mapstructure:"SUPERADMIN_EMAIL"`
	SuperAdminPassword string `mapstructure:"SUPERADMIN_PASSWORD"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real environment variables win.
	_ = godotenv.Load()

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "roomservice")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_TTL", "168h")
	viper.SetDefault("CLIENT_URL", "http://localhost:3000")
	viper.SetDefault("MAX_REQUESTS_PER_WINDOW", 1000)
	viper.SetDefault("RATE_LIMIT_WINDOW", "10m")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")
	viper.SetDefault("QR_BASE_URL", "")
	viper.SetDefault("ORDER_RETENTION", "168h")
	viper.SetDefault("ORDER_PURGE_SCHEDULE", "0 0 * * *")
	viper.SetDefault("RAPIDAPI_KEY", "")
	viper.SetDefault("RAPIDAPI_HOST", "text-translator2.p.rapidapi.com")
	viper.SetDefault("SUPERADMIN_EMAIL", "")
	viper.SetDefault("SUPERADMIN_PASSWORD", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
