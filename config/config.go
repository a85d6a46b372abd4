package config

import (
	"log"

	"github.com/spf13/viper"

	"refugio/models"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Admin panel account. The hash is a bcrypt digest of the panel password.
	AdminEmail        string `mapstructure:"ADMIN_EMAIL"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`

	// Firebase Cloud Messaging service-account file; inquiry pushes are
	// disabled when empty.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// WhatsApp number guest inquiries are routed to.
	WhatsAppNumber string `mapstructure:"WHATSAPP_NUMBER"`

	// Properties advertised on the site.
	Properties []models.Property `mapstructure:"properties"`
}

var AppConfig Config

func LoadConfig() {
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
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	// Change streams need a replica set, even a single-node one.
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017/?replicaSet=rs0")
	viper.SetDefault("WHATSAPP_NUMBER", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if len(AppConfig.Properties) == 0 {
		AppConfig.Properties = []models.Property{
			{ID: "casa-principal", Name: "El Refugio (Casa Principal)"},
			{ID: "cabana", Name: "La Cabaña"},
		}
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
