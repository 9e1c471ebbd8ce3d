package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	MongoDB    MongoDBConfig
	Cloudinary CloudinaryConfig
	LogLevel   string
	Env        string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// CloudinaryConfig holds media-store-specific configuration
type CloudinaryConfig struct {
	CloudName            string
	APIKey               string
	APISecret            string
	Folder               string
	UploadTimeoutSeconds int
	DeleteTimeoutSeconds int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedOrigins", []string{"http://localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "devevent")
	viper.SetDefault("Cloudinary.Folder", "DevEvent")
	viper.SetDefault("Cloudinary.UploadTimeoutSeconds", 60)
	viper.SetDefault("Cloudinary.DeleteTimeoutSeconds", 30)
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("Env", "development")
}
