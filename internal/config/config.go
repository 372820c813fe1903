package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendS3     = "s3"
)

type Config struct {
	DataDir         string
	DatabasePath    string
	DocumentBackend string
	ImageBackend    string
	S3Bucket        string
	S3Region        string
	S3PublicURL     string
	Timezone        string
	Location        *time.Location
	APIToken        string
	LogLevel        string
	Port            string
}

var defaults = map[string]string{
	"data_dir":         "./data",
	"database_path":    "./data/meal-planner.db",
	"document_backend": BackendFile,
	"image_backend":    BackendFile,
	"s3_region":        "us-east-1",
	"timezone":         "Local",
	"log_level":        "info",
	"port":             "8080",
}

// Load reads configuration from the working directory.
func Load() (Config, error) {
	return LoadFrom(".")
}

// LoadFrom layers, lowest precedence first: built-in defaults, config.yml in
// directory, .env in directory, the process environment.
func LoadFrom(directory string) (Config, error) {
	settings := viper.New()
	for key, value := range defaults {
		settings.SetDefault(key, value)
	}

	settings.SetConfigName("config")
	settings.SetConfigType("yml")
	settings.AddConfigPath(directory)
	if err := settings.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	dotenv, err := godotenv.Read(filepath.Join(directory, ".env"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("reading .env file: %w", err)
	}
	for key, value := range dotenv {
		if _, set := os.LookupEnv(key); !set {
			settings.Set(strings.ToLower(key), value)
		}
	}

	settings.AutomaticEnv()

	config := Config{
		DataDir:         settings.GetString("data_dir"),
		DatabasePath:    settings.GetString("database_path"),
		DocumentBackend: strings.ToLower(settings.GetString("document_backend")),
		ImageBackend:    strings.ToLower(settings.GetString("image_backend")),
		S3Bucket:        settings.GetString("s3_bucket"),
		S3Region:        settings.GetString("s3_region"),
		S3PublicURL:     settings.GetString("s3_public_url"),
		Timezone:        settings.GetString("timezone"),
		APIToken:        settings.GetString("api_token"),
		LogLevel:        settings.GetString("log_level"),
		Port:            settings.GetString("port"),
	}

	if err := config.validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (config *Config) validate() error {
	if config.DocumentBackend != BackendFile && config.DocumentBackend != BackendSQLite {
		return fmt.Errorf("DOCUMENT_BACKEND must be %q or %q, got %q", BackendFile, BackendSQLite, config.DocumentBackend)
	}
	if config.ImageBackend != BackendFile && config.ImageBackend != BackendS3 {
		return fmt.Errorf("IMAGE_BACKEND must be %q or %q, got %q", BackendFile, BackendS3, config.ImageBackend)
	}
	if config.ImageBackend == BackendS3 {
		if config.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when IMAGE_BACKEND is %q", BackendS3)
		}
		if config.S3PublicURL == "" {
			config.S3PublicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", config.S3Bucket, config.S3Region)
		}
	}

	if config.Timezone == "" || strings.EqualFold(config.Timezone, "Local") {
		config.Location = time.Local
	} else {
		location, err := time.LoadLocation(config.Timezone)
		if err != nil {
			return fmt.Errorf("loading TIMEZONE %q: %w", config.Timezone, err)
		}
		config.Location = location
	}
	return nil
}

// DocumentDir is where the file document backend keeps its JSON documents.
func (config Config) DocumentDir() string {
	return filepath.Join(config.DataDir, "data")
}

func (config Config) ImageDir() string {
	return filepath.Join(config.DataDir, "images")
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (config Config) SlogLevel() slog.Level {
	switch strings.ToLower(config.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
