package app

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/legalease/backend/internal/platform/logger"
	"github.com/legalease/backend/internal/utils"
)

type Config struct {
	Port           string
	LogMode        string
	ServiceVersion string
	CORSOrigins    []string

	DBDriver         string
	SQLitePath       string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresName     string

	StorageMode string
	UploadDir   string
	GCSBucket   string

	MaxUploadBytes  int64
	DatasetAutoload bool
}

// fileOverlay is the YAML shape of the optional config file. Boolean keys
// are pointers so an explicit false is distinguishable from unset.
type fileOverlay struct {
	Port           string   `yaml:"port"`
	LogMode        string   `yaml:"log_mode"`
	ServiceVersion string   `yaml:"service_version"`
	CORSOrigins    []string `yaml:"cors_origins"`

	DBDriver         string `yaml:"db_driver"`
	SQLitePath       string `yaml:"sqlite_path"`
	PostgresHost     string `yaml:"postgres_host"`
	PostgresPort     string `yaml:"postgres_port"`
	PostgresUser     string `yaml:"postgres_user"`
	PostgresPassword string `yaml:"postgres_password"`
	PostgresName     string `yaml:"postgres_name"`

	StorageMode string `yaml:"storage_mode"`
	UploadDir   string `yaml:"upload_dir"`
	GCSBucket   string `yaml:"gcs_bucket"`

	MaxUploadBytes  int64 `yaml:"max_upload_bytes"`
	DatasetAutoload *bool `yaml:"dataset_autoload"`
}

// LoadConfig reads configuration from the environment, then applies an
// optional YAML overlay named by CONFIG_FILE. Env values act as defaults;
// non-zero YAML values win.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		Port:             utils.GetEnv("PORT", "8000", log),
		LogMode:          utils.GetEnv("LOG_MODE", "development", log),
		ServiceVersion:   utils.GetEnv("SERVICE_VERSION", "1.0.0", log),
		DBDriver:         utils.GetEnv("DB_DRIVER", "sqlite", log),
		SQLitePath:       utils.GetEnv("SQLITE_PATH", "data/legalease.db", log),
		PostgresHost:     utils.GetEnv("POSTGRES_HOST", "localhost", log),
		PostgresPort:     utils.GetEnv("POSTGRES_PORT", "5432", log),
		PostgresUser:     utils.GetEnv("POSTGRES_USER", "postgres", log),
		PostgresPassword: utils.GetEnv("POSTGRES_PASSWORD", "", log),
		PostgresName:     utils.GetEnv("POSTGRES_NAME", "legalease", log),
		StorageMode:      utils.GetEnv("STORAGE_MODE", "local", log),
		UploadDir:        utils.GetEnv("UPLOAD_DIR", "uploads", log),
		GCSBucket:        utils.GetEnv("GCS_BUCKET", "", log),
		MaxUploadBytes:   utils.GetEnvAsInt64("MAX_UPLOAD_BYTES", 10*1024*1024, log),
		DatasetAutoload:  utils.GetEnvAsBool("DATASET_AUTOLOAD", true, log),
	}
	if origins := utils.GetEnv("CORS_ORIGINS", "", log); origins != "" {
		cfg.CORSOrigins = splitAndTrim(origins)
	}

	path := utils.GetEnv("CONFIG_FILE", "", log)
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file %q: %w", path, err)
	}
	var overlay fileOverlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return cfg, fmt.Errorf("parse config file %q: %w", path, err)
	}
	applyOverlay(&cfg, overlay)
	log.Info("Applied config file overlay", "path", path)
	return cfg, nil
}

func applyOverlay(cfg *Config, overlay fileOverlay) {
	if overlay.Port != "" {
		cfg.Port = overlay.Port
	}
	if overlay.LogMode != "" {
		cfg.LogMode = overlay.LogMode
	}
	if overlay.ServiceVersion != "" {
		cfg.ServiceVersion = overlay.ServiceVersion
	}
	if len(overlay.CORSOrigins) > 0 {
		cfg.CORSOrigins = overlay.CORSOrigins
	}
	if overlay.DBDriver != "" {
		cfg.DBDriver = overlay.DBDriver
	}
	if overlay.SQLitePath != "" {
		cfg.SQLitePath = overlay.SQLitePath
	}
	if overlay.PostgresHost != "" {
		cfg.PostgresHost = overlay.PostgresHost
	}
	if overlay.PostgresPort != "" {
		cfg.PostgresPort = overlay.PostgresPort
	}
	if overlay.PostgresUser != "" {
		cfg.PostgresUser = overlay.PostgresUser
	}
	if overlay.PostgresPassword != "" {
		cfg.PostgresPassword = overlay.PostgresPassword
	}
	if overlay.PostgresName != "" {
		cfg.PostgresName = overlay.PostgresName
	}
	if overlay.StorageMode != "" {
		cfg.StorageMode = overlay.StorageMode
	}
	if overlay.UploadDir != "" {
		cfg.UploadDir = overlay.UploadDir
	}
	if overlay.GCSBucket != "" {
		cfg.GCSBucket = overlay.GCSBucket
	}
	if overlay.MaxUploadBytes > 0 {
		cfg.MaxUploadBytes = overlay.MaxUploadBytes
	}
	if overlay.DatasetAutoload != nil {
		cfg.DatasetAutoload = *overlay.DatasetAutoload
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
