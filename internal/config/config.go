// internal/config/config.go
package config

import (
	"log"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Planner  PlannerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Drive    DriveConfig
	App      AppConfig
	Log      LogConfig
}

// PlannerConfig describes the workbook layout and run defaults.
type PlannerConfig struct {
	Workbook          string
	DataSheet         string
	ConfigSheet       string
	OutputXLSX        string
	OutputCSV         string
	ForecastDays      int
	DefaultProductGap int
	TrendLabels       []string
	KeyColumn         string
	ValueColumn       string
	ShelfLifeColumn   string
	SafetyDaysColumn  string
	Workers           int
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// StorageConfig points at an S3-compatible bucket used as workbook source and
// output sink.
type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	Prefix    string
}

type DriveConfig struct {
	CredentialsJSON string
}

type AppConfig struct {
	DownloadDir string
	OutputDir   string
}

type LogConfig struct {
	Level string
	JSON  bool
}

var (
	once     sync.Once
	instance *Config
)

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("PLANNER_WORKBOOK", "1.xlsx")
	v.SetDefault("PLANNER_DATA_SHEET", "1000")
	v.SetDefault("PLANNER_CONFIG_SHEET", "DB")
	v.SetDefault("PLANNER_OUTPUT_XLSX", "suggested_orders.xlsx")
	v.SetDefault("PLANNER_OUTPUT_CSV", "")
	v.SetDefault("PLANNER_FORECAST_DAYS", 20)
	v.SetDefault("PLANNER_DEFAULT_PRODUCT_GAP", 9)
	v.SetDefault("PLANNER_TREND_LABELS", "روندی,trending")
	v.SetDefault("PLANNER_KEY_COLUMN", "Z")
	v.SetDefault("PLANNER_VALUE_COLUMN", "AA")
	v.SetDefault("PLANNER_SHELF_LIFE_COLUMN", "X")
	v.SetDefault("PLANNER_SAFETY_DAYS_COLUMN", "Y")
	v.SetDefault("PLANNER_WORKERS", 1)
	v.SetDefault("ARCHIVE_ENABLED", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "planner")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("STORAGE_ENABLED", false)
	v.SetDefault("STORAGE_ENDPOINT", "")
	v.SetDefault("STORAGE_ACCESS_KEY", "")
	v.SetDefault("STORAGE_SECRET_KEY", "")
	v.SetDefault("STORAGE_BUCKET", "")
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_USE_SSL", true)
	v.SetDefault("STORAGE_PREFIX", "planner")
	v.SetDefault("GOOGLE_DRIVE_CREDENTIALS_JSON", "")
	v.SetDefault("APP_DOWNLOAD_DIR", "./data/downloads")
	v.SetDefault("APP_OUTPUT_DIR", "./data/output")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_JSON", false)
}

// Load reads .env and the environment once and returns the shared config.
func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		SetDefaults(viper.GetViper())
		viper.AutomaticEnv()

		instance = FromViper(viper.GetViper())

		ensureDir(instance.App.DownloadDir)
		ensureDir(instance.App.OutputDir)
	})

	return instance
}

// FromViper maps the keys held by v onto a Config without touching the disk.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Planner: PlannerConfig{
			Workbook:          v.GetString("PLANNER_WORKBOOK"),
			DataSheet:         v.GetString("PLANNER_DATA_SHEET"),
			ConfigSheet:       v.GetString("PLANNER_CONFIG_SHEET"),
			OutputXLSX:        v.GetString("PLANNER_OUTPUT_XLSX"),
			OutputCSV:         v.GetString("PLANNER_OUTPUT_CSV"),
			ForecastDays:      v.GetInt("PLANNER_FORECAST_DAYS"),
			DefaultProductGap: v.GetInt("PLANNER_DEFAULT_PRODUCT_GAP"),
			TrendLabels:       splitList(v.GetString("PLANNER_TREND_LABELS")),
			KeyColumn:         v.GetString("PLANNER_KEY_COLUMN"),
			ValueColumn:       v.GetString("PLANNER_VALUE_COLUMN"),
			ShelfLifeColumn:   v.GetString("PLANNER_SHELF_LIFE_COLUMN"),
			SafetyDaysColumn:  v.GetString("PLANNER_SAFETY_DAYS_COLUMN"),
			Workers:           v.GetInt("PLANNER_WORKERS"),
		},
		Database: DatabaseConfig{
			Enabled:  v.GetBool("ARCHIVE_ENABLED"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Storage: StorageConfig{
			Enabled:   v.GetBool("STORAGE_ENABLED"),
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			AccessKey: v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: v.GetString("STORAGE_SECRET_KEY"),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			Region:    v.GetString("STORAGE_REGION"),
			UseSSL:    v.GetBool("STORAGE_USE_SSL"),
			Prefix:    v.GetString("STORAGE_PREFIX"),
		},
		Drive: DriveConfig{
			CredentialsJSON: v.GetString("GOOGLE_DRIVE_CREDENTIALS_JSON"),
		},
		App: AppConfig{
			DownloadDir: v.GetString("APP_DOWNLOAD_DIR"),
			OutputDir:   v.GetString("APP_OUTPUT_DIR"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
			JSON:  v.GetBool("LOG_JSON"),
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func ensureDir(dir string) {
	if dir == "" {
		return
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
