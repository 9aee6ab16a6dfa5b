package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Data source kinds accepted by DATA_SOURCE.
const (
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

// Config holds all application configuration. Values come from defaults,
// then an optional YAML file named by CONFIG_FILE, then environment
// variables (including a .env file).
type Config struct {
	DataSource    string `yaml:"dataSource"`
	DataPath      string `yaml:"dataPath"`
	DataURL       string `yaml:"dataURL"`
	HTTPTimeoutMs int    `yaml:"httpTimeoutMs"`

	PostgresHost     string `yaml:"postgresHost"`
	PostgresPort     string `yaml:"postgresPort"`
	PostgresUser     string `yaml:"postgresUser"`
	PostgresPassword string `yaml:"postgresPassword"`
	PostgresDB       string `yaml:"postgresDB"`
	PostgresSSLMode  string `yaml:"postgresSSLMode"`
	PostgresTable    string `yaml:"postgresTable"`
	PostgresColumn   string `yaml:"postgresColumn"`

	MaxConcurrency int `yaml:"maxConcurrency"`
	MaxRetries     int `yaml:"maxRetries"`
	RetryBaseMs    int `yaml:"retryBaseMs"`

	CSVOutputPath  string   `yaml:"csvOutputPath"`
	XLSXOutputPath string   `yaml:"xlsxOutputPath"`
	MetricsAddr    string   `yaml:"metricsAddr"`
	LogLevel       string   `yaml:"logLevel"`
	Periods        []string `yaml:"periods"`
}

// Load reads the .env file, the optional YAML file and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		DataSource:    SourceFile,
		DataPath:      "./data/100075.json",
		HTTPTimeoutMs: 15000,

		PostgresHost:    "localhost",
		PostgresPort:    "5432",
		PostgresUser:    "passenger",
		PostgresDB:      "passenger_stats",
		PostgresSSLMode: "disable",
		PostgresTable:   "passenger_counts",
		PostgresColumn:  "payload",

		MaxConcurrency: 4,
		MaxRetries:     3,
		RetryBaseMs:    500,
		LogLevel:       "info",
	}
}

func applyEnv(cfg *Config) {
	cfg.DataSource = strings.ToLower(getEnv("DATA_SOURCE", cfg.DataSource))
	cfg.DataPath = getEnv("DATA_PATH", cfg.DataPath)
	cfg.DataURL = getEnv("DATA_URL", cfg.DataURL)
	cfg.HTTPTimeoutMs = getEnvInt("HTTP_TIMEOUT_MS", cfg.HTTPTimeoutMs)

	cfg.PostgresHost = getEnv("POSTGRES_HOST", cfg.PostgresHost)
	cfg.PostgresPort = getEnv("POSTGRES_PORT", cfg.PostgresPort)
	cfg.PostgresUser = getEnv("POSTGRES_USER", cfg.PostgresUser)
	cfg.PostgresPassword = getEnv("POSTGRES_PASSWORD", cfg.PostgresPassword)
	cfg.PostgresDB = getEnv("POSTGRES_DB", cfg.PostgresDB)
	cfg.PostgresSSLMode = getEnv("POSTGRES_SSLMODE", cfg.PostgresSSLMode)
	cfg.PostgresTable = getEnv("POSTGRES_TABLE", cfg.PostgresTable)
	cfg.PostgresColumn = getEnv("POSTGRES_COLUMN", cfg.PostgresColumn)

	cfg.MaxConcurrency = getEnvInt("MAX_CONCURRENCY", cfg.MaxConcurrency)
	cfg.MaxRetries = getEnvInt("MAX_RETRIES", cfg.MaxRetries)
	cfg.RetryBaseMs = getEnvInt("RETRY_BASE_MS", cfg.RetryBaseMs)

	cfg.CSVOutputPath = getEnv("CSV_OUTPUT_PATH", cfg.CSVOutputPath)
	cfg.XLSXOutputPath = getEnv("XLSX_OUTPUT_PATH", cfg.XLSXOutputPath)
	cfg.MetricsAddr = getEnv("METRICS_ADDR", cfg.MetricsAddr)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	if v := os.Getenv("PERIODS"); v != "" {
		cfg.Periods = splitList(v)
	}
}

// Validate checks that the selected data source has what it needs.
func (c *Config) Validate() error {
	switch c.DataSource {
	case SourceFile:
		if c.DataPath == "" {
			return fmt.Errorf("config: DATA_PATH is required for the file source")
		}
	case SourceHTTP:
		if c.DataURL == "" {
			return fmt.Errorf("config: DATA_URL is required for the http source")
		}
	case SourcePostgres:
		if c.PostgresTable == "" || c.PostgresColumn == "" {
			return fmt.Errorf("config: POSTGRES_TABLE and POSTGRES_COLUMN are required for the postgres source")
		}
	default:
		return fmt.Errorf("config: unknown DATA_SOURCE %q", c.DataSource)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
