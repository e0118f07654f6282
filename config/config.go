package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"milestonebot/database"

	"github.com/joho/godotenv"
)

// Ledger store backends
const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	GuildID      string // Guild for command registration, empty registers globally
	LogChannelID string // Announcement channel for milestones and the daily leaderboard

	// Ledger store configuration
	LedgerBackend   string
	SheetID         string
	CredentialsPath string // Service account credential file for the Sheets API
	StoreTimeout    time.Duration

	// Database configuration (postgres backend)
	DatabaseURL  string
	DatabaseName string

	// Species catalog override, reloaded on change. Empty uses the embedded catalog.
	CatalogPath string

	// Leaderboard configuration
	LeaderboardHour int // Hour in UTC when the daily leaderboard is posted (0-23)
	LeaderboardSize int

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated), empty disables events

	// Ops API configuration
	DebugAPIPort int // 0 disables the API

	// OpenTelemetry configuration
	OTelEnabled              bool
	OTelExporterType         string // console, otlp or none
	OTelOTLPEndpoint         string
	OTelExportIntervalMillis int
	OTelServiceName          string

	// Logging
	LogLevel string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance and panics when it cannot be loaded
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = Load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// Init loads and validates the configuration into the global instance,
// returning the error instead of panicking
func Init() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	instance = cfg
	return cfg, nil
}

// Load reads an optional .env file and then the environment
func Load() (*Config, error) {
	return loadWith((*Config).Validate)
}

// LoadForTools loads the configuration for offline commands such as
// migrations, which need the ledger store but no Discord session
func LoadForTools() (*Config, error) {
	return loadWith((*Config).ValidateStore)
}

func loadWith(validate func(*Config) error) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cfg.Environment != "test" {
		if err := validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// GetDatabaseURL combines the base database URL with the database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

func load() (*Config, error) {
	config := &Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		GuildID:      os.Getenv("GUILD_ID"),
		LogChannelID: os.Getenv("LOG_CHANNEL_ID"),

		LedgerBackend:   strings.ToLower(getEnvWithDefault("LEDGER_BACKEND", BackendSheets)),
		SheetID:         os.Getenv("SHEET_ID"),
		CredentialsPath: getEnvWithDefault("GOOGLE_SHEETS_CREDENTIALS_PATH", "credentials.json"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		CatalogPath: os.Getenv("CATALOG_PATH"),

		NATSServers: os.Getenv("NATS_SERVERS"),

		OTelExporterType: getEnvWithDefault("OTEL_EXPORTER_TYPE", "console"),
		OTelOTLPEndpoint: getEnvWithDefault("OTEL_OTLP_ENDPOINT", "localhost:4317"),
		OTelServiceName:  getEnvWithDefault("OTEL_SERVICE_NAME", "milestonebot"),

		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
	}

	var err error
	if config.StoreTimeout, err = getDurationEnv("STORE_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if config.LeaderboardHour, err = getIntEnv("LEADERBOARD_HOUR", 0); err != nil {
		return nil, err
	}
	if config.LeaderboardSize, err = getIntEnv("LEADERBOARD_SIZE", 5); err != nil {
		return nil, err
	}
	if config.DebugAPIPort, err = getIntEnv("DEBUG_API_PORT", 8899); err != nil {
		return nil, err
	}
	if config.OTelExportIntervalMillis, err = getIntEnv("OTEL_EXPORT_INTERVAL_MS", 60000); err != nil {
		return nil, err
	}
	if config.OTelEnabled, err = getBoolEnv("OTEL_ENABLED", false); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that everything needed to start the bot is present
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.LogChannelID == "" {
		return fmt.Errorf("LOG_CHANNEL_ID is required")
	}
	if err := c.ValidateStore(); err != nil {
		return err
	}

	if c.LeaderboardHour < 0 || c.LeaderboardHour > 23 {
		return fmt.Errorf("LEADERBOARD_HOUR must be between 0 and 23")
	}
	if c.LeaderboardSize <= 0 {
		return fmt.Errorf("LEADERBOARD_SIZE must be positive")
	}
	if c.DebugAPIPort < 0 || c.DebugAPIPort > 65535 {
		return fmt.Errorf("DEBUG_API_PORT must be between 0 and 65535")
	}
	return nil
}

// ValidateStore checks the ledger backend settings
func (c *Config) ValidateStore() error {
	switch c.LedgerBackend {
	case BackendSheets:
		if c.SheetID == "" {
			return fmt.Errorf("SHEET_ID is required for the sheets backend")
		}
		if c.CredentialsPath == "" {
			return fmt.Errorf("GOOGLE_SHEETS_CREDENTIALS_PATH is required for the sheets backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown LEDGER_BACKEND %q", c.LedgerBackend)
	}

	if c.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive")
	}
	return nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return parsed, nil
}

// getDurationEnv accepts Go durations ("15s") or plain seconds ("15")
func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return parsed, nil
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:      "test",
		LogChannelID:     "log-channel",
		LedgerBackend:    BackendMemory,
		StoreTimeout:     time.Second,
		LeaderboardHour:  0,
		LeaderboardSize:  5,
		OTelExporterType: "none",
		OTelServiceName:  "milestonebot-test",
		LogLevel:         "info",
	}
}
