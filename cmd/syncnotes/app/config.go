package app

import (
	stderrors "errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/syncnotes/cmd/application"
	"github.com/agentstation/syncnotes/pkg/constants"
	"github.com/agentstation/syncnotes/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	Debug   bool
	NoColor bool
	NoLogo  bool
	Format  string

	// Config file
	ConfigFile string

	// Sync configuration
	Accounts    []string
	Simulation  bool
	Confirm     bool
	Backup      bool
	Timeout     time.Duration
	Concurrency int

	// Logging configuration
	LogLevel    string // from --log-level only
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (SYNCNOTES_*)
// 3. .env files
// 4. Config file (~/.syncnotes.yaml or ./.syncnotes.yaml, or --config)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("backup", true)
	v.SetDefault("timeout", constants.DefaultTimeout)
	v.SetDefault("concurrency", constants.DefaultConcurrency)

	if configFile == "" {
		configFile = v.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		// Search for config in standard locations
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)
	}

	// A missing config file is fine unless one was named explicitly
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "failed to read config file", err)
		}
	}

	config := &Config{
		// Global flags (may be overridden by cobra flags later)
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		Debug:   v.GetBool("debug"),
		NoColor: v.GetBool("no-color"),
		NoLogo:  v.GetBool("nologo"),
		Format:  v.GetString("format"),

		// Config file
		ConfigFile: v.ConfigFileUsed(),

		// Sync configuration
		Accounts:    v.GetStringSlice("accounts"),
		Simulation:  v.GetBool("simulation"),
		Confirm:     v.GetBool("confirm"),
		Backup:      v.GetBool("backup"),
		Timeout:     v.GetDuration("timeout"),
		Concurrency: v.GetInt("concurrency"),

		// Logging configuration
		EnvLogLevel: getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks values that cannot be corrected later.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return &errors.ValidationError{Field: "timeout", Value: c.Timeout, Message: "timeout must be non-negative"}
	}
	if c.Concurrency < 0 {
		return &errors.ValidationError{Field: "concurrency", Value: c.Concurrency, Message: "concurrency must be non-negative"}
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(flags GlobalFlags) {
	c.Verbose = c.Verbose || flags.Verbose
	c.Quiet = c.Quiet || flags.Quiet
	c.Debug = c.Debug || flags.Debug
	c.NoColor = c.NoColor || flags.NoColor
	c.NoLogo = c.NoLogo || flags.NoLogo
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
}

// Defaults returns the sync settings for commands.
func (c *Config) Defaults() application.Defaults {
	return application.Defaults{
		Accounts:    append([]string{}, c.Accounts...),
		Simulation:  c.Simulation,
		Confirm:     c.Confirm,
		Backup:      c.Backup,
		Timeout:     c.Timeout,
		Concurrency: c.Concurrency,
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// Try to load .env files in order of precedence
	// .env.local overrides .env
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
