package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Generator GeneratorConfig
	Database  DatabaseConfig
}

// GeneratorConfig represents permission key generation configuration
type GeneratorConfig struct {
	SourceDir     string // directory holding the permission declaration sources
	SourceFormat  string // "dsl" (a directory of .perm files) or "yaml" (a manifest file)
	OutputDir     string // directory the generated client modules are written to
	RootNamespace string // prefix of generated namespaces: <root>.PermissionKeys.<Module>
}

// DatabaseConfig represents database configuration, used only by the
// sync and migrate commands
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// findProjectRoot finds the project root directory by looking for go.mod
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	// Walk up the directory tree until we find go.mod
	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached the root directory
			return "", fmt.Errorf("go.mod not found in any parent directory")
		}
		dir = parent
	}
}

// InitConfig initializes viper configuration
// env: environment name (dev, test, prod)
func InitConfig(env string) error {
	if env == "" {
		env = "dev"
	}

	// Find project root
	projectRoot, err := findProjectRoot()
	if err != nil {
		return fmt.Errorf("failed to find project root: %w", err)
	}

	// Set config file name based on environment
	viper.SetConfigName(fmt.Sprintf(".env.%s", env))
	viper.SetConfigType("env")
	viper.AddConfigPath(projectRoot) // Project root

	// Read config file (optional, ignore error if not found)
	_ = viper.ReadInConfig()

	// Environment variables take precedence over config file
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("SOURCE_DIR", "permissions")
	viper.SetDefault("SOURCE_FORMAT", "dsl")
	viper.SetDefault("OUTPUT_DIR", filepath.Join("web", "src", "permission-keys"))
	viper.SetDefault("ROOT_NAMESPACE", "App")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 15432)
	viper.SetDefault("DB_USER", "permgen")
	viper.SetDefault("DB_NAME", "permgen_dev")
	viper.SetDefault("DB_SSLMODE", "disable")

	return nil
}

// Load loads configuration from viper. The database password is checked
// lazily by DatabaseConfig.Validate, because only the sync and migrate
// commands need a database at all.
func Load() (*Config, error) {
	config := &Config{
		Generator: GeneratorConfig{
			SourceDir:     viper.GetString("SOURCE_DIR"),
			SourceFormat:  viper.GetString("SOURCE_FORMAT"),
			OutputDir:     viper.GetString("OUTPUT_DIR"),
			RootNamespace: viper.GetString("ROOT_NAMESPACE"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
	}

	return config, nil
}

// Validate checks that the database configuration is complete enough to
// open a connection
func (c *DatabaseConfig) Validate() error {
	if c.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required (set via environment variable or .env file)")
	}
	return nil
}

// ConnectionString returns PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Database,
		c.SSLMode,
	)
}
