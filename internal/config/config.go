package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress  string            `env:"SERVER_ADDRESS"`
	DatabaseDSN    string            `env:"DATABASE_DSN"`
	MigrationsPath string            `env:"MIGRATIONS_PATH"`
	SecretKey      string            `env:"SECRET_KEY"`
	DefaultRole    string            `env:"DEFAULT_ROLE"`
	PerPage        int               `env:"PER_PAGE"`
	ShopRoles      map[string]string `env:"SHOP_ROLES" envSeparator:"," envKeyValSeparator:":"`
	TeamRoles      []string          `env:"TEAM_ROLES" envSeparator:","`
	Grants         map[string]string `env:"SHOP_GRANTS" envSeparator:"," envKeyValSeparator:":"`
	CORSOrigins    []string          `env:"CORS_ORIGINS" envSeparator:","`
}

// ParseFlags reads .env (if present), the environment and command line
// flags. Environment values win over flags.
func ParseFlags() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	envServerAddress := cfg.ServerAddress
	envDatabaseDSN := cfg.DatabaseDSN
	envMigrationsPath := cfg.MigrationsPath
	envSecretKey := cfg.SecretKey

	flag.StringVar(&cfg.ServerAddress, "a", getDefaultServerAddress(), "Address of the server")
	flag.StringVar(&cfg.DatabaseDSN, "d", "", "PostgreSQL DSN, in-memory storage when empty")
	flag.StringVar(&cfg.MigrationsPath, "m", getDefaultMigrationsPath(), "Directory with SQL migrations")
	flag.StringVar(&cfg.SecretKey, "s", "", "Secret used to sign actor cookies")

	flag.Parse()

	if envServerAddress != "" {
		cfg.ServerAddress = envServerAddress
	}
	if envDatabaseDSN != "" {
		cfg.DatabaseDSN = envDatabaseDSN
	}
	if envMigrationsPath != "" {
		cfg.MigrationsPath = envMigrationsPath
	}
	if envSecretKey != "" {
		cfg.SecretKey = envSecretKey
	}

	cfg.applyDefaultValues()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server address cannot be empty")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key cannot be empty")
	}
	if c.PerPage < 0 {
		return fmt.Errorf("per page cannot be negative")
	}
	return nil
}

func (c *Config) applyDefaultValues() {
	if c.ServerAddress == "" {
		c.ServerAddress = getDefaultServerAddress()
	}
	if c.MigrationsPath == "" {
		c.MigrationsPath = getDefaultMigrationsPath()
	}
	if c.SecretKey == "" {
		c.SecretKey = getDefaultSecretKey()
	}
	if c.DefaultRole == "" {
		c.DefaultRole = "admin"
	}
	if c.PerPage == 0 {
		c.PerPage = 25
	}
	if len(c.ShopRoles) == 0 {
		c.ShopRoles = map[string]string{"admin": "Админ"}
	}
	if len(c.TeamRoles) == 0 {
		c.TeamRoles = []string{"admin"}
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"http://localhost:5173"}
	}
}

func getDefaultServerAddress() string {
	return "localhost:8080"
}

func getDefaultMigrationsPath() string {
	return "migrations"
}

func getDefaultSecretKey() string {
	return "dev-secret-key"
}
