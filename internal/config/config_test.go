package config

import (
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	type want struct {
		serverAddress  string
		databaseDSN    string
		migrationsPath string
		secretKey      string
		perPage        int
		shopRoles      map[string]string
		teamRoles      []string
		shouldError    bool
	}

	tests := []struct {
		name    string
		envVars map[string]string
		flags   []string
		want    want
	}{
		{
			name:    "default values",
			envVars: map[string]string{},
			flags:   []string{},
			want: want{
				serverAddress:  "localhost:8080",
				databaseDSN:    "",
				migrationsPath: "migrations",
				secretKey:      "dev-secret-key",
				perPage:        25,
				shopRoles:      map[string]string{"admin": "Админ"},
				teamRoles:      []string{"admin"},
			},
		},
		{
			name: "environment variables only",
			envVars: map[string]string{
				"SERVER_ADDRESS": "localhost:8888",
				"DATABASE_DSN":   "postgres://shops@localhost/shops",
				"SECRET_KEY":     "env-secret",
				"PER_PAGE":       "10",
				"SHOP_ROLES":     "admin:Админ,manager:Менеджер",
				"TEAM_ROLES":     "admin,manager",
			},
			flags: []string{},
			want: want{
				serverAddress:  "localhost:8888",
				databaseDSN:    "postgres://shops@localhost/shops",
				migrationsPath: "migrations",
				secretKey:      "env-secret",
				perPage:        10,
				shopRoles:      map[string]string{"admin": "Админ", "manager": "Менеджер"},
				teamRoles:      []string{"admin", "manager"},
			},
		},
		{
			name:    "flags only",
			envVars: map[string]string{},
			flags:   []string{"-a", "localhost:9999", "-d", "postgres://flag", "-m", "/srv/migrations", "-s", "flag-secret"},
			want: want{
				serverAddress:  "localhost:9999",
				databaseDSN:    "postgres://flag",
				migrationsPath: "/srv/migrations",
				secretKey:      "flag-secret",
				perPage:        25,
				shopRoles:      map[string]string{"admin": "Админ"},
				teamRoles:      []string{"admin"},
			},
		},
		{
			name: "environment variables override flags",
			envVars: map[string]string{
				"SERVER_ADDRESS": "env-server:7777",
				"DATABASE_DSN":   "postgres://env",
			},
			flags: []string{"-a", "flag-server:8888", "-d", "postgres://flag"},
			want: want{
				serverAddress:  "env-server:7777",
				databaseDSN:    "postgres://env",
				migrationsPath: "migrations",
				secretKey:      "dev-secret-key",
				perPage:        25,
				shopRoles:      map[string]string{"admin": "Админ"},
				teamRoles:      []string{"admin"},
			},
		},
		{
			name: "negative per page",
			envVars: map[string]string{
				"PER_PAGE": "-1",
			},
			flags: []string{},
			want: want{
				shouldError: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

			for key, value := range tt.envVars {
				os.Setenv(key, value)
			}

			os.Args = append([]string{"test"}, tt.flags...)

			cfg, err := ParseFlags()

			if tt.want.shouldError {
				require.Error(t, err, "expected error but got none")
				assert.Contains(t, err.Error(), "cannot be negative")
				return
			}

			require.NoError(t, err, "unexpected error")

			assert.Equal(t, tt.want.serverAddress, cfg.ServerAddress, "server address mismatch")
			assert.Equal(t, tt.want.databaseDSN, cfg.DatabaseDSN, "database dsn mismatch")
			assert.Equal(t, tt.want.migrationsPath, cfg.MigrationsPath, "migrations path mismatch")
			assert.Equal(t, tt.want.secretKey, cfg.SecretKey, "secret key mismatch")
			assert.Equal(t, tt.want.perPage, cfg.PerPage, "per page mismatch")
			assert.Equal(t, tt.want.shopRoles, cfg.ShopRoles, "shop roles mismatch")
			assert.Equal(t, tt.want.teamRoles, cfg.TeamRoles, "team roles mismatch")
		})
	}
}
