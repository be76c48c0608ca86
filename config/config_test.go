package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Server:  ServerConfig{Host: "0.0.0.0", Port: 8080},
		Backend: BackendMemory,
		Auth:    AuthConfig{JWTSecret: "0123456789abcdef", SessionTTL: time.Hour},
		Retry:   RetryConfig{Attempts: 3, InitialDelay: time.Second},
		Board:   BoardConfig{DragTimeout: time.Minute},
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("BACKEND", "memory")
	t.Setenv("AUTH_JWT_SECRET", "a-very-long-test-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RETRY_ATTEMPTS", "5")

	cfg, err := NewConfig()
	require.NoError(t, err)
	require.Equal(t, BackendMemory, cfg.Backend)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, 5, cfg.Retry.Attempts)
	require.Equal(t, time.Second, cfg.Retry.InitialDelay)
	require.Equal(t, 30*time.Second, cfg.Board.DragTimeout)
	require.Equal(t, "0.0.0.0:9090", cfg.ServerAddr())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{name: "memory", mutate: func(*Config) {}, ok: true},
		{name: "unknown backend", mutate: func(c *Config) { c.Backend = "mongo" }},
		{name: "short secret", mutate: func(c *Config) { c.Auth.JWTSecret = "short" }},
		{name: "negative retries", mutate: func(c *Config) { c.Retry.Attempts = -1 }},
		{name: "sqlite without path", mutate: func(c *Config) { c.Backend = BackendSQLite }},
		{name: "postgres without host", mutate: func(c *Config) {
			c.Backend = BackendPostgres
			c.Postgres = PostgresConfig{User: "u", Password: "p", DBName: "db"}
		}},
		{name: "no port", mutate: func(c *Config) { c.Server.Port = 0 }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	pg := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "tracker", SSLMode: "disable"}
	require.Equal(t, "host=db port=5432 user=u password=p dbname=tracker sslmode=disable", pg.DSN())

	lite := SQLiteConfig{Path: "/tmp/t.db"}
	require.Contains(t, lite.DSN(), "/tmp/t.db?_pragma=journal_mode(wal)")
}
