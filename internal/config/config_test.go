package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for the installed Go 1.21 toolchain.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoadFromEnvOnly(t *testing.T) {
	// Secrets normally arrive via env with no config file present.
	chdir(t, t.TempDir())
	t.Setenv("FT_JWT_SECRET", "env-only-secret")
	t.Setenv("FT_DATABASE_PASSWORD", "env-only-password")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-only-secret", cfg.JWT.Secret)
	assert.Equal(t, "env-only-password", cfg.Database.Password)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "faithtracker", cfg.Database.Name)
}

func TestLoadEnvOverridesDefault(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FT_JWT_SECRET", "secret")
	t.Setenv("FT_SERVER_PORT", "9000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db.local",
		Port:     5432,
		User:     "postgres",
		Password: "pw",
		Name:     "faithtracker",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"postgres://postgres:pw@db.local:5432/faithtracker?sslmode=disable",
		db.DSN(),
	)
}
