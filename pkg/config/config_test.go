package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("DB_AUTO_MIGRATE", "")
	t.Setenv("JWT_KEY", "secret")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("JWT_AUDIENCE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "flashcards.db", cfg.DBDSN)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, "Flashcards.Api", cfg.JWTIssuer)
	assert.Equal(t, "Flashcards.Client", cfg.JWTAudience)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_DSN", "postgres://localhost/flashcards")
	t.Setenv("DB_AUTO_MIGRATE", "no")
	t.Setenv("JWT_KEY", "secret")
	t.Setenv("JWT_ISSUER", "iss")
	t.Setenv("JWT_AUDIENCE", "aud")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "postgres://localhost/flashcards", cfg.DBDSN)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, "iss", cfg.JWTIssuer)
	assert.Equal(t, "aud", cfg.JWTAudience)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_KEY")
	assert.Contains(t, err.Error(), "DB_DSN")
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	t.Setenv("JWT_KEY", "secret")

	_, err := Load()
	assert.ErrorContains(t, err, "oracle")
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\nFLASHCARDS_TEST_A=from-file\nFLASHCARDS_TEST_B = \"quoted\"\n\nnot-a-pair\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("FLASHCARDS_TEST_A", "already-set")
	os.Unsetenv("FLASHCARDS_TEST_B")
	t.Cleanup(func() { os.Unsetenv("FLASHCARDS_TEST_B") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "already-set", os.Getenv("FLASHCARDS_TEST_A"))
	assert.Equal(t, "quoted", os.Getenv("FLASHCARDS_TEST_B"))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}

func TestLoadDatabase_DoesNotNeedJWTKey(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_KEY", "")

	cfg, err := LoadDatabase()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "flashcards.db", cfg.DBDSN)

	t.Setenv("DB_DRIVER", "postgres")
	_, err = LoadDatabase()
	assert.ErrorContains(t, err, "DB_DSN")
}
