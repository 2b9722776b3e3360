package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewpaige1/flashcard-challenges/models"
)

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "0123456789abcdef0123")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_URL", "postgres://localhost/flashcards")
	t.Setenv("AUTH_AUDIENCE", "web, mobile")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.Auth.DevTokens)
	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "postgres://localhost/flashcards", cfg.DB.URL)
	assert.Equal(t, "flashcard-challenges", cfg.Auth.Issuer)
	assert.Equal(t, []string{"web", "mobile"}, cfg.Auth.Audience)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Contains(t, cfg.Categories, "history")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{}},
		{name: "short secret", env: map[string]string{"JWT_SECRET_KEY": "short"}},
		{name: "unknown driver", env: map[string]string{"JWT_SECRET_KEY": "0123456789abcdef0123", "DB_DRIVER": "mysql"}},
		{name: "unknown env", env: map[string]string{"JWT_SECRET_KEY": "0123456789abcdef0123", "APP_ENV": "staging"}},
		{name: "dev tokens in production", env: map[string]string{"JWT_SECRET_KEY": "0123456789abcdef0123", "APP_ENV": "production", "AUTH_DEV_TOKENS": "true"}},
		{name: "dev tokens without env", env: map[string]string{"JWT_SECRET_KEY": "0123456789abcdef0123", "APP_ENV": "test", "AUTH_DEV_TOKENS": "true"}},
		{name: "bad port", env: map[string]string{"JWT_SECRET_KEY": "0123456789abcdef0123", "PORT": "http"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestConnectAndSeed(t *testing.T) {
	t.Parallel()

	db, err := Connect(DBConfig{Driver: "sqlite", URL: filepath.Join(t.TempDir(), "nested", "seed.db"), MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	names := []string{"history", "science"}
	require.NoError(t, SeedCategories(db, names))
	require.NoError(t, SeedCategories(db, append(names, "art")))

	var categories []models.Category
	require.NoError(t, db.Order("name").Find(&categories).Error)
	require.Len(t, categories, 3)
	assert.Equal(t, "art", categories[0].Name)

	_, err = Connect(DBConfig{Driver: "oracle", URL: "x"})
	assert.Error(t, err)
}
