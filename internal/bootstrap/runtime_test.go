package bootstrap

import (
	"context"
	"testing"

	"folio/internal/auth"
	"folio/internal/config"
	"folio/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:         "test",
		DBDriver:    "sqlite",
		DatabaseURL: "file::memory:",
	}
}

func TestInitRuntime_WithoutRedis(t *testing.T) {
	rt, err := InitRuntime(testConfig(), Options{})
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close(context.Background()) })

	require.NotNil(t, rt.DB)
	assert.False(t, rt.Cache.Enabled())
	assert.True(t, rt.DB.Migrator().HasTable("articles"))
}

func TestInitRuntime_ConnectsRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.RedisURL = mr.Addr()

	rt, err := InitRuntime(cfg, Options{SkipTracing: true})
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close(context.Background()) })

	assert.True(t, rt.Cache.Enabled())
	assert.NoError(t, rt.Cache.Ping(context.Background()))
}

func TestInitRuntime_EnsureAdmin(t *testing.T) {
	cfg := testConfig()
	cfg.AdminEmail = "owner@example.com"
	cfg.AdminPassword = "secret123"
	cfg.AdminName = "Owner"

	rt, err := InitRuntime(cfg, Options{EnsureAdmin: true})
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close(context.Background()) })

	var user models.User
	require.NoError(t, rt.DB.Where("email = ?", "owner@example.com").First(&user).Error)
	assert.Equal(t, "Owner", user.Name)
	assert.NoError(t, auth.NewBcryptHasher().Compare(user.Password, "secret123"))
}

func TestInitRuntime_EnsureAdminSkippedWithoutCredentials(t *testing.T) {
	rt, err := InitRuntime(testConfig(), Options{EnsureAdmin: true})
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close(context.Background()) })

	var count int64
	require.NoError(t, rt.DB.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
