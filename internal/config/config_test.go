package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SECRET", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("SEED_ITEMS", "")

	c := Load()

	assert.Equal(t, "dev_secret", c.Secret)
	assert.Equal(t, "8080", c.HTTPPort)
	assert.Equal(t, "inventory.db", c.DatabaseDSN)
	assert.Equal(t, "", c.SeedItems)
}

func TestLoadInvalidPortFallsBack(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")

	c := Load()

	assert.Equal(t, "8080", c.HTTPPort)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SECRET", "supersecret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_DSN", "/tmp/stock.db")
	t.Setenv("SEED_ITEMS", "assets/items.csv")

	c := Load()

	assert.Equal(t, "supersecret", c.Secret)
	assert.Equal(t, "9090", c.HTTPPort)
	assert.Equal(t, "/tmp/stock.db", c.DatabaseDSN)
	assert.Equal(t, "assets/items.csv", c.SeedItems)
}
