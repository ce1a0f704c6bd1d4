package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvPrecedence(t *testing.T) {
	Env = map[string]string{"APP_NAME": "from-file"}
	t.Cleanup(func() { Env = nil })
	t.Setenv("APP_NAME", "from-os")
	t.Setenv("CACHE_HOST", "redis-host")

	assert.Equal(t, "from-file", GetEnv("APP_NAME", "def"))
	assert.Equal(t, "redis-host", GetEnv("CACHE_HOST", "def"))
	assert.Equal(t, "def", GetEnv("MISSING_KEY", "def"))
}

func TestIsDev(t *testing.T) {
	Env = nil
	t.Setenv("APP_ENV", "dev")
	assert.True(t, IsDev())

	t.Setenv("APP_ENV", "prod")
	assert.False(t, IsDev())
}
