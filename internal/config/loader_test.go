package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnvWithDefault(t *testing.T) {
	out := expandEnv("host: ${TEST_UNSET_HOST:localhost}")
	assert.Equal(t, "host: localhost", out)
}

func TestExpandEnvFromEnvironment(t *testing.T) {
	t.Setenv("TEST_PG_HOST", "db.internal")

	out := expandEnv("host: ${TEST_PG_HOST:localhost}")
	assert.Equal(t, "host: db.internal", out)
}

func TestExpandEnvEnvWinsOverDefault(t *testing.T) {
	t.Setenv("TEST_PORT", "9000")

	out := expandEnv("port: ${TEST_PORT:8000}")
	assert.Equal(t, "port: 9000", out)
}

func TestExpandEnvNoDefaultUnset(t *testing.T) {
	// 未定义且无默认值时保留占位符，便于排查
	out := expandEnv("key: ${TEST_UNSET_NO_DEFAULT}")
	assert.Equal(t, "key: ${TEST_UNSET_NO_DEFAULT}", out)
}

func TestExpandEnvEmptyDefault(t *testing.T) {
	out := expandEnv("key: ${TEST_UNSET_EMPTY:}")
	assert.Equal(t, "key: ", out)
}

func TestExpandEnvDefaultWithColon(t *testing.T) {
	out := expandEnv("endpoint: ${TEST_UNSET_OTLP:localhost:4317}")
	assert.Equal(t, "endpoint: localhost:4317", out)
}

func TestExpandEnvMultiplePlaceholders(t *testing.T) {
	t.Setenv("TEST_USER", "finassist")

	out := expandEnv("dsn: ${TEST_USER:postgres}@${TEST_UNSET_DB_HOST:localhost}")
	assert.Equal(t, "dsn: finassist@localhost", out)
}
