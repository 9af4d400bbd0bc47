package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATABASE_URL", "MONGO_DB_NAME", "LOG_LEVEL", "PORT", "KAFKA_BOOTSTRAP_SERVERS"} {
		t.Setenv(key, "")
	}
}

func TestLoadWithoutConfigFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	c, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, Defaults(), *c)
}

func TestLoadReadsYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yml := `
logging:
  level: debug
server:
  port: 9090
  shutdown_timeout: 3s
mongo:
  uri: mongodb://db:27017
  database: blogtest
cors:
  allowed_origins: ["https://example.com"]
events:
  enabled: true
  brokers: kafka:9092
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, CONFIG_FILE), []byte(yml), 0o644))

	c, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 3*time.Second, c.Server.ShutdownTimeout)
	assert.Equal(t, "mongodb://db:27017", c.Mongo.URI)
	assert.Equal(t, "blogtest", c.Mongo.Database)
	assert.Equal(t, "posts", c.Mongo.Collection)
	assert.Equal(t, []string{"https://example.com"}, c.CORS.AllowedOrigins)
	assert.True(t, c.Events.Enabled)
	assert.Equal(t, "blog.post.events", c.Events.Topic)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CONFIG_FILE), []byte("mongo:\n  uri: mongodb://file\n"), 0o644))

	t.Setenv("DATABASE_URL", "mongodb://env")
	t.Setenv("PORT", "7000")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092")

	c, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://env", c.Mongo.URI)
	assert.Equal(t, 7000, c.Server.Port)
	assert.True(t, c.Events.Enabled)
	assert.Equal(t, "localhost:9092", c.Events.Brokers)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "eighty")

	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CONFIG_FILE), []byte("server: [unterminated"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
