/*
 * Copyright (c) 2025, OpenMesa (https://openmesa.dev).
 *
 * OpenMesa licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testConfigYAML = `
server:
  hostname: "localhost"
  port: 8090

database:
  runtime:
    type: "sqlite"
    path: "repository/database/runtimedb.db"
    options: "_journal_mode=WAL&_busy_timeout=5000"

redis:
  addr: "localhost:6379"
  db: 0

cache:
  disabled: false
  type: "inmemory"
  properties:
    - name: "TokenRecordCache"
      size: 10000
      ttl: 3600

response_cache:
  sliding_expiry_minutes: 30
  absolute_expiry_minutes: 60

blacklist:
  fast_tier_buffer_seconds: 60

jwt:
  issuer: "scaffold"
  validity_period: 3600
  refresh_token_validity: 86400
  secret: "file-secret"

user_store:
  default_user:
    username: "admin"
    password: "file-password"

cors:
  allowed_origins:
    - "https://localhost:3000"
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deployment.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTestConfig(t, testConfigYAML)

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Hostname)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Runtime.Type)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30, cfg.ResponseCache.SlidingExpiryMinutes)
	assert.Equal(t, 60, cfg.ResponseCache.AbsoluteExpiryMinutes)
	assert.Equal(t, 60, cfg.Blacklist.FastTierBufferSeconds)
	assert.Equal(t, "scaffold", cfg.JWT.Issuer)
	assert.Equal(t, int64(3600), cfg.JWT.ValidityPeriod)
	assert.Equal(t, "admin", cfg.UserStore.DefaultUser.Username)
	assert.Equal(t, []string{"https://localhost:3000"}, cfg.CORS.AllowedOrigins)

	if assert.Len(t, cfg.Cache.Properties, 1) {
		assert.Equal(t, "TokenRecordCache", cfg.Cache.Properties[0].Name)
		assert.Equal(t, 10000, cfg.Cache.Properties[0].Size)
		assert.Equal(t, 3600, cfg.Cache.Properties[0].TTL)
	}
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("DEFAULT_USER_PASSWORD", "env-password")

	path := writeTestConfig(t, testConfigYAML)

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, "env-password", cfg.UserStore.DefaultUser.Password)
}

func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeTestConfig(t, "server:\n  hostname: [unclosed")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestInitializeScaffoldRuntime(t *testing.T) {
	ResetScaffoldRuntime()
	defer ResetScaffoldRuntime()

	cfg := &Config{Server: ServerConfig{Hostname: "localhost", Port: 8090}}
	err := InitializeScaffoldRuntime("/tmp/scaffold/test", cfg)
	assert.NoError(t, err)

	runtime := GetScaffoldRuntime()
	assert.Equal(t, "/tmp/scaffold/test", runtime.ScaffoldHome)
	assert.Equal(t, 8090, runtime.Config.Server.Port)
}
