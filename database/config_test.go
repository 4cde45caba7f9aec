/*
 * Copyright 2025 JohnyYen.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "database.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
connection_config:
  type: sqlite
  dbname: app
  max_open_conns: 5
  conn_max_lifetime: 45m
  connect_timeout: 10s
  slow_query_time: 250ms
bootstrap_config:
  create_tables_on_startup: true
`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	conn := cfg.ConnectionConfig
	assert.Equal(t, "sqlite", conn.Type)
	assert.Equal(t, "app", conn.DBName)
	assert.Equal(t, 5, conn.MaxOpenConns)
	assert.Equal(t, 45*time.Minute, conn.ConnMaxLifetime)
	assert.Equal(t, 10*time.Second, conn.ConnectTimeout)
	assert.Equal(t, 250*time.Millisecond, conn.SlowQueryTime)
	assert.True(t, cfg.BootstrapConfig.CreateTablesOnStartup)
}

func TestLoadConfig_KeepsDefaultsForOmittedFields(t *testing.T) {
	path := writeConfigFile(t, `
connection_config:
  type: postgres
  host: db.internal
  port: 5432
`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	defaults := DefaultConnectionConfig()
	conn := cfg.ConnectionConfig
	assert.Equal(t, "postgres", conn.Type)
	assert.Equal(t, "db.internal", conn.Host)
	assert.Equal(t, 5432, conn.Port)
	assert.Equal(t, defaults.MaxIdleConns, conn.MaxIdleConns)
	assert.Equal(t, defaults.MaxOpenConns, conn.MaxOpenConns)
	assert.Equal(t, defaults.HealthCheckInterval, conn.HealthCheckInterval)
	assert.Equal(t, defaults.ReconnectInterval, conn.ReconnectInterval)
	assert.True(t, conn.EnableReconnect)
	assert.False(t, cfg.BootstrapConfig.CreateTablesOnStartup)
}

func TestLoadConfig_ExplicitFalseOverridesDefault(t *testing.T) {
	path := writeConfigFile(t, `
connection_config:
  type: sqlite
  enable_reconnect: false
`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.False(t, cfg.ConnectionConfig.EnableReconnect)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	path := writeConfigFile(t, `
connection_config:
  type: sqlite
  conn_max_lifetime: banana
`)

	_, err := LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid duration "banana"`)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestDefaultConnectionConfig(t *testing.T) {
	cfg := DefaultConnectionConfig()

	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 100, cfg.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.ConnMaxLifetime)
	assert.Equal(t, 5*time.Minute, cfg.HealthCheckInterval)
	assert.Equal(t, 2*time.Second, cfg.SlowQueryTime)
	assert.True(t, cfg.EnableReconnect)
	assert.False(t, cfg.EnableQueryLog)
}
