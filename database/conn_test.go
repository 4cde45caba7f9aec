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
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_NilConfig(t *testing.T) {
	_, err := InitDB(nil)
	assert.EqualError(t, err, "database configuration cannot be empty")

	_, err = InitDatabaseWithOptions(nil, false)
	assert.EqualError(t, err, "database configuration cannot be empty")
}

func TestGlobalDatabase_Lifecycle(t *testing.T) {
	cfg := &Config{ConnectionConfig: *DefaultConnectionConfig()}
	cfg.ConnectionConfig.Type = "sqlite"
	cfg.ConnectionConfig.DBName = filepath.Join(t.TempDir(), "global_test")
	cfg.ConnectionConfig.HealthCheckInterval = 0
	cfg.BootstrapConfig.CreateTablesOnStartup = true
	ctx := context.Background()

	db, err := InitDB(cfg)
	require.NoError(t, err)
	require.NotNil(t, db)
	t.Cleanup(func() { _ = CloseDB() })

	assert.Same(t, db, GetDB())
	assert.NotNil(t, GetDatabaseManager())
	assert.NotNil(t, GetDatabaseFactory())

	status := GetHealthStatus(ctx)
	assert.True(t, status.Healthy)

	stats := GetDatabaseStats()
	assert.Equal(t, cfg.ConnectionConfig.MaxOpenConns, stats.MaxOpenConns)

	require.NoError(t, CreateTables(ctx))
	require.NoError(t, DropTables(ctx))

	require.NoError(t, CloseDB())
	assert.Nil(t, GetDB())
}

func TestGlobalDatabase_InitFailureKeepsError(t *testing.T) {
	cfg := &Config{ConnectionConfig: *DefaultConnectionConfig()}
	cfg.ConnectionConfig.Type = "oracle"

	_, err := InitDB(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create database manager")
	assert.Contains(t, err.Error(), "unsupported database type: oracle")
}
