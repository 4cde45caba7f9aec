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
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/yaml.v3"
)

// AbstractDatabaseManager defines the operations for managing a database
// connection, bootstrapping registered tables, and reporting health.
type AbstractDatabaseManager interface {
	Connect(ctx context.Context) error
	Disconnect() error
	Reconnect(ctx context.Context) error
	Ping(ctx context.Context) error
	HealthCheck(ctx context.Context) *HealthStatus
	GetDB() *bun.DB
	GetSQLDB() *sql.DB
	CreateTables(ctx context.Context) error
	DropTables(ctx context.Context) error
	GetStats() *DBStats
	SetLogger(logger Logger)
}

// HealthStatus holds the result of a health check against the database.
type HealthStatus struct {
	Healthy       bool          `json:"healthy"`
	Connected     bool          `json:"connected"`
	ResponseTime  time.Duration `json:"response_time"`
	ActiveConns   int           `json:"active_conns"`
	IdleConns     int           `json:"idle_conns"`
	MaxOpenConns  int           `json:"max_open_conns"`
	LastError     string        `json:"last_error,omitempty"`
	LastCheckTime time.Time     `json:"last_check_time"`
}

// DBStats mirrors database/sql stats returned by the manager.
type DBStats struct {
	MaxOpenConns      int           `json:"max_open_conns"`
	OpenConns         int           `json:"open_conns"`
	InUse             int           `json:"in_use"`
	Idle              int           `json:"idle"`
	WaitCount         int64         `json:"wait_count"`
	WaitDuration      time.Duration `json:"wait_duration"`
	MaxIdleClosed     int64         `json:"max_idle_closed"`
	MaxIdleTimeClosed int64         `json:"max_idle_time_closed"`
	MaxLifetimeClosed int64         `json:"max_lifetime_closed"`
}

// ConnectionConfig describes how to connect to a database and tune its pool.
type ConnectionConfig struct {
	Type                string        `json:"type"` // postgres, mysql, sqlite
	Host                string        `json:"host"`
	Port                int           `json:"port"`
	Username            string        `json:"username"`
	Password            string        `json:"password"`
	DBName              string        `json:"dbname"`
	SSLMode             string        `json:"sslmode"`
	MaxIdleConns        int           `json:"max_idle_conns"`
	MaxOpenConns        int           `json:"max_open_conns"`
	ConnMaxLifetime     time.Duration `json:"conn_max_lifetime"`
	ConnMaxIdleTime     time.Duration `json:"conn_max_idle_time"`
	ConnectTimeout      time.Duration `json:"connect_timeout"`
	ReadTimeout         time.Duration `json:"read_timeout"`
	WriteTimeout        time.Duration `json:"write_timeout"`
	EnableReconnect     bool          `json:"enable_reconnect"`
	ReconnectInterval   time.Duration `json:"reconnect_interval"`
	MaxReconnectTries   int           `json:"max_reconnect_tries"`
	HealthCheckInterval time.Duration `json:"health_check_interval"`
	EnableQueryLog      bool          `json:"enable_query_log"`
	SlowQueryTime       time.Duration `json:"slow_query_time"`
}

// UnmarshalYAML decodes a connection config from YAML. Duration fields use
// Go duration syntax ("30s", "5m"); omitted fields keep their current values
// so defaults survive a partial configuration file.
func (c *ConnectionConfig) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Type                string `yaml:"type"`
		Host                string `yaml:"host"`
		Port                *int   `yaml:"port"`
		Username            string `yaml:"username"`
		Password            string `yaml:"password"`
		DBName              string `yaml:"dbname"`
		SSLMode             string `yaml:"sslmode"`
		MaxIdleConns        *int   `yaml:"max_idle_conns"`
		MaxOpenConns        *int   `yaml:"max_open_conns"`
		ConnMaxLifetime     string `yaml:"conn_max_lifetime"`
		ConnMaxIdleTime     string `yaml:"conn_max_idle_time"`
		ConnectTimeout      string `yaml:"connect_timeout"`
		ReadTimeout         string `yaml:"read_timeout"`
		WriteTimeout        string `yaml:"write_timeout"`
		EnableReconnect     *bool  `yaml:"enable_reconnect"`
		ReconnectInterval   string `yaml:"reconnect_interval"`
		MaxReconnectTries   *int   `yaml:"max_reconnect_tries"`
		HealthCheckInterval string `yaml:"health_check_interval"`
		EnableQueryLog      *bool  `yaml:"enable_query_log"`
		SlowQueryTime       string `yaml:"slow_query_time"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	if raw.Type != "" {
		c.Type = raw.Type
	}
	if raw.Host != "" {
		c.Host = raw.Host
	}
	if raw.Port != nil {
		c.Port = *raw.Port
	}
	if raw.Username != "" {
		c.Username = raw.Username
	}
	if raw.Password != "" {
		c.Password = raw.Password
	}
	if raw.DBName != "" {
		c.DBName = raw.DBName
	}
	if raw.SSLMode != "" {
		c.SSLMode = raw.SSLMode
	}
	if raw.MaxIdleConns != nil {
		c.MaxIdleConns = *raw.MaxIdleConns
	}
	if raw.MaxOpenConns != nil {
		c.MaxOpenConns = *raw.MaxOpenConns
	}
	if raw.MaxReconnectTries != nil {
		c.MaxReconnectTries = *raw.MaxReconnectTries
	}
	if raw.EnableReconnect != nil {
		c.EnableReconnect = *raw.EnableReconnect
	}
	if raw.EnableQueryLog != nil {
		c.EnableQueryLog = *raw.EnableQueryLog
	}

	durations := []struct {
		dst *time.Duration
		src string
	}{
		{&c.ConnMaxLifetime, raw.ConnMaxLifetime},
		{&c.ConnMaxIdleTime, raw.ConnMaxIdleTime},
		{&c.ConnectTimeout, raw.ConnectTimeout},
		{&c.ReadTimeout, raw.ReadTimeout},
		{&c.WriteTimeout, raw.WriteTimeout},
		{&c.ReconnectInterval, raw.ReconnectInterval},
		{&c.HealthCheckInterval, raw.HealthCheckInterval},
		{&c.SlowQueryTime, raw.SlowQueryTime},
	}
	for _, d := range durations {
		if err := setDuration(d.dst, d.src); err != nil {
			return err
		}
	}
	return nil
}

func setDuration(dst *time.Duration, src string) error {
	if src == "" {
		return nil
	}
	d, err := time.ParseDuration(src)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", src, err)
	}
	*dst = d
	return nil
}

// BootstrapConfig controls table bootstrapping on startup.
type BootstrapConfig struct {
	CreateTablesOnStartup bool `json:"create_tables_on_startup" yaml:"create_tables_on_startup"`
}

// Config aggregates connection and bootstrap settings.
type Config struct {
	ConnectionConfig ConnectionConfig `json:"connection_config" yaml:"connection_config"`
	BootstrapConfig  BootstrapConfig  `json:"bootstrap_config" yaml:"bootstrap_config"`
}

// DefaultConnectionConfig returns a connection config with sensible defaults.
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		MaxIdleConns:        10,
		MaxOpenConns:        100,
		ConnMaxLifetime:     time.Hour,
		ConnMaxIdleTime:     time.Minute * 30,
		ConnectTimeout:      time.Second * 10,
		ReadTimeout:         time.Second * 30,
		WriteTimeout:        time.Second * 30,
		EnableReconnect:     true,
		ReconnectInterval:   time.Second * 5,
		MaxReconnectTries:   3,
		HealthCheckInterval: time.Minute * 5,
		EnableQueryLog:      false,
		SlowQueryTime:       time.Second * 2,
	}
}

// LoadConfig reads a Config from a YAML file, starting from the default
// connection settings so the file only needs to override what differs.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{ConnectionConfig: *DefaultConnectionConfig()}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}
