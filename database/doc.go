// Package database provides connection management for MySQL, Postgres, and
// SQLite on top of Bun, including configuration loading, health checks,
// reconnection, query logging hooks, model registration, and table
// bootstrap helpers.
package database
