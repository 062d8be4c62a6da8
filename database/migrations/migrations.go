// Package migrations contains all database migration files.
// Each migration file uses init() to call migration.Register().
// This package is imported by cmd/crm and internal/testdb so every
// migration is registered before the runner starts.
package migrations
