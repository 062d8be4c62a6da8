// Package testdb opens a migrated in-memory sqlite database for tests.
package testdb

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/shashiranjanraj/crm/database/migrations"
	"github.com/shashiranjanraj/crm/pkg/database"
	"github.com/shashiranjanraj/crm/pkg/migration"
)

// New returns a fresh database private to t. The pool is pinned to one
// connection so the in-memory database lives as long as the test; code
// under test must therefore use the tx handle inside transactions.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:crm_%s?mode=memory", strings.ReplaceAll(uuid.NewString(), "-", ""))

	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.New(db).Quiet().Run())
	return db
}
