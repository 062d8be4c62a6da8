package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm sentinel", fmt.Errorf("wrap: %w", gorm.ErrDuplicatedKey), true},
		{"sqlite", errors.New("UNIQUE constraint failed: customers.email"), true},
		{"postgres", errors.New(`ERROR: duplicate key value violates unique constraint "idx_customers_email"`), true},
		{"mysql", errors.New("Error 1062: Duplicate entry 'a@b.c' for key 'idx_customers_email'"), true},
		{"other", errors.New("FOREIGN KEY constraint failed"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsUniqueViolation(tc.err))
		})
	}
}

func TestWithSQLiteForeignKeys(t *testing.T) {
	assert.Equal(t, "crm.db?_foreign_keys=on", withSQLiteForeignKeys("crm.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", withSQLiteForeignKeys("file:x?mode=memory"))
	assert.Equal(t, "crm.db?_fk=1", withSQLiteForeignKeys("crm.db?_fk=1"))
}

func TestBuildDialectorRejectsUnknownDriver(t *testing.T) {
	_, err := buildDialector("oracle", "")
	assert.Error(t, err)
}

func TestOpenSQLiteInMemory(t *testing.T) {
	db, err := Open("sqlite", "file:open_test?mode=memory&cache=shared")
	require.NoError(t, err)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}
