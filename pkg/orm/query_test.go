package orm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/crm/app/models"
	"github.com/shashiranjanraj/crm/internal/testdb"
	"github.com/shashiranjanraj/crm/pkg/orm"
)

func seedProducts(t *testing.T, q *orm.Query, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, q.Create(&models.Product{Name: "P", Price: decimal.NewFromInt(int64(i + 1)), Stock: i}))
	}
}

func TestSessionAllowsCountThenFetch(t *testing.T) {
	q := orm.New(testdb.New(t))
	seedProducts(t, q, 5)

	base := q.WithContext(context.Background()).Model(&models.Product{}).Where("stock >= ?", 2).Session()

	n, err := base.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	var page []models.Product
	require.NoError(t, base.Order("id").Page(1, 1).Get(&page))
	require.Len(t, page, 1)
	assert.Equal(t, 3, page[0].Stock)
}

func TestPageWithoutLimitReturnsAll(t *testing.T) {
	q := orm.New(testdb.New(t))
	seedProducts(t, q, 4)

	var all []models.Product
	require.NoError(t, q.Model(&models.Product{}).Page(0, 0).Get(&all))
	assert.Len(t, all, 4)
}

func TestTransactionRollsBack(t *testing.T) {
	q := orm.New(testdb.New(t))

	boom := errors.New("boom")
	err := q.Transaction(func(tx *orm.Query) error {
		require.NoError(t, tx.Create(&models.Product{Name: "P", Price: decimal.NewFromInt(1)}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var p models.Product
	assert.ErrorIs(t, q.Model(&models.Product{}).First(&p), gorm.ErrRecordNotFound)
}
