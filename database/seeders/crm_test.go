package seeders_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/crm/app/models"
	"github.com/shashiranjanraj/crm/database/seeders"
	"github.com/shashiranjanraj/crm/internal/testdb"
)

func TestSeedCRMLoadsFixtures(t *testing.T) {
	db := testdb.New(t)

	require.NoError(t, seeders.SeedCRM(db))

	var customers []models.Customer
	require.NoError(t, db.Order("id").Find(&customers).Error)
	require.Len(t, customers, 3)
	assert.Equal(t, "alice@example.com", customers[0].Email)
	require.NotNil(t, customers[0].Phone)
	assert.Equal(t, "+1234567890", *customers[0].Phone)
	assert.Nil(t, customers[2].Phone)

	var products []models.Product
	require.NoError(t, db.Order("id").Find(&products).Error)
	require.Len(t, products, 2)
	assert.Equal(t, "Laptop", products[0].Name)
	assert.Equal(t, 20, products[1].Stock)

	var orders []models.Order
	require.NoError(t, db.Preload("Products").Find(&orders).Error)
	require.Len(t, orders, 1)
	assert.Equal(t, customers[0].ID, orders[0].CustomerID)
	assert.Len(t, orders[0].Products, 2)
	assert.Equal(t, "1499.98", orders[0].TotalAmount.StringFixed(2))
}

func TestSeedCRMIsRepeatable(t *testing.T) {
	db := testdb.New(t)

	require.NoError(t, seeders.SeedCRM(db))
	require.NoError(t, seeders.SeedCRM(db))

	var n int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&n).Error)
	assert.EqualValues(t, 3, n)
	require.NoError(t, db.Model(&models.Order{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
	require.NoError(t, db.Table("order_products").Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestRunAllReportsProgress(t *testing.T) {
	db := testdb.New(t)

	var out bytes.Buffer
	require.NoError(t, seeders.RunAll(db, &out))
	assert.Contains(t, out.String(), "Running seeder: crm")
	assert.Contains(t, out.String(), "done")
}
