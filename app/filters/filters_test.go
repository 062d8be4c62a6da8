package filters_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/crm/app/filters"
	"github.com/shashiranjanraj/crm/app/models"
	"github.com/shashiranjanraj/crm/internal/testdb"
)

func ptr[T any](v T) *T { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	db        *gorm.DB
	customers map[string]models.Customer
	products  map[string]models.Product
	orders    []models.Order
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.New(t)
	f := &fixture{db: db, customers: map[string]models.Customer{}, products: map[string]models.Product{}}

	for _, c := range []models.Customer{
		{Name: "Alice Smith", Email: "alice@example.com", Phone: ptr("+11234567890")},
		{Name: "Bob Jones", Email: "bob@Example.org", Phone: ptr("44-1234567890")},
		{Name: "100% Carol", Email: "carol_c@example.com"},
	} {
		require.NoError(t, db.Create(&c).Error)
		f.customers[c.Name] = c
	}

	for _, p := range []models.Product{
		{Name: "Laptop", Price: dec("999.99"), Stock: 9},
		{Name: "Laptop Bag", Price: dec("49.50"), Stock: 10},
		{Name: "Phone", Price: dec("499.99"), Stock: 11},
	} {
		require.NoError(t, db.Create(&p).Error)
		f.products[p.Name] = p
	}

	f.order(t, "Alice Smith", "Laptop", "Laptop Bag")
	f.order(t, "Alice Smith", "Phone")
	f.order(t, "Bob Jones", "Laptop Bag")
	return f
}

func (f *fixture) order(t *testing.T, customer string, products ...string) {
	t.Helper()
	var ps []models.Product
	for _, name := range products {
		ps = append(ps, f.products[name])
	}
	o := models.Order{CustomerID: f.customers[customer].ID}
	require.NoError(t, f.db.Omit(clause.Associations).Create(&o).Error)
	require.NoError(t, f.db.Model(&o).Association("Products").Replace(ps))
	require.NoError(t, o.RecalculateTotal(f.db))
	f.orders = append(f.orders, o)
}

func customerNames(t *testing.T, db *gorm.DB, flt *filters.CustomerFilter) []string {
	t.Helper()
	var out []models.Customer
	require.NoError(t, flt.Apply(db.Model(&models.Customer{})).Order("id").Find(&out).Error)
	names := make([]string, 0, len(out))
	for _, c := range out {
		names = append(names, c.Name)
	}
	return names
}

func productNames(t *testing.T, db *gorm.DB, flt *filters.ProductFilter) []string {
	t.Helper()
	var out []models.Product
	require.NoError(t, flt.Apply(db.Model(&models.Product{})).Order("id").Find(&out).Error)
	names := make([]string, 0, len(out))
	for _, p := range out {
		names = append(names, p.Name)
	}
	return names
}

func orderIDs(t *testing.T, db *gorm.DB, flt *filters.OrderFilter) []uint {
	t.Helper()
	var out []models.Order
	require.NoError(t, flt.Apply(db.Model(&models.Order{})).Order("id").Find(&out).Error)
	ids := make([]uint, 0, len(out))
	for _, o := range out {
		ids = append(ids, o.ID)
	}
	return ids
}

func TestCustomerFilter(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []string{"Alice Smith", "Bob Jones", "100% Carol"}, customerNames(t, f.db, nil))
	assert.Equal(t, []string{"Alice Smith"}, customerNames(t, f.db, &filters.CustomerFilter{Name: ptr("ALICE")}))
	assert.Equal(t, []string{"Bob Jones"}, customerNames(t, f.db, &filters.CustomerFilter{Email: ptr("example.ORG")}))
	assert.Equal(t, []string{"Alice Smith"}, customerNames(t, f.db, &filters.CustomerFilter{PhonePattern: ptr("+1")}))
	assert.Empty(t, customerNames(t, f.db, &filters.CustomerFilter{PhonePattern: ptr("123")}))
}

func TestEmptyTextFiltersMatchEverything(t *testing.T) {
	f := newFixture(t)
	empty := ptr("")

	// Carol has no phone and must still be listed.
	assert.Len(t, customerNames(t, f.db, &filters.CustomerFilter{PhonePattern: empty}), 3)
	assert.Len(t, customerNames(t, f.db, &filters.CustomerFilter{Name: empty, Email: empty}), 3)
	assert.Len(t, productNames(t, f.db, &filters.ProductFilter{Name: empty}), 3)
	assert.Len(t, orderIDs(t, f.db, &filters.OrderFilter{CustomerName: empty, ProductName: empty}), 3)
}

func TestCustomerFilterEscapesWildcards(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []string{"100% Carol"}, customerNames(t, f.db, &filters.CustomerFilter{Name: ptr("100%")}))
	assert.Equal(t, []string{"100% Carol"}, customerNames(t, f.db, &filters.CustomerFilter{Email: ptr("carol_")}))
	assert.Empty(t, customerNames(t, f.db, &filters.CustomerFilter{Name: ptr("_")}))
}

func TestCustomerFilterCreatedAtRange(t *testing.T) {
	f := newFixture(t)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	assert.Len(t, customerNames(t, f.db, &filters.CustomerFilter{CreatedAtGte: &past, CreatedAtLte: &future}), 3)
	assert.Empty(t, customerNames(t, f.db, &filters.CustomerFilter{CreatedAtGte: &future}))
	assert.Empty(t, customerNames(t, f.db, &filters.CustomerFilter{CreatedAtLte: &past}))
}

func TestProductFilter(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []string{"Laptop", "Laptop Bag"}, productNames(t, f.db, &filters.ProductFilter{Name: ptr("lap")}))
	assert.Equal(t, []string{"Laptop Bag", "Phone"}, productNames(t, f.db, &filters.ProductFilter{PriceLte: ptr(dec("499.99"))}))
	assert.Equal(t, []string{"Laptop", "Phone"}, productNames(t, f.db, &filters.ProductFilter{PriceGte: ptr(dec("499.99"))}))
	assert.Equal(t, []string{"Laptop Bag"}, productNames(t, f.db, &filters.ProductFilter{StockGte: ptr(10), StockLte: ptr(10)}))
}

func TestProductFilterLowStockBoundary(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []string{"Laptop"}, productNames(t, f.db, &filters.ProductFilter{LowStock: ptr(true)}))
	assert.Len(t, productNames(t, f.db, &filters.ProductFilter{LowStock: ptr(false)}), 3)
}

func TestOrderFilterRelations(t *testing.T) {
	f := newFixture(t)
	o1, o2, o3 := f.orders[0].ID, f.orders[1].ID, f.orders[2].ID

	assert.Equal(t, []uint{o1, o2}, orderIDs(t, f.db, &filters.OrderFilter{CustomerName: ptr("alice")}))
	// Order 1 holds two matching products but is returned once.
	assert.Equal(t, []uint{o1, o3}, orderIDs(t, f.db, &filters.OrderFilter{ProductName: ptr("laptop")}))
	assert.Equal(t, []uint{o2}, orderIDs(t, f.db, &filters.OrderFilter{ProductID: ptr(f.products["Phone"].ID)}))
	assert.Equal(t, []uint{o1}, orderIDs(t, f.db, &filters.OrderFilter{
		CustomerName: ptr("alice"),
		ProductName:  ptr("bag"),
	}))
}

func TestOrderFilterTotals(t *testing.T) {
	f := newFixture(t)
	o1, o2, o3 := f.orders[0].ID, f.orders[1].ID, f.orders[2].ID

	assert.Equal(t, "1049.49", f.orders[0].TotalAmount.StringFixed(2))
	assert.Equal(t, []uint{o1}, orderIDs(t, f.db, &filters.OrderFilter{TotalAmountGte: ptr(dec("1000"))}))
	assert.Equal(t, []uint{o2, o3}, orderIDs(t, f.db, &filters.OrderFilter{TotalAmountLte: ptr(dec("499.99"))}))

	past := time.Now().Add(-time.Hour)
	assert.Len(t, orderIDs(t, f.db, &filters.OrderFilter{OrderDateGte: &past}), 3)
}

func TestSortingScope(t *testing.T) {
	f := newFixture(t)

	scope, err := filters.ProductSorting.Scope([]string{"PRICE_DESC"})
	require.NoError(t, err)
	var out []models.Product
	require.NoError(t, f.db.Scopes(scope).Find(&out).Error)
	require.Len(t, out, 3)
	assert.Equal(t, "Laptop", out[0].Name)
	assert.Equal(t, "Laptop Bag", out[2].Name)

	_, err = filters.ProductSorting.Scope([]string{"COLOR"})
	assert.Error(t, err)
}

func TestSortingTieBreaksOnID(t *testing.T) {
	db := testdb.New(t)
	for _, name := range []string{"Same", "Same", "Same"} {
		require.NoError(t, db.Create(&models.Product{Name: name, Price: dec("1"), Stock: 1}).Error)
	}

	scope, err := filters.ProductSorting.Scope([]string{"NAME_DESC"})
	require.NoError(t, err)
	var out []models.Product
	require.NoError(t, db.Scopes(scope).Find(&out).Error)
	require.Len(t, out, 3)
	assert.True(t, out[0].ID < out[1].ID && out[1].ID < out[2].ID)
}

func TestSortingValues(t *testing.T) {
	assert.Equal(t,
		[]string{"ID", "ID_DESC", "ORDER_DATE", "ORDER_DATE_DESC", "TOTAL_AMOUNT", "TOTAL_AMOUNT_DESC"},
		filters.OrderSorting.Values(),
	)
}
