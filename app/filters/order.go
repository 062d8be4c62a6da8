package filters

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderFilter matches orders. Relation predicates are subqueries, so an
// order appears at most once however many products match.
type OrderFilter struct {
	TotalAmountGte *decimal.Decimal
	TotalAmountLte *decimal.Decimal
	OrderDateGte   *time.Time
	OrderDateLte   *time.Time
	CustomerName   *string
	ProductName    *string
	ProductID      *uint
}

func (f *OrderFilter) Apply(db *gorm.DB) *gorm.DB {
	if f == nil {
		return db
	}
	if f.TotalAmountGte != nil {
		db = db.Where("orders.total_amount >= ?", *f.TotalAmountGte)
	}
	if f.TotalAmountLte != nil {
		db = db.Where("orders.total_amount <= ?", *f.TotalAmountLte)
	}
	if f.OrderDateGte != nil {
		db = db.Where("orders.order_date >= ?", f.OrderDateGte.UTC())
	}
	if f.OrderDateLte != nil {
		db = db.Where("orders.order_date <= ?", f.OrderDateLte.UTC())
	}
	if hasText(f.CustomerName) {
		db = db.Where(
			"orders.customer_id IN (SELECT c.id FROM customers c WHERE LOWER(c.name) LIKE ? ESCAPE '!')",
			containsPattern(*f.CustomerName),
		)
	}
	if hasText(f.ProductName) {
		db = db.Where(
			"EXISTS (SELECT 1 FROM order_products op JOIN products p ON p.id = op.product_id"+
				" WHERE op.order_id = orders.id AND LOWER(p.name) LIKE ? ESCAPE '!')",
			containsPattern(*f.ProductName),
		)
	}
	if f.ProductID != nil {
		db = db.Where(
			"EXISTS (SELECT 1 FROM order_products op WHERE op.order_id = orders.id AND op.product_id = ?)",
			*f.ProductID,
		)
	}
	return db
}
