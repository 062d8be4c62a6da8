package filters

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/crm/app/models"
)

type ProductFilter struct {
	Name     *string
	PriceGte *decimal.Decimal
	PriceLte *decimal.Decimal
	StockGte *int
	StockLte *int
	// LowStock restricts to stock below models.LowStockThreshold when true.
	// False is the same as unset.
	LowStock *bool
}

func (f *ProductFilter) Apply(db *gorm.DB) *gorm.DB {
	if f == nil {
		return db
	}
	if hasText(f.Name) {
		db = db.Where("LOWER(products.name) LIKE ? ESCAPE '!'", containsPattern(*f.Name))
	}
	if f.PriceGte != nil {
		db = db.Where("products.price >= ?", *f.PriceGte)
	}
	if f.PriceLte != nil {
		db = db.Where("products.price <= ?", *f.PriceLte)
	}
	if f.StockGte != nil {
		db = db.Where("products.stock >= ?", *f.StockGte)
	}
	if f.StockLte != nil {
		db = db.Where("products.stock <= ?", *f.StockLte)
	}
	if f.LowStock != nil && *f.LowStock {
		db = db.Where("products.stock < ?", models.LowStockThreshold)
	}
	return db
}
