package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order links one customer to one or more products. TotalAmount is derived
// from the products and is never written by callers.
type Order struct {
	ID          uint            `gorm:"primaryKey"                                           json:"id"`
	CustomerID  uint            `gorm:"not null;index"                                       json:"customer_id"`
	Customer    Customer        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"         json:"customer"`
	Products    []Product       `gorm:"many2many:order_products;constraint:OnDelete:CASCADE" json:"products"`
	OrderDate   time.Time       `gorm:"autoCreateTime;<-:create;index"                       json:"order_date"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"                          json:"total_amount"`
}

// SumPrices adds up the prices of products.
func SumPrices(products []Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}
	return total.Round(2)
}

// RecalculateTotal reloads the product association and writes the sum of
// its prices to total_amount. It must run after the association is set, so
// creating an order with products always costs two writes.
func (o *Order) RecalculateTotal(tx *gorm.DB) error {
	var products []Product
	if err := tx.Model(o).Association("Products").Find(&products); err != nil {
		return fmt.Errorf("order %d: load products: %w", o.ID, err)
	}

	o.Products = products
	o.TotalAmount = SumPrices(products)

	if err := tx.Model(o).UpdateColumn("total_amount", o.TotalAmount).Error; err != nil {
		return fmt.Errorf("order %d: save total: %w", o.ID, err)
	}
	return nil
}
