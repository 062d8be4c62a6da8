package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/crm/pkg/validate"
)

// LowStockThreshold is the stock level below which a product counts as low.
const LowStockThreshold = 10

// Price column bounds, matching decimal(10,2).
const (
	PricePlaces = 2
	PriceDigits = 10
)

var maxPrice = decimal.New(1, PriceDigits-PricePlaces)

// Product represents a product in the catalogue.
type Product struct {
	ID    uint            `gorm:"primaryKey"                 json:"id"`
	Name  string          `gorm:"size:255;not null;index"    json:"name"  validate:"required,max=255"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock int             `gorm:"not null"                   json:"stock"`
}

// Validate enforces price > 0 within decimal(10,2) and stock >= 0.
func (p *Product) Validate() error {
	if !p.Price.IsPositive() {
		return &ValidationError{Field: "price", Message: MsgPriceNotPositive}
	}
	if !p.Price.Equal(p.Price.Round(PricePlaces)) {
		return &ValidationError{Field: "price", Message: MsgPricePlaces}
	}
	if p.Price.GreaterThanOrEqual(maxPrice) {
		return &ValidationError{Field: "price", Message: MsgPriceDigits}
	}
	if p.Stock < 0 {
		return &ValidationError{Field: "stock", Message: MsgNegativeStock}
	}
	if errs := validate.Struct(p); validate.HasErrors(errs) {
		field, msg := errs.First()
		return &ValidationError{Field: field, Message: msg}
	}
	return nil
}

// BeforeSave runs Validate on every create and save.
func (p *Product) BeforeSave(*gorm.DB) error {
	return p.Validate()
}

// IsLowStock reports whether the product is under LowStockThreshold.
func (p *Product) IsLowStock() bool {
	return p.Stock < LowStockThreshold
}
