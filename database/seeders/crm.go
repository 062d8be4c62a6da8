package seeders

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/crm/app/models"
)

// SeededMessage is printed by `crm seed` once every seeder has run.
const SeededMessage = "Database seeded successfully!"

func init() {
	Register("crm", SeedCRM)
}

func strPtr(s string) *string { return &s }

// Fixtures returns the demo customers and products in insertion order.
func Fixtures() ([]models.Customer, []models.Product) {
	customers := []models.Customer{
		{Name: "Alice", Email: "alice@example.com", Phone: strPtr("+1234567890")},
		{Name: "Bob", Email: "bob@example.com", Phone: strPtr("123-456-7890")},
		{Name: "Carol", Email: "carol@example.com"},
	}
	products := []models.Product{
		{Name: "Laptop", Price: decimal.RequireFromString("999.99"), Stock: 10},
		{Name: "Phone", Price: decimal.RequireFromString("499.99"), Stock: 20},
	}
	return customers, products
}

// SeedCRM wipes orders, products and customers and loads the demo data set:
// three customers, two products and one order for the first customer
// containing both products.
//
// The fixture phone numbers do not pass the phone rule, so customers are
// inserted with hooks skipped.
func SeedCRM(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM order_products").Error; err != nil {
			return fmt.Errorf("clear order_products: %w", err)
		}
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []interface{}{&models.Order{}, &models.Product{}, &models.Customer{}} {
			if err := wipe.Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}

		customers, products := Fixtures()

		if err := tx.Session(&gorm.Session{SkipHooks: true}).Create(&customers).Error; err != nil {
			return fmt.Errorf("insert customers: %w", err)
		}
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("insert products: %w", err)
		}

		order := models.Order{CustomerID: customers[0].ID}
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		if err := tx.Model(&order).Association("Products").Replace(products); err != nil {
			return fmt.Errorf("attach products: %w", err)
		}
		return order.RecalculateTotal(tx)
	})
}
