package migrations

import (
	"github.com/shashiranjanraj/crm/app/models"
	"github.com/shashiranjanraj/crm/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20250101000000_create_customers_table", &CreateCustomersTable{})
	migration.Register("20250101000001_create_products_table", &CreateProductsTable{})
	migration.Register("20250101000002_create_orders_table", &CreateOrdersTable{})
}

// -------- 0001: customers --------

type CreateCustomersTable struct{}

func (m *CreateCustomersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Customer{})
}

func (m *CreateCustomersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("customers")
}

// -------- 0002: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0003: orders + order_products --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_products", "orders")
}
