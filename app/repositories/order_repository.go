package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/crm/app/filters"
	"github.com/shashiranjanraj/crm/app/models"
	"github.com/shashiranjanraj/crm/pkg/orm"
)

// OrderRepository handles database operations for Order.
type OrderRepository struct {
	q *orm.Query
}

// NewOrderRepository binds to db, or to database.DB when db is nil.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{q: queryFor(db)}
}

func (r *OrderRepository) WithTx(tx *orm.Query) *OrderRepository {
	return &OrderRepository{q: tx}
}

// List returns one page of orders matching f, with customer and products
// loaded, plus the unpaged count.
func (r *OrderRepository) List(ctx context.Context, f *filters.OrderFilter, orderBy []string, page Page) ([]models.Order, int64, error) {
	return list[models.Order](ctx, r.q, f.Apply, filters.OrderSorting, orderBy, page, "Customer", "Products")
}

// ForCustomer returns a customer's orders, oldest first.
func (r *OrderRepository) ForCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.q.WithContext(ctx).
		Model(&models.Order{}).
		Where("customer_id = ?", customerID).
		Preload("Customer").
		Preload("Products").
		Order("id").
		Get(&orders)
	return orders, err
}

// Create inserts order and links products, then writes the derived total.
// Callers wanting atomicity run it on a transaction-bound repository.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order, products []models.Product) error {
	db := r.q.WithContext(ctx).Gorm()

	if err := db.Omit(clause.Associations).Create(order).Error; err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if err := db.Model(order).Association("Products").Replace(products); err != nil {
		return fmt.Errorf("link products: %w", err)
	}
	return order.RecalculateTotal(db)
}
