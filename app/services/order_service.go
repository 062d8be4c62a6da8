package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/crm/app/models"
	"github.com/shashiranjanraj/crm/app/repositories"
	"github.com/shashiranjanraj/crm/pkg/logger"
	"github.com/shashiranjanraj/crm/pkg/orm"
)

// OrderInput is the createOrder payload. IDs are the raw GraphQL ID
// strings; one that does not parse is reported like a missing row.
// OrderDate is accepted for API compatibility; the stored date is always
// the insert time.
type OrderInput struct {
	CustomerID string
	ProductIDs []string
	OrderDate  *time.Time
}

type OrderService struct {
	q         *orm.Query
	customers *repositories.CustomerRepository
	products  *repositories.ProductRepository
	orders    *repositories.OrderRepository
}

// NewOrderService binds to db, or to database.DB when db is nil.
func NewOrderService(db *gorm.DB) *OrderService {
	q := orm.DB()
	if db != nil {
		q = orm.New(db)
	}
	return &OrderService{
		q:         q,
		customers: repositories.NewCustomerRepository(db),
		products:  repositories.NewProductRepository(db),
		orders:    repositories.NewOrderRepository(db),
	}
}

// Create checks the customer, then that products were given, then each
// product in input order, and finally writes the order and its total in one
// transaction. Nothing is persisted when any step fails.
func (s *OrderService) Create(ctx context.Context, in OrderInput) (*models.Order, error) {
	customer, err := findByRawID(ctx, in.CustomerID, "Customer", s.customers.FindByID)
	if err != nil {
		return nil, err
	}

	if len(in.ProductIDs) == 0 {
		return nil, &ValidationError{Field: "productIds", Message: msgNoProducts}
	}

	products := make([]models.Product, 0, len(in.ProductIDs))
	for _, id := range in.ProductIDs {
		p, err := findByRawID(ctx, id, "Product", s.products.FindByID)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	order := models.Order{CustomerID: customer.ID}
	err = s.q.WithContext(ctx).Transaction(func(tx *orm.Query) error {
		return s.orders.WithTx(tx).Create(ctx, &order, products)
	})
	if err != nil {
		return nil, fmt.Errorf("services: create order: %w", err)
	}
	order.Customer = customer

	logger.WithCtx(ctx).Info("order created", "id", order.ID, "total", order.TotalAmount.StringFixed(2))
	return &order, nil
}

func findByRawID[T any](ctx context.Context, raw, entity string, find func(context.Context, uint) (T, error)) (T, error) {
	var zero T
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return zero, &NotFoundError{Entity: entity, ID: raw}
	}

	row, err := find(ctx, uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return zero, &NotFoundError{Entity: entity, ID: raw}
	}
	if err != nil {
		return zero, fmt.Errorf("services: find %s %s: %w", entity, raw, err)
	}
	return row, nil
}
