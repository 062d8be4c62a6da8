package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/crm/app/filters"
	"github.com/shashiranjanraj/crm/app/models"
	"github.com/shashiranjanraj/crm/pkg/orm"
)

// CustomerRepository handles database operations for Customer.
type CustomerRepository struct {
	q *orm.Query
}

// NewCustomerRepository binds to db, or to database.DB when db is nil.
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{q: queryFor(db)}
}

func (r *CustomerRepository) WithTx(tx *orm.Query) *CustomerRepository {
	return &CustomerRepository{q: tx}
}

// List returns one page of customers matching f plus the unpaged count.
func (r *CustomerRepository) List(ctx context.Context, f *filters.CustomerFilter, orderBy []string, page Page) ([]models.Customer, int64, error) {
	return list[models.Customer](ctx, r.q, f.Apply, filters.CustomerSorting, orderBy, page)
}

// FindByID looks up a customer by primary key.
func (r *CustomerRepository) FindByID(ctx context.Context, id uint) (models.Customer, error) {
	var customer models.Customer
	err := r.q.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).First(&customer)
	return customer, err
}

// Create persists a new customer record; model validation runs first.
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.q.WithContext(ctx).Create(customer)
}
