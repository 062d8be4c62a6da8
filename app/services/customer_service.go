package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/crm/app/models"
	"github.com/shashiranjanraj/crm/app/repositories"
	"github.com/shashiranjanraj/crm/pkg/database"
	"github.com/shashiranjanraj/crm/pkg/logger"
	"github.com/shashiranjanraj/crm/pkg/orm"
)

// CustomerInput is the payload of createCustomer and of each
// bulkCreateCustomers item.
type CustomerInput struct {
	Name  string
	Email string
	Phone *string
}

func (in CustomerInput) model() models.Customer {
	return models.Customer{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
		Phone: in.Phone,
	}
}

type CustomerService struct {
	q         *orm.Query
	customers *repositories.CustomerRepository
}

// NewCustomerService binds to db, or to database.DB when db is nil.
func NewCustomerService(db *gorm.DB) *CustomerService {
	q := orm.DB()
	if db != nil {
		q = orm.New(db)
	}
	return &CustomerService{q: q, customers: repositories.NewCustomerRepository(db)}
}

// Create validates and inserts one customer. Duplicate emails are detected
// from the insert error, not by a prior lookup.
func (s *CustomerService) Create(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	customer := in.model()
	if err := s.insert(ctx, s.customers, &customer); err != nil {
		return nil, err
	}
	logger.WithCtx(ctx).Info("customer created", "id", customer.ID)
	return &customer, nil
}

func (s *CustomerService) insert(ctx context.Context, repo *repositories.CustomerRepository, c *models.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := repo.Create(ctx, c); err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			return verr
		case database.IsUniqueViolation(err):
			return ErrDuplicateEmail
		default:
			return fmt.Errorf("services: create customer: %w", err)
		}
	}
	return nil
}

// BulkCreate inserts each input in its own transaction, in order. A failed
// item is reported in errs (1-based index) and does not stop the rest.
func (s *CustomerService) BulkCreate(ctx context.Context, inputs []CustomerInput) ([]models.Customer, []string) {
	created := make([]models.Customer, 0, len(inputs))
	var errs []string

	for i, in := range inputs {
		customer := in.model()
		err := s.q.WithContext(ctx).Transaction(func(tx *orm.Query) error {
			return s.insert(ctx, s.customers.WithTx(tx), &customer)
		})
		if err != nil {
			errs = append(errs, bulkItemError(ctx, i+1, customer.Email, err))
			continue
		}
		created = append(created, customer)
	}

	logger.WithCtx(ctx).Info("customers bulk created", "created", len(created), "failed", len(errs))
	return created, errs
}

// bulkItemError renders a failed item for the API. Errors that are not the
// caller's fault are logged and reported without detail.
func bulkItemError(ctx context.Context, i int, email string, err error) string {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr) && verr.Message == models.MsgInvalidPhone:
		return fmt.Sprintf("Customer %d: Invalid phone format", i)
	case errors.Is(err, ErrDuplicateEmail):
		return fmt.Sprintf("Customer %d: Email %s already exists", i, email)
	case verr != nil:
		return fmt.Sprintf("Customer %d: %s", i, verr.Message)
	default:
		logger.WithCtx(ctx).Error("bulk create customer failed", "index", i, "error", err)
		return fmt.Sprintf("Customer %d: %s", i, msgInternal)
	}
}
