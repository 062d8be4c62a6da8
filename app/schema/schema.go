// Package schema defines the CRM GraphQL API: Customer, Product and Order
// types, their filterable connections, and the create mutations.
package schema

import (
	"context"
	"errors"

	"github.com/graphql-go/graphql"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/crm/app/repositories"
	"github.com/shashiranjanraj/crm/app/services"
	gql "github.com/shashiranjanraj/crm/pkg/graphql"
	"github.com/shashiranjanraj/crm/pkg/logger"
)

// errInternal replaces errors whose text is not meant for API callers.
var errInternal = errors.New("internal server error")

type builder struct {
	customers *repositories.CustomerRepository
	products  *repositories.ProductRepository
	orders    *repositories.OrderRepository

	customerSvc *services.CustomerService
	productSvc  *services.ProductService
	orderSvc    *services.OrderService

	customerType *graphql.Object
	productType  *graphql.Object
	orderType    *graphql.Object
}

// New builds the schema over db, or over database.DB when db is nil.
func New(db *gorm.DB) (graphql.Schema, error) {
	b := &builder{
		customers:   repositories.NewCustomerRepository(db),
		products:    repositories.NewProductRepository(db),
		orders:      repositories.NewOrderRepository(db),
		customerSvc: services.NewCustomerService(db),
		productSvc:  services.NewProductService(db),
		orderSvc:    services.NewOrderService(db),
	}
	b.buildTypes()

	return gql.NewSchema(b.query(), b.mutation())
}

// publicError passes caller-facing errors through and hides the rest.
func publicError(ctx context.Context, err error) error {
	if services.IsUserError(err) {
		return err
	}
	logger.WithCtx(ctx).Error("graphql: resolver failed", "error", err)
	return errInternal
}
