package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/crm/app/models"
	"github.com/shashiranjanraj/crm/app/repositories"
	"github.com/shashiranjanraj/crm/pkg/logger"
	"github.com/shashiranjanraj/crm/pkg/orm"
)

// RestockAmount is added to every low-stock product by RestockLowStock.
const RestockAmount = 10

// ProductInput is the createProduct payload. A nil Stock means 0.
type ProductInput struct {
	Name  string
	Price decimal.Decimal
	Stock *int
}

type ProductService struct {
	q        *orm.Query
	products *repositories.ProductRepository
}

// NewProductService binds to db, or to database.DB when db is nil.
func NewProductService(db *gorm.DB) *ProductService {
	q := orm.DB()
	if db != nil {
		q = orm.New(db)
	}
	return &ProductService{q: q, products: repositories.NewProductRepository(db)}
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	product := models.Product{Name: strings.TrimSpace(in.Name), Price: in.Price}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, &product); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return nil, verr
		}
		return nil, fmt.Errorf("services: create product: %w", err)
	}

	logger.WithCtx(ctx).Info("product created", "id", product.ID)
	return &product, nil
}

// RestockLowStock adds RestockAmount to every product below the low-stock
// threshold in one transaction and returns the updated rows.
func (s *ProductService) RestockLowStock(ctx context.Context) ([]models.Product, error) {
	var updated []models.Product

	err := s.q.WithContext(ctx).Transaction(func(tx *orm.Query) error {
		repo := s.products.WithTx(tx)

		low, err := repo.LowStock(ctx)
		if err != nil {
			return err
		}
		if len(low) == 0 {
			return nil
		}

		ids := make([]uint, len(low))
		for i, p := range low {
			ids[i] = p.ID
		}
		if err := repo.AddStock(ctx, ids, RestockAmount); err != nil {
			return err
		}

		updated, err = repo.FindByIDs(ctx, ids)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("services: restock: %w", err)
	}

	logger.WithCtx(ctx).Info("low-stock products restocked", "count", len(updated))
	return updated, nil
}

// RestockMessage summarises a RestockLowStock result.
func RestockMessage(n int) string {
	if n == 0 {
		return "No low-stock products found"
	}
	return fmt.Sprintf("Restocked %d low-stock product(s)", n)
}
