package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/crm/app/filters"
	"github.com/shashiranjanraj/crm/app/models"
	"github.com/shashiranjanraj/crm/pkg/orm"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	q *orm.Query
}

// NewProductRepository binds to db, or to database.DB when db is nil.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{q: queryFor(db)}
}

func (r *ProductRepository) WithTx(tx *orm.Query) *ProductRepository {
	return &ProductRepository{q: tx}
}

// List returns one page of products matching f plus the unpaged count.
func (r *ProductRepository) List(ctx context.Context, f *filters.ProductFilter, orderBy []string, page Page) ([]models.Product, int64, error) {
	return list[models.Product](ctx, r.q, f.Apply, filters.ProductSorting, orderBy, page)
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(ctx context.Context, id uint) (models.Product, error) {
	var product models.Product
	err := r.q.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).First(&product)
	return product, err
}

// Create persists a new product; model validation runs first.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.q.WithContext(ctx).Create(product)
}

// LowStock returns products under models.LowStockThreshold ordered by id.
func (r *ProductRepository) LowStock(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.q.WithContext(ctx).
		Model(&models.Product{}).
		Where("stock < ?", models.LowStockThreshold).
		Order("id").
		Get(&products)
	return products, err
}

// AddStock increments stock for ids without running save hooks.
func (r *ProductRepository) AddStock(ctx context.Context, ids []uint, amount int) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.q.WithContext(ctx).Gorm().
		Model(&models.Product{}).
		Where("id IN ?", ids).
		UpdateColumn("stock", gorm.Expr("stock + ?", amount)).Error
	if err != nil {
		return fmt.Errorf("add stock: %w", err)
	}
	return nil
}

// FindByIDs returns the products with ids, ordered by id.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	var products []models.Product
	err := r.q.WithContext(ctx).Model(&models.Product{}).Where("id IN ?", ids).Order("id").Get(&products)
	return products, err
}
