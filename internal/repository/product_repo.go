package repository

import (
	"go-shopify-sync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	List(limit, offset int) ([]model.Product, int64, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByShopifyID(shopifyID uint64, withTrashed bool) (*model.Product, error)
	Update(product *model.Product) error
	Count() (int64, error)
	CountSynced() (int64, error)
	LastUpdatedAt() (*model.Product, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) List(limit, offset int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64
	if err := r.db.Model(&model.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Preload("Variants").Preload("Images").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Variants", func(db *gorm.DB) *gorm.DB {
		return db.Order("variants.created_at ASC")
	}).Preload("Images").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByShopifyID looks a product up by its remote numeric ID.
// withTrashed includes soft-deleted rows so imports can restore them.
func (r *productRepo) FindByShopifyID(shopifyID uint64, withTrashed bool) (*model.Product, error) {
	query := r.db
	if withTrashed {
		query = query.Unscoped()
	}
	var product model.Product
	err := query.Preload("Variants").Preload("Images").
		First(&product, "shopify_product_id = ?", shopifyID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepo) CountSynced() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("shopify_product_id IS NOT NULL").Count(&count).Error
	return count, err
}

func (r *productRepo) LastUpdatedAt() (*model.Product, error) {
	var product model.Product
	err := r.db.Order("updated_at DESC").First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}
