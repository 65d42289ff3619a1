package repository

import (
	"go-shopify-sync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VariantFilter narrows variant listings.
type VariantFilter struct {
	ProductID *uuid.UUID
	Search    string
	MinPrice  *string
	MaxPrice  *string
	Limit     int
	Offset    int
}

type VariantRepository interface {
	Create(variant *model.Variant) error
	FindByID(id uuid.UUID) (*model.Variant, error)
	FindByProduct(productID uuid.UUID) ([]model.Variant, error)
	List(filter VariantFilter) ([]model.Variant, int64, error)
	Update(variant *model.Variant) error
}

type variantRepo struct {
	db *gorm.DB
}

func NewVariantRepo(db *gorm.DB) VariantRepository {
	return &variantRepo{db}
}

func (r *variantRepo) Create(variant *model.Variant) error {
	return r.db.Create(variant).Error
}

func (r *variantRepo) FindByID(id uuid.UUID) (*model.Variant, error) {
	var variant model.Variant
	err := r.db.Preload("Product").First(&variant, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *variantRepo) FindByProduct(productID uuid.UUID) ([]model.Variant, error) {
	var variants []model.Variant
	err := r.db.Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&variants).Error
	return variants, err
}

func (r *variantRepo) List(filter VariantFilter) ([]model.Variant, int64, error) {
	query := r.db.Model(&model.Variant{})

	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("sku LIKE ? OR option1 LIKE ? OR option2 LIKE ?", like, like, like)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var variants []model.Variant
	err := query.Preload("Product").
		Order("created_at ASC").
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&variants).Error
	return variants, total, err
}

func (r *variantRepo) Update(variant *model.Variant) error {
	return r.db.Save(variant).Error
}
