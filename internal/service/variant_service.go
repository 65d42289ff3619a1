package service

import (
	"go-shopify-sync/internal/model"
	"go-shopify-sync/internal/repository"
	"go-shopify-sync/internal/shopify"
	"go-shopify-sync/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateVariantRequest struct {
	Option1      *string         `json:"option1"`
	Option2      *string         `json:"option2"`
	Option3      *string         `json:"option3"`
	Price        decimal.Decimal `json:"price"`
	SKU          *string         `json:"sku"`
	InventoryQty int             `json:"inventory_quantity" validate:"min=0"`
}

type UpdateVariantRequest struct {
	Option1      *string          `json:"option1"`
	Option2      *string          `json:"option2"`
	Option3      *string          `json:"option3"`
	Price        *decimal.Decimal `json:"price"`
	SKU          *string          `json:"sku"`
	InventoryQty *int             `json:"inventory_quantity" validate:"omitempty,min=0"`
}

// InventoryUpdateRequest patches a variant's inventory. Operation is
// one of set, add, subtract.
type InventoryUpdateRequest struct {
	Quantity      int    `json:"inventory_quantity" validate:"min=0"`
	Operation     string `json:"operation" validate:"required,oneof=set add subtract"`
	SyncToShopify *bool  `json:"sync_to_shopify"`
}

type InventoryUpdateResult struct {
	OldQuantity int `json:"old_quantity"`
	NewQuantity int `json:"new_quantity"`
	Change      int `json:"change"`
}

type VariantService interface {
	List(filter repository.VariantFilter) ([]model.Variant, int64, error)
	Get(id uuid.UUID) (*model.Variant, error)
	ForProduct(productID uuid.UUID) ([]model.Variant, error)
	Create(productID uuid.UUID, req *CreateVariantRequest) (*model.Variant, error)
	Update(id uuid.UUID, req *UpdateVariantRequest) (*model.Variant, error)
	Delete(id uuid.UUID) error
	UpdateInventory(id uuid.UUID, req *InventoryUpdateRequest) (*InventoryUpdateResult, error)
}

type variantService struct {
	variants repository.VariantRepository
	products repository.ProductRepository
	db       *gorm.DB
	shopify  *shopify.Client
	log      *zap.Logger
}

func NewVariantService(variants repository.VariantRepository, products repository.ProductRepository, db *gorm.DB, client *shopify.Client, log *zap.Logger) VariantService {
	return &variantService{
		variants: variants,
		products: products,
		db:       db,
		shopify:  client,
		log:      log,
	}
}

func (s *variantService) List(filter repository.VariantFilter) ([]model.Variant, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 15
	}
	return s.variants.List(filter)
}

func (s *variantService) Get(id uuid.UUID) (*model.Variant, error) {
	return s.variants.FindByID(id)
}

func (s *variantService) ForProduct(productID uuid.UUID) ([]model.Variant, error) {
	return s.variants.FindByProduct(productID)
}

// Create stores the variant locally and creates the remote counterpart
// inside one transaction; the parent product must already be synced.
func (s *variantService) Create(productID uuid.UUID, req *CreateVariantRequest) (*model.Variant, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldError(errs[0].FailedField, "failed on "+errs[0].Tag)
	}
	if req.Price.IsNegative() {
		return nil, fieldError("price", "must not be negative")
	}

	product, err := s.products.FindByID(productID)
	if err != nil {
		return nil, err
	}
	if !product.Synced() {
		return nil, &PreconditionError{Message: "product must be synced to Shopify before creating variants"}
	}

	variant := &model.Variant{
		ProductID:    product.ID,
		Option1:      req.Option1,
		Option2:      req.Option2,
		Option3:      req.Option3,
		Price:        req.Price,
		SKU:          req.SKU,
		InventoryQty: req.InventoryQty,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(variant).Error; err != nil {
			return err
		}

		remote, err := s.shopify.SyncVariant(*product.ShopifyProductID, toVariantData(variant))
		if err != nil {
			return err
		}

		remoteID := shopify.ExtractID(remote.ID)
		variant.ShopifyVariantID = &remoteID
		return tx.Model(&model.Variant{}).Where("id = ?", variant.ID).
			Update("shopify_variant_id", remoteID).Error
	})
	if err != nil {
		return nil, err
	}
	return s.variants.FindByID(variant.ID)
}

func (s *variantService) Update(id uuid.UUID, req *UpdateVariantRequest) (*model.Variant, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldError(errs[0].FailedField, "failed on "+errs[0].Tag)
	}
	if req.Price != nil && req.Price.IsNegative() {
		return nil, fieldError("price", "must not be negative")
	}

	variant, err := s.variants.FindByID(id)
	if err != nil {
		return nil, err
	}
	if variant.Product == nil || !variant.Product.Synced() {
		return nil, &PreconditionError{Message: "parent product must be synced to Shopify first"}
	}

	if req.Option1 != nil {
		variant.Option1 = req.Option1
	}
	if req.Option2 != nil {
		variant.Option2 = req.Option2
	}
	if req.Option3 != nil {
		variant.Option3 = req.Option3
	}
	if req.Price != nil {
		variant.Price = *req.Price
	}
	if req.SKU != nil {
		variant.SKU = req.SKU
	}
	if req.InventoryQty != nil {
		variant.InventoryQty = *req.InventoryQty
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(variant).Error; err != nil {
			return err
		}

		remote, err := s.shopify.SyncVariant(*variant.Product.ShopifyProductID, toVariantData(variant))
		if err != nil {
			return err
		}
		if variant.ShopifyVariantID == nil {
			remoteID := shopify.ExtractID(remote.ID)
			variant.ShopifyVariantID = &remoteID
			return tx.Model(&model.Variant{}).Where("id = ?", variant.ID).
				Update("shopify_variant_id", remoteID).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.variants.FindByID(variant.ID)
}

// Delete removes the local variant; the remote counterpart is deleted
// best-effort, a failure there is logged but does not block the local
// delete.
func (s *variantService) Delete(id uuid.UUID) error {
	variant, err := s.variants.FindByID(id)
	if err != nil {
		return err
	}

	if variant.ShopifyVariantID != nil && variant.Product != nil && variant.Product.Synced() {
		if err := s.shopify.DeleteVariantViaRest(*variant.Product.ShopifyProductID, *variant.ShopifyVariantID); err != nil {
			s.log.Warn("failed to delete variant from Shopify",
				zap.String("variant_id", variant.ID.String()),
				zap.Error(err))
		}
	}

	return s.db.Delete(&model.Variant{}, "id = ?", variant.ID).Error
}

// UpdateInventory applies the inventory operation locally; the local
// value is authoritative. The remote sync is best-effort, a failure is
// logged and does not fail the update.
func (s *variantService) UpdateInventory(id uuid.UUID, req *InventoryUpdateRequest) (*InventoryUpdateResult, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldError(errs[0].FailedField, "failed on "+errs[0].Tag)
	}

	variant, err := s.variants.FindByID(id)
	if err != nil {
		return nil, err
	}

	oldQty := variant.InventoryQty
	newQty := oldQty
	change := 0

	switch req.Operation {
	case "set":
		newQty = req.Quantity
		change = newQty - oldQty
	case "add":
		newQty = oldQty + req.Quantity
		change = req.Quantity
	case "subtract":
		newQty = oldQty - req.Quantity
		if newQty < 0 {
			newQty = 0
		}
		change = -req.Quantity
	}

	variant.InventoryQty = newQty
	if err := s.variants.Update(variant); err != nil {
		return nil, err
	}

	syncToShopify := req.SyncToShopify == nil || *req.SyncToShopify
	if syncToShopify && variant.Product != nil && variant.Product.Synced() {
		if _, err := s.shopify.SyncVariant(*variant.Product.ShopifyProductID, toVariantData(variant)); err != nil {
			s.log.Warn("failed to sync inventory to Shopify",
				zap.String("variant_id", variant.ID.String()),
				zap.Error(err))
		}
	}

	return &InventoryUpdateResult{
		OldQuantity: oldQty,
		NewQuantity: newQty,
		Change:      change,
	}, nil
}
