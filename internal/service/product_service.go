package service

import (
	"go-shopify-sync/internal/model"
	"go-shopify-sync/internal/repository"
	"go-shopify-sync/internal/shopify"
	"go-shopify-sync/internal/ws"
	"go-shopify-sync/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VariantInput carries one variant of a product create request.
type VariantInput struct {
	Option1      *string         `json:"option1"`
	Option2      *string         `json:"option2"`
	Option3      *string         `json:"option3"`
	Price        decimal.Decimal `json:"price"`
	SKU          *string         `json:"sku"`
	InventoryQty int             `json:"inventory_quantity" validate:"min=0"`
}

type CreateProductRequest struct {
	Title       string         `json:"title" validate:"required,max=255"`
	BodyHTML    *string        `json:"body_html"`
	Vendor      *string        `json:"vendor"`
	ProductType *string        `json:"product_type"`
	Status      string         `json:"status" validate:"omitempty,oneof=active draft archived"`
	Variants    []VariantInput `json:"variants" validate:"dive"`
}

type UpdateProductRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	BodyHTML    *string `json:"body_html"`
	Vendor      *string `json:"vendor"`
	ProductType *string `json:"product_type"`
	Status      *string `json:"status" validate:"omitempty,oneof=active draft archived"`
}

type ProductService interface {
	List(page, perPage int) ([]model.Product, int64, error)
	Get(id uuid.UUID) (*model.Product, error)
	Create(req *CreateProductRequest) (*model.Product, error)
	Update(id uuid.UUID, req *UpdateProductRequest) (*model.Product, error)
	Delete(id uuid.UUID) error
}

type productService struct {
	products repository.ProductRepository
	db       *gorm.DB
	shopify  *shopify.Client
	hub      *ws.Hub
	log      *zap.Logger
}

func NewProductService(products repository.ProductRepository, db *gorm.DB, client *shopify.Client, hub *ws.Hub, log *zap.Logger) ProductService {
	return &productService{
		products: products,
		db:       db,
		shopify:  client,
		hub:      hub,
		log:      log,
	}
}

func (s *productService) List(page, perPage int) ([]model.Product, int64, error) {
	if perPage <= 0 || perPage > 100 {
		perPage = 15
	}
	if page <= 0 {
		page = 1
	}
	return s.products.List(perPage, (page-1)*perPage)
}

func (s *productService) Get(id uuid.UUID) (*model.Product, error) {
	return s.products.FindByID(id)
}

// Create stores the product and its variants locally and creates the
// Shopify counterpart inside one transaction. Any remote failure rolls
// back every local write of this operation; the remote product possibly
// created before the failure is not compensated.
func (s *productService) Create(req *CreateProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldError(errs[0].FailedField, "failed on "+errs[0].Tag)
	}
	for _, v := range req.Variants {
		if v.Price.IsNegative() {
			return nil, fieldError("price", "must not be negative")
		}
	}

	status := req.Status
	if status == "" {
		status = model.StatusDraft
	}

	product := &model.Product{
		Title:       req.Title,
		BodyHTML:    req.BodyHTML,
		Vendor:      req.Vendor,
		ProductType: req.ProductType,
		Status:      status,
	}
	for _, v := range req.Variants {
		product.Variants = append(product.Variants, model.Variant{
			Option1:      v.Option1,
			Option2:      v.Option2,
			Option3:      v.Option3,
			Price:        v.Price,
			SKU:          v.SKU,
			InventoryQty: v.InventoryQty,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}

		result, err := s.shopify.SyncProduct(toProductData(product), toVariantDataSlice(product.Variants))
		if err != nil {
			return err
		}
		if result.Degraded {
			s.log.Warn("product synced with degraded variant fidelity",
				zap.String("product_id", product.ID.String()))
		}

		return backfillRemoteIDs(tx, product, result)
	})
	if err != nil {
		return nil, err
	}

	s.hub.Publish("product_synced", productEvent(product))
	return s.products.FindByID(product.ID)
}

// backfillRemoteIDs writes the decoded remote identifiers onto the
// local rows after the remote calls succeeded.
func backfillRemoteIDs(tx *gorm.DB, product *model.Product, result *shopify.SyncResult) error {
	remoteID := shopify.ExtractID(result.Product.ID)
	if err := tx.Model(&model.Product{}).Where("id = ?", product.ID).
		Update("shopify_product_id", remoteID).Error; err != nil {
		return err
	}
	product.ShopifyProductID = &remoteID

	for _, match := range result.Matches {
		if err := tx.Model(&model.Variant{}).Where("id = ?", match.LocalID).
			Update("shopify_variant_id", match.RemoteID).Error; err != nil {
			return err
		}
	}
	return nil
}

// Update pushes the full field set onto the remote counterpart in one
// mutation; variants are not touched here.
func (s *productService) Update(id uuid.UUID, req *UpdateProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldError(errs[0].FailedField, "failed on "+errs[0].Tag)
	}

	product, err := s.products.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.BodyHTML != nil {
		product.BodyHTML = req.BodyHTML
	}
	if req.Vendor != nil {
		product.Vendor = req.Vendor
	}
	if req.ProductType != nil {
		product.ProductType = req.ProductType
	}
	if req.Status != nil {
		product.Status = *req.Status
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(product).Error; err != nil {
			return err
		}

		result, err := s.shopify.SyncProduct(toProductData(product), toVariantDataSlice(product.Variants))
		if err != nil {
			return err
		}
		// A product that had no counterpart yet went down the create
		// path; persist the fresh identifiers.
		if product.ShopifyProductID == nil {
			return backfillRemoteIDs(tx, product, result)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.Publish("product_synced", productEvent(product))
	return s.products.FindByID(product.ID)
}

// Delete soft-deletes the local row and deletes the remote counterpart
// in one transaction. A remote deletion failure rolls the local delete
// back and is propagated.
func (s *productService) Delete(id uuid.UUID) error {
	product, err := s.products.FindByID(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		shopifyID := product.ShopifyProductID

		if err := tx.Delete(&model.Product{}, "id = ?", product.ID).Error; err != nil {
			return err
		}

		if shopifyID != nil {
			if err := s.shopify.DeleteProduct(*shopifyID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.hub.Publish("product_deleted", map[string]any{"id": product.ID})
	return nil
}

func productEvent(p *model.Product) map[string]any {
	return map[string]any{
		"id":                 p.ID,
		"title":              p.Title,
		"status":             p.Status,
		"shopify_product_id": p.ShopifyProductID,
	}
}
