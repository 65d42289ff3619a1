package service

import (
	"time"

	"go-shopify-sync/internal/repository"
	"go-shopify-sync/internal/shopify"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExportResult reports a single-product export.
type ExportResult struct {
	ShopifyProductID uint64 `json:"shopify_product_id"`
	ShopifyGID       string `json:"shopify_gid"`
	SyncedVariants   int    `json:"synced_variants"`
	Degraded         bool   `json:"degraded"`
}

// SyncStatus is an overview of local-vs-remote sync state.
type SyncStatus struct {
	Status          string     `json:"status"`
	LastSyncAt      *time.Time `json:"last_sync_at"`
	TotalProducts   int64      `json:"total_products"`
	SyncedProducts  int64      `json:"synced_products"`
	PendingProducts int64      `json:"pending_products"`
	SyncPercentage  float64    `json:"sync_percentage"`
}

type SyncService interface {
	ExportProduct(id uuid.UUID, forceCreate bool) (*ExportResult, error)
	Status() (*SyncStatus, error)
	ValidateCredentials() bool
}

type syncService struct {
	products repository.ProductRepository
	db       *gorm.DB
	shopify  *shopify.Client
	log      *zap.Logger
}

func NewSyncService(products repository.ProductRepository, db *gorm.DB, client *shopify.Client, log *zap.Logger) SyncService {
	return &syncService{
		products: products,
		db:       db,
		shopify:  client,
		log:      log,
	}
}

// ExportProduct pushes a local product to Shopify. With forceCreate the
// stored remote ID is temporarily cleared so the create path runs even
// for a product that already has a counterpart; on failure the original
// ID is restored on the local row as a compensating action.
func (s *syncService) ExportProduct(id uuid.UUID, forceCreate bool) (*ExportResult, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		return nil, err
	}

	var previousID *uint64
	if forceCreate && product.ShopifyProductID != nil {
		previousID = product.ShopifyProductID
		product.ShopifyProductID = nil
	}

	result, err := s.shopify.SyncProduct(toProductData(product), toVariantDataSlice(product.Variants))
	if err != nil {
		if previousID != nil {
			product.ShopifyProductID = previousID
			if restoreErr := s.products.Update(product); restoreErr != nil {
				s.log.Error("failed to restore shopify_product_id after export failure",
					zap.String("product_id", product.ID.String()),
					zap.Error(restoreErr))
			}
		}
		return nil, err
	}

	remoteID := shopify.ExtractID(result.Product.ID)

	// A forced re-create intentionally leaves the previously stored
	// identifier on the local row untouched.
	if previousID == nil {
		if err := backfillRemoteIDs(s.db, product, result); err != nil {
			return nil, err
		}
	}

	return &ExportResult{
		ShopifyProductID: remoteID,
		ShopifyGID:       result.Product.ID,
		SyncedVariants:   len(result.Product.Variants),
		Degraded:         result.Degraded,
	}, nil
}

func (s *syncService) Status() (*SyncStatus, error) {
	total, err := s.products.Count()
	if err != nil {
		return nil, err
	}
	synced, err := s.products.CountSynced()
	if err != nil {
		return nil, err
	}
	pending := total - synced

	status := "synced"
	if pending > 0 {
		status = "pending"
	}

	percentage := 100.0
	if total > 0 {
		percentage = float64(synced) / float64(total) * 100
	}

	overview := &SyncStatus{
		Status:          status,
		TotalProducts:   total,
		SyncedProducts:  synced,
		PendingProducts: pending,
		SyncPercentage:  percentage,
	}
	if last, err := s.products.LastUpdatedAt(); err == nil {
		overview.LastSyncAt = &last.UpdatedAt
	}
	return overview, nil
}

func (s *syncService) ValidateCredentials() bool {
	return s.shopify.ValidateCredentials()
}
