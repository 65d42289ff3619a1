package service

import (
	"errors"

	"go-shopify-sync/internal/model"
	"go-shopify-sync/internal/repository"
	"go-shopify-sync/internal/shopify"
	"go-shopify-sync/internal/ws"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ImportResult summarizes one imported catalog page.
type ImportResult struct {
	Imported    int     `json:"imported"`
	Updated     int     `json:"updated"`
	Total       int     `json:"total"`
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

type ImportService interface {
	Import(first int, cursor *string) (*ImportResult, error)
}

type importService struct {
	products repository.ProductRepository
	db       *gorm.DB
	shopify  *shopify.Client
	hub      *ws.Hub
	log      *zap.Logger
}

func NewImportService(products repository.ProductRepository, db *gorm.DB, client *shopify.Client, hub *ws.Hub, log *zap.Logger) ImportService {
	return &importService{
		products: products,
		db:       db,
		shopify:  client,
		hub:      hub,
		log:      log,
	}
}

// Import reconciles one page of the remote catalog against local rows
// keyed by remote product ID. Matched rows are overwritten from remote
// data (last-writer-wins) and restored if they were soft-deleted;
// unmatched remote products become new local rows. The caller drives
// further pages by re-invoking with the returned cursor.
func (s *importService) Import(first int, cursor *string) (*ImportResult, error) {
	if first <= 0 || first > 250 {
		first = 50
	}

	page, err := s.shopify.FetchProducts(first, cursor)
	if err != nil {
		return nil, err
	}

	imported, updated := 0, 0
	for i := range page.Products {
		remote := &page.Products[i]
		remoteID := shopify.ExtractID(remote.ID)

		local, err := s.products.FindByShopifyID(remoteID, true)
		switch {
		case err == nil:
			if err := s.updateLocalFromRemote(local, remote); err != nil {
				return nil, err
			}
			updated++
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := s.createLocalFromRemote(remote, remoteID); err != nil {
				return nil, err
			}
			imported++
		default:
			return nil, err
		}
	}

	result := &ImportResult{
		Imported:    imported,
		Updated:     updated,
		Total:       imported + updated,
		HasNextPage: page.HasNextPage,
		EndCursor:   page.EndCursor,
	}
	s.hub.Publish("import_completed", result)
	return result, nil
}

func nullableStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// remoteOptions maps a variant's selected option values onto the three
// positional option slots. The "Default Title" placeholder of a
// single-variant product stays out of the slots so the local variant
// renders the same default title.
func remoteOptions(rv *shopify.RemoteVariant) (opt1, opt2, opt3 *string) {
	slots := make([]*string, 3)
	for i, so := range rv.SelectedOptions {
		if i >= 3 {
			break
		}
		if so.Value == "Default Title" {
			continue
		}
		slots[i] = nullableStr(so.Value)
	}
	return slots[0], slots[1], slots[2]
}

func parsePrice(s string) decimal.Decimal {
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return price
}

func (s *importService) createLocalFromRemote(remote *shopify.RemoteProduct, remoteID uint64) error {
	product := &model.Product{
		ShopifyProductID: &remoteID,
		Title:            remote.Title,
		BodyHTML:         nullableStr(remote.Description),
		Vendor:           nullableStr(remote.Vendor),
		ProductType:      nullableStr(remote.ProductType),
		Status:           shopify.MapStatusFromShopify(remote.Status),
	}
	for i := range remote.Variants {
		rv := &remote.Variants[i]
		variantID := shopify.ExtractID(rv.ID)
		opt1, opt2, opt3 := remoteOptions(rv)
		product.Variants = append(product.Variants, model.Variant{
			ShopifyVariantID: &variantID,
			Option1:          opt1,
			Option2:          opt2,
			Option3:          opt3,
			Price:            parsePrice(rv.Price),
			SKU:              nullableStr(rv.SKU),
			InventoryQty:     rv.InventoryQty,
		})
	}
	for _, ri := range remote.Images {
		imageID := shopify.ExtractID(ri.ID)
		product.Images = append(product.Images, model.ProductImage{
			ShopifyImageID: &imageID,
			Path:           ri.URL,
		})
	}
	return s.db.Create(product).Error
}

// updateLocalFromRemote overwrites mutable fields from remote data,
// falling back to the existing local value when the remote field is
// absent, and clears any soft-delete tombstone. Variants are upserted
// by remote variant ID; images absent locally are created, local
// images missing from the remote page are never deleted.
func (s *importService) updateLocalFromRemote(local *model.Product, remote *shopify.RemoteProduct) error {
	local.Title = remote.Title
	if remote.Description != "" {
		local.BodyHTML = nullableStr(remote.Description)
	}
	if remote.Vendor != "" {
		local.Vendor = nullableStr(remote.Vendor)
	}
	if remote.ProductType != "" {
		local.ProductType = nullableStr(remote.ProductType)
	}
	local.Status = shopify.MapStatusFromShopify(remote.Status)
	local.DeletedAt = gorm.DeletedAt{} // Restore if it was soft deleted

	if err := s.db.Unscoped().Save(local).Error; err != nil {
		return err
	}

	for vi := range remote.Variants {
		rv := &remote.Variants[vi]
		variantID := shopify.ExtractID(rv.ID)
		opt1, opt2, opt3 := remoteOptions(rv)

		var existing *model.Variant
		for i := range local.Variants {
			if local.Variants[i].ShopifyVariantID != nil && *local.Variants[i].ShopifyVariantID == variantID {
				existing = &local.Variants[i]
				break
			}
		}

		if existing != nil {
			if rv.Price != "" {
				existing.Price = parsePrice(rv.Price)
			}
			if rv.SKU != "" {
				existing.SKU = nullableStr(rv.SKU)
			}
			existing.Option1, existing.Option2, existing.Option3 = opt1, opt2, opt3
			existing.InventoryQty = rv.InventoryQty
			if err := s.db.Save(existing).Error; err != nil {
				return err
			}
		} else {
			variant := &model.Variant{
				ProductID:        local.ID,
				ShopifyVariantID: &variantID,
				Option1:          opt1,
				Option2:          opt2,
				Option3:          opt3,
				Price:            parsePrice(rv.Price),
				SKU:              nullableStr(rv.SKU),
				InventoryQty:     rv.InventoryQty,
			}
			if err := s.db.Create(variant).Error; err != nil {
				return err
			}
		}
	}

	for _, ri := range remote.Images {
		imageID := shopify.ExtractID(ri.ID)

		found := false
		for i := range local.Images {
			if local.Images[i].ShopifyImageID != nil && *local.Images[i].ShopifyImageID == imageID {
				found = true
				break
			}
		}
		if !found {
			image := &model.ProductImage{
				ProductID:      local.ID,
				ShopifyImageID: &imageID,
				Path:           ri.URL,
			}
			if err := s.db.Create(image).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
