package service

import (
	"strings"

	"go-shopify-sync/internal/model"
	"go-shopify-sync/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductSearchRequest carries the full product search surface: free
// text, facet filters, a price range applied through variants, and
// whitelisted sorting.
type ProductSearchRequest struct {
	Query        string  `json:"q"`
	Status       string  `json:"status"`
	Vendor       string  `json:"vendor"`
	ProductType  string  `json:"product_type"`
	MinPrice     *string `json:"min_price"`
	MaxPrice     *string `json:"max_price"`
	HasShopifyID *bool   `json:"has_shopify_id"`
	SortBy       string  `json:"sort_by"`
	SortOrder    string  `json:"sort_order"`
	Limit        int     `json:"limit"`
	Offset       int     `json:"offset"`
}

type VariantSearchRequest struct {
	Query     string     `json:"q"`
	ProductID *uuid.UUID `json:"product_id"`
	MinPrice  *string    `json:"min_price"`
	MaxPrice  *string    `json:"max_price"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}

// Suggestions groups distinct values that can seed an autocomplete box.
type Suggestions struct {
	Titles       []string `json:"titles"`
	Vendors      []string `json:"vendors"`
	ProductTypes []string `json:"product_types"`
}

// FacetCount is one value of a filterable field with its product count.
type FacetCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// Filters lists the available facet values across the catalog.
type Filters struct {
	Statuses     []FacetCount `json:"statuses"`
	Vendors      []FacetCount `json:"vendors"`
	ProductTypes []FacetCount `json:"product_types"`
}

type SearchService interface {
	Products(req *ProductSearchRequest) ([]model.Product, int64, error)
	Variants(req *VariantSearchRequest) ([]model.Variant, int64, error)
	Suggestions(prefix string, limit int) (*Suggestions, error)
	Filters() (*Filters, error)
}

type searchService struct {
	db       *gorm.DB
	variants repository.VariantRepository
}

func NewSearchService(db *gorm.DB, variants repository.VariantRepository) SearchService {
	return &searchService{db: db, variants: variants}
}

// sortColumns is the whitelist of sortable product columns. Anything
// else falls back to created_at.
var sortColumns = map[string]string{
	"title":        "title",
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"vendor":       "vendor",
	"product_type": "product_type",
}

func (s *searchService) Products(req *ProductSearchRequest) ([]model.Product, int64, error) {
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&model.Product{})

	if q := strings.TrimSpace(req.Query); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			s.db.Where("title LIKE ?", like).
				Or("body_html LIKE ?", like).
				Or("vendor LIKE ?", like).
				Or("product_type LIKE ?", like).
				Or("id IN (?)", s.db.Model(&model.Variant{}).
					Select("product_id").Where("sku LIKE ?", like)),
		)
	}

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Vendor != "" {
		query = query.Where("vendor = ?", req.Vendor)
	}
	if req.ProductType != "" {
		query = query.Where("product_type = ?", req.ProductType)
	}
	if req.HasShopifyID != nil {
		if *req.HasShopifyID {
			query = query.Where("shopify_product_id IS NOT NULL")
		} else {
			query = query.Where("shopify_product_id IS NULL")
		}
	}

	if req.MinPrice != nil || req.MaxPrice != nil {
		priced := s.db.Model(&model.Variant{}).Select("product_id")
		if req.MinPrice != nil {
			priced = priced.Where("price >= ?", *req.MinPrice)
		}
		if req.MaxPrice != nil {
			priced = priced.Where("price <= ?", *req.MaxPrice)
		}
		query = query.Where("id IN (?)", priced)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[req.SortBy]
	if !ok {
		column = "created_at"
	}
	order := "asc"
	if strings.EqualFold(req.SortOrder, "desc") {
		order = "desc"
	}

	var products []model.Product
	err := query.
		Preload("Variants").
		Order(column + " " + order).
		Limit(limit).Offset(req.Offset).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *searchService) Variants(req *VariantSearchRequest) ([]model.Variant, int64, error) {
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.variants.List(repository.VariantFilter{
		ProductID: req.ProductID,
		Search:    req.Query,
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
		Limit:     limit,
		Offset:    req.Offset,
	})
}

func (s *searchService) Suggestions(prefix string, limit int) (*Suggestions, error) {
	if limit <= 0 || limit > 20 {
		limit = 10
	}
	like := strings.TrimSpace(prefix) + "%"

	out := &Suggestions{}
	if err := s.db.Model(&model.Product{}).
		Where("title LIKE ?", like).
		Distinct("title").Order("title").Limit(limit).
		Pluck("title", &out.Titles).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Product{}).
		Where("vendor LIKE ?", like).
		Distinct("vendor").Order("vendor").Limit(limit).
		Pluck("vendor", &out.Vendors).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Product{}).
		Where("product_type LIKE ?", like).
		Distinct("product_type").Order("product_type").Limit(limit).
		Pluck("product_type", &out.ProductTypes).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *searchService) Filters() (*Filters, error) {
	out := &Filters{}
	if err := s.facet("status", &out.Statuses); err != nil {
		return nil, err
	}
	if err := s.facet("vendor", &out.Vendors); err != nil {
		return nil, err
	}
	if err := s.facet("product_type", &out.ProductTypes); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *searchService) facet(column string, dest *[]FacetCount) error {
	return s.db.Model(&model.Product{}).
		Select(column+" as value, count(*) as count").
		Where(column+" IS NOT NULL AND "+column+" != ''").
		Group(column).Order("count DESC").
		Scan(dest).Error
}
