package model

import "gorm.io/gorm"

// Product statuses, mirroring Shopify's product lifecycle.
const (
	StatusActive   = "active"
	StatusDraft    = "draft"
	StatusArchived = "archived"
)

type Product struct {
	BaseModel
	ShopifyProductID *uint64        `gorm:"index" json:"shopify_product_id"`
	Title            string         `gorm:"type:varchar(255);not null" json:"title" validate:"required,max=255"`
	BodyHTML         *string        `gorm:"type:text" json:"body_html"`
	Vendor           *string        `gorm:"type:varchar(255)" json:"vendor"`
	ProductType      *string        `gorm:"type:varchar(255)" json:"product_type"`
	Status           string         `gorm:"type:varchar(20);default:'draft'" json:"status" validate:"omitempty,oneof=active draft archived"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at"` // Soft Delete support

	// Relations
	Variants []Variant      `json:"variants,omitempty"`
	Images   []ProductImage `json:"images,omitempty"`
}

// Synced reports whether the product has a Shopify counterpart.
func (p *Product) Synced() bool {
	return p.ShopifyProductID != nil && *p.ShopifyProductID != 0
}
