package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Variant struct {
	BaseModel
	ProductID        uuid.UUID       `gorm:"type:uuid;index;not null" json:"product_id"`
	ShopifyVariantID *uint64         `gorm:"index" json:"shopify_variant_id"`
	Option1          *string         `gorm:"type:varchar(255)" json:"option1"`
	Option2          *string         `gorm:"type:varchar(255)" json:"option2"`
	Option3          *string         `gorm:"type:varchar(255)" json:"option3"`
	Price            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	SKU              *string         `gorm:"type:varchar(255)" json:"sku"`
	InventoryQty     int             `gorm:"column:inventory_quantity;default:0" json:"inventory_quantity"`

	Product *Product `json:"product,omitempty"`
}

// Title composes the variant display title from its option values,
// the same way Shopify titles generated variants.
func (v *Variant) Title() string {
	title := ""
	for _, opt := range []*string{v.Option1, v.Option2, v.Option3} {
		if opt == nil || *opt == "" {
			continue
		}
		if title != "" {
			title += " / "
		}
		title += *opt
	}
	if title == "" {
		return "Default Title"
	}
	return title
}
