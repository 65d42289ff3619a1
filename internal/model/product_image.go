package model

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoragePublicURL prefixes paths of locally stored image files.
var StoragePublicURL = "/storage"

type ProductImage struct {
	BaseModel
	ProductID      uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	ShopifyImageID *uint64   `gorm:"index" json:"shopify_image_id"`
	Path           string    `gorm:"type:varchar(2048);not null" json:"path"`
	PublicURL      string    `gorm:"-" json:"url"`

	Product *Product `json:"product,omitempty"`
}

func (i *ProductImage) AfterFind(tx *gorm.DB) error {
	i.PublicURL = i.URL()
	return nil
}

func (i *ProductImage) AfterCreate(tx *gorm.DB) error {
	i.PublicURL = i.URL()
	return nil
}

// URL derives the public URL for the image. A path that is already a
// full URL (Shopify CDN) is returned as-is; anything else is treated as
// a storage-relative path.
func (i *ProductImage) URL() string {
	if strings.HasPrefix(i.Path, "http://") || strings.HasPrefix(i.Path, "https://") {
		return i.Path
	}
	return strings.TrimSuffix(StoragePublicURL, "/") + "/" + strings.TrimPrefix(i.Path, "/")
}
