package service

import (
	"go-shopify-sync/internal/model"
	"go-shopify-sync/internal/shopify"
)

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toProductData(p *model.Product) shopify.ProductData {
	return shopify.ProductData{
		ShopifyProductID: p.ShopifyProductID,
		Title:            p.Title,
		BodyHTML:         strOrEmpty(p.BodyHTML),
		Vendor:           strOrEmpty(p.Vendor),
		ProductType:      strOrEmpty(p.ProductType),
		Status:           p.Status,
	}
}

func toVariantData(v *model.Variant) shopify.VariantData {
	return shopify.VariantData{
		LocalID:          v.ID,
		ShopifyVariantID: v.ShopifyVariantID,
		Option1:          v.Option1,
		Option2:          v.Option2,
		Option3:          v.Option3,
		Price:            v.Price.StringFixed(2),
		SKU:              v.SKU,
		InventoryQty:     v.InventoryQty,
	}
}

func toVariantDataSlice(variants []model.Variant) []shopify.VariantData {
	out := make([]shopify.VariantData, len(variants))
	for i := range variants {
		out[i] = toVariantData(&variants[i])
	}
	return out
}
