package shopify

import (
	"encoding/json"
	"fmt"
)

// restVariantBody is the REST representation of a variant. REST is used
// for per-variant price/SKU/inventory patches because the bulk GraphQL
// creation path does not reliably carry these fields through on first
// creation.
type restVariantBody struct {
	ID           uint64  `json:"id,omitempty"`
	Option1      *string `json:"option1,omitempty"`
	Option2      *string `json:"option2,omitempty"`
	Option3      *string `json:"option3,omitempty"`
	Price        string  `json:"price"`
	SKU          *string `json:"sku"`
	InventoryQty int     `json:"inventory_quantity"`
	Taxable      bool    `json:"taxable"`
}

func restBody(v VariantData) restVariantBody {
	return restVariantBody{
		Option1:      v.Option1,
		Option2:      v.Option2,
		Option3:      v.Option3,
		Price:        v.Price,
		SKU:          v.SKU,
		InventoryQty: v.InventoryQty,
		Taxable:      true,
	}
}

// UpdateVariantViaRest patches price/SKU/inventory onto a remote
// variant.
func (c *Client) UpdateVariantViaRest(variantID uint64, v VariantData) error {
	body := restBody(v)
	body.ID = variantID
	_, err := c.restRequest("PUT", fmt.Sprintf("variants/%d.json", variantID), map[string]any{
		"variant": body,
	})
	return err
}

// DeleteVariantViaRest removes a remote variant.
func (c *Client) DeleteVariantViaRest(productID, variantID uint64) error {
	_, err := c.restRequest("DELETE", fmt.Sprintf("products/%d/variants/%d.json", productID, variantID), nil)
	return err
}

const variantCreateMutation = `
	mutation productVariantCreate($input: ProductVariantInput!) {
		productVariantCreate(input: $input) {
			productVariant {
				id
				title
				sku
				price
				inventoryQuantity
			}
			userErrors {
				field
				message
			}
		}
	}
`

const variantUpdateMutation = `
	mutation productVariantUpdate($input: ProductVariantInput!) {
		productVariantUpdate(input: $input) {
			productVariant {
				id
				title
				sku
				price
				inventoryQuantity
			}
			userErrors {
				field
				message
			}
		}
	}
`

// SyncVariant creates or updates the remote counterpart of a single
// variant, decided by the presence of a stored Shopify variant ID. The
// parent product must already be synced; the caller enforces that.
func (c *Client) SyncVariant(productShopifyID uint64, v VariantData) (*RemoteVariant, error) {
	if v.ShopifyVariantID != nil {
		input := map[string]any{
			"id":                GID("ProductVariant", *v.ShopifyVariantID),
			"title":             v.title(),
			"sku":               v.SKU,
			"price":             v.Price,
			"inventoryQuantity": v.InventoryQty,
		}
		return c.mutateVariant(variantUpdateMutation, "productVariantUpdate", input)
	}

	input := map[string]any{
		"productId":         GID("Product", productShopifyID),
		"title":             v.title(),
		"sku":               v.SKU,
		"price":             v.Price,
		"inventoryQuantity": v.InventoryQty,
	}
	return c.mutateVariant(variantCreateMutation, "productVariantCreate", input)
}

func (c *Client) mutateVariant(mutation, operation string, input map[string]any) (*RemoteVariant, error) {
	data, err := c.Query(mutation, map[string]any{"input": input})
	if err != nil {
		return nil, err
	}

	var payload map[string]struct {
		ProductVariant *RemoteVariant `json:"productVariant"`
		UserErrors     []UserError    `json:"userErrors"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	result := payload[operation]
	if err := validationError(result.UserErrors); err != nil {
		return nil, err
	}
	if result.ProductVariant == nil {
		return nil, &ProtocolError{Op: "productVariant returned from " + operation}
	}
	return result.ProductVariant, nil
}
