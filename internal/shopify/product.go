package shopify

import "encoding/json"

// MapStatusToShopify maps a local product status onto Shopify's enum.
// Unrecognized values default to DRAFT.
func MapStatusToShopify(local string) string {
	switch local {
	case "active":
		return "ACTIVE"
	case "draft":
		return "DRAFT"
	case "archived":
		return "ARCHIVED"
	default:
		return "DRAFT"
	}
}

// MapStatusFromShopify maps a Shopify product status onto the local
// enum. Unrecognized values default to draft.
func MapStatusFromShopify(remote string) string {
	switch remote {
	case "ACTIVE":
		return "active"
	case "DRAFT":
		return "draft"
	case "ARCHIVED":
		return "archived"
	default:
		return "draft"
	}
}

// SyncProduct creates or updates the remote counterpart of a product,
// decided by the presence of a stored Shopify ID. On the create path the
// local variants are reconciled against the remotely generated ones.
func (c *Client) SyncProduct(product ProductData, variants []VariantData) (*SyncResult, error) {
	if product.ShopifyProductID != nil {
		return c.updateProduct(product)
	}
	return c.createProduct(product, variants)
}

const productCreateMutation = `
	mutation productCreate($input: ProductInput!) {
		productCreate(input: $input) {
			product {
				id
				title
				descriptionHtml
				vendor
				productType
				status
				variants(first: 1) {
					edges {
						node {
							id
							title
							sku
							price
							inventoryQuantity
						}
					}
				}
			}
			userErrors {
				field
				message
			}
		}
	}
`

func (c *Client) createProduct(product ProductData, variants []VariantData) (*SyncResult, error) {
	input := map[string]any{
		"title":           product.Title,
		"descriptionHtml": product.BodyHTML,
		"vendor":          product.Vendor,
		"productType":     product.ProductType,
		"status":          MapStatusToShopify(product.Status),
	}

	data, err := c.Query(productCreateMutation, map[string]any{"input": input})
	if err != nil {
		return nil, err
	}

	var payload struct {
		ProductCreate struct {
			Product    *remoteProductNode `json:"product"`
			UserErrors []UserError        `json:"userErrors"`
		} `json:"productCreate"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	if err := validationError(payload.ProductCreate.UserErrors); err != nil {
		return nil, err
	}
	if payload.ProductCreate.Product == nil {
		return nil, &ProtocolError{Op: "product returned from productCreate"}
	}

	remote := payload.ProductCreate.Product.toRemoteProduct()

	// The platform auto-creates a default variant; reconcile local
	// variants onto it.
	if len(variants) > 0 {
		return c.reconcileVariants(remote, variants)
	}
	return &SyncResult{Product: remote}, nil
}

const productUpdateMutation = `
	mutation productUpdate($input: ProductInput!) {
		productUpdate(input: $input) {
			product {
				id
				title
				description
				vendor
				productType
				status
				variants(first: 10) {
					edges {
						node {
							id
							title
							sku
							price
							inventoryQuantity
						}
					}
				}
			}
			userErrors {
				field
				message
			}
		}
	}
`

func (c *Client) updateProduct(product ProductData) (*SyncResult, error) {
	input := map[string]any{
		"id":              GID("Product", *product.ShopifyProductID),
		"title":           product.Title,
		"descriptionHtml": product.BodyHTML,
		"vendor":          product.Vendor,
		"productType":     product.ProductType,
		"status":          MapStatusToShopify(product.Status),
	}

	data, err := c.Query(productUpdateMutation, map[string]any{"input": input})
	if err != nil {
		return nil, err
	}

	var payload struct {
		ProductUpdate struct {
			Product    *remoteProductNode `json:"product"`
			UserErrors []UserError        `json:"userErrors"`
		} `json:"productUpdate"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	if err := validationError(payload.ProductUpdate.UserErrors); err != nil {
		return nil, err
	}
	if payload.ProductUpdate.Product == nil {
		return nil, &ProtocolError{Op: "product returned from productUpdate"}
	}

	return &SyncResult{Product: payload.ProductUpdate.Product.toRemoteProduct()}, nil
}

const productDeleteMutation = `
	mutation productDelete($input: ProductDeleteInput!) {
		productDelete(input: $input) {
			deletedProductId
			userErrors {
				field
				message
			}
		}
	}
`

// DeleteProduct deletes the remote product.
func (c *Client) DeleteProduct(shopifyID uint64) error {
	data, err := c.Query(productDeleteMutation, map[string]any{
		"input": map[string]any{"id": GID("Product", shopifyID)},
	})
	if err != nil {
		return err
	}

	var payload struct {
		ProductDelete struct {
			DeletedProductID *string     `json:"deletedProductId"`
			UserErrors       []UserError `json:"userErrors"`
		} `json:"productDelete"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	return validationError(payload.ProductDelete.UserErrors)
}

const productFetchQuery = `
	query getProduct($id: ID!) {
		product(id: $id) {
			id
			title
			descriptionHtml
			vendor
			productType
			status
			variants(first: 50) {
				edges {
					node {
						id
						title
						sku
						price
						inventoryQuantity
					}
				}
			}
		}
	}
`

// fetchProductWithVariants returns a canonical post-sync snapshot.
func (c *Client) fetchProductWithVariants(gid string) (RemoteProduct, error) {
	data, err := c.Query(productFetchQuery, map[string]any{"id": gid})
	if err != nil {
		return RemoteProduct{}, err
	}

	var payload struct {
		Product *remoteProductNode `json:"product"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return RemoteProduct{}, err
	}
	if payload.Product == nil {
		return RemoteProduct{}, &ProtocolError{Op: "product returned from product query"}
	}
	return payload.Product.toRemoteProduct(), nil
}
