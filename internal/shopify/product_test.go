package shopify

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		local  string
		remote string
	}{
		{"active", "ACTIVE"},
		{"draft", "DRAFT"},
		{"archived", "ARCHIVED"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.remote, MapStatusToShopify(tt.local))
		assert.Equal(t, tt.local, MapStatusFromShopify(tt.remote))
	}

	assert.Equal(t, "DRAFT", MapStatusToShopify("bogus"))
	assert.Equal(t, "DRAFT", MapStatusToShopify(""))
	assert.Equal(t, "draft", MapStatusFromShopify("bogus"))
	assert.Equal(t, "draft", MapStatusFromShopify(""))
}

const createdProductData = `{
	"productCreate": {
		"product": {
			"id": "gid://shopify/Product/100",
			"title": "Tee",
			"status": "ACTIVE",
			"variants": {"edges": [{"node": {
				"id": "gid://shopify/ProductVariant/200",
				"title": "Default Title",
				"price": "0.00"
			}}]}
		},
		"userErrors": []
	}
}`

const fetchedProductData = `{
	"product": {
		"id": "gid://shopify/Product/100",
		"title": "Tee",
		"status": "ACTIVE",
		"variants": {"edges": [{"node": {
			"id": "gid://shopify/ProductVariant/200",
			"title": "Default Title",
			"sku": "TEE-1",
			"price": "19.99",
			"inventoryQuantity": 5
		}}]}
	}
}`

func TestSyncProductCreateSingleVariant(t *testing.T) {
	fake := newFakeShopify(t)
	fake.handle("productCreate", createdProductData)
	fake.handle("product", fetchedProductData)
	c := newTestClient(t, fake)

	localID := uuid.New()
	result, err := c.SyncProduct(
		ProductData{Title: "Tee", Status: "active"},
		[]VariantData{{LocalID: localID, Price: "19.99", SKU: strptr("TEE-1"), InventoryQty: 5}},
	)
	require.NoError(t, err)

	assert.False(t, result.Degraded)
	assert.Equal(t, "gid://shopify/Product/100", result.Product.ID)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, localID, result.Matches[0].LocalID)
	assert.Equal(t, uint64(200), result.Matches[0].RemoteID)

	// The default variant gets patched over REST.
	require.Len(t, fake.RESTCalls, 1)
	assert.Contains(t, fake.RESTCalls[0], "PUT")
	assert.Contains(t, fake.RESTCalls[0], "variants/200.json")
}

func TestSyncProductCreateNoVariants(t *testing.T) {
	fake := newFakeShopify(t)
	fake.handle("productCreate", createdProductData)
	c := newTestClient(t, fake)

	result, err := c.SyncProduct(ProductData{Title: "Tee", Status: "draft"}, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Matches)
	assert.Empty(t, fake.RESTCalls)
}

func TestSyncProductUpdate(t *testing.T) {
	fake := newFakeShopify(t)
	fake.handle("productUpdate", `{
		"productUpdate": {
			"product": {"id": "gid://shopify/Product/100", "title": "Tee v2", "status": "ACTIVE"},
			"userErrors": []
		}
	}`)
	c := newTestClient(t, fake)

	remoteID := uint64(100)
	result, err := c.SyncProduct(ProductData{ShopifyProductID: &remoteID, Title: "Tee v2", Status: "active"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Tee v2", result.Product.Title)

	// Update path sends the GID, not a create input.
	require.Len(t, fake.GraphQLCalls, 1)
	input := fake.GraphQLCalls[0].Variables["input"].(map[string]any)
	assert.Equal(t, "gid://shopify/Product/100", input["id"])
	assert.Empty(t, fake.RESTCalls)
}

func TestSyncProductUserErrors(t *testing.T) {
	fake := newFakeShopify(t)
	fake.handle("productCreate", `{
		"productCreate": {
			"product": null,
			"userErrors": [{"field": ["input", "title"], "message": "can't be blank"}]
		}
	}`)
	c := newTestClient(t, fake)

	_, err := c.SyncProduct(ProductData{Status: "draft"}, nil)
	require.Error(t, err)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Shopify API Error: input.title: can't be blank", err.Error())
}

func TestSyncProductMissingPayload(t *testing.T) {
	fake := newFakeShopify(t)
	fake.handle("productCreate", `{"productCreate": {"product": null, "userErrors": []}}`)
	c := newTestClient(t, fake)

	_, err := c.SyncProduct(ProductData{Title: "Tee", Status: "draft"}, nil)
	var protocol *ProtocolError
	require.ErrorAs(t, err, &protocol)
}

func TestDeleteProduct(t *testing.T) {
	fake := newFakeShopify(t)
	fake.handle("productDelete", `{
		"productDelete": {"deletedProductId": "gid://shopify/Product/100", "userErrors": []}
	}`)
	c := newTestClient(t, fake)
	require.NoError(t, c.DeleteProduct(100))

	fake = newFakeShopify(t)
	fake.handle("productDelete", `{
		"productDelete": {"deletedProductId": null, "userErrors": [{"field": null, "message": "Product does not exist"}]}
	}`)
	c = newTestClient(t, fake)
	err := c.DeleteProduct(100)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}
