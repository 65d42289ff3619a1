package shopify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchProducts(t *testing.T) {
	fake := newFakeShopify(t)
	fake.handle("products", `{
		"products": {
			"edges": [
				{"node": {
					"id": "gid://shopify/Product/1",
					"title": "Mug",
					"description": "A mug",
					"vendor": "Acme",
					"productType": "Kitchen",
					"status": "ACTIVE",
					"handle": "mug",
					"variants": {"edges": [{"node": {
						"id": "gid://shopify/ProductVariant/11",
						"title": "Default Title",
						"sku": "MUG-1",
						"price": "9.99",
						"inventoryQuantity": 3,
						"selectedOptions": [{"name": "Title", "value": "Default Title"}]
					}}]},
					"images": {"edges": [{"node": {
						"id": "gid://shopify/ProductImage/21",
						"url": "https://cdn.shopify.com/mug.png",
						"altText": "mug"
					}}]}
				}},
				{"node": {
					"id": "gid://shopify/Product/2",
					"title": "Tee",
					"descriptionHtml": "<p>soft</p>",
					"status": "DRAFT"
				}}
			],
			"pageInfo": {"hasNextPage": true, "endCursor": "cursor-abc"}
		}
	}`)
	c := newTestClient(t, fake)

	page, err := c.FetchProducts(2, nil)
	require.NoError(t, err)

	require.Len(t, page.Products, 2)
	assert.True(t, page.HasNextPage)
	require.NotNil(t, page.EndCursor)
	assert.Equal(t, "cursor-abc", *page.EndCursor)

	mug := page.Products[0]
	assert.Equal(t, "Mug", mug.Title)
	require.Len(t, mug.Variants, 1)
	assert.Equal(t, "MUG-1", mug.Variants[0].SKU)
	assert.Equal(t, 3, mug.Variants[0].InventoryQty)
	require.Len(t, mug.Images, 1)
	assert.Equal(t, "https://cdn.shopify.com/mug.png", mug.Images[0].URL)

	// descriptionHtml backfills an absent description.
	assert.Equal(t, "<p>soft</p>", page.Products[1].Description)

	// The cursor is forwarded on subsequent pages.
	cursor := "cursor-abc"
	_, err = c.FetchProducts(2, &cursor)
	require.NoError(t, err)
	require.Len(t, fake.GraphQLCalls, 2)
	assert.Equal(t, "cursor-abc", fake.GraphQLCalls[1].Variables["cursor"])
}
