package shopify

import "encoding/json"

const productsPageQuery = `
	query getProducts($first: Int!, $cursor: String) {
		products(first: $first, after: $cursor) {
			edges {
				node {
					id
					title
					description
					vendor
					productType
					status
					handle
					variants(first: 10) {
						edges {
							node {
								id
								title
								sku
								price
								inventoryQuantity
								selectedOptions {
									name
									value
								}
							}
						}
					}
					images(first: 10) {
						edges {
							node {
								id
								url
								altText
							}
						}
					}
				}
			}
			pageInfo {
				hasNextPage
				endCursor
			}
		}
	}
`

// FetchProducts returns one page of the remote catalog. The caller
// drives further pages by re-invoking with the returned cursor.
func (c *Client) FetchProducts(first int, cursor *string) (*ProductsPage, error) {
	variables := map[string]any{"first": first}
	if cursor != nil {
		variables["cursor"] = *cursor
	}

	data, err := c.Query(productsPageQuery, variables)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Products struct {
			Edges []struct {
				Node remoteProductNode `json:"node"`
			} `json:"edges"`
			PageInfo struct {
				HasNextPage bool    `json:"hasNextPage"`
				EndCursor   *string `json:"endCursor"`
			} `json:"pageInfo"`
		} `json:"products"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}

	page := &ProductsPage{
		Products:    make([]RemoteProduct, len(payload.Products.Edges)),
		HasNextPage: payload.Products.PageInfo.HasNextPage,
		EndCursor:   payload.Products.PageInfo.EndCursor,
	}
	for i, edge := range payload.Products.Edges {
		page.Products[i] = edge.Node.toRemoteProduct()
	}
	return page, nil
}
