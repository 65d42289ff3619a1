package shopify

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

// optionAxis is one inferred option dimension with its distinct values
// in first-seen order.
type optionAxis struct {
	Name   string
	Values []string
}

// Curated vocabularies for naming inferred option axes. Matching is a
// case-insensitive set intersection.
var (
	sizeTerms = []string{
		"XS", "S", "M", "L", "XL", "XXL",
		"Small", "Medium", "Large", "X-Small", "X-Large",
	}
	colorTerms = []string{
		"red", "blue", "green", "yellow", "orange", "purple", "pink",
		"black", "white", "gray", "grey", "brown", "navy",
	}
	materialTerms = []string{
		"cotton", "polyester", "silk", "wool", "leather", "denim", "linen", "velvet",
	}
)

var positionalNames = [3]string{"Option 1", "Option 2", "Option 3"}

// extractOptions infers up to three option axes from the local variant
// set: the distinct non-empty values of option1/2/3 across variants.
func extractOptions(variants []VariantData) []optionAxis {
	var axes []optionAxis
	for position := 0; position < 3; position++ {
		seen := make(map[string]bool)
		var values []string
		for _, v := range variants {
			opt := v.options()[position]
			if opt == nil || *opt == "" {
				continue
			}
			if !seen[*opt] {
				seen[*opt] = true
				values = append(values, *opt)
			}
		}
		if len(values) > 0 {
			axes = append(axes, optionAxis{
				Name:   optionName(position, values),
				Values: values,
			})
		}
	}
	return axes
}

// optionName classifies an axis by value overlap against the curated
// vocabularies, falling back to a positional default.
func optionName(position int, values []string) string {
	if intersects(values, sizeTerms) {
		return "Size"
	}
	if intersects(values, colorTerms) {
		return "Color"
	}
	if intersects(values, materialTerms) {
		return "Material"
	}
	return positionalNames[position]
}

func intersects(values, vocabulary []string) bool {
	for _, v := range values {
		for _, term := range vocabulary {
			if strings.EqualFold(v, term) {
				return true
			}
		}
	}
	return false
}

const productOptionsCreateMutation = `
	mutation productOptionsCreate($productId: ID!, $options: [OptionCreateInput!]!, $variantStrategy: ProductOptionCreateVariantStrategy) {
		productOptionsCreate(productId: $productId, options: $options, variantStrategy: $variantStrategy) {
			product {
				id
				variants(first: 100) {
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
				options {
					id
					name
					values
					position
				}
			}
			userErrors {
				field
				message
			}
		}
	}
`

// createProductOptions creates option axes on a remote product. The
// CREATE strategy makes Shopify generate one variant per combination of
// the supplied option values.
func (c *Client) createProductOptions(productID uint64, axes []optionAxis, strategy string) ([]RemoteOption, []RemoteVariant, error) {
	optionsInput := make([]map[string]any, len(axes))
	for i, axis := range axes {
		values := make([]map[string]any, len(axis.Values))
		for j, value := range axis.Values {
			values[j] = map[string]any{"name": value}
		}
		optionsInput[i] = map[string]any{
			"name":     axis.Name,
			"values":   values,
			"position": i + 1,
		}
	}

	data, err := c.Query(productOptionsCreateMutation, map[string]any{
		"productId":       GID("Product", productID),
		"options":         optionsInput,
		"variantStrategy": strategy,
	})
	if err != nil {
		return nil, nil, err
	}

	var payload struct {
		ProductOptionsCreate struct {
			Product    *remoteProductNode `json:"product"`
			UserErrors []UserError        `json:"userErrors"`
		} `json:"productOptionsCreate"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, nil, err
	}
	if err := validationError(payload.ProductOptionsCreate.UserErrors); err != nil {
		return nil, nil, err
	}
	if payload.ProductOptionsCreate.Product == nil {
		return nil, nil, &ProtocolError{Op: "product returned from productOptionsCreate"}
	}

	product := payload.ProductOptionsCreate.Product.toRemoteProduct()
	return product.Options, product.Variants, nil
}

// variantPair links a remote-created variant to the local variant it
// was matched against.
type variantPair struct {
	RemoteGID string
	Local     VariantData
}

// matchVariants maps remote-created variants back to local variants. A
// remote variant matches a local one iff every non-null local option
// value appears among its selected options (case-insensitive, the
// synthetic "Title" option excluded). First full match wins. When no
// remote variant matches any local variant, positional matching is the
// safety net: i-th remote variant against i-th local variant.
func (c *Client) matchVariants(locals []VariantData, remotes []RemoteVariant) []variantPair {
	var pairs []variantPair
	for _, remote := range remotes {
		for _, local := range locals {
			if variantMatches(local, remote.SelectedOptions) {
				pairs = append(pairs, variantPair{RemoteGID: remote.ID, Local: local})
				break
			}
		}
	}

	if len(pairs) == 0 {
		c.log.Warn("variant matching found no option-value matches, falling back to positional matching")
		for i, remote := range remotes {
			if i >= len(locals) {
				break
			}
			pairs = append(pairs, variantPair{RemoteGID: remote.ID, Local: locals[i]})
		}
	}
	return pairs
}

func variantMatches(local VariantData, selected []SelectedOption) bool {
	for _, opt := range local.options() {
		if opt == nil || *opt == "" {
			continue
		}
		if !selectedContains(selected, *opt) {
			return false
		}
	}
	return true
}

func selectedContains(selected []SelectedOption, value string) bool {
	for _, opt := range selected {
		if opt.Name == "Title" {
			continue
		}
		if strings.EqualFold(opt.Value, value) {
			return true
		}
	}
	return false
}

// reconcileVariants pushes the local variant set onto a freshly created
// remote product. A single local variant updates the auto-created
// default variant in place. For multiple variants it creates the option
// axes with automatic variant generation, matches the generated
// variants back, and patches price/SKU/inventory through REST. Any
// failure on the multi-variant path degrades to the single-variant
// shortcut rather than failing the product sync.
func (c *Client) reconcileVariants(product RemoteProduct, variants []VariantData) (*SyncResult, error) {
	if len(product.Variants) == 0 {
		return nil, &ProtocolError{Op: "default variant returned from productCreate"}
	}
	defaultGID := product.Variants[0].ID
	productID := ExtractID(product.ID)

	if len(variants) == 1 {
		if err := c.UpdateVariantViaRest(ExtractID(defaultGID), variants[0]); err != nil {
			return nil, err
		}
		snapshot, err := c.fetchProductWithVariants(product.ID)
		if err != nil {
			return nil, err
		}
		return &SyncResult{
			Product: snapshot,
			Matches: []VariantMatch{{LocalID: variants[0].LocalID, RemoteID: ExtractID(defaultGID)}},
		}, nil
	}

	matches, degraded, err := c.createOptionVariants(productID, defaultGID, variants)
	if err != nil {
		return nil, err
	}

	snapshot, err := c.fetchProductWithVariants(product.ID)
	if err != nil {
		return nil, err
	}
	return &SyncResult{Product: snapshot, Matches: matches, Degraded: degraded}, nil
}

// createOptionVariants runs the multi-variant path. The degraded return
// signals that only the default variant carries local data. An error is
// returned only when the degraded fallback itself fails.
func (c *Client) createOptionVariants(productID uint64, defaultGID string, variants []VariantData) ([]VariantMatch, bool, error) {
	axes := extractOptions(variants)

	_, created, err := c.createProductOptions(productID, axes, "CREATE")
	if err == nil && len(created) == 0 {
		err = &ProtocolError{Op: "variants generated by the CREATE strategy"}
	}

	var matches []VariantMatch
	if err == nil {
		for _, pair := range c.matchVariants(variants, created) {
			if restErr := c.UpdateVariantViaRest(ExtractID(pair.RemoteGID), pair.Local); restErr != nil {
				err = restErr
				break
			}
			matches = append(matches, VariantMatch{
				LocalID:  pair.Local.LocalID,
				RemoteID: ExtractID(pair.RemoteGID),
			})
		}
	}

	if err != nil {
		c.log.Error("option/variant creation failed, degrading to default variant sync", zap.Error(err))
		first := variants[0]
		if restErr := c.UpdateVariantViaRest(ExtractID(defaultGID), first); restErr != nil {
			return nil, true, restErr
		}
		return []VariantMatch{{LocalID: first.LocalID, RemoteID: ExtractID(defaultGID)}}, true, nil
	}
	return matches, false, nil
}
