package shopify

import "github.com/google/uuid"

// SelectedOption is one option name/value pair on a remote variant.
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RemoteVariant is a Shopify product variant as returned by the
// GraphQL Admin API.
type RemoteVariant struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	SKU             string           `json:"sku"`
	Price           string           `json:"price"`
	InventoryQty    int              `json:"inventoryQuantity"`
	SelectedOptions []SelectedOption `json:"selectedOptions"`
}

// RemoteImage is a Shopify product image node.
type RemoteImage struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

// RemoteOption is a Shopify product option axis.
type RemoteOption struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Values   []string `json:"values"`
	Position int      `json:"position"`
}

// RemoteProduct is a Shopify product snapshot with its variants and
// images flattened out of the connection envelopes.
type RemoteProduct struct {
	ID          string
	Title       string
	Description string
	Vendor      string
	ProductType string
	Status      string
	Handle      string
	Variants    []RemoteVariant
	Images      []RemoteImage
	Options     []RemoteOption
}

// connection envelopes used only for decoding.

type variantConnection struct {
	Edges []struct {
		Node RemoteVariant `json:"node"`
	} `json:"edges"`
}

func (c variantConnection) nodes() []RemoteVariant {
	out := make([]RemoteVariant, len(c.Edges))
	for i, e := range c.Edges {
		out[i] = e.Node
	}
	return out
}

type imageConnection struct {
	Edges []struct {
		Node RemoteImage `json:"node"`
	} `json:"edges"`
}

func (c imageConnection) nodes() []RemoteImage {
	out := make([]RemoteImage, len(c.Edges))
	for i, e := range c.Edges {
		out[i] = e.Node
	}
	return out
}

type remoteProductNode struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	DescriptionHTML string            `json:"descriptionHtml"`
	Vendor          string            `json:"vendor"`
	ProductType     string            `json:"productType"`
	Status          string            `json:"status"`
	Handle          string            `json:"handle"`
	Variants        variantConnection `json:"variants"`
	Images          imageConnection   `json:"images"`
	Options         []RemoteOption    `json:"options"`
}

func (n remoteProductNode) toRemoteProduct() RemoteProduct {
	description := n.Description
	if description == "" {
		description = n.DescriptionHTML
	}
	return RemoteProduct{
		ID:          n.ID,
		Title:       n.Title,
		Description: description,
		Vendor:      n.Vendor,
		ProductType: n.ProductType,
		Status:      n.Status,
		Handle:      n.Handle,
		Variants:    n.Variants.nodes(),
		Images:      n.Images.nodes(),
		Options:     n.Options,
	}
}

// ProductData is the local product state handed to the sync engine.
type ProductData struct {
	ShopifyProductID *uint64
	Title            string
	BodyHTML         string
	Vendor           string
	ProductType      string
	Status           string // local status, mapped to Shopify at the wire
}

// VariantData is the local variant state handed to the sync engine.
// Price is a 2-digit decimal string; Shopify rejects float prices.
type VariantData struct {
	LocalID          uuid.UUID
	ShopifyVariantID *uint64
	Option1          *string
	Option2          *string
	Option3          *string
	Price            string
	SKU              *string
	InventoryQty     int
}

func (v VariantData) options() []*string {
	return []*string{v.Option1, v.Option2, v.Option3}
}

// title composes the display title the way Shopify titles variants.
func (v VariantData) title() string {
	title := ""
	for _, opt := range v.options() {
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

// VariantMatch links a local variant to the remote variant it was
// reconciled against.
type VariantMatch struct {
	LocalID  uuid.UUID
	RemoteID uint64
}

// SyncResult is the outcome of a product sync. Degraded means option or
// variant creation failed and only the default variant carries the
// first local variant's data; the product itself is synced.
type SyncResult struct {
	Product  RemoteProduct
	Matches  []VariantMatch
	Degraded bool
}

// ProductsPage is one page of the remote catalog.
type ProductsPage struct {
	Products    []RemoteProduct
	HasNextPage bool
	EndCursor   *string
}

// StagedParameter is a signed form parameter for a staged upload.
type StagedParameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// StagedTarget is the destination returned by stagedUploadsCreate.
type StagedTarget struct {
	URL         string            `json:"url"`
	ResourceURL string            `json:"resourceUrl"`
	Parameters  []StagedParameter `json:"parameters"`
}

// Media is the remote media record created for an uploaded image.
type Media struct {
	ID      string
	URL     string
	AltText string
}

// ImageFile carries the bytes and metadata of an image to upload.
type ImageFile struct {
	Name        string
	ContentType string
	Size        int64
	Content     []byte
}
