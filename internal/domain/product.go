package domain

// ProductStatus is the publication state of a generated listing.
type ProductStatus string

// Possible product status values
const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusProposed  ProductStatus = "proposed"
	ProductStatusPublished ProductStatus = "published"
	ProductStatusRejected  ProductStatus = "rejected"
)

// ProductStatuses lists every accepted status, in declaration order.
var ProductStatuses = []ProductStatus{
	ProductStatusDraft,
	ProductStatusProposed,
	ProductStatusPublished,
	ProductStatusRejected,
}

// Valid reports whether s is one of the known statuses.
func (s ProductStatus) Valid() bool {
	for _, known := range ProductStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ProductImage references an image by URL.
type ProductImage struct {
	URL string `json:"url"`
}

// ProductTag is a single searchable tag.
type ProductTag struct {
	Value string `json:"value"`
}

// ProductType is the product's type label.
type ProductType struct {
	Value string `json:"value"`
}

// ProductOption is a selectable dimension (e.g. Size) with its ordered values.
type ProductOption struct {
	Title  string   `json:"title"`
	Values []string `json:"values"`
}

// ProductVariant is a purchasable configuration of the product.
type ProductVariant struct {
	Title             string         `json:"title"`
	SKU               *string        `json:"sku"`
	EAN               *string        `json:"ean"`
	UPC               *string        `json:"upc"`
	Barcode           *string        `json:"barcode"`
	HSCode            *string        `json:"hs_code"`
	InventoryQuantity int            `json:"inventory_quantity"`
	AllowBackorder    bool           `json:"allow_backorder"`
	ManageInventory   bool           `json:"manage_inventory"`
	Weight            *float64       `json:"weight"`
	Length            *float64       `json:"length"`
	Height            *float64       `json:"height"`
	Width             *float64       `json:"width"`
	OriginCountry     *string        `json:"origin_country"`
	MIDCode           *string        `json:"mid_code"`
	Material          *string        `json:"material"`
	Metadata          map[string]any `json:"metadata"`
}

// GeneratedContent is a complete product listing as returned by the
// generation pipeline. Nullable attributes are pointers; a nil Metadata
// map is serialized as null.
type GeneratedContent struct {
	Title         string           `json:"title"`
	Subtitle      *string          `json:"subtitle"`
	Description   *string          `json:"description"`
	Handle        *string          `json:"handle"`
	IsGiftcard    bool             `json:"is_giftcard"`
	Discountable  bool             `json:"discountable"`
	Status        ProductStatus    `json:"status"`
	Images        []ProductImage   `json:"images"`
	Thumbnail     *string          `json:"thumbnail"`
	Tags          []ProductTag     `json:"tags"`
	Type          *ProductType     `json:"type"`
	Options       []ProductOption  `json:"options"`
	Variants      []ProductVariant `json:"variants"`
	Weight        *float64         `json:"weight"`
	Length        *float64         `json:"length"`
	Height        *float64         `json:"height"`
	Width         *float64         `json:"width"`
	HSCode        *string          `json:"hs_code"`
	OriginCountry *string          `json:"origin_country"`
	MIDCode       *string          `json:"mid_code"`
	Material      *string          `json:"material"`
	Metadata      map[string]any   `json:"metadata"`
}

// Normalize fills defaults so the record always serializes with arrays
// instead of nulls and carries a valid status.
func (c *GeneratedContent) Normalize() {
	if c.Status == "" {
		c.Status = ProductStatusDraft
	}
	if c.Images == nil {
		c.Images = []ProductImage{}
	}
	if c.Tags == nil {
		c.Tags = []ProductTag{}
	}
	if c.Options == nil {
		c.Options = []ProductOption{}
	}
	for i := range c.Options {
		if c.Options[i].Values == nil {
			c.Options[i].Values = []string{}
		}
	}
	if c.Variants == nil {
		c.Variants = []ProductVariant{}
	}
}

// Validate checks the invariants every accepted record must hold. An empty
// title is allowed; presence and type are checked against the raw document.
func (c *GeneratedContent) Validate() error {
	if !c.Status.Valid() {
		return NewValidationError("status", "must be one of draft, proposed, published, rejected", ErrInvalidProductStatus)
	}
	return nil
}

// StringPtr returns a pointer to s. Handy for building nullable fields.
func StringPtr(s string) *string {
	return &s
}

// Float64Ptr returns a pointer to f.
func Float64Ptr(f float64) *float64 {
	return &f
}
