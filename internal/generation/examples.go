package generation

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/phrazzld/productgen/internal/domain"
)

// titleExample is the worked payload shown with a title prompt. It carries
// the caller's title so the backend sees the exact value it must echo.
func titleExample(opts PromptOptions) *domain.GeneratedContent {
	return &domain.GeneratedContent{
		Title:        opts.Title,
		Subtitle:     domain.StringPtr("A compelling subtitle derived from the main title."),
		Description:  domain.StringPtr("A detailed, persuasive, and SEO-friendly product description based on the title. It should highlight key features and benefits."),
		Handle:       domain.StringPtr("a-url-friendly-handle-based-on-the-title"),
		IsGiftcard:   false,
		Discountable: true,
		Status:       domain.ProductStatusDraft,
		Images:       []domain.ProductImage{},
		Tags:         []domain.ProductTag{{Value: "tag-one"}, {Value: "tag-two"}},
		Type:         &domain.ProductType{Value: "Product Type"},
		Options: []domain.ProductOption{
			{Title: "Size", Values: []string{"S", "M", "L"}},
		},
		Variants: []domain.ProductVariant{
			{
				Title:             "S",
				SKU:               domain.StringPtr("SKU-S"),
				InventoryQuantity: 10,
				ManageInventory:   true,
				Metadata:          map[string]any{},
			},
		},
		Metadata: map[string]any{},
	}
}

// freeformExample is the fixed worked payload shown with a freeform prompt.
func freeformExample(PromptOptions) *domain.GeneratedContent {
	return &domain.GeneratedContent{
		Title:        "Premium Cotton Crew Neck T-Shirt",
		Subtitle:     domain.StringPtr("Comfortable, Durable, Everyday Essential"),
		Description:  domain.StringPtr("Experience ultimate comfort with our premium cotton crew neck t-shirt..."),
		Handle:       domain.StringPtr("premium-cotton-crew-neck-tshirt"),
		IsGiftcard:   false,
		Discountable: true,
		Status:       domain.ProductStatusDraft,
		Images:       []domain.ProductImage{{URL: "placeholder-tshirt-image.jpg"}},
		Thumbnail:    domain.StringPtr("placeholder-tshirt-thumb.jpg"),
		Tags: []domain.ProductTag{
			{Value: "apparel"},
			{Value: "essentials"},
			{Value: "cotton"},
		},
		Type: &domain.ProductType{Value: "clothing"},
		Options: []domain.ProductOption{
			{Title: "Size", Values: []string{"S", "M", "L", "XL"}},
			{Title: "Color", Values: []string{"Black", "White", "Navy"}},
		},
		Variants: []domain.ProductVariant{
			{
				Title:             "Small Black T-Shirt",
				SKU:               domain.StringPtr("TCN-BLK-S"),
				HSCode:            domain.StringPtr("6109.10"),
				InventoryQuantity: 50,
				ManageInventory:   true,
				Weight:            domain.Float64Ptr(200),
				Length:            domain.Float64Ptr(30),
				Height:            domain.Float64Ptr(5),
				Width:             domain.Float64Ptr(20),
				OriginCountry:     domain.StringPtr("US"),
				Material:          domain.StringPtr("100% Cotton"),
				Metadata: map[string]any{
					"care_instructions": "Machine wash cold, tumble dry low",
				},
			},
		},
		HSCode:        domain.StringPtr("6109.10"),
		OriginCountry: domain.StringPtr("US"),
		Material:      domain.StringPtr("100% Cotton"),
		Metadata: map[string]any{
			"collection": "Essentials",
			"season":     "All-year",
		},
	}
}

// renderExample formats an example record as indented JSON. HTML escaping
// is disabled so titles with '&' or '<' appear verbatim.
func renderExample(content *domain.GeneratedContent) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(content); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
