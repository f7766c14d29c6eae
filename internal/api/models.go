package api

import (
	"github.com/phrazzld/productgen/internal/domain"
)

// GenerateFromImageRequest is the body of POST /admin/products/generate-from-image.
type GenerateFromImageRequest struct {
	ImageURL        string `json:"image_url"        validate:"required,max=2048"`
	IncludeVariants bool   `json:"include_variants"`
	Region          string `json:"region"           validate:"max=100"`
	CategoryID      string `json:"category_id"      validate:"max=255"`
}

// GenerateFromTitleRequest is the body of POST /admin/products/generate-from-title.
type GenerateFromTitleRequest struct {
	Title           string `json:"title"            validate:"required,max=500"`
	IncludeVariants bool   `json:"include_variants"`
	Region          string `json:"region"           validate:"max=100"`
	CategoryID      string `json:"category_id"      validate:"max=255"`
}

// GenerateContentRequest is the body of POST /admin/products/generate.
// Every field is optional and an empty body is accepted.
type GenerateContentRequest struct {
	Region     string `json:"region"      validate:"max=100"`
	CategoryID string `json:"category_id" validate:"max=255"`
}

// ProductResponse wraps a generated listing.
type ProductResponse struct {
	Product *domain.GeneratedContent `json:"product"`
}

// HealthResponse reports liveness and backend availability.
type HealthResponse struct {
	Status   string          `json:"status"`
	Backends map[string]bool `json:"backends"`
}
