package domain

import "strings"

// FromImageRequest asks for a listing describing the product shown in an image.
type FromImageRequest struct {
	ImageURL        string
	IncludeVariants bool
	Region          string
	CategoryName    string
}

// Validate checks that the image reference is present.
func (r FromImageRequest) Validate() error {
	if strings.TrimSpace(r.ImageURL) == "" {
		return NewValidationError("image_url", "is required", ErrEmptyImageURL)
	}
	return nil
}

// FromTitleRequest asks for a listing elaborated from an exact product title.
type FromTitleRequest struct {
	Title           string
	IncludeVariants bool
	Region          string
	CategoryName    string
}

// Validate checks that the title is present.
func (r FromTitleRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return NewValidationError("title", "is required", ErrEmptyTitle)
	}
	return nil
}

// FreeformRequest asks for an invented listing. Both fields are optional hints.
type FreeformRequest struct {
	Region       string
	CategoryName string
}
