package generation

import (
	"context"

	"github.com/phrazzld/productgen/internal/domain"
)

// ProductGenerator is the boundary between callers (the HTTP API, tools)
// and the generation pipeline. Every method either returns a fully
// validated listing or an error; there are no partial results.
type ProductGenerator interface {
	// GenerateFromImage describes the product shown at req.ImageURL.
	// It needs a backend with CapabilityVision.
	GenerateFromImage(ctx context.Context, req domain.FromImageRequest) (*domain.GeneratedContent, error)

	// GenerateFromTitle elaborates a listing around req.Title. The returned
	// title always equals req.Title exactly.
	GenerateFromTitle(ctx context.Context, req domain.FromTitleRequest) (*domain.GeneratedContent, error)

	// GenerateContent invents a complete listing with options and variants.
	GenerateContent(ctx context.Context, req domain.FreeformRequest) (*domain.GeneratedContent, error)
}

var _ ProductGenerator = (*Service)(nil)
