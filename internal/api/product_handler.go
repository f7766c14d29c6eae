package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/productgen/internal/api/shared"
	"github.com/phrazzld/productgen/internal/catalog"
	"github.com/phrazzld/productgen/internal/domain"
	"github.com/phrazzld/productgen/internal/generation"
	"github.com/phrazzld/productgen/internal/platform/logger"
)

// ProductHandler serves the admin product generation endpoints.
type ProductHandler struct {
	generator  generation.ProductGenerator
	categories catalog.CategoryLookup
	logger     *slog.Logger
}

// NewProductHandler creates a ProductHandler. categories may be nil, in
// which case category ids are ignored.
func NewProductHandler(
	generator generation.ProductGenerator,
	categories catalog.CategoryLookup,
	log *slog.Logger,
) (*ProductHandler, error) {
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if categories == nil {
		categories = catalog.Disabled{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &ProductHandler{
		generator:  generator,
		categories: categories,
		logger:     log,
	}, nil
}

// GenerateFromImage handles POST /admin/products/generate-from-image.
func (h *ProductHandler) GenerateFromImage(w http.ResponseWriter, r *http.Request) {
	var req GenerateFromImageRequest
	if !h.decodeAndValidate(w, r, &req, false) {
		return
	}

	content, err := h.generator.GenerateFromImage(r.Context(), domain.FromImageRequest{
		ImageURL:        req.ImageURL,
		IncludeVariants: req.IncludeVariants,
		Region:          req.Region,
		CategoryName:    catalog.ResolveName(r.Context(), h.categories, req.CategoryID, h.logger),
	})
	h.respond(w, r, content, err)
}

// GenerateFromTitle handles POST /admin/products/generate-from-title.
func (h *ProductHandler) GenerateFromTitle(w http.ResponseWriter, r *http.Request) {
	var req GenerateFromTitleRequest
	if !h.decodeAndValidate(w, r, &req, false) {
		return
	}

	content, err := h.generator.GenerateFromTitle(r.Context(), domain.FromTitleRequest{
		Title:           req.Title,
		IncludeVariants: req.IncludeVariants,
		Region:          req.Region,
		CategoryName:    catalog.ResolveName(r.Context(), h.categories, req.CategoryID, h.logger),
	})
	h.respond(w, r, content, err)
}

// GenerateContent handles POST /admin/products/generate.
func (h *ProductHandler) GenerateContent(w http.ResponseWriter, r *http.Request) {
	var req GenerateContentRequest
	if !h.decodeAndValidate(w, r, &req, true) {
		return
	}

	content, err := h.generator.GenerateContent(r.Context(), domain.FreeformRequest{
		Region:       req.Region,
		CategoryName: catalog.ResolveName(r.Context(), h.categories, req.CategoryID, h.logger),
	})
	h.respond(w, r, content, err)
}

// decodeAndValidate writes a 400 response and returns false when the body
// cannot be decoded or fails validation.
func (h *ProductHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		if !(allowEmpty && errors.Is(err, shared.ErrEmptyBody)) {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
			return false
		}
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

func (h *ProductHandler) respond(w http.ResponseWriter, r *http.Request, content *domain.GeneratedContent, err error) {
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if content == nil {
		logger.FromContextOrDefault(r.Context(), h.logger).
			ErrorContext(r.Context(), "generator returned neither content nor error")
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ProductResponse{Product: content})
}
