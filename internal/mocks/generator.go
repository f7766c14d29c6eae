package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/productgen/internal/domain"
	"github.com/phrazzld/productgen/internal/generation"
)

// MockGenerator implements generation.ProductGenerator for testing
type MockGenerator struct {
	// Per-operation overrides
	GenerateFromImageFn func(ctx context.Context, req domain.FromImageRequest) (*domain.GeneratedContent, error)
	GenerateFromTitleFn func(ctx context.Context, req domain.FromTitleRequest) (*domain.GeneratedContent, error)
	GenerateContentFn   func(ctx context.Context, req domain.FreeformRequest) (*domain.GeneratedContent, error)

	// Default response values
	Content *domain.GeneratedContent
	Err     error

	// Call tracking for verification
	mu            sync.Mutex
	ImageRequests []domain.FromImageRequest
	TitleRequests []domain.FromTitleRequest
	FreeformCalls []domain.FreeformRequest
}

var _ generation.ProductGenerator = (*MockGenerator)(nil)

// NewMockGeneratorWithContent creates a MockGenerator that returns content
func NewMockGeneratorWithContent(content *domain.GeneratedContent) *MockGenerator {
	return &MockGenerator{Content: content}
}

// NewMockGeneratorWithError creates a MockGenerator that returns err
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}

// GenerateFromImage implements generation.ProductGenerator
func (m *MockGenerator) GenerateFromImage(
	ctx context.Context,
	req domain.FromImageRequest,
) (*domain.GeneratedContent, error) {
	m.mu.Lock()
	m.ImageRequests = append(m.ImageRequests, req)
	m.mu.Unlock()

	if m.GenerateFromImageFn != nil {
		return m.GenerateFromImageFn(ctx, req)
	}
	return m.result()
}

// GenerateFromTitle implements generation.ProductGenerator
func (m *MockGenerator) GenerateFromTitle(
	ctx context.Context,
	req domain.FromTitleRequest,
) (*domain.GeneratedContent, error) {
	m.mu.Lock()
	m.TitleRequests = append(m.TitleRequests, req)
	m.mu.Unlock()

	if m.GenerateFromTitleFn != nil {
		return m.GenerateFromTitleFn(ctx, req)
	}
	return m.result()
}

// GenerateContent implements generation.ProductGenerator
func (m *MockGenerator) GenerateContent(
	ctx context.Context,
	req domain.FreeformRequest,
) (*domain.GeneratedContent, error) {
	m.mu.Lock()
	m.FreeformCalls = append(m.FreeformCalls, req)
	m.mu.Unlock()

	if m.GenerateContentFn != nil {
		return m.GenerateContentFn(ctx, req)
	}
	return m.result()
}

// TotalCalls returns the number of calls across all operations
func (m *MockGenerator) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ImageRequests) + len(m.TitleRequests) + len(m.FreeformCalls)
}

func (m *MockGenerator) result() (*domain.GeneratedContent, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Content, nil
}
