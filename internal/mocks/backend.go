package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/productgen/internal/generation"
)

// MockBackend implements generation.Backend for testing
type MockBackend struct {
	// BackendName is returned by Name; defaults to "mock"
	BackendName string

	// Caps is returned by Capabilities; defaults to text only
	Caps []generation.Capability

	// CompleteFn allows test cases to mock the Complete behavior
	CompleteFn func(ctx context.Context, inv generation.Invocation) (*generation.Completion, error)

	// Default response values
	Content      string
	FinishReason string
	Err          error

	// Call tracking for verification
	CompleteCalls struct {
		mu          sync.Mutex
		Count       int
		Invocations []generation.Invocation
	}
}

// NewTextBackend returns a text-only backend answering with content.
func NewTextBackend(content string) *MockBackend {
	return &MockBackend{
		Caps:         []generation.Capability{generation.CapabilityText},
		Content:      content,
		FinishReason: "stop",
	}
}

// NewVisionBackend returns a text+vision backend answering with content.
func NewVisionBackend(content string) *MockBackend {
	return &MockBackend{
		Caps:         []generation.Capability{generation.CapabilityText, generation.CapabilityVision},
		Content:      content,
		FinishReason: "stop",
	}
}

// NewFailingBackend returns a text+vision backend whose calls fail with err.
func NewFailingBackend(err error) *MockBackend {
	return &MockBackend{
		Caps: []generation.Capability{generation.CapabilityText, generation.CapabilityVision},
		Err:  err,
	}
}

// Name implements generation.Backend
func (m *MockBackend) Name() string {
	if m.BackendName == "" {
		return "mock"
	}
	return m.BackendName
}

// Capabilities implements generation.Backend
func (m *MockBackend) Capabilities() []generation.Capability {
	if len(m.Caps) == 0 {
		return []generation.Capability{generation.CapabilityText}
	}
	return m.Caps
}

// Complete implements generation.Backend
func (m *MockBackend) Complete(ctx context.Context, inv generation.Invocation) (*generation.Completion, error) {
	m.CompleteCalls.mu.Lock()
	m.CompleteCalls.Count++
	m.CompleteCalls.Invocations = append(m.CompleteCalls.Invocations, inv)
	m.CompleteCalls.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, inv)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &generation.Completion{Content: m.Content, FinishReason: m.FinishReason}, nil
}

// CallCount returns how many times Complete was called
func (m *MockBackend) CallCount() int {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()
	return m.CompleteCalls.Count
}

// LastInvocation returns the most recent invocation, or the zero value
func (m *MockBackend) LastInvocation() generation.Invocation {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()
	if len(m.CompleteCalls.Invocations) == 0 {
		return generation.Invocation{}
	}
	return m.CompleteCalls.Invocations[len(m.CompleteCalls.Invocations)-1]
}
