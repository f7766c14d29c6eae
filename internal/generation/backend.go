package generation

import "context"

// Capability is the backend trait a task requires.
type Capability string

// Known capabilities
const (
	CapabilityText   Capability = "text"
	CapabilityVision Capability = "vision"
)

// Task identifies one of the three generation flows.
type Task string

// Known tasks
const (
	TaskImage    Task = "image"
	TaskTitle    Task = "title"
	TaskFreeform Task = "freeform"
)

// RequiredCapability returns the capability a task needs from its backend.
func (t Task) RequiredCapability() Capability {
	if t == TaskImage {
		return CapabilityVision
	}
	return CapabilityText
}

// Invocation is a single request to a backend. Backends must honor every
// field; JSONMode asks for a bare JSON object as output.
type Invocation struct {
	SystemPrompt string
	UserPrompt   string

	// ImageURL is attached as an image part when non-empty.
	ImageURL string

	Temperature float64
	MaxTokens   int
	JSONMode    bool
}

// Completion is the raw outcome of a backend call.
type Completion struct {
	// Content is the concatenated text of the first choice/candidate.
	Content string

	// FinishReason is the backend's reported stop reason, or "" if unknown.
	FinishReason string
}

// Backend is an external generative service. Implementations live in
// internal/platform and must not retry on their own.
type Backend interface {
	// Name identifies the backend in logs, metrics, and errors.
	Name() string

	// Capabilities lists what the backend can do. A vision backend also
	// lists CapabilityText.
	Capabilities() []Capability

	// Complete performs exactly one call. Any transport-level failure,
	// including context cancellation, is returned as an error.
	Complete(ctx context.Context, inv Invocation) (*Completion, error)
}

func supports(b Backend, capability Capability) bool {
	for _, c := range b.Capabilities() {
		if c == capability {
			return true
		}
	}
	return false
}
