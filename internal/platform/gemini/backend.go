package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/phrazzld/productgen/internal/generation"
	"github.com/phrazzld/productgen/internal/platform/logger"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

const (
	backendName      = "gemini"
	jsonMIMEType     = "application/json"
	defaultImageMIME = "image/jpeg"
)

// Config configures the Gemini backend.
type Config struct {
	APIKey string
	Model  string

	// Timeout bounds a single call; zero leaves it to the caller's context.
	Timeout time.Duration
}

// contentGenerator is the subset of *genai.Models used by the backend.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Backend is a generation.Backend with text and vision capability.
type Backend struct {
	logger  *slog.Logger
	models  contentGenerator
	model   string
	timeout time.Duration
}

var _ generation.Backend = (*Backend)(nil)

// New creates a Gemini backend for the Gemini developer API.
func New(ctx context.Context, cfg Config, log *slog.Logger) (*Backend, error) {
	if cfg.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return newBackend(cfg, client.Models, log)
}

func newBackend(cfg Config, models contentGenerator, log *slog.Logger) (*Backend, error) {
	if models == nil {
		return nil, errors.New("gemini models client cannot be nil")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	if strings.TrimSpace(model) == "" {
		return nil, ErrEmptyModel
	}
	if log == nil {
		log = slog.Default()
	}

	return &Backend{
		logger:  log,
		models:  models,
		model:   model,
		timeout: cfg.Timeout,
	}, nil
}

// Name implements generation.Backend.
func (b *Backend) Name() string {
	return backendName
}

// Model returns the configured model name.
func (b *Backend) Model() string {
	return b.model
}

// Capabilities implements generation.Backend.
func (b *Backend) Capabilities() []generation.Capability {
	return []generation.Capability{generation.CapabilityText, generation.CapabilityVision}
}

// Complete implements generation.Backend with a single GenerateContent call.
// Blocked or truncated candidates are returned as-is with their finish
// reason; interpreting them is left to the caller.
func (b *Backend) Complete(ctx context.Context, inv generation.Invocation) (*generation.Completion, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	log := logger.FromContextOrDefault(ctx, b.logger)

	resp, err := b.models.GenerateContent(ctx, b.model, userContents(inv), generateConfig(inv))
	if err != nil {
		return nil, fmt.Errorf("gemini generate content failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		log.DebugContext(ctx, "gemini returned no candidates", "model", b.model)
		return &generation.Completion{}, nil
	}

	candidate := resp.Candidates[0]
	completion := &generation.Completion{
		FinishReason: string(candidate.FinishReason),
	}
	if candidate.Content != nil {
		var text strings.Builder
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			text.WriteString(part.Text)
		}
		completion.Content = text.String()
	}

	log.DebugContext(ctx, "gemini candidate received",
		"model", b.model,
		"finish_reason", completion.FinishReason,
		"content_length", len(completion.Content))

	return completion, nil
}

func generateConfig(inv generation.Invocation) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(inv.Temperature)),
	}
	if inv.SystemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: inv.SystemPrompt}},
		}
	}
	if inv.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(inv.MaxTokens)
	}
	if inv.JSONMode {
		cfg.ResponseMIMEType = jsonMIMEType
	}
	return cfg
}

func userContents(inv generation.Invocation) []*genai.Content {
	parts := []*genai.Part{{Text: inv.UserPrompt}}
	if inv.ImageURL != "" {
		parts = append(parts, &genai.Part{
			FileData: &genai.FileData{
				FileURI:  inv.ImageURL,
				MIMEType: imageMIMEType(inv.ImageURL),
			},
		})
	}
	return []*genai.Content{{Role: "user", Parts: parts}}
}

// imageMIMEType guesses the MIME type from the URL path extension.
func imageMIMEType(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	ext := strings.ToLower(path.Ext(p))
	if ext == "" {
		return defaultImageMIME
	}
	if t := mime.TypeByExtension(ext); strings.HasPrefix(t, "image/") {
		if i := strings.IndexByte(t, ';'); i >= 0 {
			t = t[:i]
		}
		return t
	}
	return defaultImageMIME
}
