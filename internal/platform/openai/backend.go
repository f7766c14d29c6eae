package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"github.com/openai/openai-go/v3/shared/constant"
	"github.com/phrazzld/productgen/internal/generation"
	"github.com/phrazzld/productgen/internal/platform/logger"
)

// Provider defaults.
const (
	DefaultOpenAIModel   = "gpt-4o"
	DefaultDeepSeekModel = "deepseek-chat"
	DeepSeekBaseURL      = "https://api.deepseek.com"
)

// ErrImageNotSupported is returned when an image is sent to a text-only backend.
var ErrImageNotSupported = errors.New("backend does not accept images")

// Config configures a chat completions backend.
type Config struct {
	// Name identifies the backend in logs and errors, e.g. "openai" or "deepseek".
	Name    string
	APIKey  string
	Model   string
	BaseURL string

	// Vision marks the model as able to read image URLs.
	Vision bool

	// Timeout bounds a single HTTP request; zero leaves it to the context.
	Timeout time.Duration
}

// OpenAIConfig returns the configuration for api.openai.com with vision enabled.
func OpenAIConfig(apiKey, model, baseURL string) Config {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return Config{Name: "openai", APIKey: apiKey, Model: model, BaseURL: baseURL, Vision: true}
}

// DeepSeekConfig returns the configuration for the DeepSeek text API.
func DeepSeekConfig(apiKey, model, baseURL string) Config {
	if model == "" {
		model = DefaultDeepSeekModel
	}
	if baseURL == "" {
		baseURL = DeepSeekBaseURL
	}
	return Config{Name: "deepseek", APIKey: apiKey, Model: model, BaseURL: baseURL}
}

// chatCompleter is the subset of the SDK used here; *openai.ChatCompletionService
// satisfies it.
type chatCompleter interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Backend is a generation.Backend backed by a chat completions endpoint.
type Backend struct {
	name        string
	model       string
	vision      bool
	completions chatCompleter
	logger      *slog.Logger
}

var _ generation.Backend = (*Backend)(nil)

// New creates a backend. SDK retries are disabled so each Complete call is
// exactly one HTTP request.
func New(cfg Config, log *slog.Logger) (*Backend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: api key cannot be empty", cfg.Name)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	client := openai.NewClient(opts...)
	return newBackend(cfg, &client.Chat.Completions, log)
}

func newBackend(cfg Config, completions chatCompleter, log *slog.Logger) (*Backend, error) {
	if cfg.Name == "" {
		return nil, errors.New("backend name cannot be empty")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%s: model cannot be empty", cfg.Name)
	}
	if completions == nil {
		return nil, fmt.Errorf("%s: chat completions client cannot be nil", cfg.Name)
	}
	if log == nil {
		log = slog.Default()
	}

	return &Backend{
		name:        cfg.Name,
		model:       cfg.Model,
		vision:      cfg.Vision,
		completions: completions,
		logger:      log,
	}, nil
}

// Name implements generation.Backend.
func (b *Backend) Name() string {
	return b.name
}

// Model returns the model identifier sent with every request.
func (b *Backend) Model() string {
	return b.model
}

// Capabilities implements generation.Backend.
func (b *Backend) Capabilities() []generation.Capability {
	if b.vision {
		return []generation.Capability{generation.CapabilityText, generation.CapabilityVision}
	}
	return []generation.Capability{generation.CapabilityText}
}

// Complete implements generation.Backend with a single chat completion request.
func (b *Backend) Complete(ctx context.Context, inv generation.Invocation) (*generation.Completion, error) {
	if inv.ImageURL != "" && !b.vision {
		return nil, fmt.Errorf("%s: %w", b.name, ErrImageNotSupported)
	}

	log := logger.FromContextOrDefault(ctx, b.logger)
	params := b.buildParams(inv)

	resp, err := b.completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			log.DebugContext(ctx, "chat completion rejected",
				"backend", b.name,
				"status_code", apiErr.StatusCode)
		}
		return nil, fmt.Errorf("%s chat completion failed: %w", b.name, err)
	}

	if len(resp.Choices) == 0 {
		return &generation.Completion{}, nil
	}

	choice := resp.Choices[0]
	log.DebugContext(ctx, "chat completion received",
		"backend", b.name,
		"model", resp.Model,
		"finish_reason", choice.FinishReason,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	return &generation.Completion{
		Content:      choice.Message.Content,
		FinishReason: choice.FinishReason,
	}, nil
}

func (b *Backend) buildParams(inv generation.Invocation) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{systemMessage(inv.SystemPrompt), userMessage(inv)},
	}
	if inv.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(inv.MaxTokens))
	}
	params.Temperature = openai.Float(inv.Temperature)

	if inv.JSONMode {
		var jsonObject constant.JSONObject
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{Type: jsonObject.Default()},
		}
	}
	return params
}

func systemMessage(prompt string) openai.ChatCompletionMessageParamUnion {
	return openai.ChatCompletionMessageParamUnion{
		OfSystem: &openai.ChatCompletionSystemMessageParam{
			Content: openai.ChatCompletionSystemMessageParamContentUnion{
				OfString: openai.String(prompt),
			},
		},
	}
}

// userMessage is a plain string, or a text part plus an image part when
// the invocation carries an image.
func userMessage(inv generation.Invocation) openai.ChatCompletionMessageParamUnion {
	if inv.ImageURL == "" {
		return openai.ChatCompletionMessageParamUnion{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: openai.String(inv.UserPrompt),
				},
			},
		}
	}

	return openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
					{OfText: &openai.ChatCompletionContentPartTextParam{
						Text: inv.UserPrompt,
					}},
					{OfImageURL: &openai.ChatCompletionContentPartImageParam{
						ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
							URL:    inv.ImageURL,
							Detail: "auto",
						},
					}},
				},
			},
		},
	}
}
