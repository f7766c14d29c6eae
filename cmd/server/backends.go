package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/productgen/internal/config"
	"github.com/phrazzld/productgen/internal/generation"
	"github.com/phrazzld/productgen/internal/platform/gemini"
	"github.com/phrazzld/productgen/internal/platform/openai"
)

// backendFactory constructs a backend from its configuration.
type backendFactory func(ctx context.Context, cfg config.BackendConfig, timeout time.Duration, log *slog.Logger) (generation.Backend, error)

// newBackend is the production backendFactory.
func newBackend(
	ctx context.Context,
	cfg config.BackendConfig,
	timeout time.Duration,
	log *slog.Logger,
) (generation.Backend, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		oc := openai.OpenAIConfig(cfg.APIKey, cfg.Model, cfg.BaseURL)
		oc.Timeout = timeout
		return openai.New(oc, log)
	case config.ProviderDeepSeek:
		dc := openai.DeepSeekConfig(cfg.APIKey, cfg.Model, cfg.BaseURL)
		dc.Timeout = timeout
		return openai.New(dc, log)
	case config.ProviderGemini:
		return gemini.New(ctx, gemini.Config{APIKey: cfg.APIKey, Model: cfg.Model, Timeout: timeout}, log)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// buildRegistry fills one slot per capability. A slot whose backend has no
// API key, fails to construct, or lacks the capability is left
// unconfigured; the service still starts and only that capability fails.
func buildRegistry(
	ctx context.Context,
	cfg config.LLMConfig,
	factory backendFactory,
	log *slog.Logger,
) *generation.Registry {
	registry := generation.NewRegistry()
	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	slots := []struct {
		capability generation.Capability
		backend    config.BackendConfig
	}{
		{generation.CapabilityText, cfg.Text},
		{generation.CapabilityVision, cfg.Vision},
	}

	for _, s := range slots {
		slot := resolveSlot(ctx, s.capability, s.backend, timeout, factory, log)
		if err := registry.Register(s.capability, slot); err != nil {
			log.WarnContext(ctx, "backend rejected for capability",
				"capability", string(s.capability),
				"provider", s.backend.Provider,
				"error", err)
			_ = registry.Register(s.capability, generation.Unconfigured(err.Error()))
		}
	}

	registry.LogStatus(log)
	return registry
}

func resolveSlot(
	ctx context.Context,
	capability generation.Capability,
	cfg config.BackendConfig,
	timeout time.Duration,
	factory backendFactory,
	log *slog.Logger,
) generation.Slot {
	if cfg.APIKey == "" {
		return generation.Unconfigured(fmt.Sprintf("%s API key not set", cfg.Provider))
	}

	backend, err := factory(ctx, cfg, timeout, log)
	if err != nil {
		log.WarnContext(ctx, "failed to initialize backend",
			"capability", string(capability),
			"provider", cfg.Provider,
			"error", err)
		return generation.Unconfigured(fmt.Sprintf("%s backend failed to initialize", cfg.Provider))
	}
	return generation.Configured(backend)
}
