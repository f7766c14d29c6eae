package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/phrazzld/productgen/internal/generation"
	"github.com/phrazzld/productgen/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	resp   *openai.ChatCompletion
	err    error
	calls  int
	params openai.ChatCompletionNewParams
}

func (f *fakeCompleter) New(
	_ context.Context,
	body openai.ChatCompletionNewParams,
	_ ...option.RequestOption,
) (*openai.ChatCompletion, error) {
	f.calls++
	f.params = body
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func completion(content, finishReason string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Model: "test-model",
		Choices: []openai.ChatCompletionChoice{{
			FinishReason: finishReason,
			Message:      openai.ChatCompletionMessage{Content: content},
		}},
	}
}

func newTestBackend(t *testing.T, cfg Config, fake *fakeCompleter) *Backend {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	backend, err := newBackend(cfg, fake, log)
	require.NoError(t, err)
	return backend
}

func TestProviderConfigs(t *testing.T) {
	t.Parallel()

	deepseek := DeepSeekConfig("key", "", "")
	assert.Equal(t, "deepseek", deepseek.Name)
	assert.Equal(t, DefaultDeepSeekModel, deepseek.Model)
	assert.Equal(t, DeepSeekBaseURL, deepseek.BaseURL)
	assert.False(t, deepseek.Vision)

	custom := DeepSeekConfig("key", "deepseek-reasoner", "http://localhost:9000")
	assert.Equal(t, "deepseek-reasoner", custom.Model)
	assert.Equal(t, "http://localhost:9000", custom.BaseURL)

	oa := OpenAIConfig("key", "", "")
	assert.Equal(t, "openai", oa.Name)
	assert.Equal(t, DefaultOpenAIModel, oa.Model)
	assert.Empty(t, oa.BaseURL)
	assert.True(t, oa.Vision)
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("Missing API key", func(t *testing.T) {
		t.Parallel()
		_, err := New(OpenAIConfig("", "", ""), nil)
		assert.ErrorContains(t, err, "api key cannot be empty")
	})

	t.Run("Valid config", func(t *testing.T) {
		t.Parallel()
		backend, err := New(DeepSeekConfig("sk-test", "", ""), nil)
		require.NoError(t, err)
		assert.Equal(t, "deepseek", backend.Name())
		assert.Equal(t, DefaultDeepSeekModel, backend.Model())
	})

	t.Run("Missing model", func(t *testing.T) {
		t.Parallel()
		_, err := newBackend(Config{Name: "openai"}, &fakeCompleter{}, nil)
		assert.ErrorContains(t, err, "model cannot be empty")
	})

	t.Run("Nil client", func(t *testing.T) {
		t.Parallel()
		_, err := newBackend(Config{Name: "openai", Model: "gpt-4o"}, nil, nil)
		assert.ErrorContains(t, err, "client cannot be nil")
	})
}

func TestCapabilities(t *testing.T) {
	t.Parallel()

	text := newTestBackend(t, DeepSeekConfig("k", "", ""), &fakeCompleter{})
	assert.Equal(t, []generation.Capability{generation.CapabilityText}, text.Capabilities())

	vision := newTestBackend(t, OpenAIConfig("k", "", ""), &fakeCompleter{})
	assert.ElementsMatch(t,
		[]generation.Capability{generation.CapabilityText, generation.CapabilityVision},
		vision.Capabilities())
}

func TestComplete_TextRequest(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{resp: completion(`{"title":"Mug"}`, "stop")}
	backend := newTestBackend(t, DeepSeekConfig("k", "", ""), fake)

	got, err := backend.Complete(context.Background(), generation.Invocation{
		SystemPrompt: "system text",
		UserPrompt:   "user text",
		Temperature:  0.7,
		MaxTokens:    4096,
		JSONMode:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Mug"}`, got.Content)
	assert.Equal(t, "stop", got.FinishReason)

	require.Equal(t, 1, fake.calls)
	params := fake.params
	assert.Equal(t, openai.ChatModel(DefaultDeepSeekModel), params.Model)
	assert.Equal(t, int64(4096), params.MaxTokens.Value)
	assert.InDelta(t, 0.7, params.Temperature.Value, 1e-9)
	assert.NotNil(t, params.ResponseFormat.OfJSONObject)

	require.Len(t, params.Messages, 2)
	require.NotNil(t, params.Messages[0].OfSystem)
	assert.Equal(t, "system text", params.Messages[0].OfSystem.Content.OfString.Value)
	require.NotNil(t, params.Messages[1].OfUser)
	assert.Equal(t, "user text", params.Messages[1].OfUser.Content.OfString.Value)
	assert.Empty(t, params.Messages[1].OfUser.Content.OfArrayOfContentParts)
}

func TestComplete_ImageRequest(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{resp: completion(`{}`, "stop")}
	backend := newTestBackend(t, OpenAIConfig("k", "", ""), fake)

	_, err := backend.Complete(context.Background(), generation.Invocation{
		SystemPrompt: "system",
		UserPrompt:   "describe the product",
		ImageURL:     "https://cdn.example.com/shoe.jpg",
		Temperature:  0.2,
		MaxTokens:    1500,
	})
	require.NoError(t, err)

	params := fake.params
	assert.Nil(t, params.ResponseFormat.OfJSONObject)

	parts := params.Messages[1].OfUser.Content.OfArrayOfContentParts
	require.Len(t, parts, 2)
	require.NotNil(t, parts[0].OfText)
	assert.Equal(t, "describe the product", parts[0].OfText.Text)
	require.NotNil(t, parts[1].OfImageURL)
	assert.Equal(t, "https://cdn.example.com/shoe.jpg", parts[1].OfImageURL.ImageURL.URL)
	assert.Equal(t, "auto", parts[1].OfImageURL.ImageURL.Detail)
}

func TestComplete_ImageOnTextBackend(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{resp: completion(`{}`, "stop")}
	backend := newTestBackend(t, DeepSeekConfig("k", "", ""), fake)

	_, err := backend.Complete(context.Background(), generation.Invocation{ImageURL: "https://x/img.png"})
	assert.ErrorIs(t, err, ErrImageNotSupported)
	assert.Zero(t, fake.calls)
}

func TestComplete_Errors(t *testing.T) {
	t.Parallel()

	t.Run("Transport error is wrapped", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("connection refused")
		backend := newTestBackend(t, OpenAIConfig("k", "", ""), &fakeCompleter{err: boom})

		got, err := backend.Complete(context.Background(), generation.Invocation{UserPrompt: "x"})
		assert.Nil(t, got)
		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "openai chat completion failed")
	})

	t.Run("No choices yields empty completion", func(t *testing.T) {
		t.Parallel()

		backend := newTestBackend(t, OpenAIConfig("k", "", ""), &fakeCompleter{resp: &openai.ChatCompletion{}})

		got, err := backend.Complete(context.Background(), generation.Invocation{UserPrompt: "x"})
		require.NoError(t, err)
		assert.Empty(t, got.Content)
		assert.Empty(t, got.FinishReason)
	})
}
