package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/productgen/internal/domain"
	"github.com/phrazzld/productgen/internal/platform/logger"
	"github.com/phrazzld/productgen/internal/redact"
)

// Profile holds the sampling parameters for one task.
type Profile struct {
	Temperature float64
	MaxTokens   int
}

// Sampling profiles. Image analysis describes facts and runs cold; the
// text tasks invent most fields and run warmer with a larger budget.
var (
	ImageProfile = Profile{Temperature: 0.2, MaxTokens: 1500}
	TextProfile  = Profile{Temperature: 0.7, MaxTokens: 4096}
)

// ProfileFor returns the sampling profile used for task.
func ProfileFor(task Task) Profile {
	if task == TaskImage {
		return ImageProfile
	}
	return TextProfile
}

// RetryPolicy controls re-attempts of failed backend calls. Only transport
// failures are retried; the zero value makes exactly one attempt.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// Outcome labels reported to a Recorder.
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidRequest     = "invalid_request"
	OutcomeBackendUnavailable = "backend_unavailable"
	OutcomeTransportFailure   = "transport_failure"
	OutcomeEmptyResponse      = "empty_response"
	OutcomeMalformedResponse  = "malformed_response"
	OutcomeSchemaViolation    = "schema_violation"
	OutcomeInternal           = "internal"
)

// Outcome classifies err into one of the Outcome labels. A nil error is a success.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrInvalidRequest):
		return OutcomeInvalidRequest
	case errors.Is(err, ErrBackendUnavailable):
		return OutcomeBackendUnavailable
	case errors.Is(err, ErrTransportFailure):
		return OutcomeTransportFailure
	case errors.Is(err, ErrEmptyResponse):
		return OutcomeEmptyResponse
	case errors.Is(err, ErrMalformedResponse):
		return OutcomeMalformedResponse
	case errors.Is(err, ErrSchemaViolation):
		return OutcomeSchemaViolation
	default:
		return OutcomeInternal
	}
}

// Recorder receives measurements from the pipeline.
type Recorder interface {
	// ObserveGeneration is called once per operation with its outcome label.
	ObserveGeneration(task Task, outcome string, duration time.Duration)

	// ObserveBackendCall is called once per backend attempt.
	ObserveBackendCall(backend string, task Task, duration time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveGeneration(Task, string, time.Duration)         {}
func (nopRecorder) ObserveBackendCall(string, Task, time.Duration, error) {}

// Option configures a Service.
type Option func(*Service)

// WithRetryPolicy enables bounded retries of transport failures.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(s *Service) {
		s.retry = p
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// Service runs the generation pipeline: validate the request, resolve a
// backend, build prompts, call the backend, and parse the response.
// It is safe for concurrent use.
type Service struct {
	registry *Registry
	prompts  *PromptBuilder
	parser   *ResponseParser
	logger   *slog.Logger
	retry    RetryPolicy
	recorder Recorder

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService wires the pipeline stages together.
func NewService(
	registry *Registry,
	prompts *PromptBuilder,
	parser *ResponseParser,
	logger *slog.Logger,
	opts ...Option,
) (*Service, error) {
	if registry == nil {
		return nil, errors.New("registry cannot be nil")
	}
	if prompts == nil {
		return nil, errors.New("prompt builder cannot be nil")
	}
	if parser == nil {
		return nil, errors.New("response parser cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	s := &Service{
		registry: registry,
		prompts:  prompts,
		parser:   parser,
		logger:   logger,
		recorder: nopRecorder{},
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.retry.MaxRetries < 0 {
		s.retry.MaxRetries = 0
	}
	return s, nil
}

// GenerateFromImage implements ProductGenerator.
func (s *Service) GenerateFromImage(ctx context.Context, req domain.FromImageRequest) (*domain.GeneratedContent, error) {
	return s.run(ctx, TaskImage, req.Validate, PromptOptions{
		ImageURL:        req.ImageURL,
		IncludeVariants: req.IncludeVariants,
		Region:          req.Region,
		CategoryName:    req.CategoryName,
	})
}

// GenerateFromTitle implements ProductGenerator.
func (s *Service) GenerateFromTitle(ctx context.Context, req domain.FromTitleRequest) (*domain.GeneratedContent, error) {
	return s.run(ctx, TaskTitle, req.Validate, PromptOptions{
		Title:           req.Title,
		IncludeVariants: req.IncludeVariants,
		Region:          req.Region,
		CategoryName:    req.CategoryName,
	})
}

// GenerateContent implements ProductGenerator.
func (s *Service) GenerateContent(ctx context.Context, req domain.FreeformRequest) (*domain.GeneratedContent, error) {
	return s.run(ctx, TaskFreeform, nil, PromptOptions{
		Region:       req.Region,
		CategoryName: req.CategoryName,
	})
}

func (s *Service) run(
	ctx context.Context,
	task Task,
	validate func() error,
	opts PromptOptions,
) (content *domain.GeneratedContent, err error) {
	start := time.Now()
	requestID := logger.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = logger.WithRequestID(ctx, requestID)
	}
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		"generation_id", requestID,
		"task", string(task))
	ctx = logger.WithLogger(ctx, log)

	defer func() {
		outcome := Outcome(err)
		s.recorder.ObserveGeneration(task, outcome, time.Since(start))
		if err != nil {
			log.ErrorContext(ctx, "product generation failed",
				"outcome", outcome,
				"error", redact.Error(err),
				"duration_ms", time.Since(start).Milliseconds())
			return
		}
		log.InfoContext(ctx, "product generation succeeded",
			"title", content.Title,
			"duration_ms", time.Since(start).Milliseconds())
	}()

	if validate != nil {
		if verr := validate(); verr != nil {
			var ve *domain.ValidationError
			field := ""
			if errors.As(verr, &ve) {
				field = ve.Field
			}
			return nil, invalidRequestError(task, field, verr)
		}
	}

	capability := task.RequiredCapability()
	backend, err := s.registry.Resolve(capability)
	if err != nil {
		if genErr, ok := AsError(err); ok {
			genErr.Task = task
		}
		return nil, err
	}
	log = log.With("backend", backend.Name())
	ctx = logger.WithLogger(ctx, log)

	prompt, err := s.prompts.Build(task, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s prompt: %w", task, err)
	}

	profile := ProfileFor(task)
	inv := Invocation{
		SystemPrompt: prompt.System,
		UserPrompt:   prompt.User,
		ImageURL:     prompt.ImageURL,
		Temperature:  profile.Temperature,
		MaxTokens:    profile.MaxTokens,
		JSONMode:     true,
	}

	log.InfoContext(ctx, "generating product content",
		"prompt_length", len(prompt.User),
		"max_tokens", profile.MaxTokens)

	completion, err := s.invoke(ctx, task, backend, inv)
	if err != nil {
		return nil, err
	}

	content, err = s.parser.Parse(ctx, completion.Content, completion.FinishReason, task, opts)
	if err != nil {
		if genErr, ok := AsError(err); ok {
			genErr.Backend = backend.Name()
		}
		return nil, err
	}
	return content, nil
}

// invoke calls the backend, re-attempting transport failures according to
// the retry policy with exponential backoff and jitter.
func (s *Service) invoke(ctx context.Context, task Task, backend Backend, inv Invocation) (*Completion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for attempt := 0; ; attempt++ {
		start := time.Now()
		completion, err := backend.Complete(ctx, inv)
		s.recorder.ObserveBackendCall(backend.Name(), task, time.Since(start), err)
		if err == nil {
			if completion == nil {
				completion = &Completion{}
			}
			return completion, nil
		}

		transportErr := &Error{Kind: ErrTransportFailure, Task: task, Backend: backend.Name(), Err: err}
		if attempt >= s.retry.MaxRetries || ctx.Err() != nil {
			return nil, transportErr
		}

		delay := s.backoff(attempt)
		log.WarnContext(ctx, "backend call failed, retrying",
			"attempt", attempt+1,
			"max_attempts", s.retry.MaxRetries+1,
			"delay_ms", delay.Milliseconds(),
			"error", redact.Error(err))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, &Error{Kind: ErrTransportFailure, Task: task, Backend: backend.Name(), Err: ctx.Err()}
		case <-timer.C:
		}
	}
}

// backoff returns base * 2^attempt plus up to 20% jitter.
func (s *Service) backoff(attempt int) time.Duration {
	base := s.retry.BaseDelay
	if base <= 0 {
		base = time.Second
	}
	delay := time.Duration(float64(base) * math.Pow(2, float64(attempt)))

	s.rngMu.Lock()
	jitter := time.Duration(s.rng.Float64() * 0.2 * float64(delay))
	s.rngMu.Unlock()

	return delay + jitter
}
