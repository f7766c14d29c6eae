package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/phrazzld/productgen/internal/domain"
	"github.com/phrazzld/productgen/internal/platform/logger"
	"github.com/xeipuuv/gojsonschema"
)

// rootField is how gojsonschema names the document root.
const rootField = "(root)"

// ResponseParser turns raw backend text into a validated GeneratedContent.
// Compiled schemas are shared read-only across calls.
type ResponseParser struct {
	logger  *slog.Logger
	schemas map[schemaKey]*gojsonschema.Schema
}

// NewResponseParser compiles the product schemas. The logger receives the
// title-correction warnings when no request-scoped logger is in the context.
func NewResponseParser(log *slog.Logger) (*ResponseParser, error) {
	if log == nil {
		log = slog.Default()
	}
	schemas, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	return &ResponseParser{logger: log, schemas: schemas}, nil
}

// Parse validates raw as a product record for task.
//
// The steps run in order and the first failure wins:
//   - blank content yields ErrEmptyResponse
//   - content that is not JSON (after removing a markdown code fence) yields
//     ErrMalformedResponse with the raw text attached
//   - for TaskTitle, a title that differs from opts.Title is replaced
//   - type and required-field checks yield ErrSchemaViolation naming the fields
//
// On success the record is normalized: a missing status becomes draft and
// missing sequences become empty.
func (p *ResponseParser) Parse(
	ctx context.Context,
	raw, finishReason string,
	task Task,
	opts PromptOptions,
) (*domain.GeneratedContent, error) {
	payload := stripCodeFence(raw)
	if payload == "" {
		return nil, &Error{Kind: ErrEmptyResponse, Task: task, FinishReason: finishReason, Raw: raw}
	}

	var doc any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, &Error{Kind: ErrMalformedResponse, Task: task, FinishReason: finishReason, Raw: raw, Err: err}
	}

	if task == TaskTitle {
		if obj, ok := doc.(map[string]any); ok {
			p.correctTitle(ctx, obj, opts.Title)
		}
	}

	schema, ok := p.schemas[schemaKeyFor(task, opts.IncludeVariants)]
	if !ok {
		return nil, fmt.Errorf("no schema for task %q", task)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, &Error{Kind: ErrMalformedResponse, Task: task, FinishReason: finishReason, Raw: raw, Err: err}
	}
	if !result.Valid() {
		return nil, schemaViolation(task, finishReason, raw, result.Errors())
	}

	var content domain.GeneratedContent
	if err := decodeDocument(doc, &content); err != nil {
		return nil, &Error{
			Kind:         ErrSchemaViolation,
			Task:         task,
			FinishReason: finishReason,
			Raw:          raw,
			Fields:       []string{decodeField(err)},
			Err:          err,
		}
	}

	content.Normalize()
	if err := content.Validate(); err != nil {
		return nil, &Error{
			Kind:         ErrSchemaViolation,
			Task:         task,
			FinishReason: finishReason,
			Raw:          raw,
			Fields:       []string{validationField(err)},
			Err:          err,
		}
	}

	return &content, nil
}

// correctTitle forces the caller's title onto the record. A missing or
// non-matching title is replaced and logged; it is never an error.
func (p *ResponseParser) correctTitle(ctx context.Context, obj map[string]any, want string) {
	got, present := obj[fieldTitle]
	if s, ok := got.(string); ok && s == want {
		return
	}

	log := logger.FromContextOrDefault(ctx, p.logger)
	log.WarnContext(ctx, "generated title does not match requested title, overriding",
		"generated_title", got,
		"title_present", present,
		"requested_title", want)
	obj[fieldTitle] = want
}

// stripCodeFence removes a surrounding markdown code fence, which some
// chat backends add even in JSON mode, and trims whitespace.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// Drop the opening fence line, including any language tag.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// decodeDocument converts the generic document into the typed record. A
// failure here means a value passed the type checks but does not fit the Go
// type, e.g. 10.5 for an integer field.
func decodeDocument(doc any, out *domain.GeneratedContent) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func schemaViolation(task Task, finishReason, raw string, results []gojsonschema.ResultError) *Error {
	fields := make([]string, 0, len(results))
	details := make([]string, 0, len(results))
	seen := make(map[string]bool, len(results))

	for _, r := range results {
		field := resultField(r)
		if !seen[field] {
			seen[field] = true
			fields = append(fields, field)
		}
		details = append(details, r.String())
	}
	sort.Strings(fields)

	return &Error{
		Kind:         ErrSchemaViolation,
		Task:         task,
		FinishReason: finishReason,
		Raw:          raw,
		Fields:       fields,
		Err:          errors.New(strings.Join(details, "; ")),
	}
}

// resultField names the offending field. Required-property errors are
// reported against their parent, so the missing property is appended.
func resultField(r gojsonschema.ResultError) string {
	field := r.Field()
	if r.Type() != "required" {
		return field
	}
	prop, _ := r.Details()["property"].(string)
	if prop == "" {
		return field
	}
	if field == "" || field == rootField {
		return prop
	}
	return field + "." + prop
}

// decodeField names the field a typed decode rejected.
func decodeField(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field
	}
	return rootField
}

func validationField(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Field
	}
	return rootField
}
