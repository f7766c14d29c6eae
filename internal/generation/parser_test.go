package generation_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/phrazzld/productgen/internal/domain"
	"github.com/phrazzld/productgen/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T) *generation.ResponseParser {
	t.Helper()
	p, err := generation.NewResponseParser(slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)))
	require.NoError(t, err)
	return p
}

// productDoc returns a complete, valid product document. Callers tweak the
// returned map before marshalling it with toJSON.
func productDoc() map[string]any {
	return map[string]any{
		"title":          "Wireless Mouse",
		"subtitle":       "Ergonomic and quiet",
		"description":    "A comfortable wireless mouse.",
		"handle":         "wireless-mouse",
		"is_giftcard":    false,
		"discountable":   true,
		"status":         "draft",
		"images":         []any{},
		"thumbnail":      nil,
		"tags":           []any{map[string]any{"value": "mouse"}},
		"type":           map[string]any{"value": "Peripherals"},
		"options":        []any{},
		"variants":       []any{},
		"weight":         95.5,
		"length":         nil,
		"height":         nil,
		"width":          nil,
		"hs_code":        nil,
		"origin_country": "CN",
		"mid_code":       nil,
		"material":       "ABS plastic",
		"metadata":       nil,
	}
}

func toJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func without(doc map[string]any, fields ...string) map[string]any {
	for _, f := range fields {
		delete(doc, f)
	}
	return doc
}

func requireGenError(t *testing.T, err error, kind error) *generation.Error {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, kind)
	genErr, ok := generation.AsError(err)
	require.True(t, ok, "expected *generation.Error, got %T", err)
	return genErr
}

func TestParse_Success(t *testing.T) {
	t.Parallel()

	content, err := newParser(t).Parse(context.Background(), toJSON(t, productDoc()), "stop",
		generation.TaskTitle, generation.PromptOptions{Title: "Wireless Mouse"})
	require.NoError(t, err)

	assert.Equal(t, "Wireless Mouse", content.Title)
	require.NotNil(t, content.Subtitle)
	assert.Equal(t, "Ergonomic and quiet", *content.Subtitle)
	assert.Nil(t, content.Thumbnail)
	assert.Equal(t, domain.ProductStatusDraft, content.Status)
	require.NotNil(t, content.Weight)
	assert.InDelta(t, 95.5, *content.Weight, 0.0001)
	assert.Equal(t, []domain.ProductTag{{Value: "mouse"}}, content.Tags)
	assert.Nil(t, content.Metadata)
}

func TestParse_EmptyResponse(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "   \n\t", "```json\n```"} {
		_, err := newParser(t).Parse(context.Background(), raw, "length", generation.TaskFreeform, generation.PromptOptions{})
		genErr := requireGenError(t, err, generation.ErrEmptyResponse)
		assert.Equal(t, "length", genErr.FinishReason)
	}
}

func TestParse_MalformedResponse(t *testing.T) {
	t.Parallel()

	const raw = "sorry, I can't help"
	_, err := newParser(t).Parse(context.Background(), raw, "stop", generation.TaskTitle, generation.PromptOptions{Title: "Lamp"})

	genErr := requireGenError(t, err, generation.ErrMalformedResponse)
	assert.Equal(t, raw, genErr.Raw)
	assert.NotNil(t, genErr.Err, "parser detail should be attached")
}

func TestParse_StripsCodeFence(t *testing.T) {
	t.Parallel()

	raw := "```json\n" + toJSON(t, productDoc()) + "\n```"
	content, err := newParser(t).Parse(context.Background(), raw, "stop", generation.TaskImage, generation.PromptOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Wireless Mouse", content.Title)
}

func TestParse_VariantsRequirement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		task            generation.Task
		includeVariants bool
		doc             map[string]any
		wantFields      []string
	}{
		{
			name:            "image with variants flag and no variants",
			task:            generation.TaskImage,
			includeVariants: true,
			doc:             without(productDoc(), "variants"),
			wantFields:      []string{"variants"},
		},
		{
			name:            "title with variants flag and no variants",
			task:            generation.TaskTitle,
			includeVariants: true,
			doc:             without(productDoc(), "variants"),
			wantFields:      []string{"variants"},
		},
		{
			name:            "image without variants flag and no variants",
			task:            generation.TaskImage,
			includeVariants: false,
			doc:             without(productDoc(), "variants"),
		},
		{
			name:            "title without variants flag and no variants",
			task:            generation.TaskTitle,
			includeVariants: false,
			doc:             without(productDoc(), "variants"),
		},
		{
			name:       "freeform without options",
			task:       generation.TaskFreeform,
			doc:        without(productDoc(), "options"),
			wantFields: []string{"options"},
		},
		{
			name:            "freeform without variants ignores the flag",
			task:            generation.TaskFreeform,
			includeVariants: false,
			doc:             without(productDoc(), "variants"),
			wantFields:      []string{"variants"},
		},
		{
			name:       "freeform without both",
			task:       generation.TaskFreeform,
			doc:        without(productDoc(), "options", "variants"),
			wantFields: []string{"options", "variants"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts := generation.PromptOptions{Title: "Wireless Mouse", IncludeVariants: tc.includeVariants}
			content, err := newParser(t).Parse(context.Background(), toJSON(t, tc.doc), "stop", tc.task, opts)

			if len(tc.wantFields) == 0 {
				require.NoError(t, err)
				assert.NotNil(t, content.Variants, "absent variants should normalize to an empty sequence")
				assert.Empty(t, content.Variants)
				return
			}

			genErr := requireGenError(t, err, generation.ErrSchemaViolation)
			assert.Equal(t, tc.wantFields, genErr.Fields)
			assert.Equal(t, "stop", genErr.FinishReason)
		})
	}
}

func TestParse_MissingTitle(t *testing.T) {
	t.Parallel()

	_, err := newParser(t).Parse(context.Background(), toJSON(t, without(productDoc(), "title")), "length",
		generation.TaskImage, generation.PromptOptions{})

	genErr := requireGenError(t, err, generation.ErrSchemaViolation)
	assert.Equal(t, []string{"title"}, genErr.Fields)
	assert.Equal(t, "length", genErr.FinishReason)
}

func TestParse_EmptyTitleAccepted(t *testing.T) {
	t.Parallel()

	for _, task := range []generation.Task{generation.TaskImage, generation.TaskFreeform} {
		t.Run(string(task), func(t *testing.T) {
			t.Parallel()

			doc := productDoc()
			doc["title"] = ""

			content, err := newParser(t).Parse(context.Background(), toJSON(t, doc), "stop",
				task, generation.PromptOptions{})
			require.NoError(t, err)
			assert.Empty(t, content.Title)
		})
	}
}

func TestParse_StrictTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field string
		value any
		want  string
	}{
		{name: "title as number", field: "title", value: 42, want: "title"},
		{name: "weight as string", field: "weight", value: "95g", want: "weight"},
		{name: "unknown status", field: "status", value: "archived", want: "status"},
		{name: "discountable as string", field: "discountable", value: "yes", want: "discountable"},
		{name: "tags as object", field: "tags", value: map[string]any{"value": "x"}, want: "tags"},
		{name: "metadata as array", field: "metadata", value: []any{"x"}, want: "metadata"},
		{
			name:  "variant inventory as string",
			field: "variants",
			value: []any{map[string]any{"title": "S", "inventory_quantity": "10"}},
			want:  "variants.0.inventory_quantity",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			doc := productDoc()
			doc[tc.field] = tc.value

			_, err := newParser(t).Parse(context.Background(), toJSON(t, doc), "stop",
				generation.TaskImage, generation.PromptOptions{})

			genErr := requireGenError(t, err, generation.ErrSchemaViolation)
			assert.Contains(t, genErr.Fields, tc.want)
		})
	}
}

func TestParse_IncompleteNestedItems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field string
		value any
		want  []string
	}{
		{
			name:  "empty variant",
			field: "variants",
			value: []any{map[string]any{}},
			want: []string{
				"variants.0.allow_backorder",
				"variants.0.inventory_quantity",
				"variants.0.manage_inventory",
				"variants.0.title",
			},
		},
		{
			name:  "variant without inventory",
			field: "variants",
			value: []any{map[string]any{"title": "S", "allow_backorder": false, "manage_inventory": true}},
			want:  []string{"variants.0.inventory_quantity"},
		},
		{
			name:  "empty option",
			field: "options",
			value: []any{map[string]any{}},
			want:  []string{"options.0.title", "options.0.values"},
		},
		{
			name:  "option without values",
			field: "options",
			value: []any{map[string]any{"title": "Size"}},
			want:  []string{"options.0.values"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			doc := productDoc()
			doc[tc.field] = tc.value

			_, err := newParser(t).Parse(context.Background(), toJSON(t, doc), "stop",
				generation.TaskFreeform, generation.PromptOptions{})

			genErr := requireGenError(t, err, generation.ErrSchemaViolation)
			assert.Equal(t, tc.want, genErr.Fields)
			assert.Equal(t, "stop", genErr.FinishReason)
		})
	}
}

func TestParse_CompleteNestedItems(t *testing.T) {
	t.Parallel()

	doc := productDoc()
	doc["options"] = []any{map[string]any{"title": "Size", "values": []any{"S", "M"}}}
	doc["variants"] = []any{map[string]any{
		"title":              "S",
		"inventory_quantity": 12,
		"allow_backorder":    false,
		"manage_inventory":   true,
	}}

	content, err := newParser(t).Parse(context.Background(), toJSON(t, doc), "stop",
		generation.TaskImage, generation.PromptOptions{IncludeVariants: true})
	require.NoError(t, err)
	require.Len(t, content.Variants, 1)
	assert.Equal(t, 12, content.Variants[0].InventoryQuantity)
	assert.True(t, content.Variants[0].ManageInventory)
	assert.Equal(t, []string{"S", "M"}, content.Options[0].Values)
}

func TestParse_InventoryOutOfRange(t *testing.T) {
	t.Parallel()

	doc := productDoc()
	doc["variants"] = []any{map[string]any{
		"title":              "S",
		"inventory_quantity": 1e30,
		"allow_backorder":    false,
		"manage_inventory":   true,
	}}

	_, err := newParser(t).Parse(context.Background(), toJSON(t, doc), "stop",
		generation.TaskImage, generation.PromptOptions{IncludeVariants: true})

	genErr := requireGenError(t, err, generation.ErrSchemaViolation)
	assert.Equal(t, []string{"variants.0.inventory_quantity"}, genErr.Fields)
}

func TestParse_NonObjectRoot(t *testing.T) {
	t.Parallel()

	_, err := newParser(t).Parse(context.Background(), `["not", "a", "product"]`, "stop",
		generation.TaskImage, generation.PromptOptions{})

	genErr := requireGenError(t, err, generation.ErrSchemaViolation)
	assert.Equal(t, []string{"(root)"}, genErr.Fields)
}

func TestParse_IgnoresUnknownFields(t *testing.T) {
	t.Parallel()

	doc := productDoc()
	doc["collection_id"] = "pcol_123"

	content, err := newParser(t).Parse(context.Background(), toJSON(t, doc), "stop",
		generation.TaskImage, generation.PromptOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Wireless Mouse", content.Title)
}

func TestParse_Normalization(t *testing.T) {
	t.Parallel()

	doc := without(productDoc(), "status", "images", "tags", "options")
	content, err := newParser(t).Parse(context.Background(), toJSON(t, doc), "stop",
		generation.TaskImage, generation.PromptOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.ProductStatusDraft, content.Status)
	assert.NotNil(t, content.Images)
	assert.NotNil(t, content.Tags)
	assert.NotNil(t, content.Options)

	out, err := json.Marshal(content)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"images":[]`)
	assert.Contains(t, string(out), `"status":"draft"`)
}

func TestParse_TitleCorrection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  map[string]any
	}{
		{name: "different title", doc: func() map[string]any { d := productDoc(); d["title"] = "Different Name"; return d }()},
		{name: "absent title", doc: without(productDoc(), "title")},
		{name: "non-string title", doc: func() map[string]any { d := productDoc(); d["title"] = 7; return d }()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var logs bytes.Buffer
			p, err := generation.NewResponseParser(slog.New(slog.NewJSONHandler(&logs, nil)))
			require.NoError(t, err)

			content, err := p.Parse(context.Background(), toJSON(t, tc.doc), "stop",
				generation.TaskTitle, generation.PromptOptions{Title: "Wireless Mouse"})
			require.NoError(t, err)

			assert.Equal(t, "Wireless Mouse", content.Title)
			assert.Contains(t, logs.String(), `"level":"WARN"`)
			assert.Contains(t, logs.String(), "requested_title")
		})
	}
}

func TestParse_NoTitleCorrectionOutsideTitleTask(t *testing.T) {
	t.Parallel()

	doc := productDoc()
	doc["title"] = "Backend Chosen Name"

	for _, task := range []generation.Task{generation.TaskImage, generation.TaskFreeform} {
		content, err := newParser(t).Parse(context.Background(), toJSON(t, doc), "stop",
			task, generation.PromptOptions{Title: "Ignored"})
		require.NoError(t, err)
		assert.Equal(t, "Backend Chosen Name", content.Title, "task %s", task)
	}
}
