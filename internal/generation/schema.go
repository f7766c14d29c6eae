package generation

import (
	"fmt"
	"math"

	"github.com/phrazzld/productgen/internal/domain"
	"github.com/xeipuuv/gojsonschema"
)

// Field names that a task may require on top of the type rules.
const (
	fieldTitle    = "title"
	fieldOptions  = "options"
	fieldVariants = "variants"
)

func typed(types ...string) map[string]any {
	if len(types) == 1 {
		return map[string]any{"type": types[0]}
	}
	return map[string]any{"type": types}
}

var (
	nullableString = typed("string", "null")
	nullableNumber = typed("number", "null")
	nullableObject = typed("object", "null")
)

func statusSchema() map[string]any {
	values := make([]any, 0, len(domain.ProductStatuses))
	for _, s := range domain.ProductStatuses {
		values = append(values, string(s))
	}
	return map[string]any{"type": "string", "enum": values}
}

func valueObjectSchema() map[string]any {
	return map[string]any{
		"type":       "object",
		"required":   []any{"value"},
		"properties": map[string]any{"value": typed("string")},
	}
}

// maxInventoryQuantity bounds inventory counts so every accepted value
// fits the integer field it decodes into.
const maxInventoryQuantity = math.MaxInt32

func inventorySchema() map[string]any {
	return map[string]any{
		"type":    "integer",
		"minimum": -maxInventoryQuantity,
		"maximum": maxInventoryQuantity,
	}
}

func variantSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"title", "inventory_quantity", "allow_backorder", "manage_inventory"},
		"properties": map[string]any{
			"title":              typed("string"),
			"sku":                nullableString,
			"ean":                nullableString,
			"upc":                nullableString,
			"barcode":            nullableString,
			"hs_code":            nullableString,
			"inventory_quantity": inventorySchema(),
			"allow_backorder":    typed("boolean"),
			"manage_inventory":   typed("boolean"),
			"weight":             nullableNumber,
			"length":             nullableNumber,
			"height":             nullableNumber,
			"width":              nullableNumber,
			"origin_country":     nullableString,
			"mid_code":           nullableString,
			"material":           nullableString,
			"metadata":           nullableObject,
		},
	}
}

// productSchema describes the JSON shape of domain.GeneratedContent. Every
// known field is typed; unknown fields are allowed and later ignored.
// required lists the fields the task insists on.
func productSchema(required []string) map[string]any {
	req := make([]any, 0, len(required))
	for _, f := range required {
		req = append(req, f)
	}

	typeSchema := valueObjectSchema()
	typeSchema["type"] = []any{"object", "null"}

	return map[string]any{
		"$schema":  "http://json-schema.org/draft-07/schema#",
		"type":     "object",
		"required": req,
		"properties": map[string]any{
			"title":        typed("string"),
			"subtitle":     nullableString,
			"description":  nullableString,
			"handle":       nullableString,
			"is_giftcard":  typed("boolean"),
			"discountable": typed("boolean"),
			"status":       statusSchema(),
			"images": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":       "object",
					"required":   []any{"url"},
					"properties": map[string]any{"url": typed("string")},
				},
			},
			"thumbnail": nullableString,
			"tags": map[string]any{
				"type":  "array",
				"items": valueObjectSchema(),
			},
			"type": typeSchema,
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"title", "values"},
					"properties": map[string]any{
						"title":  typed("string"),
						"values": map[string]any{"type": "array", "items": typed("string")},
					},
				},
			},
			"variants": map[string]any{
				"type":  "array",
				"items": variantSchema(),
			},
			"weight":         nullableNumber,
			"length":         nullableNumber,
			"height":         nullableNumber,
			"width":          nullableNumber,
			"hs_code":        nullableString,
			"origin_country": nullableString,
			"mid_code":       nullableString,
			"material":       nullableString,
			"metadata":       nullableObject,
		},
	}
}

// requiredFields returns the fields a response for task must contain.
func requiredFields(task Task, includeVariants bool) []string {
	switch task {
	case TaskFreeform:
		return []string{fieldTitle, fieldOptions, fieldVariants}
	default:
		if includeVariants {
			return []string{fieldTitle, fieldVariants}
		}
		return []string{fieldTitle}
	}
}

type schemaKey struct {
	task            Task
	includeVariants bool
}

// compileSchemas builds one schema per distinct required-field set.
func compileSchemas() (map[schemaKey]*gojsonschema.Schema, error) {
	keys := []schemaKey{
		{TaskImage, false}, {TaskImage, true},
		{TaskTitle, false}, {TaskTitle, true},
		{TaskFreeform, false},
	}

	schemas := make(map[schemaKey]*gojsonschema.Schema, len(keys))
	for _, k := range keys {
		loader := gojsonschema.NewGoLoader(productSchema(requiredFields(k.task, k.includeVariants)))
		schema, err := gojsonschema.NewSchema(loader)
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s schema: %w", k.task, err)
		}
		schemas[k] = schema
	}
	return schemas, nil
}

func schemaKeyFor(task Task, includeVariants bool) schemaKey {
	if task == TaskFreeform {
		return schemaKey{task: task}
	}
	return schemaKey{task: task, includeVariants: includeVariants}
}
