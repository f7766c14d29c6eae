package generation

import (
	"errors"
	"testing"

	"github.com/phrazzld/productgen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDocument_NamesRejectedField(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"title":    "Mouse",
		"variants": []any{map[string]any{"title": "S", "inventory_quantity": 1e30}},
	}

	var content domain.GeneratedContent
	err := decodeDocument(doc, &content)
	require.Error(t, err)
	field := decodeField(err)
	assert.NotEqual(t, rootField, field)
	assert.Contains(t, field, "inventory_quantity")
}

func TestDecodeField_Fallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, rootField, decodeField(errors.New("boom")))
}
