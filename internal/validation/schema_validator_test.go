package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["name", "count"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"count": {"type": "integer", "minimum": 0}
	}
}`

func writeTestSchema(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(testSchema), 0o644))
	return path
}

func TestValidateBytesValid(t *testing.T) {
	v := NewSchemaValidator()
	schemaPath := writeTestSchema(t)

	err := v.ValidateBytes([]byte(`{"name": "sword", "count": 3}`), schemaPath)
	assert.NoError(t, err)
}

func TestValidateBytesInvalid(t *testing.T) {
	v := NewSchemaValidator()
	schemaPath := writeTestSchema(t)

	err := v.ValidateBytes([]byte(`{"name": "", "count": -1}`), schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestValidateBytesMalformedJSON(t *testing.T) {
	v := NewSchemaValidator()
	schemaPath := writeTestSchema(t)

	err := v.ValidateBytes([]byte(`{not json`), schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON data")
}

func TestValidateBytesMissingSchema(t *testing.T) {
	v := NewSchemaValidator()

	err := v.ValidateBytes([]byte(`{}`), "/nonexistent/schema.json")
	require.Error(t, err)
}

func TestSchemaCaching(t *testing.T) {
	v := NewSchemaValidator()
	schemaPath := writeTestSchema(t)

	require.NoError(t, v.ValidateBytes([]byte(`{"name": "a", "count": 0}`), schemaPath))

	// Second validation hits the cached compiled schema even if the file is gone.
	require.NoError(t, os.Remove(schemaPath))
	assert.NoError(t, v.ValidateBytes([]byte(`{"name": "b", "count": 1}`), schemaPath))
}
