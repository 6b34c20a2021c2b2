package schema

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenConfigSchema(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GenConfigSchema(&buf))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "jdoccov configuration", doc["title"])

	out := buf.String()
	for _, key := range []string{`"scan"`, `"report"`, `"lookback"`, `"max_file_size"`, `"respect_gitignore"`} {
		assert.Contains(t, out, key)
	}
}
