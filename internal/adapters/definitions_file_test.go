package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cody-schema/internal/core"
	"cody-schema/internal/types"
)

func TestDefinitionsFileMissingStartsEmpty(t *testing.T) {
	adapter := NewDefinitionsFileAdapter(filepath.Join(t.TempDir(), "schema-definitions.json"))
	defs, err := adapter.LoadDefinitions(t.Context())
	require.NoError(t, err)
	assert.Empty(t, defs.SourceMap)
	assert.Empty(t, defs.Definitions)
}

func TestDefinitionsFileDefaultPath(t *testing.T) {
	assert.Equal(t, DefaultDefinitionsFile, NewDefinitionsFileAdapter("").Path)
}

func TestDefinitionsFileSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen", "schema-definitions.json")
	adapter := NewDefinitionsFileAdapter(path)

	registry := core.NewDefinitionsRegistry(nil)
	require.NoError(t, registry.Upsert(t.Context(), "/Model/UserState", "boards/state.json", &types.Object{
		Properties:           []types.Property{{Name: "userId", Schema: &types.Primitive{Type: types.PrimitiveString}}},
		Required:             []string{"userId"},
		AdditionalProperties: false,
	}))
	require.NoError(t, adapter.SaveDefinitions(t.Context(), registry.Definitions()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"sourceMap\": {")

	loaded, err := adapter.LoadDefinitions(t.Context())
	require.NoError(t, err)
	if diff := cmp.Diff(registry.Definitions(), loaded); diff != "" {
		t.Fatalf("definitions mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestDefinitionsFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema-definitions.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"definitions":{"User":{"type":"date"}}}`), 0644))

	_, err := NewDefinitionsFileAdapter(path).LoadDefinitions(t.Context())
	require.Error(t, err)
	assert.Equal(t, types.KindMalformedShorthand, types.KindOf(err))
}
