package harness

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden(t *testing.T) {
	set := loadFixtures(t)

	for _, name := range []string{"listbox_single_explicit", "grid_spans"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario(filepath.Join(scenariosDir, name+".yaml"))
			require.NoError(t, err)

			// To regenerate: go test ./internal/harness -run TestRunWithGolden -update
			result, err := RunWithGolden(t, s, set)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestSnapshot_Deterministic(t *testing.T) {
	set := loadFixtures(t)
	s, err := LoadScenario(filepath.Join(scenariosDir, "listbox_multiple_typeahead.yaml"))
	require.NoError(t, err)

	first, err := Run(s, set)
	require.NoError(t, err)
	second, err := Run(s, set)
	require.NoError(t, err)

	a, err := Snapshot(s, first)
	require.NoError(t, err)
	b, err := Snapshot(s, second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestCompareAndUpdateGolden(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "golden")

	err := CompareGolden(dir, "trace", []byte(`{"a":1}`))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	require.NoError(t, UpdateGolden(dir, "trace", []byte(`{"a":1}`)))
	assert.NoError(t, CompareGolden(dir, "trace", []byte(`{"a":1}`)))

	err = CompareGolden(dir, "trace", []byte(`{"a":2}`))
	assert.ErrorIs(t, err, ErrGoldenMismatch)
	assert.Equal(t, filepath.Join(dir, "trace.golden"), GoldenPath(dir, "trace"))
}
