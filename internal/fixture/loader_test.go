package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTestdataFixtures(t *testing.T) {
	dir := filepath.Join("..", "..", "testdata", "fixtures")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Skip("testdata/fixtures directory not found")
	}

	set, errs := Load(dir, LoadModeCollectAll)
	require.Empty(t, errs)
	assert.Equal(t, 2, set.FileCount)
	assert.Equal(t, []string{
		"grid.plain", "grid.spans",
		"listbox.flavor", "listbox.fruit", "listbox.toppings",
	}, set.Names())

	fruit := set.Listboxes["fruit"]
	require.NotNil(t, fruit)
	assert.Equal(t, "vertical", fruit.Orientation)
	assert.Equal(t, "single", fruit.Selection)
	assert.Equal(t, "explicit", fruit.Strategy)
	assert.Equal(t, "rovingtabindex", fruit.Focus)
	require.Len(t, fruit.Options, 4)
	assert.True(t, fruit.Options[1].Disabled)

	spans := set.Grids["spans"]
	require.NotNil(t, spans)
	assert.Equal(t, 2, spans.Cells[0].Colspan)
	assert.Equal(t, 1, spans.Cells[0].Rowspan)
}

func TestLoadSourceDefaults(t *testing.T) {
	set, errs := LoadSource("inline.cue", `listbox: l: options: [{label: "x"}]`, LoadModeFailFast)
	require.Empty(t, errs)

	lb := set.Listboxes["l"]
	assert.Equal(t, "l", lb.Name)
	assert.False(t, lb.Wrap)
	assert.Equal(t, "x", lb.Options[0].ValueOrLabel())
}

func TestLoadSourceRejectsUnknownField(t *testing.T) {
	_, errs := LoadSource("inline.cue", `listbox: l: {loop: true, options: []}`, LoadModeFailFast)
	require.Len(t, errs, 1)

	var le *LoadError
	require.ErrorAs(t, errs[0], &le)
	assert.Equal(t, ErrCodeSchema, le.Code)
}

func TestLoadSourceRejectsBadEnum(t *testing.T) {
	_, errs := LoadSource("inline.cue", `listbox: l: {selection: "many", options: []}`, LoadModeFailFast)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), ErrCodeSchema)
}

func TestLoadSourceGridLayout(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{
			name: "overflow",
			src:  `grid: g: {rows: 1, columns: 2, cells: [{label: "a", colspan: 3}]}`,
			code: ErrCodeLayout,
		},
		{
			name: "incomplete",
			src:  `grid: g: {rows: 2, columns: 2, cells: [{label: "a"}, {label: "b"}]}`,
			code: ErrCodeLayout,
		},
		{
			name: "zero span",
			src:  `grid: g: {rows: 1, columns: 1, cells: [{label: "a", rowspan: 0}]}`,
			code: ErrCodeSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := LoadSource("inline.cue", tt.src, LoadModeFailFast)
			require.NotEmpty(t, errs)

			var le *LoadError
			require.ErrorAs(t, errs[0], &le)
			assert.Equal(t, tt.code, le.Code)
		})
	}
}

func TestLoadSourceSelectedMustNameOption(t *testing.T) {
	src := `listbox: l: {selected: ["nope"], options: [{label: "a"}]}`
	_, errs := LoadSource("inline.cue", src, LoadModeFailFast)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), ErrCodeSelected)
}

func TestLoadCollectAllKeepsValidFixtures(t *testing.T) {
	src := `
listbox: a: {selected: ["nope"], options: [{label: "x"}]}
listbox: b: options: [{label: "y", id: "dup"}, {label: "z", id: "dup"}]
listbox: c: options: [{label: "ok"}]
`
	set, errs := LoadSource("inline.cue", src, LoadModeCollectAll)
	assert.Len(t, errs, 2)
	assert.Contains(t, set.Listboxes, "c")
	assert.NotContains(t, set.Listboxes, "a")
}

func TestLoadNotFound(t *testing.T) {
	_, errs := Load("/nonexistent/fixtures", LoadModeFailFast)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), ErrCodeNotFound)
}

func TestLoadEmptyDirectory(t *testing.T) {
	_, errs := Load(t.TempDir(), LoadModeFailFast)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), ErrCodeNoFiles)
}

func TestLoadErrorIncludesPosition(t *testing.T) {
	dir := t.TempDir()
	src := "package fixtures\n\ngrid: g: {rows: 1, columns: 1, cells: []}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.cue"), []byte(src), 0o644))

	_, errs := Load(dir, LoadModeFailFast)
	require.Len(t, errs, 1)

	var le *LoadError
	require.ErrorAs(t, errs[0], &le)
	assert.Equal(t, ErrCodeLayout, le.Code)
	assert.True(t, le.Pos.IsValid())
}

func TestLookup(t *testing.T) {
	set, errs := LoadSource("inline.cue", `
listbox: l: options: [{label: "a"}]
grid: g: {rows: 1, columns: 1, cells: [{label: "a"}]}
`, LoadModeFailFast)
	require.Empty(t, errs)

	kind, v, err := set.Lookup("grid.g")
	require.NoError(t, err)
	assert.Equal(t, KindGrid, kind)
	assert.IsType(t, &Grid{}, v)

	_, _, err = set.Lookup("listbox.missing")
	assert.Error(t, err)
	_, _, err = set.Lookup("tree.x")
	assert.Error(t, err)
	_, _, err = set.Lookup("nodot")
	assert.Error(t, err)
}
