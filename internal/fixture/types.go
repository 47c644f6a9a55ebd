package fixture

import (
	"fmt"
	"sort"
	"strings"

	"cuelang.org/go/cue"
)

// Option is one listbox option.
type Option struct {
	Label    string `json:"label"`
	Value    string `json:"value,omitempty"`
	ID       string `json:"id,omitempty"`
	Disabled bool   `json:"disabled"`
}

// Listbox is a listbox fixture.
type Listbox struct {
	Name        string   `json:"-"`
	Orientation string   `json:"orientation"`
	Wrap        bool     `json:"wrap"`
	Disabled    bool     `json:"disabled"`
	Selection   string   `json:"selection"`
	Strategy    string   `json:"strategy"`
	Focus       string   `json:"focus"`
	Selected    []string `json:"selected,omitempty"`
	Options     []Option `json:"options"`
}

// Cell is one grid cell.
type Cell struct {
	Label    string `json:"label"`
	ID       string `json:"id,omitempty"`
	Rowspan  int    `json:"rowspan"`
	Colspan  int    `json:"colspan"`
	Disabled bool   `json:"disabled"`
}

// Grid is a grid fixture.
type Grid struct {
	Name     string `json:"-"`
	Rows     int    `json:"rows"`
	Columns  int    `json:"columns"`
	Wrap     bool   `json:"wrap"`
	Disabled bool   `json:"disabled"`
	Focus    string `json:"focus"`
	Cells    []Cell `json:"cells"`
}

// Kind of widget a fixture describes.
type Kind string

const (
	KindListbox Kind = "listbox"
	KindGrid    Kind = "grid"
)

// Set is every fixture loaded from one directory.
type Set struct {
	Listboxes map[string]*Listbox
	Grids     map[string]*Grid
	CUEValue  cue.Value // The unified CUE value for additional processing
	FileCount int       // Number of CUE files found
}

// Lookup resolves a reference such as "listbox.basic" or "grid.spans". The
// returned value is a *Listbox or a *Grid.
func (s *Set) Lookup(ref string) (Kind, any, error) {
	kind, name, ok := strings.Cut(ref, ".")
	if !ok {
		return "", nil, fmt.Errorf("fixture reference %q must be <kind>.<name>", ref)
	}
	switch Kind(kind) {
	case KindListbox:
		if lb, ok := s.Listboxes[name]; ok {
			return KindListbox, lb, nil
		}
	case KindGrid:
		if g, ok := s.Grids[name]; ok {
			return KindGrid, g, nil
		}
	default:
		return "", nil, fmt.Errorf("unknown fixture kind %q in %q", kind, ref)
	}
	return "", nil, fmt.Errorf("fixture %q not found", ref)
}

// Names lists every fixture reference in sorted order.
func (s *Set) Names() []string {
	var out []string
	for name := range s.Listboxes {
		out = append(out, string(KindListbox)+"."+name)
	}
	for name := range s.Grids {
		out = append(out, string(KindGrid)+"."+name)
	}
	sort.Strings(out)
	return out
}
