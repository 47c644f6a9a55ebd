// Package fixture loads widget fixtures written in CUE.
package fixture

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/behave/internal/table"
)

//go:embed schema.cue
var schemaSource string

// LoadMode controls how errors are handled during fixture loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// Error code constants.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed

	ErrCodeSchema      = "E201" // Fixture violates the widget schema
	ErrCodeLayout      = "E202" // Grid cells cannot be placed
	ErrCodeSelected    = "E203" // Selected value names no option
	ErrCodeDuplicateID = "E204" // Two elements share an id
)

// LoadError represents an error that occurred during fixture loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Load reads every CUE file in dir, unifies it with the widget schema and
// decodes the fixtures.
func Load(dir string, mode LoadMode) (*Set, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("fixtures directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing fixtures directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	files, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(files) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{cueError(ErrCodeBuildFailed, "building CUE value", err)}
	}

	set, errs := decode(ctx, value, mode)
	if set != nil {
		set.FileCount = len(files)
	}
	return set, errs
}

// LoadSource decodes fixtures from a single CUE source text.
func LoadSource(filename, src string, mode LoadMode) (*Set, []error) {
	ctx := cuecontext.New()
	value := ctx.CompileString(src, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, []error{cueError(ErrCodeBuildFailed, "building CUE value", err)}
	}
	set, errs := decode(ctx, value, mode)
	if set != nil {
		set.FileCount = 1
	}
	return set, errs
}

func decode(ctx *cue.Context, value cue.Value, mode LoadMode) (*Set, []error) {
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, []error{cueError(ErrCodeGeneric, "embedded schema", err)}
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, []error{cueError(ErrCodeSchema, "fixture does not match schema", err)}
	}

	set := &Set{
		Listboxes: make(map[string]*Listbox),
		Grids:     make(map[string]*Grid),
		CUEValue:  unified,
	}
	var errs []error
	fail := func(err error) bool {
		errs = append(errs, err)
		return mode == LoadModeFailFast
	}

	if v := unified.LookupPath(cue.ParsePath(string(KindListbox))); v.Exists() {
		iter, err := v.Fields()
		if err != nil {
			return set, []error{cueError(ErrCodeGeneric, "iterating listboxes", err)}
		}
		for iter.Next() {
			lb := &Listbox{Name: iter.Selector().String()}
			if err := iter.Value().Decode(lb); err != nil {
				if fail(cueError(ErrCodeSchema, "listbox."+lb.Name, err)) {
					return set, errs
				}
				continue
			}
			if err := validateListbox(lb); err != nil {
				err.Pos = sourcePos(value, KindListbox, iter.Selector())
				if fail(err) {
					return set, errs
				}
				continue
			}
			set.Listboxes[lb.Name] = lb
		}
	}

	if v := unified.LookupPath(cue.ParsePath(string(KindGrid))); v.Exists() {
		iter, err := v.Fields()
		if err != nil {
			return set, append(errs, cueError(ErrCodeGeneric, "iterating grids", err))
		}
		for iter.Next() {
			g := &Grid{Name: iter.Selector().String()}
			if err := iter.Value().Decode(g); err != nil {
				if fail(cueError(ErrCodeSchema, "grid."+g.Name, err)) {
					return set, errs
				}
				continue
			}
			if err := validateGrid(g); err != nil {
				err.Pos = sourcePos(value, KindGrid, iter.Selector())
				if fail(err) {
					return set, errs
				}
				continue
			}
			set.Grids[g.Name] = g
		}
	}

	if len(set.Listboxes) == 0 && len(set.Grids) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no listbox or grid fixtures found"})
	}
	return set, errs
}

// sourcePos returns where a fixture is declared in the user's files. The
// unified value may report a position inside the embedded schema instead.
func sourcePos(value cue.Value, kind Kind, sel cue.Selector) token.Pos {
	return value.LookupPath(cue.MakePath(cue.Str(string(kind)), sel)).Pos()
}

func validateListbox(lb *Listbox) *LoadError {
	values := make(map[string]bool, len(lb.Options))
	seen := make(map[string]bool)
	for _, o := range lb.Options {
		values[o.ValueOrLabel()] = true
		if o.ID == "" {
			continue
		}
		if seen[o.ID] {
			return &LoadError{Code: ErrCodeDuplicateID, Message: fmt.Sprintf("listbox.%s: duplicate option id %q", lb.Name, o.ID)}
		}
		seen[o.ID] = true
	}
	for _, s := range lb.Selected {
		if !values[s] {
			return &LoadError{Code: ErrCodeSelected, Message: fmt.Sprintf("listbox.%s: selected value %q names no option", lb.Name, s)}
		}
	}
	return nil
}

func validateGrid(g *Grid) *LoadError {
	spans := make([]table.Span, len(g.Cells))
	for i, c := range g.Cells {
		spans[i] = table.Span{Rowspan: c.Rowspan, Colspan: c.Colspan}
	}
	if _, err := table.NewCellIndex(g.Rows, g.Columns, spans); err != nil {
		return &LoadError{Code: ErrCodeLayout, Message: fmt.Sprintf("grid.%s: %v", g.Name, err)}
	}
	return nil
}

// ValueOrLabel returns the option's selection value.
func (o Option) ValueOrLabel() string {
	if o.Value != "" {
		return o.Value
	}
	return o.Label
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func cueError(code, context string, err error) *LoadError {
	le := &LoadError{Code: code, Message: fmt.Sprintf("%s: %v", context, err)}
	if pos := cueerrors.Positions(err); len(pos) > 0 {
		le.Pos = pos[0]
	}
	return le
}
