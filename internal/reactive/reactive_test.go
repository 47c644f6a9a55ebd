package reactive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell_SetAndGet(t *testing.T) {
	c := NewCell(1)
	assert.Equal(t, 1, c.Get())

	c.Set(2)
	assert.Equal(t, 2, c.Get())

	c.Update(func(v int) int { return v * 10 })
	assert.Equal(t, 20, c.Get())
}

func TestDerived_LazyAndCached(t *testing.T) {
	c := NewCell(2)
	runs := 0
	d := NewDerived(func() int {
		runs++
		return c.Get() * 2
	})

	assert.Equal(t, 0, runs, "derived must not run before first read")
	assert.Equal(t, 4, d.Get())
	assert.Equal(t, 4, d.Get())
	assert.Equal(t, 1, runs)

	c.Set(5)
	assert.Equal(t, 1, runs, "write must not trigger recomputation")
	assert.Equal(t, 10, d.Get())
	assert.Equal(t, 2, runs)
}

func TestDerived_EqualWriteDoesNotRecompute(t *testing.T) {
	c := NewCell("a")
	runs := 0
	d := NewDerived(func() string {
		runs++
		return c.Get()
	})
	d.Get()
	c.Set("a")
	d.Get()
	assert.Equal(t, 1, runs)
}

func TestDerived_UnchangedIntermediateStopsPropagation(t *testing.T) {
	c := NewCell(3)
	parity := NewDerived(func() bool { return c.Get()%2 == 0 })
	runs := 0
	label := NewDerived(func() string {
		runs++
		if parity.Get() {
			return "even"
		}
		return "odd"
	})

	assert.Equal(t, "odd", label.Get())
	c.Set(5)
	assert.Equal(t, "odd", label.Get())
	assert.Equal(t, 1, runs, "parity did not change, label must not recompute")

	c.Set(6)
	assert.Equal(t, "even", label.Get())
	assert.Equal(t, 2, runs)
}

func TestDerived_DynamicDependencies(t *testing.T) {
	useA := NewCell(true)
	a := NewCell(1)
	b := NewCell(100)
	runs := 0
	d := NewDerived(func() int {
		runs++
		if useA.Get() {
			return a.Get()
		}
		return b.Get()
	})

	assert.Equal(t, 1, d.Get())
	b.Set(200)
	assert.Equal(t, 1, d.Get())
	assert.Equal(t, 1, runs, "b is not a dependency yet")

	useA.Set(false)
	assert.Equal(t, 200, d.Get())
	a.Set(2)
	assert.Equal(t, 200, d.Get())
	assert.Equal(t, 2, runs, "a is no longer a dependency")
}

func TestDerived_CycleDetected(t *testing.T) {
	var a, b *Derived[int]
	a = NewDerived(func() int { return b.Get() + 1 }, WithName[int]("a"))
	b = NewDerived(func() int { return a.Get() + 1 }, WithName[int]("b"))

	err := Catch(func() { a.Get() })
	require.Error(t, err)
	assert.True(t, IsCycleError(err))

	var ce *CycleError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "a", ce.Name)
}

func TestDerived_SelfReadIsCycle(t *testing.T) {
	var d *Derived[int]
	d = NewDerived(func() int { return d.Get() })
	assert.True(t, IsCycleError(Catch(func() { d.Get() })))
}

// writesDuringRefresh builds a derived that reads out before mirror, where
// evaluating mirror writes src*10 into out and always yields the same value.
func writesDuringRefresh() (src *Cell[int], d *Derived[int]) {
	src = NewCell(1)
	out := NewCell(0)
	mirror := NewDerived(func() int {
		out.Set(src.Get() * 10)
		return 0
	})
	d = NewDerived(func() int { return out.Get() + mirror.Get() })
	return src, d
}

func TestDerived_RerunsWhenDependencyWrittenDuringRun(t *testing.T) {
	_, d := writesDuringRefresh()
	assert.Equal(t, 10, d.Get(), "first read must see the value written by a later dependency")
}

func TestDerived_RecheckAfterDependencyRefreshWrites(t *testing.T) {
	src, d := writesDuringRefresh()
	require.Equal(t, 10, d.Get())

	src.Set(2)
	assert.Equal(t, 20, d.Get(), "an earlier dependency moved while a later one refreshed")
}

func TestLinked_OverrideUntilUpstreamChange(t *testing.T) {
	src := NewCell(1)
	l := NewLinked(func() int { return src.Get() * 10 })

	assert.Equal(t, 10, l.Get())
	assert.Equal(t, Tracking, l.Mode())

	l.Set(99)
	assert.Equal(t, 99, l.Get())
	assert.Equal(t, Overridden, l.Mode())

	src.Set(2)
	assert.Equal(t, 20, l.Get())
	assert.Equal(t, Tracking, l.Mode())
}

func TestLinked_SetBeforeFirstRead(t *testing.T) {
	src := NewCell(1)
	l := NewLinked(func() int { return src.Get() })

	l.Set(7)
	assert.Equal(t, 7, l.Get())

	src.Set(3)
	assert.Equal(t, 3, l.Get(), "upstream change must reset an override written before the first read")
}

func TestLinked_DependentsSeeOverride(t *testing.T) {
	src := NewCell(1)
	l := NewLinked(func() int { return src.Get() })
	d := NewDerived(func() int { return l.Get() + 1 })

	assert.Equal(t, 2, d.Get())
	l.Set(10)
	assert.Equal(t, 11, d.Get())
}

func TestUntracked_DoesNotRecordDependency(t *testing.T) {
	a := NewCell(1)
	b := NewCell(1)
	runs := 0
	d := NewDerived(func() int {
		runs++
		return a.Get() + Untracked(b.Get)
	})

	assert.Equal(t, 2, d.Get())
	b.Set(5)
	assert.Equal(t, 2, d.Get())
	assert.Equal(t, 1, runs)
}

func TestEqual(t *testing.T) {
	type point struct{ x, y int }
	assert.True(t, Equal(1, 1))
	assert.True(t, Equal(point{1, 2}, point{1, 2}))
	assert.False(t, Equal([]int{1}, []int{1}), "slices are never equal")
	assert.True(t, Equal[any](nil, nil))
	assert.False(t, Equal[any](nil, 1))
	assert.False(t, Equal[any](1, "1"))
	assert.False(t, Equal[any](struct{ v any }{[]int{1}}, struct{ v any }{[]int{1}}))
}

func TestCatch_RepanicsRuntimeErrors(t *testing.T) {
	assert.Panics(t, func() {
		_ = Catch(func() {
			var m map[string]int
			m["x"] = 1
		})
	})
	assert.Panics(t, func() {
		_ = Catch(func() { panic("plain string") })
	})
	assert.NoError(t, Catch(func() {}))
}
