package ids

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_ProducesV7(t *testing.T) {
	id := UUIDGenerator{}.Generate()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestUUIDGenerator_Prefix(t *testing.T) {
	g := UUIDGenerator{Prefix: "opt"}
	a, b := g.Generate(), g.Generate()
	assert.True(t, strings.HasPrefix(a, "opt-"))
	assert.NotEqual(t, a, b)
}

func TestSequence(t *testing.T) {
	s := NewSequence("cell")
	assert.Equal(t, "cell-1", s.Generate())
	assert.Equal(t, "cell-2", s.Generate())
}

func TestGenerators_ImplementInterface(t *testing.T) {
	for _, g := range []Generator{UUIDGenerator{}, NewSequence("x")} {
		assert.NotEmpty(t, g.Generate())
	}
}
