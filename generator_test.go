package newtonfractal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_MatchesTwoPass(t *testing.T) {
	// Fusing compute and colorize must produce the exact buffer of the
	// separate passes.
	cfg := testConfig(5, 16, 12)

	fused := Render(cfg, ColorRootHSV, nil)
	field := Compute(cfg, nil)
	twoPass := Colorize(field, cfg, ColorRootHSV)

	assert.Equal(t, twoPass, fused)
}

func TestRender_BufferContract(t *testing.T) {
	cfg := testConfig(3, 7, 5)
	rgb := Render(cfg, ColorRootHSV, nil)
	require.Len(t, rgb, cfg.Width*cfg.Height*3)
}

func TestRender_Deterministic(t *testing.T) {
	cfg := testConfig(4, 10, 10)
	assert.Equal(t, Render(cfg, ColorRootHSV, nil), Render(cfg, ColorRootHSV, nil))
}
