package newtonfractal

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(n, w, h int) Config {
	return Config{
		N:         n,
		Width:     w,
		Height:    h,
		MaxIter:   50,
		Tolerance: 1e-6,
		Gamma:     4.0,
		Plane:     DefaultPlane,
	}
}

// singlePixel runs the field computation for one seed by pinning a
// degenerate plane onto it.
func singlePixel(n int, z0 complex64, maxIter int) (rootIdx, iters int) {
	cfg := Config{
		N:         n,
		Width:     1,
		Height:    1,
		MaxIter:   maxIter,
		Tolerance: 1e-6,
		Gamma:     4.0,
		Plane: Plane{
			XMin: real(z0), XMax: real(z0),
			YMin: imag(z0), YMax: imag(z0),
		},
	}
	field := Compute(cfg, nil)
	return field.Root[0], field.Iters[0]
}

func TestMapAxis(t *testing.T) {
	assert.Equal(t, float32(-5), mapAxis(0, 10, -5, 5))
	assert.Equal(t, float32(5), mapAxis(9, 10, -5, 5))
	assert.Equal(t, float32(0), mapAxis(4, 9, -5, 5))

	// A single-pixel axis maps to the lower bound.
	assert.Equal(t, float32(-5), mapAxis(0, 1, -5, 5))
}

func TestCompute_DegreeOne(t *testing.T) {
	// f(z) = z - 1 has the single root (1,0); every Newton step lands on it
	// directly, so the whole field classifies as root 0.
	field := Compute(testConfig(1, 8, 8), nil)
	for i, root := range field.Root {
		require.Equal(t, 0, root, "pixel %d", i)
		require.GreaterOrEqual(t, field.Iters[i], 1)
	}
}

func TestCompute_SeedOnRoot(t *testing.T) {
	roots := Roots(4)
	for k, r := range roots {
		rootIdx, iters := singlePixel(4, r, 50)
		assert.Equal(t, k, rootIdx)
		// f(z0) is already zero, so the step is a no-op and the first
		// post-step check converges.
		assert.Equal(t, 1, iters)
	}
}

func TestCompute_ZeroSeedDiverges(t *testing.T) {
	// z = 0 kills the derivative for n >= 2 before any step is taken.
	rootIdx, iters := singlePixel(2, 0, 50)
	assert.Equal(t, -1, rootIdx)
	assert.Equal(t, 0, iters)
}

func TestCompute_AxisSeeds(t *testing.T) {
	// Real and imaginary axis seeds stay on their axis under the quartic
	// Newton map, so their destinations are known exactly.
	cases := []struct {
		z0   complex64
		root int
	}{
		{complex(5, 0), 0},
		{complex(0, 5), 1},
		{complex(-5, 0), 2},
		{complex(0, -5), 3},
	}
	for _, tc := range cases {
		rootIdx, iters := singlePixel(4, tc.z0, 50)
		assert.Equal(t, tc.root, rootIdx, "seed %v", tc.z0)
		assert.Greater(t, iters, 0)
		assert.LessOrEqual(t, iters, 50)
	}
}

func TestCompute_MaxIterMonotonic(t *testing.T) {
	// Raising the iteration limit must not change pixels that already
	// converged under the lower one.
	lowCfg := testConfig(3, 16, 16)
	lowCfg.MaxIter = 30
	highCfg := lowCfg
	highCfg.MaxIter = 60

	low := Compute(lowCfg, nil)
	high := Compute(highCfg, nil)

	for i, root := range low.Root {
		if root == -1 {
			continue
		}
		assert.Equal(t, root, high.Root[i], "pixel %d", i)
		assert.Equal(t, low.Iters[i], high.Iters[i], "pixel %d", i)
	}
}

func TestCompute_SymmetryDegreeTwo(t *testing.T) {
	// f(z) = z^2 - 1 is symmetric under z -> -z with the two roots
	// (1,0) and (-1,0) swapping places. Width 9 makes the x grid exactly
	// symmetric around the px=4 column (x = 0), which sits on the basin
	// boundary and is excluded.
	cfg := testConfig(2, 9, 8)
	field := Compute(cfg, nil)

	for py := 0; py < cfg.Height; py++ {
		for px := 0; px < 4; px++ {
			a := field.Root[py*cfg.Width+px]
			b := field.Root[py*cfg.Width+(8-px)]
			ia := field.Iters[py*cfg.Width+px]
			ib := field.Iters[py*cfg.Width+(8-px)]

			if a == -1 {
				assert.Equal(t, -1, b, "pixel (%d,%d)", px, py)
				continue
			}
			assert.Equal(t, 1-a, b, "pixel (%d,%d)", px, py)
			assert.Equal(t, ia, ib, "pixel (%d,%d)", px, py)
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	cfg := testConfig(5, 12, 10)
	first := Compute(cfg, nil)
	second := Compute(cfg, nil)
	assert.Equal(t, first, second)
}

func TestCompute_Fixture2x2(t *testing.T) {
	// The 2x2 raster over the default plane seeds the four corners of
	// [-5,5]^2. Deterministic regression surface for the quartic.
	cfg := testConfig(4, 2, 2)
	field := Compute(cfg, nil)

	require.Len(t, field.Root, 4)
	for i, root := range field.Root {
		assert.GreaterOrEqual(t, root, -1, "pixel %d", i)
		assert.Less(t, root, 4, "pixel %d", i)
		assert.GreaterOrEqual(t, field.Iters[i], 0, "pixel %d", i)
		assert.LessOrEqual(t, field.Iters[i], cfg.MaxIter, "pixel %d", i)
	}

	assert.Equal(t, field, Compute(cfg, nil))
}

func TestCompute_ProgressRows(t *testing.T) {
	cfg := testConfig(3, 6, 17)

	var mu sync.Mutex
	var calls int
	maxDone := 0
	Compute(cfg, func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		assert.Equal(t, cfg.Height, total)
		if done > maxDone {
			maxDone = done
		}
	})

	assert.Equal(t, cfg.Height, calls)
	assert.Equal(t, cfg.Height, maxDone)
}
