package newtonfractal

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Field holds the per-pixel classification of one render: which root each
// pixel's Newton trajectory converged to (-1 for divergence) and how many
// steps that took. Both slices are dense, row-major, length Width*Height.
type Field struct {
	Width  int
	Height int
	Root   []int
	Iters  []int
}

// Reporter receives row-completion progress. done counts finished rows out
// of total. Called from worker goroutines; implementations must be safe for
// concurrent use. A nil Reporter disables reporting.
type Reporter func(done, total int)

func abs2(z complex64) float32 {
	return real(z)*real(z) + imag(z)*imag(z)
}

// powc computes z^m for m >= 0 by repeated multiplication.
func powc(z complex64, m int) complex64 {
	p := complex64(complex(1, 0))
	for i := 0; i < m; i++ {
		p *= z
	}
	return p
}

// mapAxis linearly maps pixel index i in [0,size) onto [lo,hi], with index 0
// at lo and index size-1 at hi. A single-pixel axis maps to lo.
func mapAxis(i, size int, lo, hi float32) float32 {
	if size <= 1 {
		return lo
	}
	return lo + (hi-lo)*float32(i)/float32(size-1)
}

// newton iterates z <- z - f(z)/f'(z) for f(z) = z^n - 1 starting from z0,
// for at most maxIter steps. It returns the index of the nearest root on
// convergence, or -1 if the derivative vanished or the step budget ran out,
// along with the number of steps performed.
//
// Convergence is judged on the updated iterate: after each step, the squared
// magnitude of f(z) is compared against tolSq. Divergence by exhaustion
// reports maxIter steps.
func newton(z0 complex64, n int, roots []complex64, maxIter int, tolSq float32) (rootIdx, iters int) {
	fn := float32(n)
	z := z0
	for iters < maxIter {
		zn1 := powc(z, n-1)
		f := zn1*z - 1
		df := complex(fn, 0) * zn1
		if abs2(df) == 0 {
			// z^(n-1) underflowed or z is exactly 0: the trajectory is
			// degenerate and no step can be taken.
			return -1, iters
		}
		z -= f / df
		iters++

		zn1 = powc(z, n-1)
		f = zn1*z - 1
		if abs2(f) < tolSq {
			return nearestRoot(z, roots), iters
		}
	}
	return -1, maxIter
}

// nearestRoot returns the index of the root closest to z by squared
// Euclidean distance. Ties resolve to the lowest index.
func nearestRoot(z complex64, roots []complex64) int {
	best := 0
	bestDist := abs2(z - roots[0])
	for k := 1; k < len(roots); k++ {
		if d := abs2(z - roots[k]); d < bestDist {
			best = k
			bestDist = d
		}
	}
	return best
}

// Compute classifies every pixel of the configured raster. Rows are striped
// across runtime.GOMAXPROCS(0) workers; each pixel reads only the shared
// root set and writes its own slot, so no locking is needed beyond the
// final join.
func Compute(cfg Config, report Reporter) Field {
	w, h := cfg.Width, cfg.Height
	roots := Roots(cfg.N)
	tolSq := float32(cfg.Tolerance * cfg.Tolerance)

	field := Field{
		Width:  w,
		Height: h,
		Root:   make([]int, w*h),
		Iters:  make([]int, w*h),
	}

	nw := runtime.GOMAXPROCS(0)
	var rowsDone atomic.Int64

	var wg sync.WaitGroup
	wg.Add(nw)
	for worker := 0; worker < nw; worker++ {
		go func(worker int) {
			defer wg.Done()
			for py := worker; py < h; py += nw {
				y := mapAxis(py, h, cfg.Plane.YMin, cfg.Plane.YMax)
				rowOff := py * w
				for px := 0; px < w; px++ {
					x := mapAxis(px, w, cfg.Plane.XMin, cfg.Plane.XMax)
					z0 := complex(x, y)

					rootIdx, iters := newton(z0, cfg.N, roots, cfg.MaxIter, tolSq)
					field.Root[rowOff+px] = rootIdx
					field.Iters[rowOff+px] = iters
				}
				if report != nil {
					report(int(rowsDone.Add(1)), h)
				}
			}
		}(worker)
	}
	wg.Wait()

	return field
}
