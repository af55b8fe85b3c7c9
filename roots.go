package newtonfractal

import "math"

// Roots returns the n-th roots of unity in index order: root k lies at
// angle 2πk/n on the unit circle. These are the attractors of the Newton
// iteration for z^n - 1 and double as the classification targets.
//
// n must be at least 1; Config.Validate guards this upstream.
func Roots(n int) []complex64 {
	roots := make([]complex64, n)
	for k := 0; k < n; k++ {
		angle := 2 * math.Pi * float64(k) / float64(n)
		roots[k] = complex(float32(math.Cos(angle)), float32(math.Sin(angle)))
	}
	return roots
}
