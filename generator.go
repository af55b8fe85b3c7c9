// Package newtonfractal renders Newton fractals for z^n - 1 = 0: every
// pixel of the raster is seeded into Newton's method and colored by which
// root of unity it converged to and how long that took.
package newtonfractal

// Render computes the classified field and colorizes it in one call,
// returning the RGB buffer (row-major, 3 bytes per pixel, stride Width*3).
// The intermediate field is discarded; callers that want the raw
// classification use Compute and Colorize directly.
func Render(cfg Config, mode ColorMode, report Reporter) []byte {
	field := Compute(cfg, report)
	return Colorize(field, cfg, mode)
}
