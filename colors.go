package newtonfractal

import (
	"math"
	"runtime"
	"sync"
)

// saturation is fixed for the root-hue palette.
const saturation = 0.9

// hsvToRGB converts h, s, v in [0,1] to 8-bit channels using the six-sector
// hue circle. Sector i = floor(h*6) selects which channel sits at v, which
// at the floor p, and which ramps across the sector (t up, q down). With
// s == 0 the hue is meaningless and the result is a gray of brightness v.
func hsvToRGB(h, s, v float64) (r, g, b uint8) {
	if s == 0 {
		gray := uint8(v * 255)
		return gray, gray, gray
	}

	i := int(h * 6)
	f := h*6 - float64(i)
	i %= 6

	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	vb := uint8(v * 255)
	pb := uint8(p * 255)
	qb := uint8(q * 255)
	tb := uint8(t * 255)

	switch i {
	case 0:
		return vb, tb, pb
	case 1:
		return qb, vb, pb
	case 2:
		return pb, vb, tb
	case 3:
		return pb, qb, vb
	case 4:
		return tb, pb, vb
	default:
		return vb, pb, qb
	}
}

// ColorMode selects how a classification maps to color.
type ColorMode int

const (
	// ColorRootHSV hues each pixel by its root and dims it by iteration
	// count. This is the standard rendering.
	ColorRootHSV ColorMode = iota
	// ColorIterGray ignores the root and shades by iteration count only,
	// useful for inspecting convergence bands.
	ColorIterGray
)

// brightness is the shared value ramp: fast converging pixels are bright,
// slow ones decay toward black, with gamma sharpening the falloff.
func brightness(iters, maxIter int, gamma float64) float64 {
	return math.Pow(1-float64(iters)/float64(maxIter), gamma)
}

func buildColorizer(mode ColorMode, cfg Config) func(rootIdx, iters int) (uint8, uint8, uint8) {
	switch mode {
	case ColorIterGray:
		return func(rootIdx, iters int) (uint8, uint8, uint8) {
			if rootIdx < 0 {
				return 0, 0, 0
			}
			return hsvToRGB(0, 0, brightness(iters, cfg.MaxIter, cfg.Gamma))
		}
	default:
		n := float64(cfg.N)
		return func(rootIdx, iters int) (uint8, uint8, uint8) {
			if rootIdx < 0 {
				return 0, 0, 0
			}
			hue := float64(rootIdx) / n
			return hsvToRGB(hue, saturation, brightness(iters, cfg.MaxIter, cfg.Gamma))
		}
	}
}

// Colorize maps a classified field to a dense RGB buffer: row-major,
// 3 bytes per pixel, stride Width*3. That layout is the contract with the
// image sink and must not change.
func Colorize(field Field, cfg Config, mode ColorMode) []byte {
	w, h := field.Width, field.Height
	stride := w * 3
	pix := make([]byte, stride*h)

	colorize := buildColorizer(mode, cfg)

	nw := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	wg.Add(nw)
	for worker := 0; worker < nw; worker++ {
		go func(worker int) {
			defer wg.Done()
			for py := worker; py < h; py += nw {
				rowOff := py * w
				pixOff := py * stride
				for px := 0; px < w; px++ {
					idx := rowOff + px
					r, g, b := colorize(field.Root[idx], field.Iters[idx])

					off := pixOff + px*3
					pix[off+0] = r
					pix[off+1] = g
					pix[off+2] = b
				}
			}
		}(worker)
	}
	wg.Wait()

	return pix
}
