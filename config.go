package newtonfractal

import "errors"

var (
	// ErrDegree indicates a polynomial degree below 1.
	ErrDegree = errors.New("newtonfractal: degree must be at least 1")
	// ErrDimensions indicates a non-positive image width or height.
	ErrDimensions = errors.New("newtonfractal: width and height must be positive")
	// ErrIterations indicates a non-positive iteration limit.
	ErrIterations = errors.New("newtonfractal: max iterations must be positive")
	// ErrTolerance indicates a non-positive convergence tolerance.
	ErrTolerance = errors.New("newtonfractal: tolerance must be positive")
	// ErrGamma indicates a non-positive gamma exponent.
	ErrGamma = errors.New("newtonfractal: gamma must be positive")
)

// Plane is the region of the complex plane the image maps onto.
type Plane struct {
	XMin, XMax float32
	YMin, YMax float32
}

// DefaultPlane is the fixed view every render uses. It is part of the
// contract with downstream consumers rather than a tunable.
var DefaultPlane = Plane{XMin: -5, XMax: 5, YMin: -5, YMax: 5}

// Config describes one render of the Newton fractal for z^N - 1 = 0.
type Config struct {
	N         int
	Width     int
	Height    int
	MaxIter   int
	Tolerance float64
	Gamma     float64
	Plane     Plane
}

// Render defaults, matching the reference renderer's CLI defaults.
const (
	DefaultDegree    = 5
	DefaultWidth     = 1655
	DefaultHeight    = 1655
	DefaultMaxIter   = 100
	DefaultTolerance = 1e-6
	DefaultGamma     = 4.0
	DefaultOutput    = "newton_fractal.png"
)

// DefaultConfig returns a Config with the standard parameters and plane.
func DefaultConfig() Config {
	return Config{
		N:         DefaultDegree,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		MaxIter:   DefaultMaxIter,
		Tolerance: DefaultTolerance,
		Gamma:     DefaultGamma,
		Plane:     DefaultPlane,
	}
}

// Validate rejects parameter combinations the numeric core is not defined
// for. The core assumes a validated Config.
func (c Config) Validate() error {
	if c.N < 1 {
		return ErrDegree
	}
	if c.Width <= 0 || c.Height <= 0 {
		return ErrDimensions
	}
	if c.MaxIter <= 0 {
		return ErrIterations
	}
	if c.Tolerance <= 0 {
		return ErrTolerance
	}
	if c.Gamma <= 0 {
		return ErrGamma
	}
	return nil
}
