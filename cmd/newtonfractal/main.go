package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"newtonfractal"
	"newtonfractal/sink"
)

type options struct {
	degree     int
	width      int
	height     int
	iterations int
	tolerance  float64
	gamma      float64
	out        string
	gray       bool
}

func mainCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "newtonfractal",
		Short: "Render the Newton fractal for z^n - 1 = 0",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCmd(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.degree, "degree", "n", newtonfractal.DefaultDegree, "polynomial degree")
	cmd.Flags().IntVar(&opts.width, "width", newtonfractal.DefaultWidth, "image width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", newtonfractal.DefaultHeight, "image height in pixels")
	cmd.Flags().IntVar(&opts.iterations, "iterations", newtonfractal.DefaultMaxIter, "maximum Newton iterations per pixel")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", newtonfractal.DefaultTolerance, "convergence tolerance")
	cmd.Flags().Float64Var(&opts.gamma, "gamma", newtonfractal.DefaultGamma, "brightness decay exponent (higher decays colors more abruptly)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", newtonfractal.DefaultOutput, "output file (.png, .bmp or .tiff)")
	cmd.Flags().BoolVar(&opts.gray, "gray", false, "shade by iteration count instead of root hue")

	return cmd
}

func runCmd(cmd *cobra.Command, opts *options) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	cfg := newtonfractal.Config{
		N:         opts.degree,
		Width:     opts.width,
		Height:    opts.height,
		MaxIter:   opts.iterations,
		Tolerance: opts.tolerance,
		Gamma:     opts.gamma,
		Plane:     newtonfractal.DefaultPlane,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	mode := newtonfractal.ColorRootHSV
	if opts.gray {
		mode = newtonfractal.ColorIterGray
	}

	fmt.Printf("Generating Newton fractal for z^%d-1 = 0\n", cfg.N)
	fmt.Printf("Image size: %dx%d\n", cfg.Width, cfg.Height)
	fmt.Printf("Max iterations: %d\n", cfg.MaxIter)
	fmt.Printf("Newton method tolerance: %g\n", cfg.Tolerance)
	fmt.Printf("Gamma: %g\n", cfg.Gamma)

	start := time.Now()
	rgb := newtonfractal.Render(cfg, mode, func(done, total int) {
		fmt.Printf("\rrows: %d/%d", done, total)
	})
	fmt.Printf("\nComputation finished in %s\n", time.Since(start))

	if err := sink.WriteFile(opts.out, cfg.Width, cfg.Height, rgb); err != nil {
		return err
	}
	fmt.Printf("Image saved to %s\n", opts.out)
	return nil
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
