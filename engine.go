package main

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Engine names accepted by -engine
const (
	ENGINE_NAIVE    = "naive"
	ENGINE_PARALLEL = "parallel"
	ENGINE_FFT      = "fft"
)

var ErrUnknownEngine = errors.New("unknown engine")

// Stepper advances a grid by one generation without mutating it
type Stepper interface {
	Step(g Grid) Grid
}

// StepFunc adapts a plain function to Stepper
type StepFunc func(Grid) Grid

func (f StepFunc) Step(g Grid) Grid {
	return f(g)
}

// NewStepper builds the engine registered under name
func NewStepper(name string, workers int) (Stepper, error) {
	switch name {
	case ENGINE_NAIVE:
		return StepFunc(Step), nil
	case ENGINE_PARALLEL:
		return &ParallelEngine{Workers: workers}, nil
	case ENGINE_FFT:
		return &FFTEngine{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}

// ParallelEngine splits the grid into horizontal bands, one goroutine per band
type ParallelEngine struct {
	Workers int
}

func (e *ParallelEngine) Step(g Grid) Grid {
	next := NewGrid(g.Width(), g.Height())
	height := g.Height()

	workers := max(e.Workers, 1)
	rowsPerWorker := (height + workers - 1) / workers // Ceiling division

	var eg errgroup.Group
	for i := range workers {
		start := i * rowsPerWorker
		if start >= height {
			break
		}
		end := min(start+rowsPerWorker, height)

		// Bands write disjoint rows of next and only read g
		eg.Go(func() error {
			stepRows(g, next, start, end)
			return nil
		})
	}
	_ = eg.Wait() // bands never fail

	return next
}

// FFTEngine counts toroidal neighbours with a 2-D circular convolution.
// Circular convolution wraps at the edges, which is exactly the torus.
// Real FFT along rows, complex FFT along columns; only width/2+1 coefficients
// are kept per row. Not safe for concurrent use.
type FFTEngine struct {
	width, height int
	half          int // width/2 + 1 coefficients per row

	rows *fourier.FFT      // length width
	cols *fourier.CmplxFFT // length height

	kernel []complex128 // transformed kernel, height × half
	freq   []complex128 // work buffer, height × half
	col    []complex128 // column scratch, length height
	row    []float64    // row scratch, length width
	norm   float64      // 1/(width*height) for the unnormalized inverse
}

// Neighbours weigh 2 and the centre 1, so a sum in [5, 7] means
// 3 neighbours (6 or 7) or a Living cell with 2 neighbours (5)
var fftKernel = [3][3]float64{
	{2, 2, 2},
	{2, 1, 2},
	{2, 2, 2},
}

const (
	FFT_MIN_SIDE = 3   // Smaller grids use direct counting
	FFT_LOW      = 4.5 // Inclusive survival/birth window after rounding slack
	FFT_HIGH     = 7.5
)

func (e *FFTEngine) Step(g Grid) Grid {
	width, height := g.Width(), g.Height()
	if width < FFT_MIN_SIDE || height < FFT_MIN_SIDE {
		return Step(g)
	}
	if width != e.width || height != e.height {
		e.plan(width, height)
	}

	// Forward transform of the grid: rows first
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if g[y][x] == Living {
				e.row[x] = 1
			} else {
				e.row[x] = 0
			}
		}
		e.rows.Coefficients(e.freq[y*e.half:(y+1)*e.half], e.row)
	}
	e.transformColumns(e.freq, false)

	// Pointwise multiply in the frequency domain
	for i := range e.freq {
		e.freq[i] *= e.kernel[i]
	}

	// Inverse: columns, then rows, then threshold
	e.transformColumns(e.freq, true)
	next := NewGrid(width, height)
	for y := 0; y < height; y++ {
		e.rows.Sequence(e.row, e.freq[y*e.half:(y+1)*e.half])
		for x := 0; x < width; x++ {
			v := e.row[x] * e.norm
			if v >= FFT_LOW && v <= FFT_HIGH {
				next[y][x] = Living
			}
		}
	}
	return next
}

// Rebuild transforms and the kernel spectrum for new dimensions
func (e *FFTEngine) plan(width, height int) {
	e.width, e.height = width, height
	e.half = width/2 + 1
	e.rows = fourier.NewFFT(width)
	e.cols = fourier.NewCmplxFFT(height)
	e.norm = 1.0 / float64(width*height)

	e.freq = make([]complex128, height*e.half)
	e.kernel = make([]complex128, height*e.half)
	e.col = make([]complex128, height)
	e.row = make([]float64, width)

	// Kernel in the spatial domain, centred on (0, 0) with wraparound
	spatial := make([]float64, width*height)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			fy := (dy + height) % height
			fx := (dx + width) % width
			spatial[fy*width+fx] += fftKernel[dy+1][dx+1]
		}
	}

	for y := 0; y < height; y++ {
		e.rows.Coefficients(e.kernel[y*e.half:(y+1)*e.half], spatial[y*width:(y+1)*width])
	}
	e.transformColumns(e.kernel, false)
}

// Complex FFT (or inverse) down every kept column of buf
func (e *FFTEngine) transformColumns(buf []complex128, inverse bool) {
	for x := 0; x < e.half; x++ {
		for y := 0; y < e.height; y++ {
			e.col[y] = buf[y*e.half+x]
		}
		if inverse {
			e.cols.Sequence(e.col, e.col)
		} else {
			e.cols.Coefficients(e.col, e.col)
		}
		for y := 0; y < e.height; y++ {
			buf[y*e.half+x] = e.col[y]
		}
	}
}
