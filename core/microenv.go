package core

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/biodynlabs/cellculture-simulator/model"
)

// Per-field smoothing widths, in grid cells. Oxygen diffuses fastest and
// widest, lactate slowest and narrowest, mirroring relative diffusion
// coefficients in media.
const (
	sigmaGlucose = 1.0
	sigmaOxygen  = 1.5
	sigmaLactate = 0.8
)

// consumptionScale converts per-cell pmol/cell/hr rates into normalized field
// units per step.
const consumptionScale = 0.001

// LocalEnv is the microenvironment at one cell's position. GrowthFactor is a
// paracrine input to G1 progression; nothing in the grid supplies it, so
// LocalValues always reports 1.0 (the orchestrator substitutes the
// contact-inhibition multiplier via Cell.GrowthSignals instead).
type LocalEnv struct {
	Glucose      float64
	Oxygen       float64
	Lactate      float64
	PH           float64
	GrowthFactor float64
}

// Microenvironment is a regular 2D grid of nutrient, oxygen, and waste fields
// over a square culture domain. Glucose, oxygen, and lactate are normalized to
// [0,1]; pH is derived from lactate (7.4 − 0.5·lactate) and recomputed on
// every update rather than integrated as independent state.
type Microenvironment struct {
	Size       float64 // domain edge length, µm
	Resolution float64 // µm per grid cell

	NX, NY int

	// Fields are stored row-major, index = x*NY + y.
	Glucose []float64
	Oxygen  []float64
	Lactate []float64
	PH      []float64
}

// NewMicroenvironment constructs a grid over a size×size µm domain. Glucose
// and oxygen start saturated at 1.0, lactate at 0, pH at 7.4.
func NewMicroenvironment(size, resolution float64) *Microenvironment {
	n := int(size / resolution)
	if n < 3 {
		n = 3 // smallest grid with an interior
	}

	m := &Microenvironment{
		Size:       size,
		Resolution: resolution,
		NX:         n,
		NY:         n,
		Glucose:    make([]float64, n*n),
		Oxygen:     make([]float64, n*n),
		Lactate:    make([]float64, n*n),
		PH:         make([]float64, n*n),
	}
	for i := range m.Glucose {
		m.Glucose[i] = 1.0
		m.Oxygen[i] = 1.0
		m.PH[i] = 7.4
	}
	return m
}

// Update advances the fields by one step: accumulate consumption/production
// from every live cell, clamp, smooth each field, force the media-exchange
// boundary, and recompute pH.
func (m *Microenvironment) Update(cells []*model.Cell, dt float64) {
	consGlucose := make([]float64, len(m.Glucose))
	consOxygen := make([]float64, len(m.Oxygen))
	prodLactate := make([]float64, len(m.Lactate))

	rate := dt * consumptionScale
	for _, c := range cells {
		if !c.Alive {
			continue
		}
		idx := m.gridIndex(c.X, c.Y)
		consGlucose[idx] += c.Line.GlucoseConsumption * rate
		consOxygen[idx] += c.Line.OxygenConsumption * rate
		prodLactate[idx] += c.Line.LactateProduction * rate
	}

	for i := range m.Glucose {
		m.Glucose[i] = math.Max(0, m.Glucose[i]-consGlucose[i])
		m.Oxygen[i] = math.Max(0, m.Oxygen[i]-consOxygen[i])
		m.Lactate[i] = math.Min(1, m.Lactate[i]+prodLactate[i])
	}

	// Diffusion approximated by Gaussian smoothing. The kernel per field is
	// part of the behavioural contract: it sets the spatial gradients cells
	// respond to.
	gaussianSmooth(m.Glucose, m.NX, m.NY, sigmaGlucose)
	gaussianSmooth(m.Oxygen, m.NX, m.NY, sigmaOxygen)
	gaussianSmooth(m.Lactate, m.NX, m.NY, sigmaLactate)

	// Smoothing is a convex combination, but rounding can land a hair
	// outside [0,1]; pin it back.
	clamp01(m.Glucose)
	clamp01(m.Oxygen)
	clamp01(m.Lactate)

	// Media exchange at the dish edge: glucose and oxygen replenish on the
	// outer ring every step; lactate is never forced.
	m.forceBoundary(m.Glucose, 1.0)
	m.forceBoundary(m.Oxygen, 1.0)

	for i := range m.PH {
		m.PH[i] = 7.4 - 0.5*m.Lactate[i]
	}
}

// LocalValues maps a continuous position to its (clamped) grid cell and
// returns the field values there. Pure read.
func (m *Microenvironment) LocalValues(x, y float64) LocalEnv {
	idx := m.gridIndex(x, y)
	return LocalEnv{
		Glucose:      m.Glucose[idx],
		Oxygen:       m.Oxygen[idx],
		Lactate:      m.Lactate[idx],
		PH:           m.PH[idx],
		GrowthFactor: 1.0,
	}
}

// MeanGlucose returns the grid-wide glucose mean.
func (m *Microenvironment) MeanGlucose() float64 { return stat.Mean(m.Glucose, nil) }

// MeanOxygen returns the grid-wide oxygen mean.
func (m *Microenvironment) MeanOxygen() float64 { return stat.Mean(m.Oxygen, nil) }

// MeanLactate returns the grid-wide lactate mean.
func (m *Microenvironment) MeanLactate() float64 { return stat.Mean(m.Lactate, nil) }

func (m *Microenvironment) gridIndex(x, y float64) int {
	gx := int(x / m.Resolution)
	gy := int(y / m.Resolution)
	gx = clampInt(gx, 0, m.NX-1)
	gy = clampInt(gy, 0, m.NY-1)
	return gx*m.NY + gy
}

func (m *Microenvironment) forceBoundary(field []float64, value float64) {
	for x := 0; x < m.NX; x++ {
		field[x*m.NY] = value
		field[x*m.NY+m.NY-1] = value
	}
	for y := 0; y < m.NY; y++ {
		field[y] = value
		field[(m.NX-1)*m.NY+y] = value
	}
}

// gaussianSmooth applies a separable normalized Gaussian kernel with
// reflecting boundaries. The kernel radius is 4σ rounded, wide enough that
// truncation error is negligible; because weights sum to 1, smoothing keeps
// every value inside the field's existing [min,max] range.
func gaussianSmooth(field []float64, nx, ny int, sigma float64) {
	radius := int(4*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for k := -radius; k <= radius; k++ {
		w := math.Exp(-float64(k*k) / (2 * sigma * sigma))
		kernel[k+radius] = w
		sum += w
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	tmp := make([]float64, len(field))

	// Pass along x.
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			var v float64
			for k := -radius; k <= radius; k++ {
				sx := reflectIndex(x+k, nx)
				v += kernel[k+radius] * field[sx*ny+y]
			}
			tmp[x*ny+y] = v
		}
	}
	// Pass along y.
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			var v float64
			for k := -radius; k <= radius; k++ {
				sy := reflectIndex(y+k, ny)
				v += kernel[k+radius] * tmp[x*ny+sy]
			}
			field[x*ny+y] = v
		}
	}
}

// reflectIndex folds an out-of-range index back into [0,n) by mirroring at
// the edges: (d c b a | a b c d | d c b a).
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}

func clamp01(field []float64) {
	for i, v := range field {
		if v < 0 {
			field[i] = 0
		} else if v > 1 {
			field[i] = 1
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
