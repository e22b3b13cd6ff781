package core

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/biodynlabs/cellculture-simulator/internal/logging"
	"github.com/biodynlabs/cellculture-simulator/kb"
	"github.com/biodynlabs/cellculture-simulator/model"
)

const (
	// PopulationCap bounds the live+uncleared population. It is a cost
	// control, not a biological constraint: once reached, further division
	// is silently suppressed.
	PopulationCap = 5000

	// seedMargin keeps initial cells away from the dish edge, in µm.
	seedMargin = 50.0

	// clearanceProbability is the per-step chance a dead cell is removed
	// from the dish, modeling gradual clearance rather than instant removal.
	clearanceProbability = 0.2

	// divisionOffset places a daughter at this multiple of the parent
	// radius, at a random angle.
	divisionOffset = 2.5

	// metabolicBlend is the per-step retention of stored metabolic state;
	// the remainder is taken from the local environment.
	metabolicBlend = 0.9

	// sampleEveryHours is the aggregate sampling cadence in simulated hours.
	sampleEveryHours = 6.0

	// fallbackIC50 is used when the treatment drug class is not in the cell
	// line's sensitivity table, in µM.
	fallbackIC50 = 10.0
)

const tracerName = "github.com/biodynlabs/cellculture-simulator/core"

// SimMetricsRecorder receives population counts as the simulation steps.
// Implemented by the observability collector; a nil recorder is allowed.
type SimMetricsRecorder interface {
	SetPopulation(total, viable int)
}

// Config are the construction parameters for one run.
type Config struct {
	// CellLine must name a registered cell line.
	CellLine string
	// InitialCells is the seeded population size; must be > 0.
	InitialCells int
	// CultureSize is the square domain edge in µm. Defaults to 1000.
	CultureSize float64
	// Resolution is the grid cell size in µm. Defaults to 10.
	Resolution float64
	// Treatment optionally activates a drug model.
	Treatment model.Treatment
	// Seed fixes the random stream; runs with equal configs and seeds
	// produce identical sample series.
	Seed int64
}

// Option customizes a Simulation at construction.
type Option func(*Simulation)

// WithLogger attaches a structured logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetricsRecorder attaches a population metrics recorder.
func WithMetricsRecorder(r SimMetricsRecorder) Option {
	return func(s *Simulation) { s.metrics = r }
}

// Simulation owns the cell population, the microenvironment, and the active
// drug models, and drives the per-step update loop. It is single-threaded:
// one Run call executes to completion and the orchestrator is the sole owner
// of population mutation, which is staged during the per-cell pass and
// applied only at step boundaries so every neighbor computation within a step
// sees a stable population snapshot.
type Simulation struct {
	line  *model.CellLineProfile
	env   *Microenvironment
	cells []*model.Cell
	drugs []*DrugModel

	rng    *rand.Rand
	nextID int

	time    float64
	samples []model.Sample

	log     logging.Logger
	metrics SimMetricsRecorder
}

// NewSimulation validates the config against the registry and seeds the
// population. Configuration errors (unknown cell line, non-positive counts)
// surface here, before any step runs.
func NewSimulation(reg *kb.Registry, cfg Config, opts ...Option) (*Simulation, error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: nil registry", ErrInvalidParameter)
	}
	if cfg.CultureSize == 0 {
		cfg.CultureSize = 1000
	}
	if cfg.Resolution == 0 {
		cfg.Resolution = 10
	}
	if cfg.InitialCells <= 0 {
		return nil, fmt.Errorf("%w: initial cells %d must be > 0", ErrInvalidParameter, cfg.InitialCells)
	}
	if cfg.CultureSize < 0 || cfg.Resolution < 0 {
		return nil, fmt.Errorf("%w: culture size %v and resolution %v must be > 0", ErrInvalidParameter, cfg.CultureSize, cfg.Resolution)
	}

	line, err := reg.Get(cfg.CellLine)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		line: line,
		env:  NewMicroenvironment(cfg.CultureSize, cfg.Resolution),
		rng:  rand.New(rand.NewSource(cfg.Seed)),
		log:  logging.Noop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.cells = make([]*model.Cell, 0, cfg.InitialCells)
	lo, hi := seedMargin, cfg.CultureSize-seedMargin
	if hi <= lo {
		// Tiny domains get seeded across the whole dish.
		lo, hi = 0, cfg.CultureSize
	}
	for i := 0; i < cfg.InitialCells; i++ {
		x := lo + (hi-lo)*s.rng.Float64()
		y := lo + (hi-lo)*s.rng.Float64()
		s.cells = append(s.cells, s.newCell(x, y))
	}

	if cfg.Treatment.Type == model.TreatmentDrug && cfg.Treatment.Concentration > 0 {
		class := cfg.Treatment.DrugClass
		if class == "" {
			class = model.DrugTaxol
		}
		ic50, ok := line.DrugSensitivity[class]
		if !ok {
			ic50 = fallbackIC50
		}
		s.drugs = append(s.drugs, NewDrugModel(class, cfg.Treatment.Concentration, ic50))
	}

	return s, nil
}

// Run executes the whole simulation synchronously and returns the ordered
// aggregate samples. Both duration and dt are in simulated hours and must be
// positive. There is no suspension point: the ctx is used for tracing and
// logging, not cancellation.
func (s *Simulation) Run(ctx context.Context, duration, dt float64) ([]model.Sample, error) {
	if duration <= 0 || dt <= 0 {
		return nil, fmt.Errorf("%w: duration %v and dt %v must be > 0", ErrInvalidParameter, duration, dt)
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "simulation.run",
		trace.WithAttributes(
			attribute.String("cell_line", s.line.Name),
			attribute.Int("initial_cells", len(s.cells)),
			attribute.Float64("duration_hours", duration),
			attribute.Float64("dt_hours", dt),
			attribute.Int("active_drugs", len(s.drugs)),
		))
	defer span.End()

	steps := int(duration / dt)
	sampleInterval := int(sampleEveryHours / dt)
	if sampleInterval < 1 {
		sampleInterval = 1
	}

	s.log.Info(ctx, "simulation started",
		logging.String("cell_line", s.line.Name),
		logging.Int("cells", len(s.cells)),
		logging.Any("duration_hours", duration),
	)

	for step := 0; step < steps; step++ {
		s.time = float64(step) * dt
		s.step(dt)
		if step%sampleInterval == 0 {
			s.collectSample()
		}
	}

	span.SetAttributes(
		attribute.Int("final_population", len(s.cells)),
		attribute.Int("samples", len(s.samples)),
	)
	s.log.Info(ctx, "simulation complete",
		logging.Int("cells", len(s.cells)),
		logging.Int("samples", len(s.samples)),
	)

	return s.samples, nil
}

// step advances the whole system by dt hours in the fixed per-step order:
// microenvironment first, then the per-cell pass over the stable population
// snapshot, then staged additions and removals in one batch.
func (s *Simulation) step(dt float64) {
	s.env.Update(s.cells, dt)

	var toAdd []*model.Cell
	var toRemove map[int]struct{}

	for _, c := range s.cells {
		if !c.Alive {
			continue
		}

		local := s.env.LocalValues(c.X, c.Y)

		// Metabolism: stored state relaxes toward the local environment,
		// ATP couples glucose and oxygen.
		c.GlucoseInternal = metabolicBlend*c.GlucoseInternal + (1-metabolicBlend)*local.Glucose
		c.OxygenLevel = metabolicBlend*c.OxygenLevel + (1-metabolicBlend)*local.Oxygen
		c.ATP = math.Sqrt(c.GlucoseInternal * c.OxygenLevel)

		// The contact-inhibition multiplier doubles as the growth-factor
		// signal consumed by G1 progression.
		c.GrowthSignals = ContactInhibition(s.cells, c, ContactRadius)

		for _, d := range s.drugs {
			d.ApplyTo(c, dt)
		}

		// Environmental stress.
		if local.Glucose < 0.2 || local.Oxygen < 0.1 {
			c.Health *= 0.98
		}
		if local.PH < 6.8 || local.PH > 7.8 {
			c.Health *= 0.99
		}

		ready := AdvanceCycle(c, dt, local)

		if ready && c.CanDivide && len(s.cells)+len(toAdd) < PopulationCap {
			angle := 2 * math.Pi * s.rng.Float64()
			offset := c.Radius * divisionOffset
			daughter := s.newCell(c.X+offset*math.Cos(angle), c.Y+offset*math.Sin(angle))
			daughter.DivisionCount = c.DivisionCount + 1
			toAdd = append(toAdd, daughter)
		}

		// Death pathways.
		if c.Health < 0.1 {
			c.Apoptotic = true
		}
		if c.GlucoseInternal < 0.05 && c.OxygenLevel < 0.05 {
			c.Necrotic = true
		}
		if c.Apoptotic || c.Necrotic {
			c.Alive = false
			if s.rng.Float64() < clearanceProbability {
				if toRemove == nil {
					toRemove = make(map[int]struct{})
				}
				toRemove[c.ID] = struct{}{}
			}
		}
	}

	if len(toRemove) > 0 {
		kept := s.cells[:0]
		for _, c := range s.cells {
			if _, gone := toRemove[c.ID]; !gone {
				kept = append(kept, c)
			}
		}
		s.cells = kept
	}
	s.cells = append(s.cells, toAdd...)

	if s.metrics != nil {
		s.metrics.SetPopulation(len(s.cells), s.viableCount())
	}
}

// newCell assigns the next monotonic ID and draws the initial biological
// state. Cells start in G1 partway through the phase so a freshly seeded
// population doesn't divide in lockstep.
func (s *Simulation) newCell(x, y float64) *model.Cell {
	c := &model.Cell{
		ID:    s.nextID,
		X:     x,
		Y:     y,
		Line:  s.line,
		Phase: model.PhaseG1,

		PhaseProgress: s.rng.Float64() * s.line.G1Duration,

		Alive:  true,
		Health: 0.85 + 0.15*s.rng.Float64(),

		ATP:             0.8 + 0.2*s.rng.Float64(),
		GlucoseInternal: 0.7 + 0.3*s.rng.Float64(),
		OxygenLevel:     0.8 + 0.2*s.rng.Float64(),

		DrugConcentrations: make(map[model.DrugClass]float64),
		GeneExpression:     copyExpression(s.line.GeneExpression),

		GrowthSignals: 1.0,
		Radius:        10 + 1.5*s.rng.NormFloat64(),
		CanDivide:     true,
	}
	s.nextID++
	return c
}

func (s *Simulation) viableCount() int {
	n := 0
	for _, c := range s.cells {
		if c.Alive {
			n++
		}
	}
	return n
}

// CellLine returns the shared profile this run was constructed with.
func (s *Simulation) CellLine() *model.CellLineProfile { return s.line }

// Population returns the current number of cells in the dish, dead but
// uncleared cells included.
func (s *Simulation) Population() int { return len(s.cells) }

// Samples returns the aggregate samples recorded so far.
func (s *Simulation) Samples() []model.Sample { return s.samples }

func copyExpression(src map[string]float64) map[string]float64 {
	dst := make(map[string]float64, len(src))
	for gene, level := range src {
		dst[gene] = level
	}
	return dst
}
