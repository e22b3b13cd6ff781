package model

// Cell is the mutable state of a single agent. Cells are owned exclusively by
// the simulation's population slice and mutated in place during the per-cell
// pass; a cell with Alive == false is never progressed by the cycle engine,
// drug models, or interaction calculations, but may linger in the population
// until clearance removes it.
type Cell struct {
	// ID is unique within a run and assigned monotonically, daughters
	// included.
	ID int

	// Position in µm within the square culture domain.
	X float64
	Y float64

	// Line is the shared, read-only profile for this cell's line.
	Line *CellLineProfile

	// Cycle state. PhaseProgress counts hours elapsed in the current
	// phase and resets to 0 on every transition.
	Phase         Phase
	PhaseProgress float64

	// Viability. Apoptotic and Necrotic are terminal markers set once.
	Alive     bool
	Health    float64
	Apoptotic bool
	Necrotic  bool

	// Metabolic scalars, each nominally in [0,1].
	ATP             float64
	GlucoseInternal float64
	OxygenLevel     float64

	// DrugConcentrations holds intracellular concentration per drug class,
	// created lazily the first time a drug model touches the cell.
	DrugConcentrations map[DrugClass]float64

	// GeneExpression starts as a copy of the line's baseline so individual
	// cells can diverge later.
	GeneExpression map[string]float64

	// Signaling state. GrowthSignals is refreshed every step from the
	// contact-inhibition calculation.
	GrowthSignals float64
	StressSignals float64

	// Physical properties.
	Radius    float64 // µm
	VelocityX float64
	VelocityY float64

	// Division tracking.
	CanDivide     bool
	DivisionCount int
}
