package model

// LineCategory classifies the broad biological origin of a cell line.
type LineCategory string

const (
	LineCancer LineCategory = "Cancer"
	LineNormal LineCategory = "Normal"
	LineStem   LineCategory = "Stem"
)

// DrugClass identifies a treatment compound family. Drug sensitivity tables
// and intracellular concentration maps are keyed by this type.
type DrugClass string

const (
	DrugTaxol       DrugClass = "taxol"
	DrugCisplatin   DrugClass = "cisplatin"
	DrugDoxorubicin DrugClass = "doxorubicin"
	DrugGemcitabine DrugClass = "gemcitabine"
	DrugTargeted    DrugClass = "targeted"
)

// CellLineProfile bundles the biological constants of one cultured cell line.
// A profile is registered once and shared by reference across every cell of
// that line; it is never mutated after load.
type CellLineProfile struct {
	Name     string       `json:"name"`
	Category LineCategory `json:"type"`
	Origin   string       `json:"origin"`

	// DoublingTime is the nominal population doubling time in hours. It
	// equals the sum of the four phase durations below.
	DoublingTime float64 `json:"doubling_time"`
	Adherent     bool    `json:"adherent"`

	// Cycle phase durations in hours.
	G1Duration float64 `json:"g1_duration"`
	SDuration  float64 `json:"s_duration"`
	G2Duration float64 `json:"g2_duration"`
	MDuration  float64 `json:"m_duration"`

	// Per-cell metabolic rates in pmol/cell/hr.
	GlucoseConsumption float64 `json:"glucose_consumption"`
	OxygenConsumption  float64 `json:"oxygen_consumption"`
	LactateProduction  float64 `json:"lactate_production"`

	// DrugSensitivity maps drug classes to IC50 values in µM.
	DrugSensitivity map[DrugClass]float64 `json:"drug_sensitivity"`

	// Signaling coefficients, both in [0,1].
	GrowthFactorDependence float64 `json:"growth_factor_dependence"`
	ContactInhibition      float64 `json:"contact_inhibition"`

	// Mechanical properties.
	Stiffness      float64 `json:"stiffness"`       // Pa
	MigrationSpeed float64 `json:"migration_speed"` // µm/hr

	// GeneExpression holds relative expression levels for a handful of
	// key oncogenes and tumor suppressors.
	GeneExpression map[string]float64 `json:"gene_expression"`
}

// PhaseDuration returns the configured duration in hours of a progressing
// phase, or 0 for G0 and unknown phases.
func (p *CellLineProfile) PhaseDuration(phase Phase) float64 {
	switch phase {
	case PhaseG1:
		return p.G1Duration
	case PhaseS:
		return p.SDuration
	case PhaseG2:
		return p.G2Duration
	case PhaseM:
		return p.MDuration
	default:
		return 0
	}
}
