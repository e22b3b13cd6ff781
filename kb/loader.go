package kb

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/biodynlabs/cellculture-simulator/model"
)

// LoadSummary reports what a LoadCellLines call registered. It is mainly
// useful for logging from main().
type LoadSummary struct {
	LineNames []string
}

// internal JSON shape – kept unexported so the file format can evolve
// without leaking into the registry API.
type cellLinesJSON struct {
	CellLines []cellLineJSON `json:"cell_lines"`
}

type cellLineJSON struct {
	Name               string             `json:"name"`
	Type               string             `json:"type"`
	Origin             string             `json:"origin"`
	DoublingTime       float64            `json:"doubling_time"`
	Adherent           bool               `json:"adherent"`
	G1Duration         float64            `json:"g1_duration"`
	SDuration          float64            `json:"s_duration"`
	G2Duration         float64            `json:"g2_duration"`
	MDuration          float64            `json:"m_duration"`
	GlucoseConsumption float64            `json:"glucose_consumption"`
	OxygenConsumption  float64            `json:"oxygen_consumption"`
	LactateProduction  float64            `json:"lactate_production"`
	DrugSensitivity    map[string]float64 `json:"drug_sensitivity"`
	GrowthFactorDep    float64            `json:"growth_factor_dependence"`
	ContactInhibition  float64            `json:"contact_inhibition"`
	Stiffness          float64            `json:"stiffness"`
	MigrationSpeed     float64            `json:"migration_speed"`
	GeneExpression     map[string]float64 `json:"gene_expression"`
}

// LoadCellLines reads a JSON document of extra cell lines from r and registers
// each against the registry. It fails on JSON errors and on the first profile
// the registry rejects (duplicate name, invalid ranges), returning a summary
// of what was registered up to that point.
func LoadCellLines(reg *Registry, r io.Reader) (*LoadSummary, error) {
	if reg == nil {
		return nil, fmt.Errorf("LoadCellLines: registry is nil")
	}

	var payload cellLinesJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadCellLines: decode failed: %w", err)
	}

	summary := &LoadSummary{LineNames: make([]string, 0, len(payload.CellLines))}
	for _, js := range payload.CellLines {
		profile := js.toProfile()
		if err := reg.Register(profile); err != nil {
			return summary, fmt.Errorf("LoadCellLines: %w", err)
		}
		summary.LineNames = append(summary.LineNames, profile.Name)
	}
	return summary, nil
}

func (js cellLineJSON) toProfile() *model.CellLineProfile {
	sensitivity := make(map[model.DrugClass]float64, len(js.DrugSensitivity))
	for class, ic50 := range js.DrugSensitivity {
		sensitivity[model.DrugClass(class)] = ic50
	}
	genes := make(map[string]float64, len(js.GeneExpression))
	for gene, level := range js.GeneExpression {
		genes[gene] = level
	}
	return &model.CellLineProfile{
		Name:                   js.Name,
		Category:               model.LineCategory(js.Type),
		Origin:                 js.Origin,
		DoublingTime:           js.DoublingTime,
		Adherent:               js.Adherent,
		G1Duration:             js.G1Duration,
		SDuration:              js.SDuration,
		G2Duration:             js.G2Duration,
		MDuration:              js.MDuration,
		GlucoseConsumption:     js.GlucoseConsumption,
		OxygenConsumption:      js.OxygenConsumption,
		LactateProduction:      js.LactateProduction,
		DrugSensitivity:        sensitivity,
		GrowthFactorDependence: js.GrowthFactorDep,
		ContactInhibition:      js.ContactInhibition,
		Stiffness:              js.Stiffness,
		MigrationSpeed:         js.MigrationSpeed,
		GeneExpression:         genes,
	}
}
