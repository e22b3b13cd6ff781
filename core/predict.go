package core

import (
	"fmt"
	"math"

	"github.com/biodynlabs/cellculture-simulator/kb"
	"github.com/biodynlabs/cellculture-simulator/model"
)

// DosePrediction is the closed-form dosing heuristic output. It reads the
// registry only and runs no simulation.
type DosePrediction struct {
	OptimalDose       float64 `json:"optimal_dose"`       // µM
	IC50              float64 `json:"ic50"`               // µM
	ExpectedViability float64 `json:"expected_viability"` // percent
	Recommendation    string  `json:"recommendation"`
}

// PredictOptimalDose recommends a starting screen concentration of 2×IC50,
// targeting roughly 50% kill. Unlisted drug classes fall back to the default
// IC50 of 10 µM.
func PredictOptimalDose(reg *kb.Registry, lineName string, class model.DrugClass) (DosePrediction, error) {
	line, err := reg.Get(lineName)
	if err != nil {
		return DosePrediction{}, err
	}

	ic50, ok := line.DrugSensitivity[class]
	if !ok {
		ic50 = fallbackIC50
	}
	optimal := ic50 * 2.0

	return DosePrediction{
		OptimalDose:       optimal,
		IC50:              ic50,
		ExpectedViability: 50.0,
		Recommendation:    fmt.Sprintf("Start at %.1f µM for initial screening", optimal),
	}, nil
}

// GrowthQuery are the inputs to the growth-rate heuristic.
type GrowthQuery struct {
	LineName     string
	Temperature  float64 // °C
	Treatment    model.Treatment
	InitialCells int
	Duration     float64 // hours
}

// GrowthPrediction is the closed-form growth heuristic output.
type GrowthPrediction struct {
	PredictedDoublingTime float64 `json:"predicted_doubling_time"` // hours
	EstimatedFinalCount   float64 `json:"estimated_final_count"`
}

// PredictGrowthRate estimates an effective doubling time from the line's
// baseline, a temperature penalty (×1.3 when more than 2 °C from 37), and
// competitive drug inhibition, then extrapolates exponential growth. It must
// not be confused with the simulation's recorded samples.
func PredictGrowthRate(reg *kb.Registry, q GrowthQuery) (GrowthPrediction, error) {
	line, err := reg.Get(q.LineName)
	if err != nil {
		return GrowthPrediction{}, err
	}

	doubling := line.DoublingTime
	if math.Abs(q.Temperature-37) > 2 {
		doubling *= 1.3
	}

	if q.Treatment.Type == model.TreatmentDrug {
		class := q.Treatment.DrugClass
		if class == "" {
			class = model.DrugTaxol
		}
		ic50, ok := line.DrugSensitivity[class]
		if !ok {
			ic50 = fallbackIC50
		}
		conc := q.Treatment.Concentration
		inhibition := conc / (conc + ic50)
		doubling *= 1 + inhibition*2
	}

	return GrowthPrediction{
		PredictedDoublingTime: doubling,
		EstimatedFinalCount:   float64(q.InitialCells) * math.Pow(2, q.Duration/doubling),
	}, nil
}
