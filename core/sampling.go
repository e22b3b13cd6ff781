package core

import (
	"gonum.org/v1/gonum/floats"

	"github.com/biodynlabs/cellculture-simulator/model"
)

// collectSample records one aggregate data point: counts, viability, mean
// health and ATP over viable cells, a complete phase histogram, and the grid
// field means. Viability is exactly 100·viable/total at sample time.
func (s *Simulation) collectSample() {
	phases := make(map[model.Phase]int, len(model.Phases))
	for _, p := range model.Phases {
		phases[p] = 0
	}

	var healths, atps []float64
	for _, c := range s.cells {
		if !c.Alive {
			continue
		}
		phases[c.Phase]++
		healths = append(healths, c.Health)
		atps = append(atps, c.ATP)
	}

	total := len(s.cells)
	viable := len(healths)

	sample := model.Sample{
		Time:    s.time,
		Total:   total,
		Viable:  viable,
		Phases:  phases,
		Glucose: s.env.MeanGlucose(),
		Oxygen:  s.env.MeanOxygen(),
		Lactate: s.env.MeanLactate(),
	}
	if total > 0 {
		sample.Viability = 100 * float64(viable) / float64(total)
	}
	if viable > 0 {
		sample.AvgHealth = floats.Sum(healths) / float64(viable)
		sample.AvgATP = floats.Sum(atps) / float64(viable)
	}

	s.samples = append(s.samples, sample)
}
