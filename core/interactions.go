package core

import (
	"math"

	"github.com/biodynlabs/cellculture-simulator/model"
)

// Default interaction radii in µm.
const (
	ContactRadius   = 100.0
	ParacrineRadius = 150.0
)

// neighborSaturation is the live-neighbor count at which local density
// saturates to 1.
const neighborSaturation = 20.0

// ContactInhibition returns a growth multiplier in (0,1] from the local
// density of live neighbors within radius. A crowded cell of a strongly
// contact-inhibited line gets a multiplier near 1−coefficient, suppressing
// its G1 progression. O(population) per call.
func ContactInhibition(cells []*model.Cell, cell *model.Cell, radius float64) float64 {
	neighbors := 0
	for _, other := range cells {
		if other.ID == cell.ID || !other.Alive {
			continue
		}
		if distance(cell, other) < radius {
			neighbors++
		}
	}

	density := math.Min(1, float64(neighbors)/neighborSaturation)
	return 1 - cell.Line.ContactInhibition*density
}

// ParacrineSignal sums exp(−distance/50) over live cells within radius,
// normalized by 10 and capped at 1. It models a diffusible growth factor the
// cycle engine can consume via LocalEnv.GrowthFactor; the orchestrator
// currently substitutes the contact-inhibition multiplier for that role, so
// this stays an exported, unwired signal.
func ParacrineSignal(cells []*model.Cell, cell *model.Cell, radius float64) float64 {
	total := 0.0
	for _, other := range cells {
		if !other.Alive {
			continue
		}
		if dist := distance(cell, other); dist < radius {
			total += math.Exp(-dist / 50.0)
		}
	}
	return math.Min(1, total/10.0)
}

func distance(a, b *model.Cell) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
