package core

import (
	"math"

	"github.com/biodynlabs/cellculture-simulator/model"
)

// Default PK/PD constants. The media concentration and IC50 vary per run and
// per cell line; the rest are treated as compound-class invariants.
const (
	defaultPermeability    = 0.1  // membrane permeability, 1/hr
	defaultDegradationRate = 0.01 // intracellular degradation, 1/hr
	defaultEffluxRate      = 0.05 // efflux pump activity, 1/hr
	defaultHillCoefficient = 1.5
	defaultMaxEffect       = 0.95 // maximum kill fraction
)

// healthDamping converts a Hill-equation kill fraction into a per-hour health
// decay rate, so a saturating dose degrades health over several steps rather
// than in a single lethal jump.
const healthDamping = 0.1

// DrugModel holds the PK/PD state for one active treatment. It is immutable
// after construction; the only thing it mutates is the intracellular
// concentration entry it owns on each cell.
type DrugModel struct {
	Class              model.DrugClass
	MediaConcentration float64 // constant for the run, µM
	IC50               float64 // µM

	Permeability    float64
	DegradationRate float64
	EffluxRate      float64
	HillCoefficient float64
	MaxEffect       float64
}

// NewDrugModel constructs a drug model with the default PK/PD constants.
func NewDrugModel(class model.DrugClass, concentration, ic50 float64) *DrugModel {
	return &DrugModel{
		Class:              class,
		MediaConcentration: concentration,
		IC50:               ic50,
		Permeability:       defaultPermeability,
		DegradationRate:    defaultDegradationRate,
		EffluxRate:         defaultEffluxRate,
		HillCoefficient:    defaultHillCoefficient,
		MaxEffect:          defaultMaxEffect,
	}
}

// UpdateIntracellular advances the cell's intracellular concentration for
// this drug by one step: uptake along the media gradient minus degradation
// and efflux, floored at zero. The stored entry is replaced and the new value
// returned.
func (d *DrugModel) UpdateIntracellular(c *model.Cell, dt float64) float64 {
	if c.DrugConcentrations == nil {
		c.DrugConcentrations = make(map[model.DrugClass]float64, 1)
	}
	current := c.DrugConcentrations[d.Class]

	uptake := d.Permeability * (d.MediaConcentration - current) * dt
	degradation := d.DegradationRate * current * dt
	efflux := d.EffluxRate * current * dt

	next := current + uptake - degradation - efflux
	if next < 0 {
		next = 0
	}
	c.DrugConcentrations[d.Class] = next
	return next
}

// Effect returns the Hill-equation kill fraction for an intracellular
// concentration. At the IC50 it is exactly MaxEffect/2.
func (d *DrugModel) Effect(concentration float64) float64 {
	if concentration <= 0 {
		return 0
	}
	ch := math.Pow(concentration, d.HillCoefficient)
	return d.MaxEffect * ch / (math.Pow(d.IC50, d.HillCoefficient) + ch)
}

// ApplyTo runs one PK/PD step against a cell: update the intracellular
// concentration, then attenuate health by the rate-scaled effect.
func (d *DrugModel) ApplyTo(c *model.Cell, dt float64) {
	intracellular := d.UpdateIntracellular(c, dt)
	effect := d.Effect(intracellular)
	c.Health *= 1 - effect*dt*healthDamping
}
