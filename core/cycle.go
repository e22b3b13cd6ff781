package core

import "github.com/biodynlabs/cellculture-simulator/model"

// Cycle checkpoint thresholds.
const (
	metabolicATPFloor    = 0.3
	metabolicOxygenFloor = 0.2
	dnaDamageHealthFloor = 0.5

	g1sHealthGate = 0.7
	g1sATPGate    = 0.6
	g2mHealthGate = 0.6
)

// AdvanceCycle progresses a cell through its cycle by one step and reports
// whether the cell completed mitosis and is ready to divide. It is a pure
// transition function over the cell: checkpoints are evaluated in a fixed
// order and at most one phase transition happens per call.
//
// Order of evaluation:
//  1. dead or arrested (G0) cells never progress;
//  2. metabolic checkpoint: ATP < 0.3 or oxygen < 0.2 arrests to G0
//     immediately, consuming no time;
//  3. DNA-damage checkpoint: health < 0.5 marks the cell apoptotic;
//  4. progress accrues, scaled by growth signaling in G1 only;
//  5. on reaching the phase duration, progress resets to 0 and the phase
//     transitions, gated at G1→S and G2→M. Only M→G1 signals division.
func AdvanceCycle(c *model.Cell, dt float64, env LocalEnv) bool {
	if !c.Alive || c.Phase == model.PhaseG0 {
		return false
	}

	if c.ATP < metabolicATPFloor || c.OxygenLevel < metabolicOxygenFloor {
		c.Phase = model.PhaseG0
		return false
	}

	if c.Health < dnaDamageHealthFloor {
		c.Apoptotic = true
		return false
	}

	effective := dt
	if c.Phase == model.PhaseG1 {
		gfDep := c.Line.GrowthFactorDependence
		factor := c.GrowthSignals*(1-gfDep) + c.GrowthSignals*gfDep*env.GrowthFactor
		effective = dt * factor
	}

	c.PhaseProgress += effective

	if c.PhaseProgress < c.Line.PhaseDuration(c.Phase) {
		return false
	}
	c.PhaseProgress = 0

	switch c.Phase {
	case model.PhaseG1:
		if c.Health > g1sHealthGate && c.ATP > g1sATPGate {
			c.Phase = model.PhaseS
		} else {
			c.Phase = model.PhaseG0
		}
	case model.PhaseS:
		c.Phase = model.PhaseG2
	case model.PhaseG2:
		if c.Health > g2mHealthGate {
			c.Phase = model.PhaseM
		} else {
			c.Phase = model.PhaseG0
		}
	case model.PhaseM:
		c.Phase = model.PhaseG1
		return true
	}
	return false
}
