package model

// Phase is a discrete cell cycle stage. G0 is an arrested state: once a cell
// enters G0 it never progresses again in this model.
type Phase string

const (
	PhaseG1 Phase = "G1"
	PhaseS  Phase = "S"
	PhaseG2 Phase = "G2"
	PhaseM  Phase = "M"
	PhaseG0 Phase = "G0"
)

// Phases lists every cycle phase in canonical order. Sampling uses this to
// build complete phase histograms even when a phase has zero cells.
var Phases = []Phase{PhaseG1, PhaseS, PhaseG2, PhaseM, PhaseG0}
