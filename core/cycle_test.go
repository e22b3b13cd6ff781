package core

import (
	"testing"

	"github.com/biodynlabs/cellculture-simulator/model"
)

func healthyCell(t *testing.T, phase model.Phase) *model.Cell {
	t.Helper()
	return &model.Cell{
		ID:              1,
		Line:            testLine(t, "HeLa"),
		Phase:           phase,
		Alive:           true,
		Health:          1.0,
		ATP:             1.0,
		GlucoseInternal: 1.0,
		OxygenLevel:     1.0,
		GrowthSignals:   1.0,
	}
}

func ampleEnv() LocalEnv {
	return LocalEnv{Glucose: 1, Oxygen: 1, Lactate: 0, PH: 7.4, GrowthFactor: 1}
}

func TestDeadCellNeverProgresses(t *testing.T) {
	c := healthyCell(t, model.PhaseG1)
	c.Alive = false

	if AdvanceCycle(c, 1, ampleEnv()) {
		t.Fatal("dead cell signalled division")
	}
	if c.PhaseProgress != 0 {
		t.Fatalf("dead cell accrued progress %v", c.PhaseProgress)
	}
}

func TestG0IsTerminal(t *testing.T) {
	c := healthyCell(t, model.PhaseG0)

	for i := 0; i < 100; i++ {
		if AdvanceCycle(c, 10, ampleEnv()) {
			t.Fatal("arrested cell signalled division")
		}
	}
	if c.Phase != model.PhaseG0 {
		t.Fatalf("phase = %v, want G0 to be terminal", c.Phase)
	}
}

func TestMetabolicCheckpointArrestsImmediately(t *testing.T) {
	for name, mutate := range map[string]func(*model.Cell){
		"low ATP":    func(c *model.Cell) { c.ATP = 0.29 },
		"low oxygen": func(c *model.Cell) { c.OxygenLevel = 0.19 },
	} {
		for _, phase := range []model.Phase{model.PhaseG1, model.PhaseS, model.PhaseG2, model.PhaseM} {
			c := healthyCell(t, phase)
			c.PhaseProgress = 1.5
			mutate(c)

			if AdvanceCycle(c, 0.5, ampleEnv()) {
				t.Fatalf("%s in %v: signalled division", name, phase)
			}
			if c.Phase != model.PhaseG0 {
				t.Fatalf("%s in %v: phase = %v, want G0", name, phase, c.Phase)
			}
			// Arrest consumes no time.
			if c.PhaseProgress != 1.5 {
				t.Fatalf("%s: progress = %v, want unchanged 1.5", name, c.PhaseProgress)
			}
		}
	}
}

func TestDNADamageCheckpointMarksApoptotic(t *testing.T) {
	c := healthyCell(t, model.PhaseS)
	c.Health = 0.49

	if AdvanceCycle(c, 0.5, ampleEnv()) {
		t.Fatal("damaged cell signalled division")
	}
	if !c.Apoptotic {
		t.Fatal("damaged cell not marked apoptotic")
	}
	if c.Phase != model.PhaseS {
		t.Fatalf("phase = %v, want unchanged S (apoptosis, not arrest)", c.Phase)
	}
}

func TestPhaseProgressAccruesAndResets(t *testing.T) {
	c := healthyCell(t, model.PhaseS)

	prev := 0.0
	// S lasts 8h for HeLa; progress is monotone within the phase.
	for i := 0; i < 15; i++ {
		AdvanceCycle(c, 0.5, ampleEnv())
		if c.PhaseProgress < prev && c.Phase == model.PhaseS {
			t.Fatalf("progress decreased within a phase: %v -> %v", prev, c.PhaseProgress)
		}
		prev = c.PhaseProgress
	}

	// The 16th half-hour completes the phase.
	if AdvanceCycle(c, 0.5, ampleEnv()) {
		t.Fatal("S completion signalled division")
	}
	if c.Phase != model.PhaseG2 {
		t.Fatalf("phase = %v, want G2 after S completes", c.Phase)
	}
	if c.PhaseProgress != 0 {
		t.Fatalf("progress = %v, want exactly 0 after transition", c.PhaseProgress)
	}
}

func TestG1SCheckpointGates(t *testing.T) {
	// Healthy, energetic cell passes into S.
	pass := healthyCell(t, model.PhaseG1)
	pass.PhaseProgress = pass.Line.G1Duration
	AdvanceCycle(pass, 0.5, ampleEnv())
	if pass.Phase != model.PhaseS {
		t.Fatalf("phase = %v, want S", pass.Phase)
	}

	// Low ATP at the boundary (but above the metabolic floor) arrests.
	arrest := healthyCell(t, model.PhaseG1)
	arrest.ATP = 0.55
	arrest.PhaseProgress = arrest.Line.G1Duration
	AdvanceCycle(arrest, 0.5, ampleEnv())
	if arrest.Phase != model.PhaseG0 {
		t.Fatalf("phase = %v, want G0 when ATP <= 0.6 at G1/S", arrest.Phase)
	}
}

func TestG2MCheckpointGates(t *testing.T) {
	pass := healthyCell(t, model.PhaseG2)
	pass.PhaseProgress = pass.Line.G2Duration
	AdvanceCycle(pass, 0.5, ampleEnv())
	if pass.Phase != model.PhaseM {
		t.Fatalf("phase = %v, want M", pass.Phase)
	}

	arrest := healthyCell(t, model.PhaseG2)
	arrest.Health = 0.55
	arrest.PhaseProgress = arrest.Line.G2Duration
	AdvanceCycle(arrest, 0.5, ampleEnv())
	if arrest.Phase != model.PhaseG0 {
		t.Fatalf("phase = %v, want G0 when health <= 0.6 at G2/M", arrest.Phase)
	}
}

func TestMitosisSignalsDivision(t *testing.T) {
	c := healthyCell(t, model.PhaseM)
	c.PhaseProgress = c.Line.MDuration - 0.25

	if !AdvanceCycle(c, 0.5, ampleEnv()) {
		t.Fatal("completed mitosis did not signal division")
	}
	if c.Phase != model.PhaseG1 {
		t.Fatalf("phase = %v, want G1 after mitosis", c.Phase)
	}
	if c.PhaseProgress != 0 {
		t.Fatalf("progress = %v, want 0 after mitosis", c.PhaseProgress)
	}
}

func TestG1ScalingByGrowthSignals(t *testing.T) {
	// Fully suppressed growth signals stall G1 entirely for a line with
	// gfDep < 1: factor = signals·(1−dep) + signals·dep·gf = 0 when
	// signals are 0.
	stalled := healthyCell(t, model.PhaseG1)
	stalled.GrowthSignals = 0

	AdvanceCycle(stalled, 1, ampleEnv())
	if stalled.PhaseProgress != 0 {
		t.Fatalf("progress = %v, want 0 with zero growth signals", stalled.PhaseProgress)
	}

	// Other phases ignore growth signals.
	sPhase := healthyCell(t, model.PhaseS)
	sPhase.GrowthSignals = 0
	AdvanceCycle(sPhase, 1, ampleEnv())
	if sPhase.PhaseProgress != 1 {
		t.Fatalf("S progress = %v, want unscaled 1", sPhase.PhaseProgress)
	}
}

func TestOxygenStarvationArrestsG1Cell(t *testing.T) {
	// A G1 cell whose local oxygen collapses arrests on the next advance
	// and never signals division afterwards.
	c := healthyCell(t, model.PhaseG1)
	c.OxygenLevel = 0

	if AdvanceCycle(c, 0.5, ampleEnv()) {
		t.Fatal("starved cell signalled division")
	}
	if c.Phase != model.PhaseG0 {
		t.Fatalf("phase = %v, want G0 within one advance", c.Phase)
	}

	// Even restored oxygen cannot re-enter the cycle in this model.
	c.OxygenLevel = 1
	for i := 0; i < 200; i++ {
		if AdvanceCycle(c, 1, ampleEnv()) {
			t.Fatal("arrested cell signalled division after recovery")
		}
	}
}
