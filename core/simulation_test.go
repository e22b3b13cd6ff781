package core

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/biodynlabs/cellculture-simulator/kb"
	"github.com/biodynlabs/cellculture-simulator/model"
)

func TestNewSimulationUnknownCellLine(t *testing.T) {
	reg := kb.NewBuiltinRegistry()

	_, err := NewSimulation(reg, Config{CellLine: "NIH-3T3", InitialCells: 10})
	if !errors.Is(err, ErrUnknownCellLine) {
		t.Fatalf("err = %v, want ErrUnknownCellLine", err)
	}
}

func TestNewSimulationValidatesParameters(t *testing.T) {
	reg := kb.NewBuiltinRegistry()

	cases := []Config{
		{CellLine: "HeLa", InitialCells: 0},
		{CellLine: "HeLa", InitialCells: -5},
		{CellLine: "HeLa", InitialCells: 10, CultureSize: -100},
	}
	for _, cfg := range cases {
		if _, err := NewSimulation(reg, cfg); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("NewSimulation(%+v): err = %v, want ErrInvalidParameter", cfg, err)
		}
	}
}

func TestRunValidatesDurationAndDT(t *testing.T) {
	reg := kb.NewBuiltinRegistry()
	sim, err := NewSimulation(reg, Config{CellLine: "HeLa", InitialCells: 5})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}

	for _, args := range [][2]float64{{0, 0.5}, {-24, 0.5}, {24, 0}, {24, -0.5}} {
		if _, err := sim.Run(context.Background(), args[0], args[1]); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("Run(%v, %v): err = %v, want ErrInvalidParameter", args[0], args[1], err)
		}
	}
}

func TestSingleHeLaCellDividesWithin24Hours(t *testing.T) {
	reg := kb.NewBuiltinRegistry()
	sim, err := NewSimulation(reg, Config{CellLine: "HeLa", InitialCells: 1, Seed: 42})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}

	samples, err := sim.Run(context.Background(), 24, 0.5)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// One healthy cell in ample nutrients completes G1+S+G2+M (24h total,
	// minus its random initial G1 progress) inside 24 simulated hours.
	if sim.Population() < 2 {
		t.Fatalf("population = %d after 24h, want at least one completed division", sim.Population())
	}

	// Daughters share the parent's profile by reference.
	line := sim.CellLine()
	for _, c := range sim.cells {
		if c.Line != line {
			t.Fatalf("cell %d carries a copied profile", c.ID)
		}
	}

	// Sampling every 6 simulated hours: steps 0, 12, 24, 36.
	wantTimes := []float64{0, 6, 12, 18}
	if len(samples) != len(wantTimes) {
		t.Fatalf("got %d samples, want %d", len(samples), len(wantTimes))
	}
	for i, want := range wantTimes {
		if samples[i].Time != want {
			t.Errorf("samples[%d].Time = %v, want %v", i, samples[i].Time, want)
		}
	}
}

func TestPopulationNeverExceedsCap(t *testing.T) {
	reg := kb.NewBuiltinRegistry()
	sim, err := NewSimulation(reg, Config{CellLine: "HeLa", InitialCells: PopulationCap, Seed: 1})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}

	// Make every cell division-eligible on the next step.
	for _, c := range sim.cells {
		c.Phase = model.PhaseM
		c.PhaseProgress = c.Line.MDuration - 0.1
		c.Health = 1.0
		c.ATP = 1.0
		c.OxygenLevel = 1.0
		c.GlucoseInternal = 1.0
	}

	samples, err := sim.Run(context.Background(), 0.5, 0.5)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if sim.Population() != PopulationCap {
		t.Fatalf("population = %d after one step at the cap, want exactly %d", sim.Population(), PopulationCap)
	}
	if samples[0].Total != PopulationCap {
		t.Fatalf("sampled total = %d, want %d", samples[0].Total, PopulationCap)
	}
}

func TestRunsAreDeterministicPerSeed(t *testing.T) {
	reg := kb.NewBuiltinRegistry()
	cfg := Config{CellLine: "A549", InitialCells: 25, Seed: 7,
		Treatment: model.Treatment{Type: model.TreatmentDrug, DrugClass: model.DrugTaxol, Concentration: 5}}

	run := func() []model.Sample {
		sim, err := NewSimulation(reg, cfg)
		if err != nil {
			t.Fatalf("NewSimulation: %v", err)
		}
		samples, err := sim.Run(context.Background(), 18, 0.5)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return samples
	}

	if first, second := run(), run(); !reflect.DeepEqual(first, second) {
		t.Fatalf("equal seeds diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestDrugModelCreation(t *testing.T) {
	reg := kb.NewBuiltinRegistry()

	// No treatment: no drug models.
	plain, err := NewSimulation(reg, Config{CellLine: "HeLa", InitialCells: 5})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	if len(plain.drugs) != 0 {
		t.Fatalf("untreated run has %d drug models, want 0", len(plain.drugs))
	}

	// Zero concentration is not a treatment.
	zero, err := NewSimulation(reg, Config{CellLine: "HeLa", InitialCells: 5,
		Treatment: model.Treatment{Type: model.TreatmentDrug, DrugClass: model.DrugTaxol, Concentration: 0}})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	if len(zero.drugs) != 0 {
		t.Fatalf("zero-concentration run has %d drug models, want 0", len(zero.drugs))
	}

	// IC50 resolves from the line's sensitivity table.
	treated, err := NewSimulation(reg, Config{CellLine: "HeLa", InitialCells: 5,
		Treatment: model.Treatment{Type: model.TreatmentDrug, DrugClass: model.DrugTaxol, Concentration: 10}})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	if len(treated.drugs) != 1 || treated.drugs[0].IC50 != 8.5 {
		t.Fatalf("treated run drugs = %+v, want one taxol model with IC50 8.5", treated.drugs)
	}

	// Unlisted classes fall back to the default IC50.
	unlisted, err := NewSimulation(reg, Config{CellLine: "HeLa", InitialCells: 5,
		Treatment: model.Treatment{Type: model.TreatmentDrug, DrugClass: "experimental", Concentration: 10}})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	if len(unlisted.drugs) != 1 || unlisted.drugs[0].IC50 != fallbackIC50 {
		t.Fatalf("unlisted class drugs = %+v, want fallback IC50 %v", unlisted.drugs, fallbackIC50)
	}
}

func TestViabilityPercentageExact(t *testing.T) {
	reg := kb.NewBuiltinRegistry()
	sim, err := NewSimulation(reg, Config{CellLine: "HeLa", InitialCells: 8, Seed: 3})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}

	// Kill three of eight cells, then sample.
	for _, c := range sim.cells[:3] {
		c.Alive = false
		c.Apoptotic = true
	}
	sim.collectSample()

	got := sim.samples[0]
	if got.Total != 8 || got.Viable != 5 {
		t.Fatalf("sample counts = %d/%d, want 5/8", got.Viable, got.Total)
	}
	if want := 100 * float64(5) / float64(8); got.Viability != want {
		t.Fatalf("viability = %v, want exactly %v", got.Viability, want)
	}
}

func TestDeadCellsGoThroughClearance(t *testing.T) {
	reg := kb.NewBuiltinRegistry()
	sim, err := NewSimulation(reg, Config{CellLine: "HeLa", InitialCells: 50, Seed: 11})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}

	// Crash everyone's health below the death threshold.
	for _, c := range sim.cells {
		c.Health = 0.05
	}
	samples, err := sim.Run(context.Background(), 0.5, 0.5)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if samples[0].Viable != 0 {
		t.Fatalf("viable = %d, want 0 after lethal health", samples[0].Viable)
	}
	// Clearance is probabilistic (p = 0.2 per step), so dead cells linger
	// rather than vanish at once.
	if sim.Population() == 0 {
		t.Fatal("population cleared instantly; clearance should be gradual")
	}
	if sim.Population() > 50 {
		t.Fatalf("population = %d, want <= 50", sim.Population())
	}
	for _, c := range sim.cells {
		if c.Alive {
			t.Fatalf("cell %d still alive with health %v", c.ID, c.Health)
		}
		if !c.Apoptotic {
			t.Fatalf("cell %d not marked apoptotic", c.ID)
		}
	}
}

func TestCellIDsAreMonotonic(t *testing.T) {
	reg := kb.NewBuiltinRegistry()
	sim, err := NewSimulation(reg, Config{CellLine: "HEK293", InitialCells: 30, Seed: 5})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	if _, err := sim.Run(context.Background(), 30, 0.5); err != nil {
		t.Fatalf("Run: %v", err)
	}

	seen := make(map[int]bool, len(sim.cells))
	for _, c := range sim.cells {
		if seen[c.ID] {
			t.Fatalf("duplicate cell ID %d", c.ID)
		}
		seen[c.ID] = true
	}
}
