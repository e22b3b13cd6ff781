package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/biodynlabs/cellculture-simulator/core"
	"github.com/biodynlabs/cellculture-simulator/internal/logging"
	"github.com/biodynlabs/cellculture-simulator/kb"
	"github.com/biodynlabs/cellculture-simulator/model"
)

func main() {
	lineName := flag.String("line", "HeLa", "cell line to culture")
	cells := flag.Int("cells", 100, "initial cell count")
	duration := flag.Float64("duration", 72, "simulated duration in hours")
	dt := flag.Float64("dt", 0.1, "time step in hours")
	size := flag.Float64("size", 1000, "culture dish edge in µm")
	drug := flag.String("drug", "", "drug class to apply (taxol, cisplatin, doxorubicin, gemcitabine, targeted)")
	concentration := flag.Float64("concentration", 0, "drug concentration in µM")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	cfg := core.Config{
		CellLine:     *lineName,
		InitialCells: *cells,
		CultureSize:  *size,
		Seed:         *seed,
	}
	if *drug != "" && *concentration > 0 {
		cfg.Treatment = model.Treatment{
			Type:          model.TreatmentDrug,
			DrugClass:     model.DrugClass(*drug),
			Concentration: *concentration,
		}
	}

	sim, err := core.NewSimulation(kb.NewBuiltinRegistry(), cfg, core.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	samples, err := sim.Run(ctx, *duration, *dt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simulation error: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(samples); err != nil {
		fmt.Fprintf(os.Stderr, "encode samples: %v\n", err)
		os.Exit(1)
	}
}
