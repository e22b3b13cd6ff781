package kb

import (
	"errors"
	"strings"
	"testing"

	"github.com/biodynlabs/cellculture-simulator/model"
)

const choLineJSON = `{
  "cell_lines": [
    {
      "name": "CHO-K1",
      "type": "Normal",
      "origin": "Chinese hamster ovary",
      "doubling_time": 18,
      "adherent": true,
      "g1_duration": 7,
      "s_duration": 6,
      "g2_duration": 3,
      "m_duration": 2,
      "glucose_consumption": 1.6,
      "oxygen_consumption": 1.2,
      "lactate_production": 1.8,
      "drug_sensitivity": {"taxol": 18.0, "cisplatin": 28.0},
      "growth_factor_dependence": 0.4,
      "contact_inhibition": 0.6,
      "stiffness": 500,
      "migration_speed": 10,
      "gene_expression": {"MYC": 1.2, "TP53": 1.0}
    }
  ]
}`

func TestLoadCellLines(t *testing.T) {
	reg := NewBuiltinRegistry()

	summary, err := LoadCellLines(reg, strings.NewReader(choLineJSON))
	if err != nil {
		t.Fatalf("LoadCellLines: %v", err)
	}
	if len(summary.LineNames) != 1 || summary.LineNames[0] != "CHO-K1" {
		t.Fatalf("summary.LineNames = %v, want [CHO-K1]", summary.LineNames)
	}

	p, err := reg.Get("CHO-K1")
	if err != nil {
		t.Fatalf("Get(CHO-K1): %v", err)
	}
	if p.DrugSensitivity[model.DrugTaxol] != 18.0 {
		t.Errorf("taxol IC50 = %v, want 18.0", p.DrugSensitivity[model.DrugTaxol])
	}
	if p.Category != model.LineNormal {
		t.Errorf("Category = %q, want %q", p.Category, model.LineNormal)
	}
}

func TestLoadCellLinesRejectsDuplicate(t *testing.T) {
	reg := NewBuiltinRegistry()

	doc := `{"cell_lines": [{"name": "HeLa", "g1_duration": 10}]}`
	if _, err := LoadCellLines(reg, strings.NewReader(doc)); !errors.Is(err, ErrLineExists) {
		t.Fatalf("LoadCellLines duplicate: err = %v, want ErrLineExists", err)
	}
}

func TestLoadCellLinesBadJSON(t *testing.T) {
	reg := NewRegistry()

	if _, err := LoadCellLines(reg, strings.NewReader("{not json")); err == nil {
		t.Fatal("LoadCellLines: expected decode error, got nil")
	}
}
