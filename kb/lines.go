package kb

import "github.com/biodynlabs/cellculture-simulator/model"

// builtinLines returns the built-in cell line database. Values are kept in
// one place so tests and the loader can cross-check against them.
func builtinLines() []*model.CellLineProfile {
	return []*model.CellLineProfile{
		{
			Name:               "HeLa",
			Category:           model.LineCancer,
			Origin:             "Cervical carcinoma",
			DoublingTime:       24,
			Adherent:           true,
			G1Duration:         10,
			SDuration:          8,
			G2Duration:         4,
			MDuration:          2,
			GlucoseConsumption: 2.5,
			OxygenConsumption:  1.8,
			LactateProduction:  3.2,
			DrugSensitivity: map[model.DrugClass]float64{
				model.DrugTaxol:       8.5,
				model.DrugCisplatin:   12.3,
				model.DrugDoxorubicin: 6.7,
				model.DrugGemcitabine: 15.2,
				model.DrugTargeted:    20.0,
			},
			GrowthFactorDependence: 0.6,
			ContactInhibition:      0.2,
			Stiffness:              1200,
			MigrationSpeed:         15,
			GeneExpression: map[string]float64{
				"MYC":  2.5,
				"TP53": 0.0, // null
				"KRAS": 1.0,
				"EGFR": 1.8,
				"BCL2": 2.1,
			},
		},
		{
			Name:               "MCF-7",
			Category:           model.LineCancer,
			Origin:             "Breast adenocarcinoma",
			DoublingTime:       29,
			Adherent:           true,
			G1Duration:         14,
			SDuration:          9,
			G2Duration:         4,
			MDuration:          2,
			GlucoseConsumption: 2.1,
			OxygenConsumption:  1.5,
			LactateProduction:  2.8,
			DrugSensitivity: map[model.DrugClass]float64{
				model.DrugTaxol:       6.2,
				model.DrugCisplatin:   18.5,
				model.DrugDoxorubicin: 4.3,
				model.DrugGemcitabine: 22.1,
				model.DrugTargeted:    8.5, // tamoxifen-like
			},
			GrowthFactorDependence: 0.8,
			ContactInhibition:      0.5,
			Stiffness:              800,
			MigrationSpeed:         8,
			GeneExpression: map[string]float64{
				"MYC":  1.8,
				"TP53": 1.0, // wild-type
				"KRAS": 1.0,
				"EGFR": 1.2,
				"ESR1": 3.5, // ER+
			},
		},
		{
			Name:               "A549",
			Category:           model.LineCancer,
			Origin:             "Lung carcinoma",
			DoublingTime:       22,
			Adherent:           true,
			G1Duration:         9,
			SDuration:          7,
			G2Duration:         4,
			MDuration:          2,
			GlucoseConsumption: 2.8,
			OxygenConsumption:  2.1,
			LactateProduction:  3.5,
			DrugSensitivity: map[model.DrugClass]float64{
				model.DrugTaxol:       10.5,
				model.DrugCisplatin:   15.8,
				model.DrugDoxorubicin: 8.9,
				model.DrugGemcitabine: 12.3,
				model.DrugTargeted:    25.0, // EGFR inhibitor
			},
			GrowthFactorDependence: 0.7,
			ContactInhibition:      0.3,
			Stiffness:              1400,
			MigrationSpeed:         20,
			GeneExpression: map[string]float64{
				"MYC":  2.1,
				"TP53": 1.0,
				"KRAS": 2.8, // KRAS mutant
				"EGFR": 2.5,
				"BCL2": 1.9,
			},
		},
		{
			Name:               "HEK293",
			Category:           model.LineNormal,
			Origin:             "Embryonic kidney",
			DoublingTime:       20,
			Adherent:           true,
			G1Duration:         8,
			SDuration:          7,
			G2Duration:         3,
			MDuration:          2,
			GlucoseConsumption: 1.8,
			OxygenConsumption:  1.3,
			LactateProduction:  2.0,
			DrugSensitivity: map[model.DrugClass]float64{
				model.DrugTaxol:       15.0,
				model.DrugCisplatin:   25.0,
				model.DrugDoxorubicin: 18.0,
				model.DrugGemcitabine: 30.0,
				model.DrugTargeted:    50.0,
			},
			GrowthFactorDependence: 0.5,
			ContactInhibition:      0.7,
			Stiffness:              600,
			MigrationSpeed:         12,
			GeneExpression: map[string]float64{
				"MYC":  1.5,
				"TP53": 1.0,
				"KRAS": 1.0,
				"EGFR": 1.0,
				"BCL2": 1.0,
			},
		},
		{
			Name:               "Jurkat",
			Category:           model.LineCancer,
			Origin:             "T-cell leukemia",
			DoublingTime:       48,
			Adherent:           false,
			G1Duration:         20,
			SDuration:          15,
			G2Duration:         10,
			MDuration:          3,
			GlucoseConsumption: 3.2,
			OxygenConsumption:  2.5,
			LactateProduction:  4.0,
			DrugSensitivity: map[model.DrugClass]float64{
				model.DrugTaxol:       12.0,
				model.DrugCisplatin:   8.5,
				model.DrugDoxorubicin: 5.2,
				model.DrugGemcitabine: 18.0,
				model.DrugTargeted:    15.0,
			},
			GrowthFactorDependence: 0.9,
			ContactInhibition:      0.1,
			Stiffness:              200,
			MigrationSpeed:         25,
			GeneExpression: map[string]float64{
				"MYC":  3.2,
				"TP53": 0.5, // defective
				"KRAS": 1.0,
				"EGFR": 0.8,
				"BCL2": 2.8,
			},
		},
	}
}
