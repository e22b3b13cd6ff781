package model

// TreatmentDrug is the treatment type that activates a drug model. Other
// treatment types (or an absent treatment) run the culture untreated.
const TreatmentDrug = "drug"

// Treatment describes the optional exposure applied for the whole run. A drug
// model is created only when Type == TreatmentDrug and Concentration > 0.
type Treatment struct {
	Type          string    `json:"type"`
	DrugClass     DrugClass `json:"drugClass"`
	Concentration float64   `json:"concentration"` // media concentration, µM
}
