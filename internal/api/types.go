package api

import "github.com/biodynlabs/cellculture-simulator/model"

// Request/response shapes are kept unexported so the wire format can evolve
// without leaking into the engine packages. Field names match the original
// frontend contract.

type experimentParams struct {
	InitialCells int     `json:"initialCells"`
	Duration     float64 `json:"duration"`     // hours
	TimeInterval float64 `json:"timeInterval"` // dt, hours
}

type environmentParams struct {
	Temperature float64 `json:"temperature"` // °C
}

type simulateRequest struct {
	CellLineName     string             `json:"cellLineName"`
	CultureSize      float64            `json:"cultureSize"` // µm
	Seed             int64              `json:"seed"`
	ExperimentParams experimentParams   `json:"experimentParams"`
	Treatment        model.Treatment    `json:"treatment"`
	Environment      *environmentParams `json:"environment"`
}

type simulateResponse struct {
	Success bool           `json:"success"`
	RunID   string         `json:"runId"`
	Data    []model.Sample `json:"data"`
}

type doseRequest struct {
	CellLineName string `json:"cellLineName"`
	DrugClass    string `json:"drugClass"`
}

type healthResponse struct {
	Status   string   `json:"status"`
	Version  string   `json:"version"`
	Features []string `json:"features"`
}

type errorResponse struct {
	Error string `json:"error"`
}
