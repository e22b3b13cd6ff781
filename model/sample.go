package model

// Sample is one aggregate data point recorded during a run. Viability is a
// percentage computed as 100·Viable/Total at sample time; Total counts every
// cell still present in the population, dead-but-uncleared cells included.
type Sample struct {
	Time      float64       `json:"time"` // simulated hours
	Total     int           `json:"total"`
	Viable    int           `json:"viable"`
	Viability float64       `json:"viability"`
	AvgHealth float64       `json:"avg_health"`
	AvgATP    float64       `json:"avg_atp"`
	Phases    map[Phase]int `json:"phases"`

	// Spatial field means over the whole grid.
	Glucose float64 `json:"glucose"`
	Oxygen  float64 `json:"oxygen"`
	Lactate float64 `json:"lactate"`
}
