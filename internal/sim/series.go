package sim

// Record is one row of a simulation time series.
type Record struct {
	Day         float64 `json:"day"`
	Susceptible float64 `json:"susceptible"`
	Infected    float64 `json:"infected"`
	Recovered   float64 `json:"recovered"`
	Total       float64 `json:"total"`
}

// Series is an ordered run table. Index 0 is the initial condition;
// index n is the state after n steps (discrete) or at sample time t_n
// (continuous). A Series is built once per run and not mutated after.
type Series []Record

func (s Series) Last() Record {
	if len(s) == 0 {
		return Record{}
	}
	return s[len(s)-1]
}

func (s Series) Days() []float64 {
	return s.column(func(r Record) float64 { return r.Day })
}

func (s Series) SusceptibleSeries() []float64 {
	return s.column(func(r Record) float64 { return r.Susceptible })
}

func (s Series) InfectedSeries() []float64 {
	return s.column(func(r Record) float64 { return r.Infected })
}

func (s Series) RecoveredSeries() []float64 {
	return s.column(func(r Record) float64 { return r.Recovered })
}

func (s Series) TotalSeries() []float64 {
	return s.column(func(r Record) float64 { return r.Total })
}

func (s Series) column(get func(Record) float64) []float64 {
	out := make([]float64, len(s))
	for i, r := range s {
		out[i] = get(r)
	}
	return out
}
