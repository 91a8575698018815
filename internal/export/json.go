// Package export renders completed runs to files: JSON for downstream
// tooling and SVG for the report figures.
package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/kanuel/episim/internal/sim"
	"github.com/kanuel/episim/internal/storage"
)

type RunData struct {
	ID              string             `json:"id"`
	Mode            string             `json:"mode"`
	Population      float64            `json:"population"`
	InitialInfected float64            `json:"initial_infected"`
	Beta            float64            `json:"beta"`
	Gamma           float64            `json:"gamma"`
	Days            float64            `json:"days"`
	Summary         map[string]float64 `json:"summary"`
	Series          sim.Series         `json:"series"`
}

func runData(meta *storage.RunMetadata, series sim.Series) RunData {
	return RunData{
		ID:              meta.ID,
		Mode:            meta.Mode,
		Population:      meta.Population,
		InitialInfected: meta.InitialInfected,
		Beta:            meta.Beta,
		Gamma:           meta.Gamma,
		Days:            meta.Days,
		Summary:         meta.Summary,
		Series:          series,
	}
}

func WriteJSON(w io.Writer, meta *storage.RunMetadata, series sim.Series) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runData(meta, series))
}

func JSONToFile(path string, meta *storage.RunMetadata, series sim.Series) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, series)
}
