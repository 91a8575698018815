package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kanuel/episim/internal/sim"
)

// Store persists runs under a base directory, one subdirectory per run
// holding metadata.json and series.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID              string             `json:"id"`
	Mode            string             `json:"mode"` // "discrete" or "ode"
	Timestamp       time.Time          `json:"timestamp"`
	Population      float64            `json:"population"`
	InitialInfected float64            `json:"initial_infected"`
	Beta            float64            `json:"beta"`
	Gamma           float64            `json:"gamma"`
	Days            float64            `json:"days"`
	Summary         map[string]float64 `json:"summary"`
}

func (s *Store) Save(meta RunMetadata, series sim.Series) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Mode, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"day", "susceptible", "infected", "recovered", "total"}); err != nil {
		return "", err
	}

	for _, rec := range series {
		row := []string{
			strconv.FormatFloat(rec.Day, 'f', 6, 64),
			strconv.FormatFloat(rec.Susceptible, 'f', 6, 64),
			strconv.FormatFloat(rec.Infected, 'f', 6, 64),
			strconv.FormatFloat(rec.Recovered, 'f', 6, 64),
			strconv.FormatFloat(rec.Total, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSeries(runID string) (sim.Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return sim.Series{}, nil
	}

	series := make(sim.Series, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) < 5 {
			continue
		}

		vals := make([]float64, 5)
		ok := true
		for i := 0; i < 5; i++ {
			v, err := strconv.ParseFloat(row[i], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}

		series = append(series, sim.Record{
			Day:         vals[0],
			Susceptible: vals[1],
			Infected:    vals[2],
			Recovered:   vals[3],
			Total:       vals[4],
		})
	}

	return series, nil
}
