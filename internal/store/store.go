package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/rdlab/internal/metrics"
	"github.com/san-kum/rdlab/internal/sim"
)

// Store keeps completed runs under a base directory, one subdirectory per
// run holding metadata.json, snapshot.json, and history.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata summarizes one saved run.
type RunMetadata struct {
	ID        string          `json:"id"`
	Kinetics  string          `json:"kinetics"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Boundary  string          `json:"boundary"`
	Steps     uint64          `json:"steps"`
	Timestamp time.Time       `json:"timestamp"`
	Summary   metrics.Summary `json:"summary"`
}

// HistoryRecord is one parameter edit in the CSV log.
type HistoryRecord struct {
	Step uint64  `csv:"step"`
	Time string  `csv:"time"`
	Du   float64 `csv:"du"`
	Dv   float64 `csv:"dv"`
	F    float64 `csv:"f"`
	K    float64 `csv:"k"`
	Dt   float64 `csv:"dt"`
}

// SaveRun persists a finished run. The returned ID names the run directory.
func (s *Store) SaveRun(kinetics string, snap sim.Snapshot, hist []sim.ParamEvent, sum metrics.Summary) (string, error) {
	runID := fmt.Sprintf("%s_%d", kinetics, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Kinetics:  kinetics,
		Width:     snap.Width,
		Height:    snap.Height,
		Boundary:  snap.Boundary,
		Steps:     snap.Step,
		Timestamp: time.Now(),
		Summary:   sum,
	}
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	if err := SaveSnapshot(filepath.Join(runDir, "snapshot.json"), snap); err != nil {
		return "", err
	}

	if err := writeHistory(filepath.Join(runDir, "history.csv"), hist); err != nil {
		return "", err
	}
	return runID, nil
}

// LoadMeta reads one run's metadata.
func (s *Store) LoadMeta(runID string) (RunMetadata, error) {
	var meta RunMetadata
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return meta, err
	}
	err = json.Unmarshal(data, &meta)
	return meta, err
}

// LoadRunSnapshot reads one run's state snapshot.
func (s *Store) LoadRunSnapshot(runID string) (sim.Snapshot, error) {
	return LoadSnapshot(filepath.Join(s.baseDir, runID, "snapshot.json"))
}

// LoadHistory reads one run's parameter-history log.
func (s *Store) LoadHistory(runID string) ([]HistoryRecord, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "history.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []HistoryRecord
	if err := gocsv.Unmarshal(f, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// List returns the metadata of all saved runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.LoadMeta(e.Name())
		if err != nil {
			continue // skip incomplete run dirs
		}
		runs = append(runs, meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeHistory(path string, hist []sim.ParamEvent) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	records := make([]HistoryRecord, len(hist))
	for i, ev := range hist {
		records[i] = HistoryRecord{
			Step: ev.Step,
			Time: ev.Time.Format(time.RFC3339Nano),
			Du:   ev.Params.Du,
			Dv:   ev.Params.Dv,
			F:    ev.Params.F,
			K:    ev.Params.K,
			Dt:   ev.Params.Dt,
		}
	}
	return gocsv.Marshal(records, f)
}
