// Package store persists simulation state: point-in-time snapshots as JSON
// blobs, and completed runs under a data directory with metadata and the
// parameter-history log.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/rdlab/internal/rd"
	"github.com/san-kum/rdlab/internal/sim"
)

// snapshotVersion guards the wire format. Bump on incompatible changes.
const snapshotVersion = 1

type snapshotBlob struct {
	Version  int        `json:"version"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Boundary string     `json:"boundary"`
	Border   float64    `json:"border,omitempty"`
	U        []float64  `json:"u"`
	V        []float64  `json:"v"`
	Params   paramsBlob `json:"params"`
	Step     uint64     `json:"step"`
}

type paramsBlob struct {
	Du float64 `json:"du"`
	Dv float64 `json:"dv"`
	F  float64 `json:"f"`
	K  float64 `json:"k"`
	Dt float64 `json:"dt"`
}

// EncodeSnapshot writes the snapshot as a JSON blob. Field values survive
// the trip bit-for-bit: Go's JSON encoder emits the shortest representation
// that parses back to the identical float64.
func EncodeSnapshot(w io.Writer, s sim.Snapshot) error {
	blob := snapshotBlob{
		Version:  snapshotVersion,
		Width:    s.Width,
		Height:   s.Height,
		Boundary: s.Boundary,
		Border:   s.Border,
		U:        s.U,
		V:        s.V,
		Params:   paramsBlob{Du: s.Params.Du, Dv: s.Params.Dv, F: s.Params.F, K: s.Params.K, Dt: s.Params.Dt},
		Step:     s.Step,
	}
	enc := json.NewEncoder(w)
	return enc.Encode(blob)
}

// DecodeSnapshot parses and validates a snapshot blob. Malformed JSON, an
// unknown version, or mismatched dimensions yield an error wrapping
// rd.ErrCorruptSnapshot, leaving the caller's state untouched.
func DecodeSnapshot(r io.Reader) (sim.Snapshot, error) {
	var blob snapshotBlob
	if err := json.NewDecoder(r).Decode(&blob); err != nil {
		return sim.Snapshot{}, fmt.Errorf("%w: %v", rd.ErrCorruptSnapshot, err)
	}
	if blob.Version != snapshotVersion {
		return sim.Snapshot{}, fmt.Errorf("%w: unsupported version %d", rd.ErrCorruptSnapshot, blob.Version)
	}
	if blob.Width <= 0 || blob.Height <= 0 {
		return sim.Snapshot{}, fmt.Errorf("%w: invalid dimensions %dx%d", rd.ErrCorruptSnapshot, blob.Width, blob.Height)
	}
	if len(blob.U) != blob.Width*blob.Height || len(blob.V) != blob.Width*blob.Height {
		return sim.Snapshot{}, fmt.Errorf("%w: field length %d/%d does not match %dx%d",
			rd.ErrCorruptSnapshot, len(blob.U), len(blob.V), blob.Width, blob.Height)
	}
	return sim.Snapshot{
		Width:    blob.Width,
		Height:   blob.Height,
		Boundary: blob.Boundary,
		Border:   blob.Border,
		U:        blob.U,
		V:        blob.V,
		Params:   rd.Params{Du: blob.Params.Du, Dv: blob.Params.Dv, F: blob.Params.F, K: blob.Params.K, Dt: blob.Params.Dt},
		Step:     blob.Step,
	}, nil
}

// SaveSnapshot writes a snapshot blob to a file.
func SaveSnapshot(path string, s sim.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeSnapshot(f, s)
}

// LoadSnapshot reads a snapshot blob from a file.
func LoadSnapshot(path string) (sim.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return sim.Snapshot{}, err
	}
	defer f.Close()
	return DecodeSnapshot(f)
}
