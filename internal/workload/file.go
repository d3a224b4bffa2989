// Package workload loads, saves and generates process lists.
package workload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	yaml "github.com/goccy/go-yaml"

	"schedsim/internal/sched"
)

// Format selects the on-disk encoding of a process list.
type Format int

const (
	JSON Format = iota
	YAML
)

// Record is the persisted shape of one process.
type Record struct {
	PID      string `json:"pid" yaml:"pid"`
	Arrival  int    `json:"arrival" yaml:"arrival"`
	Burst    int    `json:"burst" yaml:"burst"`
	Priority int    `json:"priority" yaml:"priority"`
}

// FormatFor picks the format from the file extension; anything but .yml/.yaml is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return YAML
	default:
		return JSON
	}
}

// Load reads a process list from path.
func Load(path string) ([]*sched.Process, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open workload %s: %w", path, err)
	}
	defer f.Close()

	procs, err := Decode(f, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("load workload %s: %w", path, err)
	}
	return procs, nil
}

// Decode parses records and admits each through sched.NewProcess.
func Decode(r io.Reader, format Format) ([]*sched.Process, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var records []Record
	switch format {
	case YAML:
		err = yaml.Unmarshal(data, &records)
	default:
		err = json.Unmarshal(data, &records)
	}
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return FromRecords(records)
}

// FromRecords validates records in order and rejects duplicate pids.
func FromRecords(records []Record) ([]*sched.Process, error) {
	procs := make([]*sched.Process, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, rec := range records {
		p, err := sched.NewProcess(rec.PID, rec.Arrival, rec.Burst, rec.Priority)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, dup := seen[p.PID]; dup {
			return nil, fmt.Errorf("record %d: %w", i, &sched.InputError{PID: p.PID, Field: "pid", Reason: "is duplicated"})
		}
		seen[p.PID] = struct{}{}
		procs = append(procs, p)
	}
	return procs, nil
}

// ToRecords keeps only the input fields of each process.
func ToRecords(procs []*sched.Process) []Record {
	records := make([]Record, len(procs))
	for i, p := range procs {
		records[i] = Record{PID: p.PID, Arrival: p.ArrivalTime, Burst: p.BurstTime, Priority: p.Priority}
	}
	return records
}

// Encode writes procs in the given format.
func Encode(w io.Writer, procs []*sched.Process, format Format) error {
	records := ToRecords(procs)

	var (
		data []byte
		err  error
	)
	switch format {
	case YAML:
		data, err = yaml.Marshal(records)
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(records)
		data = buf.Bytes()
	}
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Save writes procs to path, choosing the format from the extension.
func Save(path string, procs []*sched.Process) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create workload %s: %w", path, err)
	}
	if err := Encode(f, procs, FormatFor(path)); err != nil {
		f.Close()
		return fmt.Errorf("save workload %s: %w", path, err)
	}
	return f.Close()
}
