package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/catalogetl/catalogetl/internal/model"
)

// Status is the final state of a run.
type Status string

const (
	StatusCompleted    Status = "completed"
	StatusInputMissing Status = "input-missing"
	StatusIOFailure    Status = "io-failure"
)

// Entry is one row in the run log.
type Entry struct {
	RunID     string
	Timestamp time.Time
	Transform string
	Input     string
	Output    string
	Summary   model.RunSummary
	Status    Status
}

// Header is the CSV header for the run log.
const Header = "run_id,timestamp,transform,input,output,rows_read,rows_written,rows_skipped,status"

const (
	numFields      = 9
	colRunID       = 0
	colTimestamp   = 1
	colTransform   = 2
	colInput       = 3
	colOutput      = 4
	colRowsRead    = 5
	colRowsWritten = 6
	colRowsSkipped = 7
	colStatus      = 8
)

// NewEntry records a finished run under a fresh run ID.
func NewEntry(now time.Time, transform, input, output string, sum model.RunSummary, status Status) Entry {
	return Entry{
		RunID:     uuid.New().String(),
		Timestamp: now.UTC(),
		Transform: transform,
		Input:     input,
		Output:    output,
		Summary:   sum,
		Status:    status,
	}
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colRunID] = e.RunID
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colTransform] = e.Transform
	row[colInput] = e.Input
	row[colOutput] = e.Output
	row[colRowsRead] = strconv.Itoa(e.Summary.RowsRead)
	row[colRowsWritten] = strconv.Itoa(e.Summary.RowsWritten)
	row[colRowsSkipped] = strconv.Itoa(e.Summary.RowsSkipped)
	row[colStatus] = string(e.Status)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	if _, err := uuid.Parse(record[colRunID]); err != nil {
		return Entry{}, fmt.Errorf("parsing run_id %q: %w", record[colRunID], err)
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	var counts [3]int
	for i, col := range []int{colRowsRead, colRowsWritten, colRowsSkipped} {
		n, err := strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing counter %q: %w", record[col], err)
		}
		counts[i] = n
	}

	return Entry{
		RunID:     record[colRunID],
		Timestamp: ts,
		Transform: record[colTransform],
		Input:     record[colInput],
		Output:    record[colOutput],
		Summary: model.RunSummary{
			RowsRead:    counts[0],
			RowsWritten: counts[1],
			RowsSkipped: counts[2],
		},
		Status: Status(record[colStatus]),
	}, nil
}

// Append writes entries to the run log at path, creating the file, its
// directory and the header if needed.
func Append(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating run log dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from the run log at path.
// Returns an empty slice if the file does not exist.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
