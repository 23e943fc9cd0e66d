package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/catalogetl/catalogetl/internal/lineio"
	"github.com/catalogetl/catalogetl/internal/model"
	"github.com/catalogetl/catalogetl/internal/transform"
)

var (
	// ErrInputMissing means the input file does not exist. Nothing is written.
	ErrInputMissing = errors.New("input file not found")
	// ErrIOFailure matches every read, write, open or close failure.
	ErrIOFailure = errors.New("io failure")
)

// IOError is a fatal read or write failure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrIOFailure, e.Op, e.Path, e.Err)
}

// Unwrap exposes ErrIOFailure and the underlying error.
func (e *IOError) Unwrap() []error {
	return []error{ErrIOFailure, e.Err}
}

// State is the runner's position in a run.
type State string

const (
	StateAwaitingInput    State = "awaiting-input"
	StateInputMissing     State = "input-missing"
	StateHeaderWritten    State = "header-written"
	StatePerRowProcessing State = "processing"
	StateCompleted        State = "completed"
	StateIOFailure        State = "io-failure"
)

// LineReader yields input lines. ok is false once input is exhausted.
type LineReader interface {
	Next() (line string, ok bool, err error)
	Close() error
}

// LineWriter accepts output lines. Close flushes.
type LineWriter interface {
	WriteLine(line string) error
	Close() error
}

// Runner drives one transformer over a whole file.
type Runner struct {
	transformer transform.Transformer
	logger      *slog.Logger
	state       State

	open   func(path string) (LineReader, error)
	create func(path string) (LineWriter, error)
}

// New creates a Runner that reads and writes files on disk.
func New(t transform.Transformer, logger *slog.Logger) *Runner {
	return &Runner{
		transformer: t,
		logger:      logger,
		state:       StateAwaitingInput,
		open: func(path string) (LineReader, error) {
			return lineio.Open(path)
		},
		create: func(path string) (LineWriter, error) {
			return lineio.Create(path)
		},
	}
}

// State returns where the last run stopped.
func (r *Runner) State() State {
	return r.state
}

// Exists reports whether the input path exists.
func (r *Runner) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &IOError{Op: "stat", Path: path, Err: err}
	}
	return true, nil
}

// Run transforms input into output and returns the row counts. Blank lines
// are counted as skipped without reaching the transformer. Rows the
// transformer rejects are skipped; any I/O failure aborts the run, leaving
// lines already written in place.
func (r *Runner) Run(input, output string) (sum model.RunSummary, err error) {
	r.state = StateAwaitingInput
	log := r.logger.With("transform", r.transformer.Format(), "input", input, "output", output)

	ok, err := r.Exists(input)
	if err != nil {
		r.state = StateIOFailure
		return sum, err
	}
	if !ok {
		r.state = StateInputMissing
		return sum, fmt.Errorf("%w: %s", ErrInputMissing, input)
	}

	in, err := r.open(input)
	if err != nil {
		r.state = StateIOFailure
		return sum, &IOError{Op: "open", Path: input, Err: err}
	}
	defer in.Close()

	out, err := r.create(output)
	if err != nil {
		r.state = StateIOFailure
		return sum, &IOError{Op: "create", Path: output, Err: err}
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			r.state = StateIOFailure
			err = &IOError{Op: "close", Path: output, Err: cerr}
		}
	}()

	log.Info("run started")

	lineNo := 0
	if header := r.transformer.Header(); header != "" {
		if err := out.WriteLine(header); err != nil {
			r.state = StateIOFailure
			return sum, &IOError{Op: "write", Path: output, Err: err}
		}
		r.state = StateHeaderWritten

		// The transformer supplies its own header; drop the input's.
		if _, _, err := in.Next(); err != nil {
			r.state = StateIOFailure
			return sum, &IOError{Op: "read", Path: input, Err: err}
		}
		lineNo++
	}

	for {
		line, more, err := in.Next()
		if err != nil {
			r.state = StateIOFailure
			return sum, &IOError{Op: "read", Path: input, Err: err}
		}
		if !more {
			break
		}
		lineNo++
		r.state = StatePerRowProcessing
		sum.RowsRead++

		if strings.TrimSpace(line) == "" {
			sum.RowsSkipped++
			log.Debug("row skipped", "line", lineNo, "reason", "blank line")
			continue
		}

		res := r.transformer.Process(line)
		if !res.OK() {
			sum.RowsSkipped++
			log.Debug("row skipped", "line", lineNo, "reason", res.Err)
			continue
		}

		if err := out.WriteLine(res.Line); err != nil {
			r.state = StateIOFailure
			return sum, &IOError{Op: "write", Path: output, Err: err}
		}
		sum.RowsWritten++
	}

	r.state = StateCompleted
	log.Info("run finished", "rows_read", sum.RowsRead, "rows_written", sum.RowsWritten, "rows_skipped", sum.RowsSkipped)
	return sum, nil
}
