package report

import (
	"fmt"
	"io"

	"github.com/catalogetl/catalogetl/internal/model"
)

// Summary prints the run counters and output path, one per line.
func Summary(w io.Writer, sum model.RunSummary, outputPath string) error {
	_, err := fmt.Fprintf(w,
		"Rows read: %d\nRows transformed: %d\nRows skipped: %d\nOutput written to: %s\n",
		sum.RowsRead, sum.RowsWritten, sum.RowsSkipped, outputPath)
	return err
}

// InputMissing prints the single message shown when the input file is absent.
func InputMissing(w io.Writer, inputPath string) error {
	_, err := fmt.Fprintf(w, "Error: Input file %s not found.\n", inputPath)
	return err
}

// ProcessingFailed prints the generic message shown on an I/O failure.
func ProcessingFailed(w io.Writer) error {
	_, err := fmt.Fprintln(w, "Error processing files.")
	return err
}
