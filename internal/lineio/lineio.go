package lineio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrIsDir is returned by Open when path names a directory.
var ErrIsDir = errors.New("is a directory")

// Reader yields the lines of a file one at a time, without line terminators.
// Lines may be of any length.
type Reader struct {
	f  *os.File
	br *bufio.Reader
}

// Open opens path for line reading. Directories are refused up front, before
// any caller creates its output.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("opening %s: %w", path, ErrIsDir)
	}
	return &Reader{f: f, br: bufio.NewReader(f)}, nil
}

// Next returns the next line with its "\n" or "\r\n" terminator removed. ok
// is false once the input is exhausted or a read error occurred.
func (r *Reader) Next() (line string, ok bool, err error) {
	line, err = r.br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, fmt.Errorf("reading %s: %w", r.f.Name(), err)
	}
	if err != nil && line == "" {
		return "", false, nil
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), true, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.f.Close()
}

// Writer buffers lines into a file. Lines are persisted on Close.
type Writer struct {
	f *os.File
	w *bufio.Writer
}

// Create creates or truncates path for line writing.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &Writer{f: f, w: bufio.NewWriter(f)}, nil
}

// WriteLine writes line followed by a newline.
func (w *Writer) WriteLine(line string) error {
	if _, err := w.w.WriteString(line); err != nil {
		return fmt.Errorf("writing %s: %w", w.f.Name(), err)
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing %s: %w", w.f.Name(), err)
	}
	return nil
}

// Close flushes buffered lines and closes the file. The file is closed even
// if the flush fails.
func (w *Writer) Close() error {
	flushErr := w.w.Flush()
	if flushErr != nil {
		flushErr = fmt.Errorf("flushing %s: %w", w.f.Name(), flushErr)
	}
	return errors.Join(flushErr, w.f.Close())
}
