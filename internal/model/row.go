package model

// RowResult is the outcome of transforming one non-blank input line: either
// an output line, or a row-local error that causes the line to be skipped.
type RowResult struct {
	Line string
	Err  error
}

// Transformed returns a successful result carrying the output line.
func Transformed(line string) RowResult {
	return RowResult{Line: line}
}

// Rejected returns a result that skips the row.
func Rejected(err error) RowResult {
	return RowResult{Err: err}
}

// OK reports whether the row produced output.
func (r RowResult) OK() bool {
	return r.Err == nil
}
