package bench

import (
	"encoding/csv"
	"io"
	"strconv"
)

// ResultsWriter emits benchmark rows as CSV, fanning identical content out
// to every destination (typically the console and a results file).
type ResultsWriter struct {
	w *csv.Writer
}

// NewResultsWriter writes the CSV header to all destinations.
func NewResultsWriter(dests ...io.Writer) (*ResultsWriter, error) {
	w := csv.NewWriter(io.MultiWriter(dests...))
	if err := w.Write([]string{"bytes_written", "consolidated_time", "vectorized_time"}); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return &ResultsWriter{w: w}, nil
}

// WriteRow emits one data row, with times in integer milliseconds.
func (rw *ResultsWriter) WriteRow(r Result) error {
	rec := []string{
		strconv.FormatInt(r.BytesWritten, 10),
		strconv.FormatInt(r.Consolidated.Milliseconds(), 10),
		strconv.FormatInt(r.Vectorized.Milliseconds(), 10),
	}
	if err := rw.w.Write(rec); err != nil {
		return err
	}
	rw.w.Flush()
	return rw.w.Error()
}
