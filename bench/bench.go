// Package bench compares two strategies for writing a set of in-memory
// chunks to disk: consolidating them into one contiguous buffer and issuing
// a single positional write, versus handing the original buffers to one
// scatter-gather write.
package bench

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/acquire-project/vecwrite/sink"
)

const (
	consolidatedFile = "consolidated.bin"
	vectorizedFile   = "vectorized.bin"
)

// Result is one benchmark row: the bytes written per strategy and the time
// each strategy took for the same chunk set.
type Result struct {
	Chunks       int
	BytesWritten int64
	Consolidated time.Duration
	Vectorized   time.Duration
}

// Runner drives the benchmark over an increasing chunk count.
type Runner struct {
	cfg Config
	log zerolog.Logger
}

// NewRunner creates a Runner for the given configuration.
func NewRunner(cfg Config, logger zerolog.Logger) *Runner {
	return &Runner{cfg: cfg, log: logger}
}

// Run executes one iteration per chunk count and emits one CSV row per
// successful iteration. A failure in either write path is logged and the
// iteration is skipped; the run continues with the next chunk count. Both
// scratch files are removed after every iteration.
func (r *Runner) Run(results *ResultsWriter) error {
	if err := os.MkdirAll(r.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for n := r.cfg.StartChunks; n < r.cfg.MaxChunks; n += r.cfg.Step {
		chunks := makeChunks(n, r.cfg.ChunkBytes)
		res, err := r.measure(n, chunks)
		r.cleanup()
		if err != nil {
			r.log.Error().Err(err).Int("chunks", n).Msg("iteration failed, skipping")
			continue
		}

		r.log.Info().
			Int("chunks", n).
			Str("bytes", humanize.IBytes(uint64(res.BytesWritten))).
			Dur("consolidated", res.Consolidated).
			Dur("vectorized", res.Vectorized).
			Msg("iteration complete")

		if err := results.WriteRow(res); err != nil {
			return fmt.Errorf("failed to record results: %w", err)
		}
	}
	return nil
}

// measure times the consolidate-then-write path and the vectored path for
// one chunk set, each against its own output file.
func (r *Runner) measure(n int, chunks [][]byte) (Result, error) {
	var total int64
	for _, c := range chunks {
		total += int64(len(c))
	}

	start := time.Now()
	if err := r.writeConsolidated(chunks); err != nil {
		return Result{}, err
	}
	consolidated := time.Since(start)

	start = time.Now()
	if err := r.writeVectorized(chunks); err != nil {
		return Result{}, err
	}
	vectorized := time.Since(start)

	return Result{
		Chunks:       n,
		BytesWritten: total,
		Consolidated: consolidated,
		Vectorized:   vectorized,
	}, nil
}

// writeConsolidated copies the chunks into one contiguous buffer and issues
// a single positional write at offset 0.
func (r *Runner) writeConsolidated(chunks [][]byte) error {
	path := filepath.Join(r.cfg.OutputDir, consolidatedFile)
	s, err := sink.NewFileSink(path)
	if err != nil {
		return err
	}
	defer s.Close()

	ok, err := s.Write(0, consolidate(chunks))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("consolidated write to %q gave up after repeated short writes", path)
	}
	return nil
}

// writeVectorized hands the original chunks to a gather write at offset 0.
func (r *Runner) writeVectorized(chunks [][]byte) error {
	path := filepath.Join(r.cfg.OutputDir, vectorizedFile)
	w, err := sink.NewVectorizedWriter(path)
	if err != nil {
		return err
	}
	defer w.Close()

	ok, err := w.WriteVectors(chunks, 0)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("vectored write to %q gave up after repeated short writes", path)
	}
	return nil
}

// cleanup removes both scratch files. Missing files are fine; anything else
// is logged and ignored so one leftover file cannot abort the run.
func (r *Runner) cleanup() {
	for _, name := range []string{consolidatedFile, vectorizedFile} {
		path := filepath.Join(r.cfg.OutputDir, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			r.log.Warn().Err(err).Str("path", path).Msg("failed to remove output file")
		}
	}
}

// consolidate concatenates the chunks, in order, into one buffer.
func consolidate(chunks [][]byte) []byte {
	var total int
	for _, c := range chunks {
		total += len(c)
	}
	shard := make([]byte, 0, total)
	for _, c := range chunks {
		shard = append(shard, c...)
	}
	return shard
}

// makeChunks generates n chunks of size bytes each, filled with seeded
// pseudo-random data so the filesystem cannot shortcut zero pages.
func makeChunks(n, size int) [][]byte {
	rng := rand.New(rand.NewSource(int64(n)))
	chunks := make([][]byte, n)
	for i := range chunks {
		chunks[i] = make([]byte, size)
		rng.Read(chunks[i])
	}
	return chunks
}
