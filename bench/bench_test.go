package bench

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Run(t *testing.T) {
	t.Run("EmitsOneRowPerIteration", func(t *testing.T) {
		cfg := Config{
			ChunkBytes:  512,
			StartChunks: 2,
			MaxChunks:   8,
			Step:        2,
			OutputDir:   t.TempDir(),
		}

		var out bytes.Buffer
		results, err := NewResultsWriter(&out)
		require.NoError(t, err)

		err = NewRunner(cfg, zerolog.Nop()).Run(results)
		require.NoError(t, err)

		records, err := csv.NewReader(&out).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 4) // header + chunk counts 2, 4, 6

		assert.Equal(t, []string{"bytes_written", "consolidated_time", "vectorized_time"}, records[0])
		for i, n := range []int{2, 4, 6} {
			assert.Equal(t, strconv.Itoa(n*cfg.ChunkBytes), records[i+1][0])
		}
	})

	t.Run("RemovesOutputFilesBetweenIterations", func(t *testing.T) {
		cfg := Config{
			ChunkBytes:  256,
			StartChunks: 1,
			MaxChunks:   3,
			Step:        1,
			OutputDir:   t.TempDir(),
		}

		var out bytes.Buffer
		results, err := NewResultsWriter(&out)
		require.NoError(t, err)

		err = NewRunner(cfg, zerolog.Nop()).Run(results)
		require.NoError(t, err)

		assert.NoFileExists(t, filepath.Join(cfg.OutputDir, consolidatedFile))
		assert.NoFileExists(t, filepath.Join(cfg.OutputDir, vectorizedFile))
	})

	t.Run("CreatesMissingOutputDirectory", func(t *testing.T) {
		cfg := Config{
			ChunkBytes:  64,
			StartChunks: 1,
			MaxChunks:   2,
			Step:        1,
			OutputDir:   filepath.Join(t.TempDir(), "nested", "dir"),
		}

		var out bytes.Buffer
		results, err := NewResultsWriter(&out)
		require.NoError(t, err)

		err = NewRunner(cfg, zerolog.Nop()).Run(results)
		require.NoError(t, err)
		assert.DirExists(t, cfg.OutputDir)
	})
}

func TestRunner_Measure(t *testing.T) {
	t.Run("BothStrategiesProduceIdenticalFiles", func(t *testing.T) {
		cfg := Config{ChunkBytes: 1024, OutputDir: t.TempDir()}
		r := NewRunner(cfg, zerolog.Nop())

		chunks := makeChunks(5, cfg.ChunkBytes)
		res, err := r.measure(5, chunks)
		require.NoError(t, err)
		assert.Equal(t, int64(5*1024), res.BytesWritten)
		assert.Equal(t, 5, res.Chunks)

		con := readFile(t, filepath.Join(cfg.OutputDir, consolidatedFile))
		vec := readFile(t, filepath.Join(cfg.OutputDir, vectorizedFile))
		assert.Equal(t, con, vec)
		assert.Equal(t, consolidate(chunks), con)
	})
}

func TestConsolidate(t *testing.T) {
	t.Run("PreservesChunkOrder", func(t *testing.T) {
		chunks := [][]byte{[]byte("aa"), []byte("b"), []byte("ccc")}
		assert.Equal(t, []byte("aabccc"), consolidate(chunks))
	})

	t.Run("EmptyChunkSet", func(t *testing.T) {
		assert.Empty(t, consolidate(nil))
	})
}

func TestMakeChunks(t *testing.T) {
	t.Run("GeneratesRequestedShape", func(t *testing.T) {
		chunks := makeChunks(4, 128)
		require.Len(t, chunks, 4)
		for _, c := range chunks {
			assert.Len(t, c, 128)
		}
	})

	t.Run("IsDeterministicPerChunkCount", func(t *testing.T) {
		assert.Equal(t, makeChunks(3, 64), makeChunks(3, 64))
	})
}

func TestResultsWriter(t *testing.T) {
	t.Run("WritesHeaderAndRows", func(t *testing.T) {
		var out bytes.Buffer
		rw, err := NewResultsWriter(&out)
		require.NoError(t, err)

		err = rw.WriteRow(Result{
			BytesWritten: 67108864,
			Consolidated: 120 * time.Millisecond,
			Vectorized:   45 * time.Millisecond,
		})
		require.NoError(t, err)

		assert.Equal(t,
			"bytes_written,consolidated_time,vectorized_time\n67108864,120,45\n",
			out.String())
	})

	t.Run("FansOutToAllDestinations", func(t *testing.T) {
		var a, b bytes.Buffer
		rw, err := NewResultsWriter(&a, &b)
		require.NoError(t, err)

		err = rw.WriteRow(Result{BytesWritten: 1024})
		require.NoError(t, err)
		assert.Equal(t, a.String(), b.String())
		assert.Contains(t, a.String(), "1024,0,0")
	})
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}
