package bench

// Config holds the configuration for one benchmark run.
type Config struct {
	ChunkBytes  int    // Size of each chunk in bytes (default: 2MiB, a 128x128x128 block)
	StartChunks int    // Chunk count of the first iteration
	MaxChunks   int    // Exclusive upper bound on the chunk count
	Step        int    // Chunk-count increment between iterations
	OutputDir   string // Directory for the two scratch output files
	ResultsPath string // Path of the CSV results artifact
}

// DefaultConfig returns a configuration with baseline defaults. The chunk
// count steps by 32 up to, but excluding, the 1024 gather-vector ceiling.
func DefaultConfig() Config {
	return Config{
		ChunkBytes:  128 * 128 * 128, // 2 MiB per chunk
		StartChunks: 32,
		MaxChunks:   1024,
		Step:        32,
		OutputDir:   ".",
		ResultsPath: "results.csv",
	}
}
