package puzzle

// Options configures grid generation.
type Options struct {
	Size        int   // Side length of the square grid
	MaxAttempts int   // Random placement attempts per word before it is dropped
	Seed        int64 // Seed for reproducible grids (0 = random)
}

// DefaultOptions returns the standard 10x10 generator options.
func DefaultOptions() *Options {
	return &Options{
		Size:        DefaultSize,
		MaxAttempts: DefaultMaxAttempts,
		Seed:        0,
	}
}
