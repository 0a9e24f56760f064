package core

// RuntimeConfig describes the terminal a match is shown on.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed; 0 means use current time in platform layer
}

// DefaultConfig returns an 80x24 terminal with a time-based seed.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}
