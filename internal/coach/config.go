package coach

// Config holds coaching generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for coaching notes.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   700,
		Temperature: 0.4,
	}
}
