package domain

// Config is the resolved pipeline configuration.
type Config struct {
	// Roots are the directories scanned recursively for source images.
	Roots []string
	// Ignore holds directory name patterns (filepath.Match syntax) skipped while scanning.
	Ignore []string
	// Spec is the derivative ladder.
	Spec DerivativeSpec
	// Concurrency bounds the number of images processed in parallel. Zero means one per CPU.
	Concurrency int
	// Sizes is the sizes policy attached to every resolved layer.
	Sizes string
}

// DefaultConfig returns the built-in configuration used when no folio.yaml exists.
func DefaultConfig() *Config {
	return &Config{
		Roots: DefaultRoots(),
		Spec:  DefaultDerivativeSpec(),
		Sizes: DefaultSizes,
	}
}
