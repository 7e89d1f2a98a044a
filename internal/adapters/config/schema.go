package config

// Foliofile represents the structure of the folio.yaml configuration file.
// Every field is optional; zero values fall back to the built-in defaults.
type Foliofile struct {
	Roots       []string   `yaml:"roots"`
	Ignore      []string   `yaml:"ignore"`
	Widths      []int      `yaml:"widths"`
	WebP        *FormatDTO `yaml:"webp"`
	JPG         *FormatDTO `yaml:"jpg"`
	Concurrency int        `yaml:"concurrency"`
	Sizes       string     `yaml:"sizes"`
}

// FormatDTO represents the encoder settings of one derivative format.
type FormatDTO struct {
	Quality int `yaml:"quality"`
}
