package types

// DataConfig locates the enhancement files checked by the data-structure check.
type DataConfig struct {
	// Dir is the directory holding enhancement files (default "data").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Pattern is the glob matching date-stamped enhancement files
	// (default "*_AI_enhanced_*.jsonl").
	Pattern string `json:"pattern" yaml:"pattern" mapstructure:"pattern"`
}

// ConversionConfig locates the markdown conversion script and its template.
type ConversionConfig struct {
	// Script is the conversion script path (default "to_md/convert.py").
	Script string `json:"script" yaml:"script" mapstructure:"script"`

	// Template is the paper template path (default "to_md/paper_template.md").
	Template string `json:"template" yaml:"template" mapstructure:"template"`

	// Markers are literal substrings the script source must contain
	// (default "def rank(" and "template.format(").
	Markers []string `json:"markers" yaml:"markers" mapstructure:"markers"`
}

// ReadmeConfig lists the files the README regeneration step depends on.
type ReadmeConfig struct {
	// Files are checked in order; the first missing one is reported.
	Files []string `json:"files" yaml:"files" mapstructure:"files"`
}

// WebConfig lists the static website assets.
type WebConfig struct {
	// Assets are checked together; every missing one is reported.
	Assets []string `json:"assets" yaml:"assets" mapstructure:"assets"`
}

// HistoryConfig holds settings for the run history store.
type HistoryConfig struct {
	// Dir is the directory for history.db, relative to the root (default ".selftest").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default number of runs listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// SelftestConfig groups the settings for every self-test check.
// Relative paths resolve against Root.
type SelftestConfig struct {
	// Root is the repository root. Empty means discover it from the working directory.
	Root string `json:"root" yaml:"root" mapstructure:"root"`

	Data       DataConfig       `json:"data" yaml:"data" mapstructure:"data"`
	Conversion ConversionConfig `json:"conversion" yaml:"conversion" mapstructure:"conversion"`
	Readme     ReadmeConfig     `json:"readme" yaml:"readme" mapstructure:"readme"`
	Web        WebConfig        `json:"web" yaml:"web" mapstructure:"web"`
	History    HistoryConfig    `json:"history" yaml:"history" mapstructure:"history"`
}

// DefaultSelftestConfig returns the layout of the daily-arXiv repository.
func DefaultSelftestConfig() SelftestConfig {
	return SelftestConfig{
		Data: DataConfig{
			Dir:     "data",
			Pattern: "*_AI_enhanced_*.jsonl",
		},
		Conversion: ConversionConfig{
			Script:   "to_md/convert.py",
			Template: "to_md/paper_template.md",
			Markers:  []string{"def rank(", "template.format("},
		},
		Readme: ReadmeConfig{
			Files: []string{"template.md", "readme_content_template.md", "update_readme.py"},
		},
		Web: WebConfig{
			Assets: []string{
				"index.html",
				"settings.html",
				"statistic.html",
				"css/styles.css",
				"js/settings.js",
			},
		},
		History: HistoryConfig{
			Dir:        ".selftest",
			MaxResults: 20,
		},
	}
}
