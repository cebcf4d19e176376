package model

// Conversion outcome labels used in reports and the summary table.
const (
	StatusConverted = "converted"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// ComponentReport records the outcome of converting one component directory.
type ComponentReport struct {
	Path        string   `yaml:"path"`
	Form        string   `yaml:"form,omitempty"`
	Status      string   `yaml:"status"`
	SourceCount int      `yaml:"sources"`
	Warnings    []string `yaml:"warnings,omitempty"`
	Error       string   `yaml:"error,omitempty"`
}

// ConversionReport summarizes one project conversion run.
type ConversionReport struct {
	Project     string            `yaml:"project"`
	ProjectPath string            `yaml:"project_path"`
	EntrySrcs   []string          `yaml:"entry_sources,omitempty"`
	Components  []ComponentReport `yaml:"components"`
}

// Converted counts components that were successfully converted.
func (r ConversionReport) Converted() int {
	return r.countStatus(StatusConverted)
}

// Skipped counts components left untouched because a descriptor already
// existed.
func (r ConversionReport) Skipped() int {
	return r.countStatus(StatusSkipped)
}

// Failed counts components whose conversion did not complete.
func (r ConversionReport) Failed() int {
	return r.countStatus(StatusFailed)
}

func (r ConversionReport) countStatus(status string) int {
	count := 0

	for _, c := range r.Components {
		if c.Status == status {
			count++
		}
	}

	return count
}
