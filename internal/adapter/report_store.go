package adapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "makelift.dev/pkg/makelift/internal/model"
)

// ReportStore persists conversion reports.
type ReportStore interface {
	SaveReport(path m.Path, report m.ConversionReport) error
	LoadReport(path m.Path) (m.ConversionReport, error)
}

// YAMLReportStore stores conversion reports as YAML files. Unlike emitted
// descriptors, the report of a previous run is overwritten.
type YAMLReportStore struct{}

// NewYAMLReportStore constructs a YAMLReportStore.
func NewYAMLReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveReport marshals the report and writes it to path.
func (s *YAMLReportStore) SaveReport(path m.Path, report m.ConversionReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}

// LoadReport reads and unmarshals a previously saved report.
func (s *YAMLReportStore) LoadReport(path m.Path) (m.ConversionReport, error) {
	var report m.ConversionReport

	data, err := os.ReadFile(string(path))
	if err != nil {
		return report, fmt.Errorf("read report %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &report); err != nil {
		return report, fmt.Errorf("unmarshal report %s: %w", path, err)
	}

	return report, nil
}
