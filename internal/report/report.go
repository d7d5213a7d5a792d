// Package report writes scenario verdicts as diagnostic text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/woozymasta/roadcheck/internal/config"
	"github.com/woozymasta/roadcheck/internal/rules"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Summary counts verdicts by status.
type Summary struct {
	Pass         int `json:"pass" yaml:"pass"`
	Fail         int `json:"fail" yaml:"fail"`
	Inconclusive int `json:"inconclusive" yaml:"inconclusive"`
}

// Add counts one verdict.
func (s *Summary) Add(v rules.Verdict) {
	switch v.Status {
	case rules.StatusPass:
		s.Pass++
	case rules.StatusFail:
		s.Fail++
	default:
		s.Inconclusive++
	}
}

// Total returns the number of counted verdicts.
func (s Summary) Total() int {
	return s.Pass + s.Fail + s.Inconclusive
}

// Result is the outcome of one scenario run.
type Result struct {
	Name     string          `json:"name" yaml:"name"`
	Kind     config.Kind     `json:"kind" yaml:"kind"`
	Notice   string          `json:"notice,omitempty" yaml:"notice,omitempty"`
	Verdicts []rules.Verdict `json:"verdicts" yaml:"verdicts"`
	Summary  Summary         `json:"summary" yaml:"summary"`
}

// Writer renders results in one format.
type Writer struct {
	out    io.Writer
	format string
	yaml   *yaml.Encoder
}

// NewWriter returns a writer for the given format.
func NewWriter(out io.Writer, format string) (*Writer, error) {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
	case "":
		format = FormatText
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
	return &Writer{out: out, format: format}, nil
}

// Write renders one scenario result.
func (w *Writer) Write(r Result) error {
	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)

	case FormatYAML:
		// one encoder for all results keeps the documents separated
		if w.yaml == nil {
			w.yaml = yaml.NewEncoder(w.out)
			w.yaml.SetIndent(2)
		}
		return w.yaml.Encode(r)
	}

	return w.writeText(r)
}

// Close flushes buffered output.
func (w *Writer) Close() error {
	if w.yaml != nil {
		return w.yaml.Close()
	}
	return nil
}

// writeText prints the diagnostic lines. Access verdicts are separated by a
// blank line.
func (w *Writer) writeText(r Result) error {
	if r.Notice != "" {
		if _, err := fmt.Fprintln(w.out, r.Notice); err != nil {
			return err
		}
	}

	for _, v := range r.Verdicts {
		for _, line := range v.Lines {
			if _, err := fmt.Fprintln(w.out, line); err != nil {
				return err
			}
		}
		if r.Kind == config.KindAccess {
			if _, err := fmt.Fprintln(w.out); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w.out, "Summary: %d pass, %d fail, %d inconclusive\n",
		r.Summary.Pass, r.Summary.Fail, r.Summary.Inconclusive)
	return err
}
