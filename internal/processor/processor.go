// Package processor runs validation scenarios: every collection is loaded
// first, then each violation is evaluated independently and reported.
package processor

import (
	"fmt"

	"github.com/woozymasta/roadcheck/internal/config"
	"github.com/woozymasta/roadcheck/internal/dataset"
	"github.com/woozymasta/roadcheck/internal/report"
	"github.com/woozymasta/roadcheck/internal/rules"

	"github.com/rs/zerolog/log"
)

// Datasets holds the loaded collections of one scenario.
type Datasets struct {
	Violations []dataset.Violation
	Signs      []dataset.Sign
	Topology   []dataset.Topology
}

// Load reads every collection the scenario kind needs. Any failure aborts
// the scenario before a single rule runs.
func Load(s config.Scenario) (Datasets, error) {
	var d Datasets
	var err error

	log.Info().Str("scenario", s.Name).Str("path", s.Validations).Msg("Reading validations file")
	if d.Violations, err = dataset.LoadViolations(s.Validations); err != nil {
		return d, fmt.Errorf("load validations: %w", err)
	}

	switch s.Kind {
	case config.KindSign:
		log.Info().Str("scenario", s.Name).Str("path", s.Signs).Msg("Reading signs file")
		if d.Signs, err = dataset.LoadSigns(s.Signs); err != nil {
			return d, fmt.Errorf("load signs: %w", err)
		}

	case config.KindProximity, config.KindAccess:
		log.Info().Str("scenario", s.Name).Str("path", s.Topology).Msg("Reading topology file")
		if d.Topology, err = dataset.LoadTopology(s.Topology); err != nil {
			return d, fmt.Errorf("load topology: %w", err)
		}

	default:
		return d, fmt.Errorf("%w %q", config.ErrUnknownKind, s.Kind)
	}

	return d, nil
}

// Evaluate applies the scenario rule to every violation in input order.
func Evaluate(s config.Scenario, d Datasets) report.Result {
	result := report.Result{Name: s.Name, Kind: s.Kind}

	if len(d.Violations) == 0 {
		result.Notice = "No validations found in the file."
		return result
	}

	var check func(dataset.Violation) rules.Verdict
	switch s.Kind {
	case config.KindSign:
		if len(d.Signs) == 0 {
			result.Notice = "No signs found in the file."
			return result
		}
		signs := dataset.SignIndex(d.Signs)
		check = func(v dataset.Violation) rules.Verdict { return rules.CheckSign(v, signs) }

	case config.KindProximity, config.KindAccess:
		if len(d.Topology) == 0 {
			result.Notice = "No topology found in the file."
			return result
		}
		topology := dataset.TopologyIndex(d.Topology)
		if s.Kind == config.KindProximity {
			check = func(v dataset.Violation) rules.Verdict { return rules.CheckProximity(v, topology) }
		} else {
			check = func(v dataset.Violation) rules.Verdict { return rules.CheckAccess(v, topology) }
		}

	default:
		result.Notice = fmt.Sprintf("No rule for scenario kind %q.", s.Kind)
		return result
	}

	result.Verdicts = make([]rules.Verdict, 0, len(d.Violations))
	for _, v := range d.Violations {
		verdict := check(v)
		log.Debug().
			Str("scenario", s.Name).
			Int("violation", v.Index+1).
			Str("id", verdict.ID).
			Str("status", string(verdict.Status)).
			Msg("Violation evaluated")

		result.Verdicts = append(result.Verdicts, verdict)
		result.Summary.Add(verdict)
	}

	return result
}

// Run loads, evaluates and reports one scenario.
func Run(s config.Scenario, w *report.Writer) (report.Summary, error) {
	log.Info().Str("scenario", s.Name).Str("kind", string(s.Kind)).Msg("Starting scenario")

	d, err := Load(s)
	if err != nil {
		return report.Summary{}, err
	}

	result := Evaluate(s, d)
	if err := w.Write(result); err != nil {
		return result.Summary, fmt.Errorf("write report: %w", err)
	}

	log.Info().
		Str("scenario", s.Name).
		Int("violations", len(d.Violations)).
		Int("pass", result.Summary.Pass).
		Int("fail", result.Summary.Fail).
		Int("inconclusive", result.Summary.Inconclusive).
		Msg("Scenario finished")

	return result.Summary, nil
}
