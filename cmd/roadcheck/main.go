package main

import (
	"io"
	"os"

	"github.com/woozymasta/roadcheck/internal/config"
	"github.com/woozymasta/roadcheck/internal/logger"
	"github.com/woozymasta/roadcheck/internal/processor"
	"github.com/woozymasta/roadcheck/internal/report"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string   `short:"c" long:"config"      env:"CONFIG_FILE"      description:"Path to scenarios file, overrides single scenario flags"`
	Kind        string   `short:"k" long:"kind"        env:"SCENARIO_KIND"    description:"Scenario kind" choice:"sign" choice:"proximity" choice:"access" default:"sign"`
	Validations string   `short:"v" long:"validations" env:"VALIDATIONS_FILE" description:"Validations GeoJSON file" default:"23599610_validations.geojson"`
	Signs       string   `short:"s" long:"signs"       env:"SIGNS_FILE"       description:"Signs GeoJSON file" default:"23599610_signs.geojson"`
	Topology    string   `short:"t" long:"topology"    env:"TOPOLOGY_FILE"    description:"Topology GeoJSON file" default:"23599610_full_topology_data.geojson"`
	Format      string   `short:"f" long:"format"      env:"REPORT_FORMAT"    description:"Report format" choice:"text" choice:"json" choice:"yaml" default:"text"`
	Output      string   `short:"o" long:"out"         env:"REPORT_FILE"      description:"Report file path. Writes to stdout if empty"`
	Limit       []string `short:"l" long:"limit"       env:"LIMIT_NAMES"      description:"Limit processing to specific scenario names"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	os.Exit(run(opts))
}

// run executes every scenario and returns the process exit code.
// Deferred cleanup runs before main exits.
func run(opts Options) int {
	scenarios, err := loadScenarios(opts)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return 1
	}

	var out io.Writer = os.Stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			log.Error().Err(err).Str("path", opts.Output).Msg("Failed to create report file")
			return 1
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				log.Error().Err(closeErr).Str("path", opts.Output).Msg("Failed to close file")
			}
		}()
		out = f
	}

	w, err := report.NewWriter(out, opts.Format)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create report writer")
		return 1
	}

	log.Info().
		Int("scenarios", len(scenarios)).
		Str("format", opts.Format).
		Msg("Starting validation")

	failed := 0
	var total report.Summary
	for _, s := range scenarios {
		summary, err := processor.Run(s, w)
		if err != nil {
			failed++
			log.Error().Err(err).Str("scenario", s.Name).Msg("Scenario aborted")
			continue
		}
		total.Pass += summary.Pass
		total.Fail += summary.Fail
		total.Inconclusive += summary.Inconclusive
	}

	if err := w.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to flush report")
		failed++
	}

	log.Info().
		Int("pass", total.Pass).
		Int("fail", total.Fail).
		Int("inconclusive", total.Inconclusive).
		Int("aborted", failed).
		Msg("Validation finished")

	if failed > 0 {
		return 1
	}
	return 0
}

// loadScenarios reads the scenarios file or builds a single scenario from flags.
func loadScenarios(opts Options) ([]config.Scenario, error) {
	if opts.ConfigFile == "" {
		s := config.Scenario{
			Name:        opts.Kind,
			Kind:        config.Kind(opts.Kind),
			Validations: opts.Validations,
		}
		switch s.Kind {
		case config.KindSign:
			s.Signs = opts.Signs
		default:
			s.Topology = opts.Topology
		}
		return []config.Scenario{s}, s.Validate()
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	if len(opts.Limit) == 0 {
		return cfg.Scenarios, nil
	}

	available := make(map[string]config.Scenario, len(cfg.Scenarios))
	for _, s := range cfg.Scenarios {
		available[s.Name] = s
	}

	seen := make(map[string]bool)
	scenarios := make([]config.Scenario, 0, len(opts.Limit))
	for _, name := range opts.Limit {
		if seen[name] {
			continue
		}
		seen[name] = true

		if s, ok := available[name]; ok {
			scenarios = append(scenarios, s)
		} else {
			log.Error().
				Str("name", name).
				Msg("Scenario specified in --limit not found in configuration")
		}
	}
	return scenarios, nil
}
