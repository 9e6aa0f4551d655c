// Command dashgen generates the Grafana dashboard and Prometheus rule
// artifacts for amzpulse deployments.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/viraladmedia/amzpulse/tools/dashgen/dashboards"
	"github.com/viraladmedia/amzpulse/tools/dashgen/rules"
	"github.com/viraladmedia/amzpulse/tools/dashgen/validate"
)

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config, validateOnly bool) error {
	dash, err := dashboards.BuildOverview().Build()
	if err != nil {
		return fmt.Errorf("building dashboard: %w", err)
	}

	if result := validate.Dashboard(dash, KnownMetrics); !result.Ok() {
		return fmt.Errorf("dashboard validation failed: %v", result.Errors)
	}

	recording := rules.RecordingRules()
	alerts := rules.AlertRules()
	if result := validate.Exprs(ruleExprs(recording, alerts), KnownMetrics); !result.Ok() {
		return fmt.Errorf("rule validation failed: %v", result.Errors)
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	if cfg.DashboardEnabled {
		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling dashboard: %w", err)
		}
		if err := writeFile(cfg.OutputDir, "dashboards/amzpulse-overview.json", data); err != nil {
			return err
		}
	}

	if cfg.RulesEnabled {
		for name, cr := range map[string]rules.PrometheusRule{
			"rules/amzpulse-recording-rules.yaml": recording,
			"rules/amzpulse-alerts.yaml":          alerts,
		} {
			data, err := yaml.Marshal(cr)
			if err != nil {
				return fmt.Errorf("marshaling %s: %w", name, err)
			}
			if err := writeFile(cfg.OutputDir, name, data); err != nil {
				return err
			}
		}
	}

	fmt.Printf("artifacts written to %s\n", cfg.OutputDir)
	return nil
}

func ruleExprs(crs ...rules.PrometheusRule) []string {
	var exprs []string
	for _, cr := range crs {
		for _, group := range cr.Spec.Groups {
			for _, rule := range group.Rules {
				exprs = append(exprs, rule.Expr)
			}
		}
	}
	return exprs
}

func writeFile(dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
