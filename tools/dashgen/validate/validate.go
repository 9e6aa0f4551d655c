// Package validate checks generated dashboards and rules: every PromQL
// expression must parse, and every metric it references must be one the
// service actually exports.
package validate

import (
	"encoding/json"
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"
)

// Result collects validation findings. Errors are malformed
// expressions; Warnings are references to unknown metrics.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

// Dashboard validates every query expression in a built dashboard
// against the known metric set.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var result Result

	data, err := json.Marshal(dash)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("marshaling dashboard: %v", err))
		return result
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("re-reading dashboard: %v", err))
		return result
	}

	for _, expr := range collectExprs(doc) {
		checkExpr(expr, known, &result)
	}
	return result
}

// Exprs validates a list of raw PromQL expressions, as found in
// recording and alert rules.
func Exprs(exprs []string, known map[string]bool) Result {
	var result Result
	for _, expr := range exprs {
		checkExpr(expr, known, &result)
	}
	return result
}

func checkExpr(expr string, known map[string]bool, result *Result) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("parsing %q: %v", expr, err))
		return
	}
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		if vs, ok := n.(*parser.VectorSelector); ok && vs.Name != "" && !known[vs.Name] {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("unknown metric %q in %q", vs.Name, expr))
		}
		return nil
	})
}

// collectExprs walks an arbitrary JSON document and returns every
// string value stored under an "expr" key.
func collectExprs(doc any) []string {
	var exprs []string
	switch v := doc.(type) {
	case map[string]any:
		for key, val := range v {
			if key == "expr" {
				if s, ok := val.(string); ok && s != "" {
					exprs = append(exprs, s)
					continue
				}
			}
			exprs = append(exprs, collectExprs(val)...)
		}
	case []any:
		for _, item := range v {
			exprs = append(exprs, collectExprs(item)...)
		}
	}
	return exprs
}
