package fmstats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// QueryResult is the value of a JSONPath expression on one manifest.
type QueryResult struct {
	RowID string
	Value any
}

// Query evaluates the JSONPath expression 'expr' (e.g. `$.entity.type`) against
// the manifest document of every active row.
//
// Rows that are not active, whose manifest is not valid JSON, or where the path
// does not resolve are skipped. Only an invalid expression is an error.
func Query(ctx context.Context, records []RawRecord, expr string) ([]QueryResult, error) {
	eval, err := jsonpath.New(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath %q: %w", expr, err)
	}

	var results []QueryResult
	for _, raw := range records {
		if raw.Status != StatusActive {
			continue
		}
		var doc any
		if err := json.Unmarshal([]byte(raw.ManifestJSON), &doc); err != nil {
			continue
		}
		v, err := eval(ctx, doc)
		if err != nil {
			continue
		}
		results = append(results, QueryResult{RowID: raw.ID, Value: v})
	}
	return results, nil
}
