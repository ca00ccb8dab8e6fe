package agent

import (
	"context"
	"errors"

	"github.com/etnz/fmstats"
	"google.golang.org/genai"
)

// DefaultModel is the model used by the reviewer.
const DefaultModel = "gemini-2.5-flash"

// NewReviewer returns an expert reviewing 'report', a rendered funding report, and
// able to query the manifests of 'records' with JSONPath.
func NewReviewer(report string, records []fmstats.RawRecord) *Expert {
	query := QueryFunc(records)
	return &Expert{
		Name:      "reviewer",
		ModelName: DefaultModel,
		Library:   NewLibrary(query),
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: Declarations(query)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
You are reviewing funding manifests submitted to a fund supporting open source
projects. The fund is looking to support entities requesting between 10k and 100k
USD a year.

Below is the statistics report of all the manifests. Amounts are normalized to USD
using approximate exchange rates. Answer the user's questions about it, be concise,
and use the query_manifests function to look into individual manifests when the
report is not enough.

` + report}}},
		},
	}
}

// QueryFunc declares fmstats.Query on 'records' as the "query_manifests" function.
func QueryFunc(records []fmstats.RawRecord) *Func {
	const name = "query_manifests"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "Evaluates a JSONPath expression against every active funding manifest, and returns the non empty results per manifest id.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"path": {
						Type:        genai.TypeString,
						Description: "The JSONPath expression, e.g. $.entity.name or $.funding.plans[*].amount",
					},
				},
				Required: []string{"path"},
			},
		},
		Call: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			path, ok := args["path"].(string)
			if !ok || path == "" {
				return errorResponse(id, name, errors.New("missing path argument"))
			}
			results, err := fmstats.Query(ctx, records, path)
			if err != nil {
				return errorResponse(id, name, err)
			}
			values := make(map[string]any, len(results))
			for _, r := range results {
				values[r.RowID] = r.Value
			}
			return &genai.FunctionResponse{
				ID:       id,
				Name:     name,
				Response: map[string]any{"output": values},
			}
		},
	}
}
