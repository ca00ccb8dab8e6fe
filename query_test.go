package fmstats

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestQuery(t *testing.T) {
	disabled := active("3", validManifest)
	disabled.Status = "disabled"
	records := []RawRecord{
		active("1", validManifest),
		active("2", `{"entity": `),
		disabled,
		active("4", `{"entity": {"role": "owner"}}`),
	}

	got, err := Query(context.Background(), records, "$.entity.type")
	if err != nil {
		t.Fatalf("Query() unexpected error: %v", err)
	}
	want := []QueryResult{{RowID: "1", Value: "organisation"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Query() mismatch (-want +got):\n%s", diff)
	}
}

func TestQuery_Wildcard(t *testing.T) {
	got, err := Query(context.Background(), []RawRecord{active("1", validManifest)}, "$.funding.plans[*].frequency")
	if err != nil {
		t.Fatalf("Query() unexpected error: %v", err)
	}
	want := []QueryResult{{RowID: "1", Value: []any{"monthly", "one-time"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Query() mismatch (-want +got):\n%s", diff)
	}
}

func TestQuery_InvalidExpression(t *testing.T) {
	if _, err := Query(context.Background(), nil, "$.["); err == nil {
		t.Error("Query() expected an error for an invalid expression, got nil")
	}
}
