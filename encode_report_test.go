package fmstats

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestEncodeReport(t *testing.T) {
	records := []RawRecord{
		active("1", validManifest),
		active("2", `{"entity": `),
	}
	r, err := Process(records, Options{})
	if err != nil {
		t.Fatalf("Process() unexpected error: %v", err)
	}

	var b bytes.Buffer
	if err := EncodeReport(&b, r); err != nil {
		t.Fatalf("EncodeReport() unexpected error: %v", err)
	}

	var got struct {
		RunID       string            `json:"run_id"`
		Reference   string            `json:"reference_currency"`
		Threshold   json.Number       `json:"threshold"`
		Rows        int               `json:"rows"`
		Errors      int               `json:"errors"`
		Reported    map[string]int    `json:"reported"`
		Years       map[string]Totals `json:"years"`
		Diagnostics []string          `json:"diagnostics"`
		Above       []struct {
			ID           string      `json:"id"`
			MaxRequested json.Number `json:"max_requested"`
		} `json:"above_threshold"`
	}
	dec := json.NewDecoder(&b)
	dec.UseNumber()
	if err := dec.Decode(&got); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}

	if _, err := uuid.Parse(got.RunID); err != nil {
		t.Errorf("run_id %q is not a uuid: %v", got.RunID, err)
	}
	if got.Reference != "USD" || got.Threshold != "10000" {
		t.Errorf("got reference %q threshold %q, want USD 10000", got.Reference, got.Threshold)
	}
	if got.Rows != 2 || got.Errors != 1 || len(got.Diagnostics) != 1 {
		t.Errorf("got rows=%d errors=%d diagnostics=%v", got.Rows, got.Errors, got.Diagnostics)
	}
	if got.Reported["income"] != 1 {
		t.Errorf("reported income = %d, want 1", got.Reported["income"])
	}
	if y, ok := got.Years["2023"]; !ok || !y.Income.Equal(D("105")) {
		t.Errorf("years[2023] = %v, want income 105", got.Years["2023"])
	}
	if len(got.Above) != 1 || got.Above[0].ID != "1" || got.Above[0].MaxRequested != "10800" {
		t.Errorf("above_threshold = %v, want row 1 requesting 10800", got.Above)
	}
}
