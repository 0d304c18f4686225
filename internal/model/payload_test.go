package model

import (
	"encoding/json"
	"testing"
)

func TestTransactionDecodeAndInputs(t *testing.T) {
	raw := `{
		"to": "0x5efBb12F01f27E1A1A3B11bA9e8Fe5F23BeA31E3",
		"value": "0",
		"contractMethod": {"name": "addGauge", "inputs": []},
		"contractInputsValues": {"gauge": "0xabc", "weight": 12}
	}`

	var tx Transaction
	if err := json.Unmarshal([]byte(raw), &tx); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if tx.MethodName() != "addGauge" {
		t.Fatalf("method mismatch: %q", tx.MethodName())
	}
	if got, ok := tx.Input("gauge"); !ok || got != "0xabc" {
		t.Fatalf("gauge input mismatch: %q %v", got, ok)
	}
	if got, ok := tx.Input("weight"); !ok || got != "12" {
		t.Fatalf("weight input mismatch: %q %v", got, ok)
	}
	if _, ok := tx.Input("rootGauge"); ok {
		t.Fatalf("unexpected rootGauge input")
	}
}

func TestTransactionWithoutMethod(t *testing.T) {
	var tx Transaction
	if err := json.Unmarshal([]byte(`{"to": "0x1", "data": "0x"}`), &tx); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if tx.MethodName() != "" {
		t.Fatalf("expected empty method name")
	}
	if _, ok := tx.Input("target"); ok {
		t.Fatalf("expected no inputs")
	}
}

func TestReportRowTableValuesOrder(t *testing.T) {
	row := ReportRow{
		Function:     "f",
		PoolID:       "id",
		Symbol:       "sym",
		PoolAddress:  "pool",
		AFactor:      "a",
		GaugeAddress: "gauge",
		Type:         "type",
		Cap:          "cap",
		Style:        "style",
	}
	values := row.TableValues()
	if len(values) != len(TableColumns) {
		t.Fatalf("column count mismatch: %d != %d", len(values), len(TableColumns))
	}
	want := []string{"f", "id", "sym", "pool", "a", "gauge", "type", "cap", "style"}
	for i := range want {
		if values[i] != want[i] {
			t.Fatalf("column %s mismatch: %q != %q", TableColumns[i], values[i], want[i])
		}
	}
}
