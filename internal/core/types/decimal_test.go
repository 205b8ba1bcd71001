package types

import (
	"encoding/json"
	"testing"
)

func TestQuantity_Parsing(t *testing.T) {
	tests := []struct {
		in   string
		want Quantity
	}{
		{"0", 0},
		{"1", 10_000},
		{"12", 120_000},
		{"2.5", 25_000},
		{"0.0001", 1},
		{"-3.25", -32_500},
		{"100.12345", 1_001_234}, // extra digits truncated
		{`"7.5"`, 75_000},        // string form accepted
	}

	for _, tt := range tests {
		var q Quantity
		if err := json.Unmarshal([]byte(tt.in), &q); err != nil {
			t.Errorf("unmarshal %q: %v", tt.in, err)
			continue
		}
		if q != tt.want {
			t.Errorf("unmarshal %q = %d, want %d", tt.in, q, tt.want)
		}
	}

	var q Quantity
	if err := json.Unmarshal([]byte(`"abc"`), &q); err == nil {
		t.Error("non-numeric quantity should fail")
	}
}

func TestQuantity_RoundTrip(t *testing.T) {
	for _, q := range []Quantity{0, 1, -1, 10_000, -32_500, 1_234_567} {
		data, err := json.Marshal(q)
		if err != nil {
			t.Fatalf("marshal %d: %v", q, err)
		}

		var back Quantity
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != q {
			t.Errorf("round trip %d -> %s -> %d", q, data, back)
		}
	}
}

func TestQuantity_Arithmetic(t *testing.T) {
	q := NewQuantityFromInt(2)

	if got := q.MulInt(12); got != NewQuantityFromInt(24) {
		t.Errorf("2 * 12 = %s", got)
	}

	half := NewQuantityFromFloat64(2.5)
	if half.String() != "2.5000" {
		t.Errorf("String() = %q", half.String())
	}
	if half.Float64() != 2.5 {
		t.Errorf("Float64() = %v", half.Float64())
	}

	neg := NewQuantityFromInt(-4)
	if !neg.IsNegative() || neg.Abs() != NewQuantityFromInt(4) {
		t.Errorf("Abs(%s) = %s", neg, neg.Abs())
	}

	// Decimal conversion keeps the exact scale.
	if got := half.Decimal().String(); got != "2.5" {
		t.Errorf("Decimal() = %s", got)
	}
}
