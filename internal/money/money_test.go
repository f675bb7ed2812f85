package money

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Amount
		wantErr bool
	}{
		{name: "whole dollars", input: "100", want: 10000},
		{name: "two decimals", input: "33.34", want: 3334},
		{name: "one decimal", input: "10.5", want: 1050},
		{name: "zero", input: "0", want: 0},
		{name: "negative", input: "-4.20", want: -420},
		{name: "three decimals rejected", input: "10.005", wantErr: true},
		{name: "garbage rejected", input: "ten dollars", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Parse(%q) = %d cents, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePositive(t *testing.T) {
	if _, err := ParsePositive("0"); err == nil {
		t.Error("expected error for zero amount")
	}
	if _, err := ParsePositive("-1.00"); err == nil {
		t.Error("expected error for negative amount")
	}
	if a, err := ParsePositive("19.99"); err != nil || a != 1999 {
		t.Errorf("ParsePositive(19.99) = %d, %v", a, err)
	}
}

func TestSplitEqually(t *testing.T) {
	tests := []struct {
		name   string
		amount Amount
		n      int
		want   []Amount
	}{
		{name: "even split", amount: 10000, n: 4, want: []Amount{2500, 2500, 2500, 2500}},
		{name: "remainder to first shares", amount: 1000, n: 3, want: []Amount{334, 333, 333}},
		{name: "hundred over three", amount: 10000, n: 3, want: []Amount{3334, 3333, 3333}},
		{name: "single participant", amount: 777, n: 1, want: []Amount{777}},
		{name: "two remainder cents", amount: 1001, n: 3, want: []Amount{334, 334, 333}},
		{name: "more shares than cents", amount: 2, n: 3, want: []Amount{1, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.amount.SplitEqually(tt.n)
			if err != nil {
				t.Fatalf("SplitEqually failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d shares, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("share %d = %d, want %d", i, got[i], tt.want[i])
				}
			}
			if Sum(got) != tt.amount {
				t.Errorf("shares sum to %d, want %d", Sum(got), tt.amount)
			}
		})
	}

	if _, err := Amount(100).SplitEqually(0); err == nil {
		t.Error("expected error for zero participants")
	}
}

// Every split must reconcile to the original total, for any count.
func TestSplitEquallyAlwaysSumsBack(t *testing.T) {
	amounts := []Amount{1, 99, 100, 1000, 10000, 99999, 123457}
	for _, a := range amounts {
		for n := 1; n <= 12; n++ {
			shares, err := a.SplitEqually(n)
			if err != nil {
				t.Fatalf("SplitEqually(%d, %d) failed: %v", a, n, err)
			}
			if Sum(shares) != a {
				t.Errorf("amount %d over %d participants: shares sum to %d", a, n, Sum(shares))
			}
			// No share may differ from another by more than one cent.
			for i := 1; i < len(shares); i++ {
				if shares[i-1]-shares[i] > 1 || shares[i] > shares[i-1] {
					t.Errorf("amount %d over %d: uneven shares %v", a, n, shares)
				}
			}
		}
	}
}

func TestString(t *testing.T) {
	if got := Amount(3334).String(); got != "33.34" {
		t.Errorf("String() = %q, want \"33.34\"", got)
	}
	if got := Amount(100).String(); got != "1.00" {
		t.Errorf("String() = %q, want \"1.00\"", got)
	}
	if got := Zero.String(); got != "0.00" {
		t.Errorf("String() = %q, want \"0.00\"", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	out, err := json.Marshal(Amount(1050))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != `"10.50"` {
		t.Errorf("Marshal = %s, want \"10.50\"", out)
	}

	var fromString Amount
	if err := json.Unmarshal([]byte(`"33.34"`), &fromString); err != nil {
		t.Fatalf("Unmarshal string failed: %v", err)
	}
	if fromString != 3334 {
		t.Errorf("Unmarshal string = %d, want 3334", fromString)
	}

	var fromNumber Amount
	if err := json.Unmarshal([]byte(`100`), &fromNumber); err != nil {
		t.Fatalf("Unmarshal number failed: %v", err)
	}
	if fromNumber != 10000 {
		t.Errorf("Unmarshal number = %d, want 10000", fromNumber)
	}
}
