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
		{name: "integer", input: "12", want: 1200},
		{name: "one decimal", input: "12.5", want: 1250},
		{name: "two decimals", input: "12.55", want: 1255},
		{name: "sub-cent rounds", input: "12.555", want: 1256},
		{name: "zero", input: "0", want: 0},
		{name: "whitespace", input: " 9.99 ", want: 999},
		{name: "empty", input: "", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "overflows cents", input: "1e17", wantErr: true},
		{name: "negative overflow", input: "-1e17", wantErr: true},
		{name: "infinity", input: "1e999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		amount Amount
		want   string
	}{
		{1250, "12.5"},
		{1255, "12.55"},
		{1200, "12"},
		{0, "0"},
		{-350, "-3.5"},
	}

	for _, tt := range tests {
		data, err := json.Marshal(tt.amount)
		if err != nil {
			t.Fatalf("marshal %d: %v", tt.amount, err)
		}
		if string(data) != tt.want {
			t.Errorf("marshal %d = %s, want %s", tt.amount, data, tt.want)
		}
	}
}

func TestUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Amount
		wantErr bool
	}{
		{name: "number", input: `12.5`, want: 1250},
		{name: "string", input: `"12.5"`, want: 1250},
		{name: "integer number", input: `7`, want: 700},
		{name: "null", input: `null`, want: 0},
		{name: "empty string", input: `""`, want: 0},
		{name: "garbage", input: `"pizza"`, wantErr: true},
		{name: "overflows cents", input: `1e17`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			err := json.Unmarshal([]byte(tt.input), &a)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a != tt.want {
				t.Errorf("unmarshal %s = %d, want %d", tt.input, a, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	// A price posted as 12.5 must come back as exactly 12.5.
	var a Amount
	if err := json.Unmarshal([]byte(`12.5`), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "12.5" {
		t.Errorf("round trip = %s, want 12.5", out)
	}
}
