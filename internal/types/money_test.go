package types

import (
	"encoding/json"
	"testing"
)

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{6000, "60.00"},
		{8750, "87.50"},
		{-150, "-1.50"},
	}
	for _, tc := range cases {
		got := NewMoney(tc.cents, "NZD").String()
		if got != tc.want {
			t.Errorf("String(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestParseCents(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"60.00", 6000, false},
		{"87.5", 8750, false},
		{"7", 700, false},
		{"-1.50", -150, false},
		{".25", 25, false},
		{"60.005", 0, true},
		{"", 0, true},
		{"abc", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseCents(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseCents(%q): expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCents(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	in := NewMoney(8750, "NZD")
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"amount":"87.50","currency":"NZD"}` {
		t.Fatalf("unexpected JSON: %s", data)
	}
	var out Money
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("round trip: got %+v, want %+v", out, in)
	}
}

func TestMoneyUnmarshalRejectsSubCent(t *testing.T) {
	var m Money
	err := json.Unmarshal([]byte(`{"amount":"1.005","currency":"NZD"}`), &m)
	if err == nil {
		t.Fatal("expected sub-cent amount to be rejected")
	}
}
