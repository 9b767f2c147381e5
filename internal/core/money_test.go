package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestCurrencyValidate(t *testing.T) {
	for _, c := range Currencies() {
		if err := c.Validate(); err != nil {
			t.Errorf("%s: %v", c, err)
		}
	}
	for _, c := range []Currency{"", "JPY", "try", "XXX1"} {
		if err := c.Validate(); !errors.Is(err, ErrInvalidCurrency) {
			t.Errorf("%q: expected ErrInvalidCurrency, got %v", c, err)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"12.34", "12.34", false},
		{"12,34", "12.34", false},
		{" 1000 ", "1000", false},
		{"-5", "-5", false},
		{"", "", true},
		{"abc", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(d(tt.want)) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDisplay(t *testing.T) {
	if got := Display(d("1234.5"), USD); got != "$1,234.50" {
		t.Errorf("Display = %q, want $1,234.50", got)
	}
}

func TestDateUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2024-03-15"`, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{`"2024-03-15T10:30:00Z"`, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		var got Date
		if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
			t.Fatalf("%s: %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.in, got.Time, tt.want)
		}
	}

	for _, in := range []string{`"15/03/2024"`, `""`, `"null"`, `20240315`} {
		var bad Date
		if err := json.Unmarshal([]byte(in), &bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("%s: expected ErrInvalidDate, got %v", in, err)
		}
	}

	kept := Date{Time: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)}
	if err := json.Unmarshal([]byte(`null`), &kept); err != nil {
		t.Fatalf("null: %v", err)
	}
	if kept.IsZero() {
		t.Error("null should leave the date untouched")
	}
}
