package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wealth/internal/core"
)

func TestParseMonthParams(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantMonth *int
		wantYear  *int
		wantErr   bool
	}{
		{name: "both absent", query: ""},
		{name: "month only", query: "month=3", wantMonth: intPtr(3)},
		{name: "both present", query: "month=12&year=2023", wantMonth: intPtr(12), wantYear: intPtr(2023)},
		{name: "blank values are absent", query: "month=&year=%20"},
		{name: "non-numeric month", query: "month=march", wantErr: true},
		{name: "non-numeric year", query: "year=20x4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/incomes/summary?"+tt.query, nil)
			p, err := ParseMonthParams(req)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !equalIntPtr(p.Month, tt.wantMonth) {
				t.Errorf("Month = %v, want %v", p.Month, tt.wantMonth)
			}
			if !equalIntPtr(p.Year, tt.wantYear) {
				t.Errorf("Year = %v, want %v", p.Year, tt.wantYear)
			}
		})
	}
}

func TestQueryEnum(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/expenses?category=FOOD&paymentMethod=CHEQUE", nil)

	cat, err := queryEnum(req, "category", core.ExpenseCategory.Valid)
	if err != nil || cat != core.ExpenseFood {
		t.Errorf("category = %q, %v", cat, err)
	}
	if _, err := queryEnum(req, "paymentMethod", core.PaymentMethod.Valid); err == nil {
		t.Error("expected error for unknown payment method")
	}
	missing, err := queryEnum(req, "type", core.IncomeType.Valid)
	if err != nil || missing != "" {
		t.Errorf("absent enum = %q, %v", missing, err)
	}
}

func TestQueryDate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/incomes?startDate=2024-02-29&endDate=yesterday", nil)

	start, err := queryDate(req, "startDate")
	if err != nil || start.Year() != 2024 || start.Month() != 2 || start.Day() != 29 {
		t.Errorf("startDate = %v, %v", start, err)
	}
	if _, err := queryDate(req, "endDate"); err == nil {
		t.Error("expected error for unparsable date")
	}
}

func TestDecodeBodyValidation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantOK   bool
		contains []string
	}{
		{
			name:   "zero quantity is accepted",
			body:   `{"quantity":0,"purchasePrice":0,"purchaseDate":"2024-01-01"}`,
			wantOK: true,
		},
		{
			name:     "every missing field is reported",
			body:     `{}`,
			contains: []string{"quantity is required", "purchasePrice is required", "purchaseDate is required"},
		},
		{
			name:     "malformed json",
			body:     `{"quantity":`,
			contains: []string{"Invalid request body"},
		},
		{
			name:     "bad date",
			body:     `{"quantity":1,"purchasePrice":1,"purchaseDate":"soon"}`,
			contains: []string{"Invalid request body"},
		},
		{
			name:     "empty date string",
			body:     `{"quantity":1,"purchasePrice":1,"purchaseDate":""}`,
			contains: []string{"Invalid request body", "invalid date"},
		},
		{
			name:     "null date is missing",
			body:     `{"quantity":1,"purchasePrice":1,"purchaseDate":null}`,
			contains: []string{"purchaseDate is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/gold", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			var dst createMetalHoldingRequest

			ok := decodeBody(rr, req, &dst)
			if ok != tt.wantOK {
				t.Fatalf("decodeBody = %v, want %v (body %s)", ok, tt.wantOK, rr.Body.String())
			}
			if tt.wantOK {
				return
			}
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rr.Code)
			}
			for _, part := range tt.contains {
				if !strings.Contains(rr.Body.String(), part) {
					t.Errorf("body %s missing %q", rr.Body.String(), part)
				}
			}
		})
	}
}

func TestDecodePatchNullableFields(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantOK bool
		check  func(t *testing.T, p core.ExpensePatch)
	}{
		{
			name:   "absent keys stay unset",
			body:   `{"amount":5}`,
			wantOK: true,
			check: func(t *testing.T, p core.ExpensePatch) {
				if p.Notes.Set || p.Frequency.Set {
					t.Errorf("unexpected presence: %+v", p)
				}
			},
		},
		{
			name:   "null clears",
			body:   `{"notes":null,"frequency":null,"paymentMethod":null}`,
			wantOK: true,
			check: func(t *testing.T, p core.ExpensePatch) {
				if !p.Notes.Set || p.Notes.Value != nil {
					t.Errorf("notes = %+v, want present null", p.Notes)
				}
				if !p.Frequency.Set || !p.PaymentMethod.Set {
					t.Errorf("enum nulls not recorded: %+v", p)
				}
			},
		},
		{
			name:   "valid frequency",
			body:   `{"frequency":"MONTHLY"}`,
			wantOK: true,
			check: func(t *testing.T, p core.ExpensePatch) {
				if p.Frequency.Value == nil || *p.Frequency.Value != core.Monthly {
					t.Errorf("frequency = %+v", p.Frequency)
				}
			},
		},
		{name: "unknown frequency", body: `{"frequency":"hourly"}`},
		{name: "unknown payment method", body: `{"paymentMethod":"barter"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/expenses/x", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			var dst core.ExpensePatch

			if ok := decodeBody(rr, req, &dst); ok != tt.wantOK {
				t.Fatalf("decodeBody = %v, want %v (body %s)", ok, tt.wantOK, rr.Body.String())
			}
			if tt.check != nil {
				tt.check(t, dst)
			}
		})
	}
}

func intPtr(n int) *int { return &n }

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
