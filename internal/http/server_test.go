package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"wealth/internal/auth"
	"wealth/internal/core"
	"wealth/internal/market"
	"wealth/internal/storage"
)

type fakeVerifier map[string]auth.Identity

func (f fakeVerifier) Verify(_ context.Context, token string) (auth.Identity, error) {
	id, ok := f[token]
	if !ok {
		return auth.Identity{}, fmt.Errorf("%w: unknown token", auth.ErrInvalidToken)
	}
	return id, nil
}

type fakeMarket struct {
	quote market.Quote
	err   error
	calls int
}

func (f *fakeMarket) Quote(_ context.Context, symbol string) (market.Quote, error) {
	f.calls++
	return f.quote, f.err
}

func (f *fakeMarket) Search(_ context.Context, query string) ([]market.SearchResult, error) {
	f.calls++
	return []market.SearchResult{{Symbol: strings.ToUpper(query)}}, f.err
}

func (f *fakeMarket) Historical(_ context.Context, symbol string, period1, period2 int64, interval string) (json.RawMessage, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(fmt.Sprintf(`{"symbol":%q,"interval":%q}`, symbol, interval)), nil
}

type fakeMetals struct {
	price market.MetalPrice
	err   error
}

func (f fakeMetals) Price(_ context.Context, m core.Metal) (market.MetalPrice, error) {
	if f.err != nil {
		return market.MetalPrice{}, &market.MetalPriceError{Metal: m, Err: f.err}
	}
	p := f.price
	p.Metal = m
	return p, nil
}

type testEnv struct {
	srv    *Server
	market *fakeMarket
}

func newTestServer(t *testing.T, metals MetalPricer) *testEnv {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "wealth.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	if metals == nil {
		metals = fakeMetals{price: market.MetalPrice{PricePerGram: 2000, Currency: "TRY"}}
	}
	fm := &fakeMarket{quote: market.Quote{Symbol: "AAPL"}}
	srv := NewServer(Config{
		Addr:         ":0",
		FrontendURL:  "http://localhost:3000/",
		RateLimitRPM: 10000,
		Location:     time.UTC,
	}, Deps{
		Store: repo,
		Verifier: fakeVerifier{
			"alice-token": {ID: "alice", Email: "alice@example.com"},
			"bob-token":   {ID: "bob", Email: "bob@example.com"},
		},
		Market: fm,
		Metals: metals,
	})
	t.Cleanup(func() { srv.Shutdown(context.Background()) })
	return &testEnv{srv: srv, market: fm}
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.srv.Handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return v
}

func expectError(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rr.Code, status, rr.Body.String())
	}
	body := decode[ErrorBody](t, rr)
	if body.StatusCode != status || body.Message != message {
		t.Fatalf("body = %+v, want statusCode %d message %q", body, status, message)
	}
}

func TestHealthIsPublic(t *testing.T) {
	env := newTestServer(t, nil)

	rr := env.do(t, http.MethodGet, "/health", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	resp := decode[healthResponse](t, rr)
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestServer(t, nil)

	for _, path := range []string{"/stocks", "/cash/summary", "/dashboard/overview", "/yahoo-finance/quote/AAPL"} {
		t.Run(path, func(t *testing.T) {
			expectError(t, env.do(t, http.MethodGet, path, "", ""), http.StatusUnauthorized, "No token provided")
			expectError(t, env.do(t, http.MethodGet, path, "forged", ""), http.StatusUnauthorized, "Invalid token")
		})
	}
}

func TestAuthMeRecordsUser(t *testing.T) {
	env := newTestServer(t, nil)

	rr := env.do(t, http.MethodGet, "/auth/me", "alice-token", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	user := decode[core.User](t, rr)
	if user.ID != "alice" || user.Email != "alice@example.com" {
		t.Errorf("user = %+v", user)
	}
}

func TestStockLifecycleIsOwnerScoped(t *testing.T) {
	env := newTestServer(t, nil)

	rr := env.do(t, http.MethodPost, "/stocks", "alice-token",
		`{"symbol":"AAPL","quantity":10,"purchasePrice":150.5,"purchaseDate":"2024-01-15"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rr.Code, rr.Body.String())
	}
	stock := decode[core.Stock](t, rr)
	if stock.ID == "" || stock.UserID != "alice" || stock.Currency != core.TRY {
		t.Fatalf("created stock = %+v", stock)
	}
	path := "/stocks/" + stock.ID

	expectError(t, env.do(t, http.MethodGet, path, "bob-token", ""), http.StatusNotFound, "Stock not found")
	expectError(t, env.do(t, http.MethodPatch, path, "bob-token", `{"quantity":1}`), http.StatusNotFound, "Stock not found")
	expectError(t, env.do(t, http.MethodDelete, path, "bob-token", ""), http.StatusNotFound, "Stock not found")

	rr = env.do(t, http.MethodGet, "/stocks", "bob-token", "")
	if rr.Code != http.StatusOK || strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("bob list = %d %s, want empty array", rr.Code, rr.Body.String())
	}

	rr = env.do(t, http.MethodPatch, path, "alice-token", `{"quantity":12}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body %s", rr.Code, rr.Body.String())
	}
	updated := decode[core.Stock](t, rr)
	if !updated.Quantity.Equal(decimal.NewFromInt(12)) || updated.Symbol != "AAPL" {
		t.Errorf("updated = %+v", updated)
	}

	rr = env.do(t, http.MethodDelete, path, "alice-token", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rr.Code)
	}
	if msg := decode[messageBody](t, rr); msg.Message != "Stock deleted successfully" {
		t.Errorf("message = %q", msg.Message)
	}
	expectError(t, env.do(t, http.MethodDelete, path, "alice-token", ""), http.StatusNotFound, "Stock not found")
}

func TestPatchNullClearsOptionalField(t *testing.T) {
	env := newTestServer(t, nil)

	rr := env.do(t, http.MethodPost, "/stocks", "alice-token",
		`{"symbol":"AAPL","name":"Apple","broker":"IBKR","quantity":1,"purchasePrice":1,"purchaseDate":"2024-01-15"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rr.Code, rr.Body.String())
	}
	path := "/stocks/" + decode[core.Stock](t, rr).ID

	rr = env.do(t, http.MethodPatch, path, "alice-token", `{"name":null}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body %s", rr.Code, rr.Body.String())
	}
	got := decode[core.Stock](t, env.do(t, http.MethodGet, path, "alice-token", ""))
	if got.Name != nil {
		t.Errorf("name = %q, want null", *got.Name)
	}
	if got.Broker == nil || *got.Broker != "IBKR" {
		t.Errorf("broker = %v, want IBKR", got.Broker)
	}

	rr = env.do(t, http.MethodPost, "/loans", "alice-token",
		`{"name":"Car","principalAmount":10000,"remainingBalance":4000,"startDate":"2024-01-01"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create loan status = %d, body %s", rr.Code, rr.Body.String())
	}
	loanPath := "/loans/" + decode[core.Loan](t, rr).ID
	rr = env.do(t, http.MethodPatch, loanPath, "alice-token", `{"remainingBalance":null}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("patch loan status = %d, body %s", rr.Code, rr.Body.String())
	}
	if loan := decode[core.Loan](t, rr); loan.RemainingBalance != nil {
		t.Errorf("remainingBalance = %v, want null", loan.RemainingBalance)
	}
}

func TestCreateValidation(t *testing.T) {
	env := newTestServer(t, nil)

	tests := []struct {
		name    string
		path    string
		body    string
		message string
	}{
		{"missing body", "/stocks", "", "Request body is required"},
		{"missing symbol", "/stocks", `{"quantity":1,"purchasePrice":1,"purchaseDate":"2024-01-01"}`, "symbol is required"},
		{"bad currency", "/cash", `{"accountName":"Main","balance":1,"currency":"JPY"}`, "currency must be one of TRY, USD, EUR, GBP, CHF"},
		{"bad category", "/expenses", `{"amount":1,"category":"TOYS","date":"2024-01-01"}`, "category has invalid value TOYS"},
		{"empty purchase date", "/stocks", `{"symbol":"AAPL","quantity":1,"purchasePrice":1,"purchaseDate":""}`, `Invalid request body: invalid date: ""`},
		{"empty expense date", "/expenses", `{"amount":1,"category":"FOOD","date":""}`, `Invalid request body: invalid date: ""`},
		{"null purchase date", "/stocks", `{"symbol":"AAPL","quantity":1,"purchasePrice":1,"purchaseDate":null}`, "purchaseDate is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, env.do(t, http.MethodPost, tt.path, "alice-token", tt.body), http.StatusBadRequest, tt.message)
		})
	}
}

func TestCashSummary(t *testing.T) {
	env := newTestServer(t, nil)

	rr := env.do(t, http.MethodPost, "/cash", "alice-token", `{"accountName":"Main","balance":1000,"currency":"USD"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rr.Code, rr.Body.String())
	}

	rr = env.do(t, http.MethodGet, "/cash/summary", "alice-token", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("summary status = %d", rr.Code)
	}
	sum := decode[core.CashSummary](t, rr)
	if sum.TotalAccounts != 1 || sum.TotalBalance != 1000 || sum.ByCurrency["USD"] != 1000 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestExpenseSummaryAndFilters(t *testing.T) {
	env := newTestServer(t, nil)

	for _, body := range []string{
		`{"amount":150,"category":"FOOD","date":"2024-03-05","paymentMethod":"CASH"}`,
		`{"amount":50,"category":"RENT","date":"2024-03-10","isRecurring":true,"frequency":"MONTHLY"}`,
		`{"amount":999,"category":"FOOD","date":"2024-04-01"}`,
	} {
		if rr := env.do(t, http.MethodPost, "/expenses", "alice-token", body); rr.Code != http.StatusCreated {
			t.Fatalf("create status = %d, body %s", rr.Code, rr.Body.String())
		}
	}

	rr := env.do(t, http.MethodGet, "/expenses/summary?month=3&year=2024", "alice-token", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("summary status = %d, body %s", rr.Code, rr.Body.String())
	}
	sum := decode[core.ExpenseSummary](t, rr)
	if sum.Total != 200 || sum.Recurring != 50 || sum.NonRecurring != 150 || sum.Count != 2 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.Month != 3 || sum.Year != 2024 {
		t.Errorf("period = %d/%d, want 3/2024", sum.Month, sum.Year)
	}

	rr = env.do(t, http.MethodGet, "/expenses?category=FOOD&startDate=2024-03-01&endDate=2024-03-31", "alice-token", "")
	if got := decode[[]core.Expense](t, rr); len(got) != 1 {
		t.Errorf("filtered expenses = %d, want 1", len(got))
	}

	expectError(t, env.do(t, http.MethodGet, "/expenses/summary?month=13", "alice-token", ""),
		http.StatusBadRequest, "invalid input: month 13")
	if rr := env.do(t, http.MethodGet, "/expenses?category=TOYS", "alice-token", ""); rr.Code != http.StatusBadRequest {
		t.Errorf("unknown category status = %d, want 400", rr.Code)
	}
}

func TestExpenseSummaryDefaultsToCurrentMonth(t *testing.T) {
	env := newTestServer(t, nil)
	today := time.Now().UTC().Format("2006-01-02")

	env.do(t, http.MethodPost, "/expenses", "alice-token",
		`{"amount":50,"category":"UTILITIES","date":"`+today+`","isRecurring":true}`)
	env.do(t, http.MethodPost, "/expenses", "alice-token",
		`{"amount":150,"category":"SHOPPING","date":"`+today+`"}`)

	sum := decode[core.ExpenseSummary](t, env.do(t, http.MethodGet, "/expenses/summary", "alice-token", ""))
	if sum.Total != 200 || sum.Recurring != 50 || sum.NonRecurring != 150 || sum.Count != 2 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestLoansStatusFilter(t *testing.T) {
	env := newTestServer(t, nil)

	for _, body := range []string{
		`{"name":"Car","principalAmount":20000,"startDate":"2023-01-01"}`,
		`{"name":"Phone","principalAmount":900,"startDate":"2022-01-01","status":"PAID_OFF"}`,
	} {
		if rr := env.do(t, http.MethodPost, "/loans", "alice-token", body); rr.Code != http.StatusCreated {
			t.Fatalf("create status = %d, body %s", rr.Code, rr.Body.String())
		}
	}

	rr := env.do(t, http.MethodGet, "/loans?status=ACTIVE", "alice-token", "")
	loans := decode[[]core.Loan](t, rr)
	if len(loans) != 1 || loans[0].Name != "Car" {
		t.Errorf("active loans = %+v", loans)
	}
	if rr := env.do(t, http.MethodGet, "/loans?status=LATE", "alice-token", ""); rr.Code != http.StatusBadRequest {
		t.Errorf("unknown status = %d, want 400", rr.Code)
	}
}

func TestDashboardRoutes(t *testing.T) {
	env := newTestServer(t, nil)

	if rr := env.do(t, http.MethodGet, "/dashboard/overview", "alice-token", ""); rr.Code != http.StatusOK {
		t.Fatalf("overview status = %d, body %s", rr.Code, rr.Body.String())
	}

	env.do(t, http.MethodPost, "/incomes", "alice-token", `{"amount":5000,"type":"SALARY","date":"2024-03-01"}`)
	env.do(t, http.MethodPost, "/expenses", "alice-token", `{"amount":40,"category":"FOOD","date":"2024-03-02"}`)

	rr := env.do(t, http.MethodGet, "/dashboard/transactions?limit=abc", "alice-token", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("transactions status = %d", rr.Code)
	}
	if got := decode[[]core.Transaction](t, rr); len(got) != 2 {
		t.Errorf("transactions = %d, want 2", len(got))
	}
}

func TestMetalPriceRoutes(t *testing.T) {
	env := newTestServer(t, nil)

	rr := env.do(t, http.MethodGet, "/precious-metals/gold/price", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	price := decode[market.MetalPrice](t, rr)
	if price.Metal != core.Gold || price.PricePerGram != 2000 {
		t.Errorf("price = %+v", price)
	}

	failing := newTestServer(t, fakeMetals{err: errors.New("upstream down")})
	expectError(t, failing.do(t, http.MethodGet, "/precious-metals/silver/price", "", ""),
		http.StatusInternalServerError, "Failed to fetch SILVER price: upstream down")

	outage := newTestServer(t, fakeMetals{err: fmt.Errorf("%w: http 502", market.ErrUpstreamUnreachable)})
	expectError(t, outage.do(t, http.MethodGet, "/precious-metals/gold/price", "", ""),
		http.StatusInternalServerError, "Failed to fetch GOLD price: Yahoo Finance API error")
}

func TestMarketErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"unknown symbol", fmt.Errorf("quote XYZ: %w", market.ErrSymbolNotFound), http.StatusNotFound, "Symbol not found"},
		{"upstream down", fmt.Errorf("get: %w", market.ErrUpstreamUnreachable), http.StatusBadGateway, "Yahoo Finance API error"},
		{"malformed", market.ErrMalformedResponse, http.StatusInternalServerError, "Failed to get quote"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestServer(t, nil)
			env.market.err = tt.err
			expectError(t, env.do(t, http.MethodGet, "/yahoo-finance/quote/XYZ", "alice-token", ""), tt.status, tt.message)
		})
	}
}

func TestMarketQueries(t *testing.T) {
	env := newTestServer(t, nil)

	rr := env.do(t, http.MethodGet, "/yahoo-finance/search?q=%20", "alice-token", "")
	if strings.TrimSpace(rr.Body.String()) != "[]" || env.market.calls != 0 {
		t.Errorf("blank search = %s after %d calls", rr.Body.String(), env.market.calls)
	}

	rr = env.do(t, http.MethodGet, "/yahoo-finance/search?q=aapl", "alice-token", "")
	if got := decode[[]market.SearchResult](t, rr); len(got) != 1 || got[0].Symbol != "AAPL" {
		t.Errorf("search = %+v", got)
	}

	expectError(t, env.do(t, http.MethodGet, "/yahoo-finance/historical/AAPL?period1=x", "alice-token", ""),
		http.StatusBadRequest, "period1 and period2 must be unix timestamps")

	rr = env.do(t, http.MethodGet, "/yahoo-finance/historical/AAPL?period1=1700000000&period2=1710000000", "alice-token", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"interval":"1d"`) {
		t.Errorf("historical = %d %s", rr.Code, rr.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	env := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/stocks", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	env.srv.Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow origin = %q", got)
	}
}

func TestUnknownRoute(t *testing.T) {
	env := newTestServer(t, nil)
	expectError(t, env.do(t, http.MethodGet, "/nope", "", ""), http.StatusNotFound, "Cannot GET /nope")
}
