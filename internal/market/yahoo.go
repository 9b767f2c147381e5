package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

const (
	DefaultBaseURL = "https://query1.finance.yahoo.com"
	userAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Quote is the current market snapshot for one symbol.
type Quote struct {
	Symbol                     string  `json:"symbol"`
	Name                       string  `json:"name"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	PreviousClose              float64 `json:"previousClose"`
	RegularMarketChange        float64 `json:"regularMarketChange"`
	RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
	Currency                   string  `json:"currency"`
	MarketState                string  `json:"marketState"`
}

type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Exchange string `json:"exchange"`
}

// YahooClient talks to the public Yahoo Finance chart and search endpoints.
type YahooClient struct {
	baseURL string
	http    *http.Client
}

// NewYahooClient creates a client. An empty baseURL selects DefaultBaseURL
// and a nil httpClient gets an 8 second timeout.
func NewYahooClient(baseURL string, httpClient *http.Client) *YahooClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 8 * time.Second}
	}
	return &YahooClient{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Quote fetches the latest daily chart for symbol and reads its meta block.
func (c *YahooClient) Quote(ctx context.Context, symbol string) (Quote, error) {
	q := url.Values{"interval": {"1d"}, "range": {"1d"}}
	var body any
	if err := c.getJSON(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), q.Encode(), &body); err != nil {
		return Quote{}, err
	}
	if err := requireResult(body); err != nil {
		return Quote{}, err
	}

	v, err := jsonpath.Get("$.chart.result[0].meta", body)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	meta, ok := v.(map[string]any)
	if !ok {
		return Quote{}, fmt.Errorf("%w: chart meta is not an object", ErrMalformedResponse)
	}

	price, ok := number(meta, "regularMarketPrice")
	if !ok {
		return Quote{}, fmt.Errorf("%w: missing regularMarketPrice", ErrMalformedResponse)
	}
	sym := firstString(meta, "symbol")
	if sym == "" {
		sym = symbol
	}
	prev, _ := number(meta, "previousClose", "chartPreviousClose")

	quote := Quote{
		Symbol:             sym,
		Name:               firstString(meta, "longName", "shortName"),
		RegularMarketPrice: price,
		PreviousClose:      prev,
		Currency:           firstString(meta, "currency"),
		MarketState:        firstString(meta, "marketState"),
	}
	if quote.Name == "" {
		quote.Name = sym
	}
	quote.RegularMarketChange = price - prev
	if prev != 0 {
		quote.RegularMarketChangePercent = quote.RegularMarketChange / prev * 100
	}
	return quote, nil
}

// Search looks up symbols by ticker or name. A blank query returns an empty
// list without contacting the upstream.
func (c *YahooClient) Search(ctx context.Context, query string) ([]SearchResult, error) {
	results := []SearchResult{}
	if strings.TrimSpace(query) == "" {
		return results, nil
	}

	q := url.Values{"q": {query}, "quotesCount": {"10"}, "newsCount": {"0"}}
	var body any
	if err := c.getJSON(ctx, "/v1/finance/search", q.Encode(), &body); err != nil {
		return nil, err
	}

	v, err := jsonpath.Get("$.quotes", body)
	if err != nil {
		// No quotes key at all means no hits.
		return results, nil
	}
	hits, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: quotes is not a list", ErrMalformedResponse)
	}
	for _, h := range hits {
		m, ok := h.(map[string]any)
		if !ok {
			continue
		}
		sym := firstString(m, "symbol")
		r := SearchResult{
			Symbol:   sym,
			Name:     firstString(m, "shortname", "longname"),
			Type:     firstString(m, "quoteType"),
			Exchange: firstString(m, "exchange"),
		}
		if r.Name == "" {
			r.Name = sym
		}
		if r.Type == "" {
			r.Type = "EQUITY"
		}
		if r.Exchange == "" {
			r.Exchange = "UNKNOWN"
		}
		results = append(results, r)
	}
	return results, nil
}

// Historical returns the first chart result for the given unix-second range
// exactly as the upstream sent it.
func (c *YahooClient) Historical(ctx context.Context, symbol string, period1, period2 int64, interval string) (json.RawMessage, error) {
	if interval == "" {
		interval = "1d"
	}
	q := "period1=" + strconv.FormatInt(period1, 10) +
		"&period2=" + strconv.FormatInt(period2, 10) +
		"&interval=" + url.QueryEscape(interval) +
		"&includePrePost=true&events=div%7Csplit%7Cearn"

	var body struct {
		Chart struct {
			Result []json.RawMessage `json:"result"`
		} `json:"chart"`
	}
	if err := c.getJSON(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), q, &body); err != nil {
		return nil, err
	}
	if len(body.Chart.Result) == 0 || string(body.Chart.Result[0]) == "null" {
		return nil, ErrSymbolNotFound
	}
	return body.Chart.Result[0], nil
}

func (c *YahooClient) getJSON(ctx context.Context, path, rawQuery string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+rawQuery, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: http %d", ErrUpstreamUnreachable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// requireResult reports ErrSymbolNotFound unless chart.result has an entry.
func requireResult(body any) error {
	v, err := jsonpath.Get("$.chart.result", body)
	if err != nil {
		return ErrSymbolNotFound
	}
	list, ok := v.([]any)
	if !ok || len(list) == 0 || list[0] == nil {
		return ErrSymbolNotFound
	}
	return nil
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func number(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if f, ok := m[k].(float64); ok {
			return f, true
		}
	}
	return 0, false
}
