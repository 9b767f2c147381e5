package market

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"wealth/internal/cache"
	"wealth/internal/core"
)

const (
	GramsPerTroyOunce = 28.3495

	GoldCacheKey   = "GOLD_PRICE"
	SilverCacheKey = "SILVER_PRICE"

	goldSymbol   = "GC=F"
	silverSymbol = "SI=F"
	usdTrySymbol = "USDTRY=X"
)

// MetalPrice is a metal's spot price converted to Turkish lira.
type MetalPrice struct {
	Metal         core.Metal `json:"metal"`
	PricePerGram  float64    `json:"pricePerGram"`
	PricePerOunce float64    `json:"pricePerOunce"`
	Currency      string     `json:"currency"`
	UsdPerOunce   float64    `json:"usdPerOunce"`
	UsdToTry      float64    `json:"usdToTry"`
	LastUpdated   time.Time  `json:"lastUpdated"`
}

// QuoteSource is the part of the Yahoo client the metals gateway needs.
type QuoteSource interface {
	Quote(ctx context.Context, symbol string) (Quote, error)
}

// MetalsGateway prices gold and silver from futures quotes and the USD/TRY
// rate, caching each metal under its own key.
type MetalsGateway struct {
	quotes QuoteSource
	cache  cache.Cache[MetalPrice]
	now    func() time.Time
}

func NewMetalsGateway(quotes QuoteSource, c cache.Cache[MetalPrice]) *MetalsGateway {
	return &MetalsGateway{quotes: quotes, cache: c, now: time.Now}
}

func metalSymbol(m core.Metal) (symbol, cacheKey string, ok bool) {
	switch m {
	case core.Gold:
		return goldSymbol, GoldCacheKey, true
	case core.Silver:
		return silverSymbol, SilverCacheKey, true
	}
	return "", "", false
}

// Price returns the cached price for m or fetches the metal and FX quotes
// concurrently. Any failure is returned as a *MetalPriceError.
func (g *MetalsGateway) Price(ctx context.Context, m core.Metal) (MetalPrice, error) {
	symbol, key, ok := metalSymbol(m)
	if !ok {
		return MetalPrice{}, &MetalPriceError{Metal: m, Err: core.ErrInvalidInput}
	}

	if p, hit := g.cache.Get(ctx, key); hit {
		return p, nil
	}

	var metalQuote, fxQuote Quote
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		q, err := g.quotes.Quote(gctx, symbol)
		metalQuote = q
		return err
	})
	eg.Go(func() error {
		q, err := g.quotes.Quote(gctx, usdTrySymbol)
		fxQuote = q
		return err
	})
	if err := eg.Wait(); err != nil {
		return MetalPrice{}, &MetalPriceError{Metal: m, Err: err}
	}

	p := ConvertToTRY(m, metalQuote.RegularMarketPrice, fxQuote.RegularMarketPrice, g.now())
	g.cache.Set(ctx, key, p)
	return p, nil
}

// ConvertToTRY turns a USD per troy ounce price into lira per ounce and per gram.
func ConvertToTRY(m core.Metal, usdPerOunce, usdToTry float64, at time.Time) MetalPrice {
	perOunce := usdPerOunce * usdToTry
	return MetalPrice{
		Metal:         m,
		PricePerGram:  perOunce / GramsPerTroyOunce,
		PricePerOunce: perOunce,
		Currency:      string(core.TRY),
		UsdPerOunce:   usdPerOunce,
		UsdToTry:      usdToTry,
		LastUpdated:   at,
	}
}
