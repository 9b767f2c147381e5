package market

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"wealth/internal/cache"
	"wealth/internal/core"
)

type fakeYahoo struct {
	mu     sync.Mutex
	calls  map[string]int
	prices map[string]float64
	status int
}

func (f *fakeYahoo) handler(w http.ResponseWriter, r *http.Request) {
	symbol := strings.TrimPrefix(r.URL.Path, "/v8/finance/chart/")
	f.mu.Lock()
	f.calls[symbol]++
	status := f.status
	price, ok := f.prices[symbol]
	f.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}
	if !ok {
		fmt.Fprint(w, `{"chart":{"result":[]}}`)
		return
	}
	fmt.Fprint(w, chartBody(fmt.Sprintf(`{"symbol":%q,"regularMarketPrice":%v,"currency":"USD"}`, symbol, price)))
}

func (f *fakeYahoo) count(symbol string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[symbol]
}

func newMetalsFixture(t *testing.T) (*fakeYahoo, *MetalsGateway, *time.Time) {
	t.Helper()
	fake := &fakeYahoo{
		calls:  map[string]int{},
		prices: map[string]float64{"GC=F": 2000, "SI=F": 25, "USDTRY=X": 32},
	}
	client := newUpstream(t, fake.handler)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	gw := NewMetalsGateway(client, cache.NewTTLCache[MetalPrice](15*time.Minute, clock))
	gw.now = clock
	return fake, gw, &now
}

func TestConvertToTRY(t *testing.T) {
	p := ConvertToTRY(core.Gold, 2000, 32, time.Time{})
	if !approx(p.PricePerGram, 2000*32/28.3495) || !approx(p.PricePerGram, 2257.54) {
		t.Errorf("pricePerGram = %v", p.PricePerGram)
	}
	if p.PricePerOunce != 64000 || p.Currency != "TRY" || p.UsdPerOunce != 2000 || p.UsdToTry != 32 {
		t.Errorf("price = %+v", p)
	}
}

func TestMetalsGateway_Gold(t *testing.T) {
	_, gw, _ := newMetalsFixture(t)

	p, err := gw.Price(context.Background(), core.Gold)
	if err != nil {
		t.Fatal(err)
	}
	if p.Metal != core.Gold || !approx(p.PricePerGram, 2257.54) {
		t.Errorf("price = %+v", p)
	}
}

func TestMetalsGateway_CachesWithinTTL(t *testing.T) {
	fake, gw, now := newMetalsFixture(t)
	ctx := context.Background()

	if _, err := gw.Price(ctx, core.Gold); err != nil {
		t.Fatal(err)
	}
	*now = now.Add(14 * time.Minute)
	if _, err := gw.Price(ctx, core.Gold); err != nil {
		t.Fatal(err)
	}
	if fake.count("GC=F") != 1 || fake.count("USDTRY=X") != 1 {
		t.Fatalf("calls within TTL: gold=%d fx=%d", fake.count("GC=F"), fake.count("USDTRY=X"))
	}

	*now = now.Add(2 * time.Minute)
	if _, err := gw.Price(ctx, core.Gold); err != nil {
		t.Fatal(err)
	}
	if fake.count("GC=F") != 2 || fake.count("USDTRY=X") != 2 {
		t.Errorf("calls after TTL: gold=%d fx=%d", fake.count("GC=F"), fake.count("USDTRY=X"))
	}
}

func TestMetalsGateway_MetalsCacheSeparately(t *testing.T) {
	fake, gw, _ := newMetalsFixture(t)
	ctx := context.Background()

	gw.Price(ctx, core.Gold)
	s, err := gw.Price(ctx, core.Silver)
	if err != nil {
		t.Fatal(err)
	}
	if s.Metal != core.Silver || !approx(s.PricePerOunce, 800) {
		t.Errorf("silver = %+v", s)
	}
	if fake.count("SI=F") != 1 || fake.count("USDTRY=X") != 2 {
		t.Errorf("silver=%d fx=%d", fake.count("SI=F"), fake.count("USDTRY=X"))
	}
}

func TestMetalsGateway_FailureIsWrapped(t *testing.T) {
	fake, gw, _ := newMetalsFixture(t)
	fake.status = http.StatusServiceUnavailable

	_, err := gw.Price(context.Background(), core.Gold)
	var mpe *MetalPriceError
	if !errors.As(err, &mpe) || mpe.Metal != core.Gold {
		t.Fatalf("err = %v", err)
	}
	if !errors.Is(err, ErrUpstreamUnreachable) {
		t.Errorf("cause lost: %v", err)
	}
	if !strings.HasPrefix(err.Error(), "failed to fetch GOLD price: ") {
		t.Errorf("message = %q", err.Error())
	}

	fake.status = 0
	if _, err := gw.Price(context.Background(), core.Gold); err != nil {
		t.Errorf("failure should not be cached: %v", err)
	}
}

func TestMetalsGateway_UnknownMetal(t *testing.T) {
	_, gw, _ := newMetalsFixture(t)
	if _, err := gw.Price(context.Background(), core.Metal("COPPER")); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("err = %v", err)
	}
}
