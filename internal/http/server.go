package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"wealth/internal/auth"
	"wealth/internal/core"
	"wealth/internal/log"
	"wealth/internal/market"
	"wealth/internal/middleware/ratelimit"
	"wealth/internal/middleware/security"
	"wealth/internal/middleware/trace"
	"wealth/internal/services"
	"wealth/internal/storage"
)

// Store is the owner-scoped persistence the handlers read and write.
type Store interface {
	auth.UserStore
	services.SummaryStore
	services.TransactionStore
	Ping(ctx context.Context) error
	GetUser(ctx context.Context, id string) (core.User, error)

	CreateStock(ctx context.Context, s core.Stock) (core.Stock, error)
	GetStock(ctx context.Context, owner, id string) (core.Stock, error)
	UpdateStock(ctx context.Context, owner, id string, patch core.StockPatch) (core.Stock, error)
	DeleteStock(ctx context.Context, owner, id string) error

	CreateETF(ctx context.Context, e core.ETF) (core.ETF, error)
	GetETF(ctx context.Context, owner, id string) (core.ETF, error)
	UpdateETF(ctx context.Context, owner, id string, patch core.ETFPatch) (core.ETF, error)
	DeleteETF(ctx context.Context, owner, id string) error

	CreateEurobond(ctx context.Context, e core.Eurobond) (core.Eurobond, error)
	GetEurobond(ctx context.Context, owner, id string) (core.Eurobond, error)
	UpdateEurobond(ctx context.Context, owner, id string, patch core.EurobondPatch) (core.Eurobond, error)
	DeleteEurobond(ctx context.Context, owner, id string) error

	CreateCashAccount(ctx context.Context, a core.CashAccount) (core.CashAccount, error)
	GetCashAccount(ctx context.Context, owner, id string) (core.CashAccount, error)
	UpdateCashAccount(ctx context.Context, owner, id string, patch core.CashAccountPatch) (core.CashAccount, error)
	DeleteCashAccount(ctx context.Context, owner, id string) error

	CreateMetalHolding(ctx context.Context, m core.Metal, h core.MetalHolding) (core.MetalHolding, error)
	GetMetalHolding(ctx context.Context, m core.Metal, owner, id string) (core.MetalHolding, error)
	UpdateMetalHolding(ctx context.Context, m core.Metal, owner, id string, patch core.MetalHoldingPatch) (core.MetalHolding, error)
	DeleteMetalHolding(ctx context.Context, m core.Metal, owner, id string) error

	CreateLoan(ctx context.Context, l core.Loan) (core.Loan, error)
	GetLoan(ctx context.Context, owner, id string) (core.Loan, error)
	UpdateLoan(ctx context.Context, owner, id string, patch core.LoanPatch) (core.Loan, error)
	DeleteLoan(ctx context.Context, owner, id string) error

	GetIncome(ctx context.Context, owner, id string) (core.Income, error)
	GetExpense(ctx context.Context, owner, id string) (core.Expense, error)
}

var _ Store = (*storage.SQLiteRepository)(nil)

// MarketData is the Yahoo gateway as the handlers use it.
type MarketData interface {
	Quote(ctx context.Context, symbol string) (market.Quote, error)
	Search(ctx context.Context, query string) ([]market.SearchResult, error)
	Historical(ctx context.Context, symbol string, period1, period2 int64, interval string) (json.RawMessage, error)
}

type MetalPricer interface {
	Price(ctx context.Context, m core.Metal) (market.MetalPrice, error)
}

type Config struct {
	Addr         string
	FrontendURL  string
	RateLimitRPM int
	Location     *time.Location
}

type Deps struct {
	Store     Store
	Verifier  auth.Verifier
	Market    MarketData
	Metals    MetalPricer
	Publisher services.EventPublisher
	Logger    *log.Logger
}

type Server struct {
	http.Server

	store        Store
	market       MarketData
	metals       MetalPricer
	transactions *services.TransactionService
	summaries    *services.SummaryService
	dashboard    *services.DashboardService
	logger       *log.Logger

	limiter  *ratelimit.Limiter
	tracer   *trace.Middleware
	detector *security.Detector
	started  time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(cfg Config, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	s := &Server{
		store:        deps.Store,
		market:       deps.Market,
		metals:       deps.Metals,
		transactions: services.NewTransactionService(deps.Store, deps.Publisher, logger.Logger),
		summaries:    services.NewSummaryService(deps.Store, cfg.Location),
		dashboard:    services.NewDashboardService(deps.Store, cfg.Location),
		logger:       logger,
		limiter:      ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: cfg.RateLimitRPM}),
		detector:     security.NewDetector(),
		started:      time.Now(),
	}
	s.tracer = trace.NewMiddleware(logger, s.detector.ClientIP)

	mux := http.NewServeMux()
	protect := auth.Middleware(deps.Verifier, deps.Store, authFailed)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /precious-metals/gold/price", s.handleMetalPrice(core.Gold))
	mux.HandleFunc("GET /precious-metals/silver/price", s.handleMetalPrice(core.Silver))

	for _, res := range s.resources() {
		res.register(mux, protect)
	}

	mux.Handle("GET /auth/me", protect(http.HandlerFunc(s.handleMe)))
	mux.Handle("GET /dashboard/overview", protect(http.HandlerFunc(s.handleDashboardOverview)))
	mux.Handle("GET /dashboard/transactions", protect(http.HandlerFunc(s.handleRecentTransactions)))
	mux.Handle("GET /yahoo-finance/search", protect(http.HandlerFunc(s.handleSearch)))
	mux.Handle("GET /yahoo-finance/quote/{symbol}", protect(http.HandlerFunc(s.handleQuote)))
	mux.Handle("GET /yahoo-finance/historical/{symbol}", protect(http.HandlerFunc(s.handleHistorical)))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Cannot "+r.Method+" "+r.URL.Path)
	})

	var handler http.Handler = mux
	handler = s.limiter.Middleware(s.detector.ClientIP, rateLimited)(handler)
	handler = security.CORS(cfg.FrontendURL)(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = s.withDetection(handler)
	handler = s.tracer.Middleware(handler)

	s.Server = http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// withDetection logs probe-like requests; they are still served normally.
func (s *Server) withDetection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.Suspicious(r) {
			log.FromContext(r.Context()).WarnContext(r.Context(), "Suspicious request",
				log.FieldMethod, r.Method, log.FieldPath, r.URL.Path,
				log.FieldClientIP, s.detector.ClientIP(r),
				log.FieldUserAgent, r.Header.Get("User-Agent"))
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown stops the rate limiter sweep and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
