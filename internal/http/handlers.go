package http

import (
	"context"
	"net/http"
	"time"

	"wealth/internal/core"
	"wealth/internal/log"
)

func (s *Server) resources() []routeSet {
	st := s.store
	return []routeSet{
		resource[core.Stock, createStockRequest, core.StockPatch]{
			path: "/stocks", thing: "Stock", notFound: "Stock not found",
			create: st.CreateStock,
			list: func(r *http.Request, owner string) ([]core.Stock, error) {
				return st.ListStocks(r.Context(), owner)
			},
			get:    st.GetStock,
			update: st.UpdateStock,
			remove: st.DeleteStock,
			summary: func(r *http.Request, owner string) (any, error) {
				return s.summaries.Stocks(r.Context(), owner)
			},
		},
		resource[core.ETF, createETFRequest, core.ETFPatch]{
			path: "/etfs", thing: "ETF", notFound: "ETF not found",
			create: st.CreateETF,
			list: func(r *http.Request, owner string) ([]core.ETF, error) {
				return st.ListETFs(r.Context(), owner)
			},
			get:    st.GetETF,
			update: st.UpdateETF,
			remove: st.DeleteETF,
			summary: func(r *http.Request, owner string) (any, error) {
				return s.summaries.ETFs(r.Context(), owner)
			},
		},
		resource[core.Eurobond, createEurobondRequest, core.EurobondPatch]{
			path: "/eurobonds", thing: "Eurobond", notFound: "Eurobond not found",
			create: st.CreateEurobond,
			list: func(r *http.Request, owner string) ([]core.Eurobond, error) {
				return st.ListEurobonds(r.Context(), owner)
			},
			get:    st.GetEurobond,
			update: st.UpdateEurobond,
			remove: st.DeleteEurobond,
			summary: func(r *http.Request, owner string) (any, error) {
				return s.summaries.Eurobonds(r.Context(), owner)
			},
		},
		resource[core.CashAccount, createCashAccountRequest, core.CashAccountPatch]{
			path: "/cash", thing: "Cash account", notFound: "Cash account not found",
			create: st.CreateCashAccount,
			list: func(r *http.Request, owner string) ([]core.CashAccount, error) {
				return st.ListCashAccounts(r.Context(), owner)
			},
			get:    st.GetCashAccount,
			update: st.UpdateCashAccount,
			remove: st.DeleteCashAccount,
			summary: func(r *http.Request, owner string) (any, error) {
				return s.summaries.Cash(r.Context(), owner)
			},
		},
		s.metalResource(core.Gold, "/gold", "Gold holding"),
		s.metalResource(core.Silver, "/silver", "Silver holding"),
		resource[core.Loan, createLoanRequest, core.LoanPatch]{
			path: "/loans", thing: "Loan", notFound: "Loan not found",
			create: st.CreateLoan,
			list: func(r *http.Request, owner string) ([]core.Loan, error) {
				status, err := queryEnum(r, "status", core.LoanStatus.Valid)
				if err != nil {
					return nil, err
				}
				return st.ListLoans(r.Context(), owner, status)
			},
			get:    st.GetLoan,
			update: st.UpdateLoan,
			remove: st.DeleteLoan,
			summary: func(r *http.Request, owner string) (any, error) {
				return s.summaries.Loans(r.Context(), owner)
			},
		},
		resource[core.Income, createIncomeRequest, core.IncomePatch]{
			path: "/incomes", thing: "Income", notFound: "Income not found",
			create: s.transactions.CreateIncome,
			list:   s.listIncomes,
			get:    st.GetIncome,
			update: s.transactions.UpdateIncome,
			remove: s.transactions.DeleteIncome,
			summary: func(r *http.Request, owner string) (any, error) {
				p, err := ParseMonthParams(r)
				if err != nil {
					return nil, err
				}
				return s.summaries.Incomes(r.Context(), owner, p.Month, p.Year)
			},
		},
		resource[core.Expense, createExpenseRequest, core.ExpensePatch]{
			path: "/expenses", thing: "Expense", notFound: "Expense not found",
			create: s.transactions.CreateExpense,
			list:   s.listExpenses,
			get:    st.GetExpense,
			update: s.transactions.UpdateExpense,
			remove: s.transactions.DeleteExpense,
			summary: func(r *http.Request, owner string) (any, error) {
				p, err := ParseMonthParams(r)
				if err != nil {
					return nil, err
				}
				return s.summaries.Expenses(r.Context(), owner, p.Month, p.Year)
			},
		},
	}
}

func (s *Server) metalResource(m core.Metal, path, thing string) routeSet {
	st := s.store
	return resource[core.MetalHolding, createMetalHoldingRequest, core.MetalHoldingPatch]{
		path: path, thing: thing, notFound: thing + " not found",
		create: func(ctx context.Context, h core.MetalHolding) (core.MetalHolding, error) {
			return st.CreateMetalHolding(ctx, m, h)
		},
		list: func(r *http.Request, owner string) ([]core.MetalHolding, error) {
			return st.ListMetalHoldings(r.Context(), m, owner)
		},
		get: func(ctx context.Context, owner, id string) (core.MetalHolding, error) {
			return st.GetMetalHolding(ctx, m, owner, id)
		},
		update: func(ctx context.Context, owner, id string, patch core.MetalHoldingPatch) (core.MetalHolding, error) {
			return st.UpdateMetalHolding(ctx, m, owner, id, patch)
		},
		remove: func(ctx context.Context, owner, id string) error {
			return st.DeleteMetalHolding(ctx, m, owner, id)
		},
		summary: func(r *http.Request, owner string) (any, error) {
			return s.summaries.Metal(r.Context(), m, owner)
		},
	}
}

func (s *Server) listIncomes(r *http.Request, owner string) ([]core.Income, error) {
	var (
		f   core.IncomeFilter
		err error
	)
	if f.Type, err = queryEnum(r, "type", core.IncomeType.Valid); err != nil {
		return nil, err
	}
	if f.From, err = queryDate(r, "startDate"); err != nil {
		return nil, err
	}
	if f.To, err = queryDate(r, "endDate"); err != nil {
		return nil, err
	}
	return s.store.ListIncomes(r.Context(), owner, f)
}

func (s *Server) listExpenses(r *http.Request, owner string) ([]core.Expense, error) {
	var (
		f   core.ExpenseFilter
		err error
	)
	if f.Category, err = queryEnum(r, "category", core.ExpenseCategory.Valid); err != nil {
		return nil, err
	}
	if f.PaymentMethod, err = queryEnum(r, "paymentMethod", core.PaymentMethod.Valid); err != nil {
		return nil, err
	}
	if f.From, err = queryDate(r, "startDate"); err != nil {
		return nil, err
	}
	if f.To, err = queryDate(r, "endDate"); err != nil {
		return nil, err
	}
	return s.store.ListExpenses(r.Context(), owner, f)
}

type healthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Uptime    string         `json:"uptime"`
	Stats     map[string]any `json:"stats"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Stats: map[string]any{
			"requests":           s.tracer.Metrics(),
			"rateLimit":          s.limiter.Metrics(),
			"suspiciousRequests": s.detector.SuspiciousCount(),
		},
	}
	status := http.StatusOK
	if err := s.store.Ping(ctx); err != nil {
		s.logger.ErrorContext(r.Context(), "Health check failed", log.FieldError, err)
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.GetUser(r.Context(), owner(r))
	if err != nil {
		respondError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
