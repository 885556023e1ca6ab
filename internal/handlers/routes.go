package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func Router(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/healthz", h.Health)

	r.Route("/api/reports", func(r chi.Router) {
		r.Get("/cash-flow", h.CashFlow)
		r.Get("/comparative", h.Comparative)
		r.Get("/members/{memberID}/giving", h.MemberGiving)
		r.Get("/statements/{statementType}", h.Statement)
		r.Get("/budget-vs-actual", h.BudgetVsActual)
	})

	return r
}
