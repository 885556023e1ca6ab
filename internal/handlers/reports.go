package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/freddy0077/chapelstack-backend-sub002/internal/analytics"
	"github.com/freddy0077/chapelstack-backend-sub002/internal/models"
)

// CashFlow handles GET /api/reports/cash-flow
func (h *Handler) CashFlow(w http.ResponseWriter, r *http.Request) {
	scope, err := parseScope(r)
	if err != nil {
		writeError(w, "cash flow", err)
		return
	}

	report, err := h.service.CashFlow(r.Context(), models.CashFlowRequest{
		Scope:            scope,
		DateRange:        getDateRange(r),
		PeriodType:       models.PeriodType(strings.ToUpper(r.URL.Query().Get("periodType"))),
		ContributionType: r.URL.Query().Get("contributionType"),
	})
	if err != nil {
		writeError(w, "cash flow", err)
		return
	}
	writeJSON(w, report)
}

// Comparative handles GET /api/reports/comparative
func (h *Handler) Comparative(w http.ResponseWriter, r *http.Request) {
	scope, err := parseScope(r)
	if err != nil {
		writeError(w, "comparative", err)
		return
	}

	report, err := h.service.Comparative(r.Context(), models.ComparativeRequest{
		Scope:          scope,
		ComparisonType: models.ComparisonType(strings.ToUpper(r.URL.Query().Get("comparisonType"))),
		PeriodCount:    intParam(r, "periodCount"),
	})
	if err != nil {
		writeError(w, "comparative", err)
		return
	}
	writeJSON(w, report)
}

// MemberGiving handles GET /api/reports/members/{memberID}/giving
func (h *Handler) MemberGiving(w http.ResponseWriter, r *http.Request) {
	scope, err := parseScope(r)
	if err != nil {
		writeError(w, "member giving", err)
		return
	}
	memberID, err := uuid.Parse(chi.URLParam(r, "memberID"))
	if err != nil {
		writeError(w, "member giving", &analytics.ValidationError{Field: "memberId", Reason: "not a valid id"})
		return
	}

	report, err := h.service.MemberGiving(r.Context(), models.MemberGivingRequest{
		Scope:       scope,
		MemberID:    memberID,
		DateRange:   getDateRange(r),
		RecentLimit: intParam(r, "recentLimit"),
	})
	if err != nil {
		writeError(w, "member giving", err)
		return
	}
	writeJSON(w, report)
}

// Statement handles GET /api/reports/statements/{statementType}
func (h *Handler) Statement(w http.ResponseWriter, r *http.Request) {
	scope, err := parseScope(r)
	if err != nil {
		writeError(w, "statement", err)
		return
	}

	stmt, err := h.service.Statement(r.Context(), models.StatementRequest{
		Scope:         scope,
		DateRange:     getDateRange(r),
		StatementType: models.StatementType(strings.ToUpper(strings.ReplaceAll(chi.URLParam(r, "statementType"), "-", "_"))),
	})
	if err != nil {
		writeError(w, "statement", err)
		return
	}
	writeJSON(w, stmt)
}

// BudgetVsActual handles GET /api/reports/budget-vs-actual
func (h *Handler) BudgetVsActual(w http.ResponseWriter, r *http.Request) {
	scope, err := parseScope(r)
	if err != nil {
		writeError(w, "budget vs actual", err)
		return
	}

	report, err := h.service.BudgetVsActual(r.Context(), models.BudgetRequest{
		Scope:      scope,
		DateRange:  getDateRange(r),
		PeriodType: models.PeriodType(strings.ToUpper(r.URL.Query().Get("periodType"))),
	})
	if err != nil {
		writeError(w, "budget vs actual", err)
		return
	}
	writeJSON(w, report)
}
