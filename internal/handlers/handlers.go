package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/freddy0077/chapelstack-backend-sub002/internal/analytics"
	"github.com/freddy0077/chapelstack-backend-sub002/internal/models"
)

type Handler struct {
	service *analytics.Service
}

func New(service *analytics.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError maps validation failures to 400 and anything else to 500.
func writeError(w http.ResponseWriter, report string, err error) {
	if errors.Is(err, analytics.ErrValidation) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Printf("Failed to build %s report: %v", report, err)
	http.Error(w, "Failed to build "+report+" report", http.StatusInternalServerError)
}

// parseScope reads organisationId, branchId and fundId. A missing
// organisationId is left as uuid.Nil for the service to reject.
func parseScope(r *http.Request) (models.Scope, error) {
	var scope models.Scope
	q := r.URL.Query()

	if v := strings.TrimSpace(q.Get("organisationId")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return scope, &analytics.ValidationError{Field: "organisationId", Reason: "not a valid id"}
		}
		scope.OrganisationID = id
	}
	var err error
	if scope.BranchID, err = optionalID(q.Get("branchId"), "branchId"); err != nil {
		return scope, err
	}
	if scope.FundID, err = optionalID(q.Get("fundId"), "fundId"); err != nil {
		return scope, err
	}
	return scope, nil
}

func optionalID(value, field string) (*uuid.UUID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, &analytics.ValidationError{Field: field, Reason: "not a valid id"}
	}
	return &id, nil
}

// getDateRange extracts startDate/endDate. Missing or unparseable values
// yield nil and the service falls back to the current calendar year.
func getDateRange(r *http.Request) *models.DateRange {
	start, ok := parseDateParam(r.URL.Query().Get("startDate"), false)
	if !ok {
		return nil
	}
	end, ok := parseDateParam(r.URL.Query().Get("endDate"), true)
	if !ok {
		return nil
	}
	return &models.DateRange{Start: start, End: end}
}

// parseDateParam accepts RFC3339 or a plain date. A plain end date covers the
// whole day.
func parseDateParam(value string, endOfDay bool) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, true
}

func intParam(r *http.Request, key string) int {
	if v := r.URL.Query().Get(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return 0
}
