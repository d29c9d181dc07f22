package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordTransfer(t *testing.T) {
	before := testutil.ToFloat64(transfers.WithLabelValues(OutcomeInsufficientFunds))

	RecordTransfer(OutcomeInsufficientFunds, time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(transfers.WithLabelValues(OutcomeInsufficientFunds)))
}

func TestInstrumentHandler_UsesRoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(InstrumentHandler)
	router.Get("/v1/accounts/{accountId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := httpRequests.WithLabelValues("GET", "/v1/accounts/{accountId}", "404")
	before := testutil.ToFloat64(counter)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/accounts/Id-123", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/accounts/Id-456", nil))

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestHandler_ExposesLedgerMetrics(t *testing.T) {
	RecordAccountCreated()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "accounts_ledger_accounts_created_total")
}
