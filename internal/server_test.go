package internal

import (
	"context"
	"eghl/entity"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayments struct {
	outcome *entity.TransactionOutcome
	err     error
	request *entity.PurchaseRequest
}

func (p *fakePayments) Purchase(_ context.Context, request *entity.PurchaseRequest) (*entity.TransactionOutcome, error) {
	p.request = request
	return p.outcome, p.err
}

func newTestRouter(payments *fakePayments, database *fakeDatabase) *httprouter.Router {
	server := NewServer(nil)
	server.SetLogger(&fakeLogger{})
	server.SetPaymentsService(payments)
	if database != nil {
		server.SetDatabase(database)
	}
	router := httprouter.New()
	server.Register(router)
	return router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestServer_Purchase(t *testing.T) {
	payments := &fakePayments{
		outcome: entity.NewTransactionOutcome(entity.StatusSuccess, "TXN123", "", "A1", "ORD1", "100.00", "MYR"),
	}
	router := newTestRouter(payments, nil)

	body := `{"transaction_id":"PAY1","amount":"100.00","currency":"MYR","card":{"number":"4111111111111111"}}`
	rec := serve(router, http.MethodPost, "/purchase", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NotNil(t, payments.request)
	assert.Equal(t, "PAY1", payments.request.TransactionId)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "success", response["status"])
	assert.Equal(t, "TXN123", response["transaction_reference"])
	assert.Nil(t, response["message"])
}

func TestServer_PurchaseErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", validationError("amount is required"), http.StatusBadRequest},
		{"transport", transportError("post request", errors.New("refused")), http.StatusBadGateway},
		{"protocol", protocolError("no form found"), http.StatusBadGateway},
		{"verification", verificationError("HashValue mismatch"), http.StatusBadGateway},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakePayments{err: tt.err}, nil)
			rec := serve(router, http.MethodPost, "/purchase", `{"transaction_id":"PAY1"}`)
			assert.Equal(t, tt.code, rec.Code)

			var response map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, tt.err.Error(), response["error"])
		})
	}
}

func TestServer_PurchaseInvalidJSON(t *testing.T) {
	payments := &fakePayments{}
	router := newTestRouter(payments, nil)

	rec := serve(router, http.MethodPost, "/purchase", `{"transaction_id":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, payments.request)
}

func TestServer_PurchaseRecord(t *testing.T) {
	database := &fakeDatabase{}
	require.NoError(t, database.SavePurchaseRecord(context.Background(), &entity.PurchaseRecord{
		PaymentId: "PAY1",
		State:     entity.StateClassified,
		Status:    entity.StatusSuccess,
	}))
	router := newTestRouter(&fakePayments{}, database)

	rec := serve(router, http.MethodGet, "/purchase/PAY1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var record entity.PurchaseRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Equal(t, entity.StateClassified, record.State)

	rec = serve(router, http.MethodGet, "/purchase/PAY2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	database.getError = errors.New("connection refused")
	rec = serve(router, http.MethodGet, "/purchase/PAY1", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestServer_PurchaseRecordWithoutDatabase(t *testing.T) {
	router := newTestRouter(&fakePayments{}, nil)
	rec := serve(router, http.MethodGet, "/purchase/PAY1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Health(t *testing.T) {
	router := newTestRouter(&fakePayments{}, nil)
	rec := serve(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = serve(router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "eghl_http_requests_total")
}

func TestServer_StartWithoutConfig(t *testing.T) {
	assert.Error(t, NewServer(nil).Start())
}
