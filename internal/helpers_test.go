package internal

import (
	"context"
	"crypto/sha256"
	"eghl/config"
	"eghl/entity"
	"eghl/services"
	"encoding/hex"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"
)

const testSecret = "sit12345"

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func testGateway(endpoint string) *config.Gateway {
	return &config.Gateway{
		EndpointBase: endpoint,
		ServiceID:    "SIT",
		Password:     testSecret,
		ReturnURL:    "s2s",
		Timeout:      5 * time.Second,
		MaxBodyBytes: 1 << 20,
	}
}

func validRequest() *entity.PurchaseRequest {
	return &entity.PurchaseRequest{
		TransactionId: "PAY1",
		OrderId:       "ORD1",
		Amount:        "100.00",
		Currency:      "MYR",
		Card: &entity.Card{
			Number:      "4111111111111111",
			Name:        "Siti Aminah",
			ExpiryMonth: 7,
			ExpiryYear:  2099,
			Cvv:         "123",
		},
	}
}

// gatewayPage renders a redirect page the way the gateway emits it.
func gatewayPage(action string, inputs ...entity.FormInput) string {
	var sb strings.Builder
	sb.WriteString("<html><head><title>Processing</title></head><body onload='document.frmProcessPayment.submit()'>\n")
	sb.WriteString(fmt.Sprintf("<form name='frmProcessPayment' action='%s' method='POST'>\n", html.EscapeString(action)))
	for _, input := range inputs {
		sb.WriteString(fmt.Sprintf("<INPUT type='hidden' name='%s' value='%s'>\n", html.EscapeString(input.Name), html.EscapeString(input.Value)))
	}
	sb.WriteString("</form>\n</body></html>")
	return sb.String()
}

// finalInputs returns a signed final response for the given status.
func finalInputs(status string) []entity.FormInput {
	base := testSecret + "TXN123" + "SIT" + "PAY1" + status + "100.00" + "MYR" + "A1"
	return []entity.FormInput{
		{Name: "TransactionType", Value: "SALE"},
		{Name: "PymtMethod", Value: "CC"},
		{Name: "ServiceID", Value: "SIT"},
		{Name: "PaymentID", Value: "PAY1"},
		{Name: "OrderNumber", Value: "ORD1"},
		{Name: "Amount", Value: "100.00"},
		{Name: "CurrencyCode", Value: "MYR"},
		{Name: "TxnID", Value: "TXN123"},
		{Name: "TxnStatus", Value: status},
		{Name: "AuthCode", Value: "A1"},
		{Name: "TxnMessage", Value: "Transaction Successful"},
		{Name: "HashValue", Value: sha256Hex(base)},
		{Name: "HashValue2", Value: sha256Hex(base + "ORD1")},
	}
}

type fakeLogger struct {
	mutex  sync.Mutex
	alerts []string
	errors []string
}

func (l *fakeLogger) Debug(string) {}
func (l *fakeLogger) Info(string)  {}
func (l *fakeLogger) Warn(string)  {}

func (l *fakeLogger) Error(text string, _ error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.errors = append(l.errors, text)
}

func (l *fakeLogger) Alert(text string, _ error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.alerts = append(l.alerts, text)
}

func (l *fakeLogger) alertCount() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return len(l.alerts)
}

type fakeDatabase struct {
	mutex    sync.Mutex
	logs     []services.Data
	records  []*entity.PurchaseRecord
	getError error
}

func (d *fakeDatabase) WriteLogMessage(_ context.Context, data services.Data) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.logs = append(d.logs, data)
	return nil
}

func (d *fakeDatabase) SavePurchaseRecord(_ context.Context, record *entity.PurchaseRecord) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	copied := *record
	d.records = append(d.records, &copied)
	return nil
}

func (d *fakeDatabase) GetPurchaseRecord(_ context.Context, paymentId string) (*entity.PurchaseRecord, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.getError != nil {
		return nil, d.getError
	}
	for i := len(d.records) - 1; i >= 0; i-- {
		if d.records[i].PaymentId == paymentId {
			return d.records[i], nil
		}
	}
	return nil, ErrRecordNotFound
}

func (d *fakeDatabase) lastRecord() *entity.PurchaseRecord {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if len(d.records) == 0 {
		return nil
	}
	return d.records[len(d.records)-1]
}
