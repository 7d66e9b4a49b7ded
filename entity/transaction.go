// Package entity defines data models for the eGHL purchase service.
package entity

import (
	"time"
)

// PurchaseRecord is the audit trail of one purchase run. It never carries card data or the shared secret.
type PurchaseRecord struct {
	PaymentId   string        `json:"payment_id" bson:"payment_id"`
	OrderNumber string        `json:"order_number,omitempty" bson:"order_number,omitempty"`
	RequestId   string        `json:"request_id,omitempty" bson:"request_id,omitempty"`
	Amount      string        `json:"amount" bson:"amount"`
	Currency    string        `json:"currency" bson:"currency"`
	State       PurchaseState `json:"state" bson:"state"`
	Status      Status        `json:"status,omitempty" bson:"status,omitempty"`
	TxnId       string        `json:"txn_id,omitempty" bson:"txn_id,omitempty"`
	AuthCode    string        `json:"auth_code,omitempty" bson:"auth_code,omitempty"`
	Message     string        `json:"message,omitempty" bson:"message,omitempty"`
	ErrorKind   string        `json:"error_kind,omitempty" bson:"error_kind,omitempty"`
	Error       string        `json:"error,omitempty" bson:"error,omitempty"`
	TimeStarted time.Time     `json:"time_started" bson:"time_started"`
	TimeClosed  time.Time     `json:"time_closed" bson:"time_closed"`
}

func (p *PurchaseRecord) DataType() string {
	return "purchase"
}

// Close stamps the final state of the run.
func (p *PurchaseRecord) Close(state PurchaseState) {
	p.State = state
	p.TimeClosed = time.Now()
}
