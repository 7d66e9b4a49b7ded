package entity

import "encoding/json"

// TxnStatus values returned by the gateway.
const (
	TxnStatusSuccess = "0"
	TxnStatusFailed  = "1"
	TxnStatusPending = "2"
)

// UnknownError is the message reported for a failed transaction without TxnMessage.
const UnknownError = "Unknown Error"

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusPending Status = "pending"
)

// VerifiedResult is the final field set with the outcome of both hash checks.
type VerifiedResult struct {
	Fields          Fields
	HashValueValid  bool
	HashValue2Valid bool
}

// Trusted reports whether both gateway hashes matched.
func (v *VerifiedResult) Trusted() bool {
	return v != nil && v.HashValueValid && v.HashValue2Valid
}

// TransactionOutcome is the classified result of a verified purchase. It cannot be changed once built.
type TransactionOutcome struct {
	status      Status
	reference   string
	message     string
	authCode    string
	orderNumber string
	amount      string
	currency    string
}

func NewTransactionOutcome(status Status, reference, message, authCode, orderNumber, amount, currency string) *TransactionOutcome {
	return &TransactionOutcome{
		status:      status,
		reference:   reference,
		message:     message,
		authCode:    authCode,
		orderNumber: orderNumber,
		amount:      amount,
		currency:    currency,
	}
}

func (o *TransactionOutcome) Status() Status {
	return o.status
}

func (o *TransactionOutcome) IsSuccessful() bool {
	return o.status == StatusSuccess
}

func (o *TransactionOutcome) IsPending() bool {
	return o.status == StatusPending
}

// TransactionReference is the gateway TxnID, empty when the gateway did not send one.
func (o *TransactionOutcome) TransactionReference() string {
	return o.reference
}

// Message is empty for a successful transaction.
func (o *TransactionOutcome) Message() string {
	return o.message
}

func (o *TransactionOutcome) AuthCode() string {
	return o.authCode
}

func (o *TransactionOutcome) OrderNumber() string {
	return o.orderNumber
}

func (o *TransactionOutcome) Amount() string {
	return o.amount
}

func (o *TransactionOutcome) Currency() string {
	return o.currency
}

func (o *TransactionOutcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Status      Status  `json:"status"`
		Reference   *string `json:"transaction_reference"`
		Message     *string `json:"message"`
		AuthCode    string  `json:"auth_code,omitempty"`
		OrderNumber string  `json:"order_number,omitempty"`
		Amount      string  `json:"amount,omitempty"`
		Currency    string  `json:"currency,omitempty"`
	}{
		Status:      o.status,
		Reference:   optional(o.reference),
		Message:     optional(o.message),
		AuthCode:    o.authCode,
		OrderNumber: o.orderNumber,
		Amount:      o.amount,
		Currency:    o.currency,
	})
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
