package internal

import (
	"eghl/entity"
)

// Classify maps a verified final response into a transaction outcome.
// Missing optional fields degrade to empty values; it never fails.
func Classify(result *entity.VerifiedResult) *entity.TransactionOutcome {
	fields := result.Fields
	status := classifyStatus(fields)

	message := ""
	if status != entity.StatusSuccess {
		message = entity.UnknownError
		if text, ok := fields.Get("TxnMessage"); ok {
			message = text
		}
	}

	reference, _ := fields.Get("TxnID")
	authCode, _ := fields.Get("AuthCode")
	orderNumber, _ := fields.Get("OrderNumber")
	amount, _ := fields.Get("Amount")
	currencyCode, _ := fields.Get("CurrencyCode")

	return entity.NewTransactionOutcome(status, reference, message, authCode, orderNumber, amount, currencyCode)
}

// classifyStatus compares TxnStatus exactly; absent or unknown codes count as failed.
func classifyStatus(fields entity.Fields) entity.Status {
	code, ok := fields.Get("TxnStatus")
	if !ok {
		return entity.StatusFailed
	}
	switch code {
	case entity.TxnStatusSuccess:
		return entity.StatusSuccess
	case entity.TxnStatusPending:
		return entity.StatusPending
	default:
		return entity.StatusFailed
	}
}
