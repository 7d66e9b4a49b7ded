package internal

import (
	"crypto/sha256"
	"crypto/subtle"
	"eghl/entity"
	"encoding/hex"
	"strings"
)

const (
	fieldHashValue  = "HashValue"
	fieldHashValue2 = "HashValue2"
)

// Field orders are fixed by the gateway protocol.
var (
	requestHashFields = [...]string{
		"ServiceID",
		"PaymentID",
		"MerchantReturnURL",
		"MerchantApprovalURL",
		"MerchantUnApprovalURL",
		"MerchantCallBackURL",
		"Amount",
		"CurrencyCode",
		"CustIP",
		"PageTimeout",
		"CardNo",
		"Token",
		"RecurringCriteria",
	}
	responseHashFields = [...]string{
		"TxnID",
		"ServiceID",
		"PaymentID",
		"TxnStatus",
		"Amount",
		"CurrencyCode",
		"AuthCode",
	}
	responseHash2Fields = [...]string{
		"TxnID",
		"ServiceID",
		"PaymentID",
		"TxnStatus",
		"Amount",
		"CurrencyCode",
		"AuthCode",
		"OrderNumber",
		"Param6",
		"Param7",
	}
)

// Hasher signs outbound requests and verifies final gateway responses with the shared secret.
type Hasher struct {
	secret string
}

func NewHasher(secret string) *Hasher {
	return &Hasher{secret: secret}
}

// Sign attaches HashValue to fields and returns it.
func (h *Hasher) Sign(fields entity.Fields) string {
	hash := h.digest(fields, requestHashFields[:])
	fields[fieldHashValue] = hash
	return hash
}

// Verify checks both HashValue and HashValue2 of a final response.
// The returned result is trusted only when the error is nil.
func (h *Hasher) Verify(fields entity.Fields) (*entity.VerifiedResult, error) {
	result := &entity.VerifiedResult{
		Fields:          fields,
		HashValueValid:  h.check(fields, fieldHashValue, responseHashFields[:]),
		HashValue2Valid: h.check(fields, fieldHashValue2, responseHash2Fields[:]),
	}
	if !result.HashValueValid {
		return result, verificationError("HashValue mismatch")
	}
	if !result.HashValue2Valid {
		return result, verificationError("HashValue2 mismatch")
	}
	return result, nil
}

func (h *Hasher) check(fields entity.Fields, hashField string, order []string) bool {
	supplied, ok := fields.Get(hashField)
	if !ok || supplied == "" {
		return false
	}
	expected := h.digest(fields, order)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(supplied)) == 1
}

// digest is the lowercase hex SHA-256 of the secret followed by the present fields in order.
// Absent fields contribute nothing.
func (h *Hasher) digest(fields entity.Fields, order []string) string {
	var sb strings.Builder
	sb.WriteString(h.secret)
	for _, name := range order {
		if value, ok := fields.Get(name); ok {
			sb.WriteString(value)
		}
	}
	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
