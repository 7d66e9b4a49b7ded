package internal

import (
	"eghl/config"
	"eghl/entity"
	"fmt"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"regexp"
	"strings"
)

const (
	transactionTypeSale = "SALE"
	paymentMethodCard   = "CC"
	descriptionLength   = 50
)

var descriptionFilter = regexp.MustCompile(`[^a-zA-Z0-9 \-]`)

// Normalizer turns a purchase request into the outbound gateway field set.
type Normalizer struct {
	serviceID     string
	returnURL     string
	allowZero     bool
	allowNegative bool
}

func NewNormalizer(conf *config.Gateway) *Normalizer {
	return &Normalizer{
		serviceID:     conf.ServiceID,
		returnURL:     conf.ReturnURL,
		allowZero:     conf.AllowZeroAmount,
		allowNegative: conf.AllowNegativeAmount,
	}
}

// Fields validates the request and builds the unsigned outbound fields.
func (n *Normalizer) Fields(request *entity.PurchaseRequest) (entity.Fields, entity.Money, error) {
	if err := validateRequest(request); err != nil {
		return nil, entity.Money{}, err
	}
	money, err := n.Money(request)
	if err != nil {
		return nil, entity.Money{}, err
	}

	fields := entity.Fields{}
	// generic details
	fields.Set("ServiceID", n.serviceID)
	fields.Set("TransactionType", transactionTypeSale)
	fields.Set("PymtMethod", paymentMethodCard)
	fields.Set("MerchantReturnURL", n.returnURL)
	fields.Set("MerchantApprovalURL", request.ApprovalURL)
	fields.Set("MerchantUnApprovalURL", request.UnApprovalURL)
	fields.Set("MerchantCallBackURL", request.CallbackURL)
	fields.Set("CustIP", request.ClientIP)
	fields.Set("PageTimeout", request.PageTimeout)
	fields.Set("Token", request.Token)
	fields.Set("RecurringCriteria", request.RecurringCriteria)

	// transaction details
	fields.Set("PaymentID", request.TransactionId)
	fields.Set("PaymentDesc", paymentDescription(request))
	fields.Set("OrderNumber", firstNonEmpty(request.OrderId, request.EntryUUID))
	fields.Set("Amount", money.Decimal())
	fields.Set("CurrencyCode", money.Currency)
	for key, value := range request.Metadata {
		fields.Set(key, value)
	}

	// card details
	card := request.Card
	fields.Set("CardNo", card.Number)
	fields.Set("CardHolder", card.Name)
	fields.Set("CardExp", fmt.Sprintf("%04d%02d", card.ExpiryYear, card.ExpiryMonth))
	fields.Set("CardCVV2", card.Cvv)

	// customer details
	if customer := request.Customer; customer != nil {
		fields.Set("CustName", strings.TrimSpace(customer.FirstName+" "+customer.LastName))
		fields.Set("CustEmail", customer.Email)
		fields.Set("CustPhone", customer.Phone)
		if address := customer.Address; address != nil {
			fields.Set("BillAddr", address.Line1)
			fields.Set("BillPostal", address.PostalCode)
			fields.Set("BillCity", address.Locality)
			fields.Set("BillRegion", address.AdministrativeArea)
			fields.Set("BillCountry", address.CountryCode)
		}
	}

	return fields, money, nil
}

// Money reads the request amount, honoring the sign and zero rules.
func (n *Normalizer) Money(request *entity.PurchaseRequest) (entity.Money, error) {
	var money entity.Money
	var err error
	switch {
	case request.Amount != "" && request.AmountMinor != nil:
		return money, validationError("set either amount or amount_minor, not both")
	case request.Amount != "":
		money, err = ParseMoney(request.Amount, request.Currency)
	case request.AmountMinor != nil:
		money, err = NewMoney(*request.AmountMinor, request.Currency)
	default:
		return money, validationError("amount is required")
	}
	if err != nil {
		return money, err
	}
	if !n.allowNegative && money.IsNegative() {
		return money, validationError("a negative amount is not allowed")
	}
	if !n.allowZero && money.IsZero() {
		return money, validationError("a zero amount is not allowed")
	}
	return money, nil
}

// NewMoney builds an amount from integer minor units.
func NewMoney(minor int64, code string) (entity.Money, error) {
	scale, err := currencyScale(code)
	if err != nil {
		return entity.Money{}, err
	}
	return entity.Money{Minor: minor, Currency: code, Scale: scale}, nil
}

// ParseMoney reads a decimal amount. More fraction digits than the currency allows is an error, never rounded.
func ParseMoney(amount string, code string) (entity.Money, error) {
	scale, err := currencyScale(code)
	if err != nil {
		return entity.Money{}, err
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return entity.Money{}, validationError("invalid amount %q", amount)
	}
	if -value.Exponent() > scale {
		return entity.Money{}, validationError("amount precision is too high for currency %s", code)
	}
	shifted := value.Shift(scale)
	minor := shifted.IntPart()
	if !shifted.Equal(decimal.NewFromInt(minor)) {
		return entity.Money{}, validationError("amount %q is out of range", amount)
	}
	return entity.Money{Minor: minor, Currency: code, Scale: scale}, nil
}

func currencyScale(code string) (int32, error) {
	if code == "" {
		return 0, validationError("currency is required")
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return 0, validationError("unknown currency %q", code)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale), nil
}

func paymentDescription(request *entity.PurchaseRequest) string {
	description := request.Description
	if description == "" && request.EntryUUID != "" {
		description = "Payment for entry " + request.EntryUUID
	}
	return filter(description, descriptionLength)
}

// filter keeps only characters the gateway accepts in free text and truncates to maxLength.
func filter(text string, maxLength int) string {
	text = descriptionFilter.ReplaceAllString(text, "")
	if len(text) > maxLength {
		text = text[:maxLength]
	}
	return text
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
