package internal

import (
	"eghl/entity"
	"fmt"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/currency"
	"regexp"
	"time"
)

// validate is a singleton instance of the validator.
var validate *validator.Validate

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("iso4217", validateISO4217)
	validate.RegisterStructValidation(validateCardExpiry, entity.Card{})
}

// validateISO4217 accepts upper-case codes known to the currency table.
func validateISO4217(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if !currencyCode.MatchString(code) {
		return false
	}
	_, err := currency.ParseISO(code)
	return err == nil
}

// validateCardExpiry rejects cards that expired before the current month.
func validateCardExpiry(sl validator.StructLevel) {
	card := sl.Current().Interface().(entity.Card)
	if card.ExpiryMonth < 1 || card.ExpiryMonth > 12 {
		return
	}
	now := time.Now().UTC()
	if card.ExpiryYear < now.Year() || (card.ExpiryYear == now.Year() && card.ExpiryMonth < int(now.Month())) {
		sl.ReportError(card.ExpiryYear, "ExpiryYear", "expiry_year", "expired", "")
	}
}

// validateRequest checks the caller input before anything is sent to the gateway.
func validateRequest(request *entity.PurchaseRequest) error {
	if request == nil {
		return validationError("empty request")
	}
	if err := validate.Struct(request); err != nil {
		return validationError("%s", describeValidation(err))
	}
	return nil
}

func describeValidation(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err.Error()
	}
	first := errs[0]
	// card number and cvv values must not end up in error messages
	return fmt.Sprintf("field %s failed on '%s'", first.Namespace(), first.Tag())
}
