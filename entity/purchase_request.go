package entity

// PurchaseRequest is the caller's purchase intent.
// Either Amount (decimal string, e.g. "100.00") or AmountMinor (integer minor units) must be set.
type PurchaseRequest struct {
	TransactionId     string    `json:"transaction_id" validate:"required,max=20"`
	OrderId           string    `json:"order_id,omitempty" validate:"max=20"`
	EntryUUID         string    `json:"entry_uuid,omitempty"`
	Description       string    `json:"description,omitempty"`
	Amount            string    `json:"amount,omitempty"`
	AmountMinor       *int64    `json:"amount_minor,omitempty"`
	Currency          string    `json:"currency" validate:"required,iso4217"`
	Card              *Card     `json:"card" validate:"required"`
	Customer          *Customer `json:"customer,omitempty"`
	ClientIP          string    `json:"client_ip,omitempty" validate:"omitempty,ip"`
	ApprovalURL       string    `json:"approval_url,omitempty" validate:"omitempty,url"`
	UnApprovalURL     string    `json:"unapproval_url,omitempty" validate:"omitempty,url"`
	CallbackURL       string    `json:"callback_url,omitempty" validate:"omitempty,url"`
	PageTimeout       string    `json:"page_timeout,omitempty" validate:"omitempty,numeric"`
	Token             string    `json:"token,omitempty"`
	RecurringCriteria string    `json:"recurring_criteria,omitempty"`
	// Metadata is echoed back by the gateway; only Param6 and Param7 are accepted.
	Metadata map[string]string `json:"metadata,omitempty" validate:"max=2,dive,keys,oneof=Param6 Param7,endkeys,max=100"`
}

// Card holds the card data sent with a SALE.
type Card struct {
	Number      string `json:"number" validate:"required,credit_card"`
	Name        string `json:"name" validate:"required,max=30"`
	ExpiryMonth int    `json:"expiry_month" validate:"required,min=1,max=12"`
	ExpiryYear  int    `json:"expiry_year" validate:"required,min=2000,max=9999"`
	Cvv         string `json:"cvv" validate:"required,numeric,min=3,max=4"`
}

type Customer struct {
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	Email     string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string   `json:"phone,omitempty"`
	Address   *Address `json:"address,omitempty"`
}

type Address struct {
	Line1              string `json:"line_1,omitempty"`
	PostalCode         string `json:"postal_code,omitempty"`
	Locality           string `json:"locality,omitempty"`
	AdministrativeArea string `json:"administrative_area,omitempty"`
	CountryCode        string `json:"country_code,omitempty" validate:"omitempty,iso3166_1_alpha2"`
}
