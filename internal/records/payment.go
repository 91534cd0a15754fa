package records

import (
	"encoding/json"
	"time"

	"github.com/alvarosantos/reconlens-engine/pkg/enums"
	pkgerrors "github.com/alvarosantos/reconlens-engine/pkg/errors"
	"github.com/shopspring/decimal"
)

// Payment is an inbound payment as recorded by the ingestion collaborator.
// Immutable once constructed; downstream transforms produce new values.
type Payment struct {
	ID            string
	PayerName     string
	Amount        decimal.Decimal
	Date          time.Time
	Method        enums.PaymentMethod
	ReferenceNote string
}

// PaymentInput is the raw wire shape a Payment is built from.
type PaymentInput struct {
	ID            string          `json:"payment_id" validate:"required"`
	PayerName     string          `json:"payer_name" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"payment_date" validate:"required,datetime=2006-01-02"`
	Method        string          `json:"method" validate:"required"`
	ReferenceNote string          `json:"reference_note"`
}

// NewPayment validates the input and returns an immutable Payment.
func NewPayment(input PaymentInput) (Payment, error) {
	if err := checkInput(input); err != nil {
		return Payment{}, err
	}
	if input.Amount.IsNegative() {
		return Payment{}, pkgerrors.Validation("amount", "must not be negative")
	}
	method, err := enums.ParsePaymentMethod(input.Method)
	if err != nil {
		return Payment{}, pkgerrors.Validation("method", err.Error())
	}
	date, err := time.Parse(DateFormat, input.Date)
	if err != nil {
		return Payment{}, pkgerrors.Validation("payment_date", "must be a well-formed date")
	}
	return Payment{
		ID:            input.ID,
		PayerName:     input.PayerName,
		Amount:        input.Amount,
		Date:          date,
		Method:        method,
		ReferenceNote: input.ReferenceNote,
	}, nil
}

// MarshalJSON emits the dashboard payload shape.
func (p Payment) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID            string          `json:"payment_id"`
		PayerName     string          `json:"payer_name"`
		Amount        decimal.Decimal `json:"amount"`
		Date          string          `json:"payment_date"`
		Method        string          `json:"method"`
		ReferenceNote string          `json:"reference_note"`
	}{
		ID:            p.ID,
		PayerName:     p.PayerName,
		Amount:        p.Amount,
		Date:          p.Date.Format(DateFormat),
		Method:        p.Method.String(),
		ReferenceNote: p.ReferenceNote,
	})
}
