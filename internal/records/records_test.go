package records

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/alvarosantos/reconlens-engine/pkg/enums"
	pkgerrors "github.com/alvarosantos/reconlens-engine/pkg/errors"
	"github.com/shopspring/decimal"
)

func TestNewPayment(t *testing.T) {
	payment, err := NewPayment(PaymentInput{
		ID:            "PAY-1001",
		PayerName:     "Acme Corp",
		Amount:        decimal.RequireFromString("1000.00"),
		Date:          "2026-08-15",
		Method:        "ACH",
		ReferenceNote: "INV-2001",
	})
	if err != nil {
		t.Fatalf("NewPayment error: %v", err)
	}
	if payment.Method != enums.PaymentMethodACH {
		t.Fatalf("unexpected method: %s", payment.Method)
	}
	if payment.Date.Format(DateFormat) != "2026-08-15" {
		t.Fatalf("unexpected date: %s", payment.Date)
	}
	if !payment.Amount.Equal(decimal.RequireFromString("1000.00")) {
		t.Fatalf("unexpected amount: %s", payment.Amount)
	}
}

func TestNewPaymentValidation(t *testing.T) {
	valid := PaymentInput{
		ID:        "PAY-1001",
		PayerName: "Acme Corp",
		Amount:    decimal.NewFromInt(100),
		Date:      "2026-08-15",
		Method:    "Wire",
	}

	tests := []struct {
		name   string
		mutate func(*PaymentInput)
	}{
		{name: "missing id", mutate: func(in *PaymentInput) { in.ID = "" }},
		{name: "missing payer name", mutate: func(in *PaymentInput) { in.PayerName = "" }},
		{name: "negative amount", mutate: func(in *PaymentInput) { in.Amount = decimal.NewFromInt(-1) }},
		{name: "unparsable date", mutate: func(in *PaymentInput) { in.Date = "15/08/2026" }},
		{name: "unknown method", mutate: func(in *PaymentInput) { in.Method = "Barter" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)
			_, err := NewPayment(input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !pkgerrors.IsValidation(err) {
				t.Fatalf("expected validation code, got %v", err)
			}
		})
	}
}

func TestNewInvoiceValidation(t *testing.T) {
	if _, err := NewInvoice(InvoiceInput{
		ID:           "INV-2001",
		CustomerName: "Acme Corp",
		AmountDue:    decimal.NewFromInt(-5),
		DueDate:      "2026-08-20",
		Status:       "Open",
	}); !pkgerrors.IsValidation(err) {
		t.Fatalf("expected validation error for negative amount, got %v", err)
	}

	if _, err := NewInvoice(InvoiceInput{
		ID:           "INV-2001",
		CustomerName: "Acme Corp",
		AmountDue:    decimal.NewFromInt(5),
		DueDate:      "2026-08-20",
		Status:       "Overdue",
	}); !pkgerrors.IsValidation(err) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestNewLedgerEntry(t *testing.T) {
	entry, err := NewLedgerEntry(LedgerEntryInput{
		ID:        "LED-3001",
		InvoiceID: "INV-2001",
		PaymentID: "PAY-1001",
		Amount:    decimal.RequireFromString("1000.00"),
		EntryDate: "2026-08-15",
	})
	if err != nil {
		t.Fatalf("NewLedgerEntry error: %v", err)
	}
	if entry.InvoiceID != "INV-2001" || entry.PaymentID != "PAY-1001" {
		t.Fatalf("unexpected links: %+v", entry)
	}
}

func TestPaymentMarshalJSON(t *testing.T) {
	payment, err := NewPayment(PaymentInput{
		ID:        "PAY-1001",
		PayerName: "Acme Corp",
		Amount:    decimal.RequireFromString("1000.5"),
		Date:      "2026-08-15",
		Method:    "Credit Card",
	})
	if err != nil {
		t.Fatalf("NewPayment error: %v", err)
	}
	raw, err := json.Marshal(payment)
	if err != nil {
		t.Fatalf("marshal payment: %v", err)
	}
	for _, want := range []string{`"payment_id":"PAY-1001"`, `"payment_date":"2026-08-15"`, `"method":"Credit Card"`} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("payload missing %s: %s", want, raw)
		}
	}
}

func TestNewPaymentsRejectsWholeBatch(t *testing.T) {
	inputs := []PaymentInput{
		{ID: "PAY-1", PayerName: "Acme Corp", Amount: decimal.NewFromInt(100), Date: "2026-08-15", Method: "ACH"},
		{ID: "PAY-2", PayerName: "Beta Inc", Amount: decimal.NewFromInt(-1), Date: "2026-08-15", Method: "ACH"},
		{ID: "PAY-3", PayerName: "Gamma LLC", Amount: decimal.NewFromInt(100), Date: "not-a-date", Method: "ACH"},
	}

	payments, err := NewPayments(inputs)
	if err == nil {
		t.Fatal("expected batch error")
	}
	if payments != nil {
		t.Fatalf("expected no payments on failure, got %d", len(payments))
	}
	msg := err.Error()
	if !strings.Contains(msg, "PAY-2") || !strings.Contains(msg, "PAY-3") {
		t.Fatalf("expected both failing records in error, got %s", msg)
	}
}

func TestNewPaymentsAllValid(t *testing.T) {
	inputs := []PaymentInput{
		{ID: "PAY-1", PayerName: "Acme Corp", Amount: decimal.NewFromInt(100), Date: "2026-08-15", Method: "ACH"},
		{ID: "PAY-2", PayerName: "Beta Inc", Amount: decimal.NewFromInt(250), Date: "2026-08-16", Method: "Check"},
	}
	payments, err := NewPayments(inputs)
	if err != nil {
		t.Fatalf("NewPayments error: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(payments))
	}
}
