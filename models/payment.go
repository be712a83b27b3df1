package models

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"saranalaya/internal/status"
)

// PaymentStatus is the payment lifecycle state reported by the gateway.
type PaymentStatus string

const (
	PaymentOpen      PaymentStatus = "open"
	PaymentConfirmed PaymentStatus = "confirmed"
	PaymentCanceled  PaymentStatus = "canceled"
	PaymentExpired   PaymentStatus = "expired"
	PaymentFailed    PaymentStatus = "failed"
)

// ActivePaymentStatuses are the statuses that still count against
// ticket capacity. Canceled, expired and failed participants free
// their spots again.
var ActivePaymentStatuses = []PaymentStatus{PaymentOpen, PaymentConfirmed}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentOpen, PaymentConfirmed, PaymentCanceled, PaymentExpired, PaymentFailed:
		return PaymentStatus(s), nil
	}
	return "", fmt.Errorf("%w: %q", status.ErrUnknownStatus, s)
}

// StatusTransition describes a status write against a payment record,
// comparing the previously persisted status with the incoming one.
type StatusTransition struct {
	From PaymentStatus
	To   PaymentStatus
}

// WriteThrough reports whether the write is accepted without running
// side effects. A payment that is already confirmed is terminal for
// side-effect purposes, so gateway re-deliveries are no-ops here.
func (t StatusTransition) WriteThrough() bool {
	return t.From == PaymentConfirmed
}

// RunsConfirmation reports whether this write enters the confirmed
// state for the first time. Confirmation side effects (ticket PDF +
// email) run exactly when this is true, which gives the at-most-once
// guarantee for duplicated gateway notifications.
func (t StatusTransition) RunsConfirmation() bool {
	return t.From != PaymentConfirmed && t.To == PaymentConfirmed
}

type Payment struct {
	ID               string          `json:"id"`
	Total            decimal.Decimal `json:"total"`
	Currency         string          `json:"currency"`
	Description      string          `json:"description"`
	BillingFirstName string          `json:"billing_first_name"`
	BillingLastName  string          `json:"billing_last_name"`
	Status           PaymentStatus   `json:"status"`
}

func PaymentFromRecord(record *core.Record) Payment {
	return Payment{
		ID:               record.Id,
		Total:            decimal.NewFromFloat(record.GetFloat("total")),
		Currency:         record.GetString("currency"),
		Description:      record.GetString("description"),
		BillingFirstName: record.GetString("billing_first_name"),
		BillingLastName:  record.GetString("billing_last_name"),
		Status:           PaymentStatus(record.GetString("status")),
	}
}

func (p Payment) BillingName() string {
	return p.BillingFirstName + " " + p.BillingLastName
}
