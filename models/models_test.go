package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saranalaya/internal/status"
)

func TestParsePaymentStatus_Valid(t *testing.T) {
	for _, s := range []string{"open", "confirmed", "canceled", "expired", "failed"} {
		parsed, err := ParsePaymentStatus(s)
		require.NoError(t, err)
		assert.Equal(t, PaymentStatus(s), parsed)
	}
}

func TestParsePaymentStatus_Unknown(t *testing.T) {
	_, err := ParsePaymentStatus("paid")
	assert.ErrorIs(t, err, status.ErrUnknownStatus)

	_, err = ParsePaymentStatus("")
	assert.ErrorIs(t, err, status.ErrUnknownStatus)
}

func TestStatusTransition_RunsConfirmationOnlyOnFirstConfirm(t *testing.T) {
	tests := []struct {
		name             string
		transition       StatusTransition
		writeThrough     bool
		runsConfirmation bool
	}{
		{"open to confirmed", StatusTransition{PaymentOpen, PaymentConfirmed}, false, true},
		{"failed to confirmed", StatusTransition{PaymentFailed, PaymentConfirmed}, false, true},
		{"confirmed to confirmed", StatusTransition{PaymentConfirmed, PaymentConfirmed}, true, false},
		{"confirmed to canceled", StatusTransition{PaymentConfirmed, PaymentCanceled}, true, false},
		{"open to canceled", StatusTransition{PaymentOpen, PaymentCanceled}, false, false},
		{"open to open", StatusTransition{PaymentOpen, PaymentOpen}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.writeThrough, tt.transition.WriteThrough())
			assert.Equal(t, tt.runsConfirmation, tt.transition.RunsConfirmation())
		})
	}
}

func TestActivePaymentStatuses_ExcludeTerminalFailures(t *testing.T) {
	assert.Contains(t, ActivePaymentStatuses, PaymentOpen)
	assert.Contains(t, ActivePaymentStatuses, PaymentConfirmed)
	assert.NotContains(t, ActivePaymentStatuses, PaymentCanceled)
	assert.NotContains(t, ActivePaymentStatuses, PaymentExpired)
	assert.NotContains(t, ActivePaymentStatuses, PaymentFailed)
}

func TestPayment_BillingName(t *testing.T) {
	payment := Payment{
		BillingFirstName: "Anna",
		BillingLastName:  "Peeters",
		Total:            decimal.NewFromInt(20),
	}

	assert.Equal(t, "Anna Peeters", payment.BillingName())
}

func TestParticipant_FullName(t *testing.T) {
	participant := Participant{
		FirstName: "Anna",
		LastName:  "Peeters",
	}

	assert.Equal(t, "Anna Peeters", participant.FullName())
}

func TestEvent_IsSameDay(t *testing.T) {
	start := time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC)

	sameDay := Event{StartDate: start, EndDate: start.Add(5 * time.Hour)}
	assert.True(t, sameDay.IsSameDay())

	overnight := Event{StartDate: start, EndDate: start.Add(12 * time.Hour)}
	assert.False(t, overnight.IsSameDay())
}

func TestEvent_FormatDateRange(t *testing.T) {
	start := time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC)

	sameDay := Event{StartDate: start, EndDate: start.Add(5 * time.Hour)}
	assert.Equal(t, "20 Jun 2026 18:00 - 23:00", sameDay.FormatDateRange())

	multiDay := Event{StartDate: start, EndDate: start.Add(42 * time.Hour)}
	assert.Equal(t, "20 Jun 2026 18:00 - 22 Jun 2026 12:00", multiDay.FormatDateRange())
}

func TestEvent_IsInFuture(t *testing.T) {
	future := Event{StartDate: time.Now().Add(24 * time.Hour)}
	assert.True(t, future.IsInFuture())

	past := Event{StartDate: time.Now().Add(-24 * time.Hour)}
	assert.False(t, past.IsInFuture())
}
