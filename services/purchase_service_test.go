package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saranalaya/internal/status"
	"saranalaya/models"
)

func sellableEvent() models.Event {
	return models.Event{
		ID:            "event1",
		Title:         "Summer Gala",
		EnableSelling: true,
	}
}

func TestValidateOrder_SellingDisabled(t *testing.T) {
	event := sellableEvent()
	event.EnableSelling = false

	err := validateOrder(event, PurchaseRequest{
		Email:   "anna@example.com",
		Tickets: map[string]int{"ticket1": 1},
	})

	assert.ErrorIs(t, err, status.ErrSellingDisabled)
}

func TestValidateOrder_InvalidQuantity(t *testing.T) {
	for _, quantity := range []int{0, -1} {
		err := validateOrder(sellableEvent(), PurchaseRequest{
			Email:   "anna@example.com",
			Tickets: map[string]int{"ticket1": quantity},
		})

		assert.ErrorIs(t, err, status.ErrInvalidQuantity)
	}
}

func TestValidateOrder_InvalidEmail(t *testing.T) {
	for _, email := range []string{"", "anna", "anna@", "@example.com"} {
		err := validateOrder(sellableEvent(), PurchaseRequest{
			Email:   email,
			Tickets: map[string]int{"ticket1": 1},
		})

		assert.ErrorIs(t, err, status.ErrInvalidEmail)
	}
}

func TestValidateOrder_SellingDisabledWinsOverBadEmail(t *testing.T) {
	event := sellableEvent()
	event.EnableSelling = false

	err := validateOrder(event, PurchaseRequest{
		Email:   "not-an-email",
		Tickets: map[string]int{"ticket1": 0},
	})

	assert.ErrorIs(t, err, status.ErrSellingDisabled)
}

func TestValidateOrder_Valid(t *testing.T) {
	err := validateOrder(sellableEvent(), PurchaseRequest{
		FirstName: "Anna",
		LastName:  "Peeters",
		Email:     "anna@example.com",
		Tickets:   map[string]int{"ticket1": 2},
	})

	assert.NoError(t, err)
}

func TestOrderTotal_SumsPriceTimesQuantity(t *testing.T) {
	tickets := map[string]models.Ticket{
		"standard": {ID: "standard", Title: "Standard", Price: decimal.NewFromInt(10)},
		"vip":      {ID: "vip", Title: "VIP", Price: decimal.RequireFromString("27.50")},
	}

	total, err := orderTotal(tickets, map[string]int{"standard": 2})
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(20)), "got %s", total)

	total, err = orderTotal(tickets, map[string]int{"standard": 1, "vip": 2})
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(65)), "got %s", total)
}

func TestOrderTotal_EmptyOrder(t *testing.T) {
	total, err := orderTotal(map[string]models.Ticket{}, map[string]int{})
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestOrderTotal_UnknownTicket(t *testing.T) {
	tickets := map[string]models.Ticket{
		"standard": {ID: "standard", Price: decimal.NewFromInt(10)},
	}

	_, err := orderTotal(tickets, map[string]int{"other": 1})
	assert.ErrorIs(t, err, status.ErrUnknownTicket)
}
