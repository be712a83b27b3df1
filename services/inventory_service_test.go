package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilityFromCount(t *testing.T) {
	availability := availabilityFromCount(100, 40)
	assert.Equal(t, 40, availability.ParticipantsCount)
	assert.Equal(t, 60, availability.RemainingTickets)
	assert.False(t, availability.IsSoldOut)

	availability = availabilityFromCount(100, 100)
	assert.Equal(t, 0, availability.RemainingTickets)
	assert.True(t, availability.IsSoldOut)
}

func TestAvailabilityFromCount_OverSoldNotClamped(t *testing.T) {
	availability := availabilityFromCount(100, 103)
	assert.Equal(t, -3, availability.RemainingTickets)
	assert.True(t, availability.IsSoldOut)
}

func TestEventSoldOut(t *testing.T) {
	tests := []struct {
		name           string
		max            int
		count          int
		ticketsSoldOut []bool
		expected       bool
	}{
		{"spots left and open tier", 100, 40, []bool{false, true}, false},
		{"event cap reached", 100, 100, []bool{false, false}, true},
		{"event cap exceeded", 100, 103, []bool{false}, true},
		{"every tier sold out", 100, 40, []bool{true, true}, true},
		{"no tiers configured", 100, 0, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, eventSoldOut(tt.max, tt.count, tt.ticketsSoldOut))
		})
	}
}
