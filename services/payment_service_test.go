package services

import (
	"testing"
	"time"

	"github.com/pocketbase/pocketbase/tools/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saranalaya/models"
)

func TestPaymentService_RenderEmailBody(t *testing.T) {
	s := &PaymentService{templates: template.NewRegistry()}

	event := models.Event{
		Title:         "Summer Gala",
		StartDate:     time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 6, 20, 23, 0, 0, 0, time.UTC),
		LocationShort: "Main Hall, Antwerp",
	}
	participant := models.Participant{
		FirstName: "Anna",
		LastName:  "Peeters",
		Mail:      "anna@example.com",
	}

	body, err := s.renderEmailBody(event, participant)
	require.NoError(t, err)

	assert.Contains(t, body, "Thank you, Anna!")
	assert.Contains(t, body, "Summer Gala")
	assert.Contains(t, body, "20 Jun 2026 18:00 - 23:00")
	assert.Contains(t, body, "Main Hall, Antwerp")

	// Inline images are referenced by content-id and must match what
	// runConfirmation attaches.
	for _, name := range inlineImages {
		assert.Contains(t, body, "cid:"+name)
	}
}
