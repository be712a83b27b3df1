package ticketpdf

import (
	"bytes"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTicket(participantID, seed string) Ticket {
	return Ticket{
		ParticipantID: participantID,
		Seed:          seed,
		EventTitle:    "Summer Gala",
		EventDates:    "20 Jun 2026 18:00 - 23:00",
		TicketTitle:   "Standard",
		Location:      "Main Hall, Antwerp",
	}
}

func TestQRPayload(t *testing.T) {
	payload := QRPayload("p123", "a1B2c3D4e5")
	assert.Equal(t, "participant_id:p123\nseed:a1B2c3D4e5", payload)
}

func TestGenerator_RenderOne(t *testing.T) {
	g := New("")

	doc, err := g.RenderOne(testTicket("p123", "a1B2c3D4e5"))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))

	pages, err := api.PageCount(bytes.NewReader(doc), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestGenerator_RenderMerged_OnePagePerParticipant(t *testing.T) {
	g := New("")

	doc, err := g.RenderMerged([]Ticket{
		testTicket("p1", "a1B2c3D4e5"),
		testTicket("p2", "f6G7h8I9j0"),
		testTicket("p3", "k1L2m3N4o5"),
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))

	pages, err := api.PageCount(bytes.NewReader(doc), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, pages)
}

func TestGenerator_RenderMerged_SingleTicket(t *testing.T) {
	g := New("")

	doc, err := g.RenderMerged([]Ticket{testTicket("p1", "a1B2c3D4e5")})
	require.NoError(t, err)

	pages, err := api.PageCount(bytes.NewReader(doc), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestGenerator_RenderMerged_Empty(t *testing.T) {
	g := New("")

	_, err := g.RenderMerged(nil)
	assert.Error(t, err)
}
