package services

import (
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"saranalaya/models"
)

// InventoryService computes remaining/sold-out state for events and
// ticket tiers. All methods are pure reads; the counts are advisory
// outside the purchase transaction (two concurrent purchases are only
// serialized by the capacity re-check inside that transaction).
type InventoryService struct {
	app core.App
}

func NewInventoryService(app core.App) *InventoryService {
	return &InventoryService{app: app}
}

// TicketAvailability is the derived inventory state of one ticket tier.
type TicketAvailability struct {
	ParticipantsCount int  `json:"participants_count"`
	RemainingTickets  int  `json:"remaining_tickets"`
	IsSoldOut         bool `json:"is_sold_out"`
}

// countActiveParticipants counts participants on a ticket whose payment
// is still likely to complete. Canceled, expired and failed payments
// never block a spot.
func countActiveParticipants(db dbx.Builder, ticketID string) (int, error) {
	statuses := make([]interface{}, 0, len(models.ActivePaymentStatuses))
	for _, s := range models.ActivePaymentStatuses {
		statuses = append(statuses, string(s))
	}

	var count int
	err := db.Select("COUNT(*)").
		From("participants").
		InnerJoin("payments", dbx.NewExp("payments.id = participants.payment")).
		Where(dbx.And(
			dbx.HashExp{"participants.ticket": ticketID},
			dbx.In("payments.status", statuses...),
		)).
		Row(&count)

	return count, err
}

// TicketAvailability returns the inventory state for a single ticket.
// Remaining can go negative when a tier was over-sold; it is reported
// as-is, not clamped.
func (s *InventoryService) TicketAvailability(ticket models.Ticket) (TicketAvailability, error) {
	return ticketAvailability(s.app.DB(), ticket)
}

func ticketAvailability(db dbx.Builder, ticket models.Ticket) (TicketAvailability, error) {
	count, err := countActiveParticipants(db, ticket.ID)
	if err != nil {
		return TicketAvailability{}, err
	}

	return availabilityFromCount(ticket.MaxParticipants, count), nil
}

func availabilityFromCount(maxParticipants, count int) TicketAvailability {
	return TicketAvailability{
		ParticipantsCount: count,
		RemainingTickets:  maxParticipants - count,
		IsSoldOut:         count >= maxParticipants,
	}
}

// EventAvailability is the derived inventory state of a whole event.
type EventAvailability struct {
	ParticipantsCount int  `json:"participants_count"`
	RemainingTickets  int  `json:"remaining_tickets"`
	IsSoldOut         bool `json:"is_sold_out"`
}

// EventAvailability aggregates the event-level counts: an event is sold
// out when its own participant cap is reached or when every tier under
// it is sold out.
func (s *InventoryService) EventAvailability(event models.Event, tickets []models.Ticket) (EventAvailability, error) {
	total := 0
	ticketsSoldOut := make([]bool, 0, len(tickets))

	for _, ticket := range tickets {
		availability, err := s.TicketAvailability(ticket)
		if err != nil {
			return EventAvailability{}, err
		}
		total += availability.ParticipantsCount
		ticketsSoldOut = append(ticketsSoldOut, availability.IsSoldOut)
	}

	return EventAvailability{
		ParticipantsCount: total,
		RemainingTickets:  event.MaxParticipants - total,
		IsSoldOut:         eventSoldOut(event.MaxParticipants, total, ticketsSoldOut),
	}, nil
}

func eventSoldOut(maxParticipants, activeCount int, ticketsSoldOut []bool) bool {
	if activeCount >= maxParticipants {
		return true
	}

	for _, soldOut := range ticketsSoldOut {
		if !soldOut {
			return false
		}
	}
	return true
}
