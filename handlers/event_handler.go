package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"saranalaya/internal/status"
	"saranalaya/models"
	"saranalaya/services"
)

type EventHandler struct {
	app       core.App
	inventory *services.InventoryService
	purchase  *services.PurchaseService
}

func NewEventHandler(app core.App, inventory *services.InventoryService, purchase *services.PurchaseService) *EventHandler {
	return &EventHandler{
		app:       app,
		inventory: inventory,
		purchase:  purchase,
	}
}

// GetEvent returns the public event page data: the event, its ticket
// tiers and the derived availability of both.
func (h *EventHandler) GetEvent(e *core.RequestEvent) error {
	eventRecord, err := h.app.FindRecordById("events", e.Request.PathValue("eventId"))
	if err != nil {
		return apis.NewNotFoundError("Event not found", err)
	}
	event := models.EventFromRecord(eventRecord)

	ticketRecords, err := h.app.FindAllRecords("tickets", dbx.HashExp{"event": event.ID})
	if err != nil {
		return apis.NewBadRequestError("Failed to load tickets", err)
	}

	tickets := make([]models.Ticket, 0, len(ticketRecords))
	ticketViews := make([]map[string]any, 0, len(ticketRecords))
	for _, record := range ticketRecords {
		ticket := models.TicketFromRecord(record)
		tickets = append(tickets, ticket)

		availability, err := h.inventory.TicketAvailability(ticket)
		if err != nil {
			return apis.NewBadRequestError("Failed to compute availability", err)
		}

		ticketViews = append(ticketViews, map[string]any{
			"id":           ticket.ID,
			"title":        ticket.Title,
			"description":  ticket.Description,
			"price":        ticket.Price,
			"availability": availability,
		})
	}

	eventAvailability, err := h.inventory.EventAvailability(event, tickets)
	if err != nil {
		return apis.NewBadRequestError("Failed to compute availability", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"event":        event,
		"is_in_future": event.IsInFuture(),
		"is_same_day":  event.IsSameDay(),
		"availability": eventAvailability,
		"tickets":      ticketViews,
	})
}

// Purchase handles the ticket order form: on success it redirects the
// buyer to the payment-details page of the freshly created payment.
func (h *EventHandler) Purchase(e *core.RequestEvent) error {
	var req services.PurchaseRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	req.EventID = e.Request.PathValue("eventId")

	result, err := h.purchase.Purchase(req)
	if err != nil {
		switch {
		case errors.Is(err, status.ErrSellingDisabled):
			return apis.NewBadRequestError("Event is not selling tickets", err)
		case errors.Is(err, status.ErrInvalidQuantity):
			return apis.NewBadRequestError(err.Error(), err)
		case errors.Is(err, status.ErrInvalidEmail):
			return apis.NewBadRequestError(err.Error(), err)
		case errors.Is(err, status.ErrUnknownTicket):
			return apis.NewBadRequestError("Unknown ticket", err)
		case errors.Is(err, status.ErrSoldOut):
			return apis.NewBadRequestError("Not enough tickets remaining", err)
		default:
			return apis.NewNotFoundError("Event not found", err)
		}
	}

	return e.Redirect(http.StatusSeeOther, result.RedirectURL)
}
