package services

import (
	"fmt"

	"github.com/asaskevich/govalidator"
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"saranalaya/config"
	"saranalaya/internal/status"
	"saranalaya/models"
	"saranalaya/monitoring"
	"saranalaya/utils"
)

// PurchaseRequest is a validated ticket order for one event. Quantities
// maps ticket ids to the requested amount; tickets not purchased are
// simply absent.
type PurchaseRequest struct {
	EventID   string         `json:"event_id"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Email     string         `json:"email"`
	Tickets   map[string]int `json:"tickets"`
}

// PurchaseResult points the buyer at the payment page for the created
// payment.
type PurchaseResult struct {
	PaymentID   string `json:"payment_id"`
	RedirectURL string `json:"redirect_url"`
}

// PurchaseService creates the payment and participant records for a
// ticket order. Creation is atomic: when any participant insert fails
// the payment is rolled back with it.
type PurchaseService struct {
	app core.App
	cfg *config.Config
}

func NewPurchaseService(app core.App, cfg *config.Config) *PurchaseService {
	return &PurchaseService{app: app, cfg: cfg}
}

// validateOrder runs the fail-fast request checks: selling enabled,
// sane quantities, then email format.
func validateOrder(event models.Event, req PurchaseRequest) error {
	if !event.EnableSelling {
		return status.ErrSellingDisabled
	}

	for ticketID, quantity := range req.Tickets {
		if quantity < 1 {
			return fmt.Errorf("%w: %d for ticket %s", status.ErrInvalidQuantity, quantity, ticketID)
		}
	}

	if !govalidator.IsEmail(req.Email) {
		return fmt.Errorf("%w: %q", status.ErrInvalidEmail, req.Email)
	}

	return nil
}

// orderTotal sums price x quantity over the requested tickets.
func orderTotal(tickets map[string]models.Ticket, quantities map[string]int) (decimal.Decimal, error) {
	total := decimal.Zero
	for ticketID, quantity := range quantities {
		ticket, ok := tickets[ticketID]
		if !ok {
			return decimal.Zero, fmt.Errorf("%w: %s", status.ErrUnknownTicket, ticketID)
		}
		total = total.Add(ticket.Price.Mul(decimal.NewFromInt(int64(quantity))))
	}
	return total, nil
}

// Purchase validates the order and creates one open payment plus one
// participant per requested ticket, each with a fresh seed. The
// capacity check runs inside the transaction so two racing orders
// cannot both squeeze into the last remaining spots.
func (s *PurchaseService) Purchase(req PurchaseRequest) (*PurchaseResult, error) {
	eventRecord, err := s.app.FindRecordById("events", req.EventID)
	if err != nil {
		return nil, err
	}
	event := models.EventFromRecord(eventRecord)

	if err := validateOrder(event, req); err != nil {
		return nil, err
	}

	ticketRecords, err := s.app.FindAllRecords("tickets", dbx.HashExp{"event": event.ID})
	if err != nil {
		return nil, err
	}

	tickets := make(map[string]models.Ticket, len(ticketRecords))
	for _, record := range ticketRecords {
		tickets[record.Id] = models.TicketFromRecord(record)
	}

	total, err := orderTotal(tickets, req.Tickets)
	if err != nil {
		return nil, err
	}

	var paymentID string

	err = s.app.RunInTransaction(func(txApp core.App) error {
		// Re-check capacity per tier now that we hold the write tx.
		for ticketID, quantity := range req.Tickets {
			ticket := tickets[ticketID]
			count, err := countActiveParticipants(txApp.DB(), ticketID)
			if err != nil {
				return err
			}
			if count+quantity > ticket.MaxParticipants {
				return fmt.Errorf("%w: %s", status.ErrSoldOut, ticket.Title)
			}
		}

		paymentsCollection, err := txApp.FindCollectionByNameOrId("payments")
		if err != nil {
			return err
		}

		payment := core.NewRecord(paymentsCollection)
		payment.Set("total", total.InexactFloat64())
		payment.Set("currency", s.cfg.Currency)
		payment.Set("description", event.Title)
		payment.Set("billing_first_name", req.FirstName)
		payment.Set("billing_last_name", req.LastName)
		payment.Set("status", string(models.PaymentOpen))

		if err := txApp.Save(payment); err != nil {
			return err
		}
		paymentID = payment.Id

		participantsCollection, err := txApp.FindCollectionByNameOrId("participants")
		if err != nil {
			return err
		}

		for ticketID, quantity := range req.Tickets {
			for i := 0; i < quantity; i++ {
				seed, err := utils.RandomSeed(models.SeedLength)
				if err != nil {
					return err
				}

				participant := core.NewRecord(participantsCollection)
				participant.Set("first_name", req.FirstName)
				participant.Set("last_name", req.LastName)
				participant.Set("mail", req.Email)
				participant.Set("attended", false)
				participant.Set("ticket", ticketID)
				participant.Set("payment", paymentID)
				participant.Set("random_seed", seed)

				if err := txApp.Save(participant); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, quantity := range req.Tickets {
		monitoring.TrackTicketsSold(event.ID, quantity)
	}

	return &PurchaseResult{
		PaymentID:   paymentID,
		RedirectURL: fmt.Sprintf("%s/events/payment-details/%s", s.cfg.PublicURL, paymentID),
	}, nil
}
