package services

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/mail"
	"os"
	"path/filepath"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/mailer"
	"github.com/pocketbase/pocketbase/tools/template"
	pubnub "github.com/pubnub/go"

	"saranalaya/config"
	"saranalaya/internal/status"
	"saranalaya/models"
	"saranalaya/monitoring"
	"saranalaya/services/ticketpdf"
	"saranalaya/utils"
)

//go:embed templates/confirmation_email.html
var confirmationEmailTemplate string

// inlineImages are attached by content-id and referenced from the
// email template.
var inlineImages = []string{"logo.png", "facebook.png", "mail.png"}

// PaymentService runs the confirmation side effects of the payment
// state machine: when a payment first enters the confirmed state it
// sends exactly one confirmation email carrying the merged ticket PDF.
type PaymentService struct {
	app       core.App
	cfg       *config.Config
	pn        *pubnub.PubNub
	generator *ticketpdf.Generator
	templates *template.Registry
}

func NewPaymentService(app core.App, cfg *config.Config, pn *pubnub.PubNub, generator *ticketpdf.Generator) *PaymentService {
	return &PaymentService{
		app:       app,
		cfg:       cfg,
		pn:        pn,
		generator: generator,
		templates: template.NewRegistry(),
	}
}

// OnStatusWrite is bound to the payments update hook. It compares the
// previously persisted status with the incoming one and runs the
// confirmation side effects before the write lands. An already
// confirmed payment writes through untouched, so re-delivered gateway
// updates never send a second email.
func (s *PaymentService) OnStatusWrite(e *core.RecordEvent) error {
	transition := models.StatusTransition{
		From: models.PaymentStatus(e.Record.Original().GetString("status")),
		To:   models.PaymentStatus(e.Record.GetString("status")),
	}

	if transition.WriteThrough() || !transition.RunsConfirmation() {
		return e.Next()
	}

	ctx := e.Context
	if ctx == nil {
		ctx = context.Background()
	}

	// Side effects run before the status is persisted. A failed email
	// aborts the whole transition; the gateway's retry will re-run it
	// because the stored status is still not confirmed.
	if err := s.runConfirmation(ctx, e.Record); err != nil {
		monitoring.TrackConfirmationEmail("error")
		return fmt.Errorf("payment %s confirmation: %w", e.Record.Id, err)
	}

	monitoring.TrackConfirmationEmail("sent")
	monitoring.TrackPaymentConfirmed(e.Record.GetString("currency"))
	s.publishConfirmed(e.Record.Id)

	return e.Next()
}

func (s *PaymentService) runConfirmation(ctx context.Context, payment *core.Record) error {
	participants, err := s.app.FindAllRecords("participants", dbx.HashExp{"payment": payment.Id})
	if err != nil {
		return err
	}
	if len(participants) == 0 {
		return status.ErrNoParticipants
	}

	// All siblings share the same purchasing contact, any of them works
	// as the addressee.
	representative := models.ParticipantFromRecord(participants[0])

	ticketRecord, err := s.app.FindRecordById("tickets", representative.TicketID)
	if err != nil {
		return err
	}
	eventRecord, err := s.app.FindRecordById("events", ticketRecord.GetString("event"))
	if err != nil {
		return err
	}
	event := models.EventFromRecord(eventRecord)

	start := time.Now()
	pdfBytes, err := s.PaymentTickets(payment.Id, participants)
	if err != nil {
		return err
	}
	monitoring.TrackPDFRender(time.Since(start))

	body, err := s.renderEmailBody(event, representative)
	if err != nil {
		return err
	}

	message := &mailer.Message{
		From: mail.Address{
			Name:    s.cfg.SenderName,
			Address: s.app.Settings().Meta.SenderAddress,
		},
		To:      []mail.Address{{Address: representative.Mail}},
		Bcc:     []mail.Address{{Address: s.cfg.AdminEmail}},
		Subject: "Saranalaya | Confirmation",
		HTML:    body,
		Attachments: map[string]io.Reader{
			fmt.Sprintf("tickets-%s.pdf", payment.Id): bytes.NewReader(pdfBytes),
		},
		InlineAttachments: make(map[string]io.Reader, len(inlineImages)),
	}

	for _, name := range inlineImages {
		img, err := os.ReadFile(filepath.Join(s.cfg.AssetsDir, name))
		if err != nil {
			return fmt.Errorf("inline image %s: %w", name, err)
		}
		message.InlineAttachments[name] = bytes.NewReader(img)
	}

	return s.sendWithTimeout(ctx, message)
}

// sendWithTimeout bounds the outbound SMTP call so a wedged mail server
// cannot hold the gateway webhook open forever.
func (s *PaymentService) sendWithTimeout(ctx context.Context, message *mailer.Message) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.MailTimeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.NewMailClient().Send(message)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return fmt.Errorf("confirmation email: %w", ctx.Err())
	}
}

// PaymentTickets renders the merged multi-page ticket document for all
// participants of a payment, one page each, in participant order.
func (s *PaymentService) PaymentTickets(paymentID string, participants []*core.Record) ([]byte, error) {
	tickets := make([]ticketpdf.Ticket, 0, len(participants))

	for _, record := range participants {
		participant := models.ParticipantFromRecord(record)

		ticketRecord, err := s.app.FindRecordById("tickets", participant.TicketID)
		if err != nil {
			return nil, err
		}
		eventRecord, err := s.app.FindRecordById("events", ticketRecord.GetString("event"))
		if err != nil {
			return nil, err
		}
		event := models.EventFromRecord(eventRecord)

		tickets = append(tickets, ticketpdf.Ticket{
			ParticipantID: participant.ID,
			Seed:          participant.RandomSeed,
			EventTitle:    event.Title,
			EventDates:    event.FormatDateRange(),
			TicketTitle:   ticketRecord.GetString("title"),
			Location:      utils.StripTags(event.LocationLong),
		})
	}

	return s.generator.RenderMerged(tickets)
}

// ParticipantTicket renders the single-page ticket for one participant.
func (s *PaymentService) ParticipantTicket(record *core.Record) ([]byte, error) {
	return s.PaymentTickets("", []*core.Record{record})
}

func (s *PaymentService) renderEmailBody(event models.Event, participant models.Participant) (string, error) {
	return s.templates.LoadString(confirmationEmailTemplate).Render(map[string]any{
		"event":       event,
		"participant": participant,
		"dates":       event.FormatDateRange(),
	})
}

// ApplyGatewayStatus persists a status reported by the payment
// gateway. The update hook decides whether confirmation side effects
// run; duplicated or out-of-order deliveries are safe to apply.
func (s *PaymentService) ApplyGatewayStatus(paymentID string, newStatus models.PaymentStatus) error {
	payment, err := s.app.FindRecordById("payments", paymentID)
	if err != nil {
		return err
	}

	payment.Set("status", string(newStatus))

	return s.app.Save(payment)
}

// publishConfirmed pushes a best-effort note to the staff dashboard
// channel. Failures are ignored, the payment flow never depends on it.
func (s *PaymentService) publishConfirmed(paymentID string) {
	if s.pn == nil {
		return
	}

	s.pn.Publish().
		Channel(s.cfg.PubNubChannel).
		Message(map[string]any{
			"type":       "payment_confirmed",
			"payment_id": paymentID,
		}).
		Execute()
}
