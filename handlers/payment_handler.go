package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"saranalaya/config"
	"saranalaya/internal/gateway"
	"saranalaya/models"
	"saranalaya/services"
)

type PaymentHandler struct {
	app      core.App
	cfg      *config.Config
	payments *services.PaymentService
	registry *gateway.Registry
}

func NewPaymentHandler(app core.App, cfg *config.Config, payments *services.PaymentService, registry *gateway.Registry) *PaymentHandler {
	return &PaymentHandler{
		app:      app,
		cfg:      cfg,
		payments: payments,
		registry: registry,
	}
}

// GetPaymentDetails returns the payment page data, including the
// provider checkout URL the buyer is sent to.
func (h *PaymentHandler) GetPaymentDetails(e *core.RequestEvent) error {
	record, err := h.app.FindRecordById("payments", e.Request.PathValue("paymentId"))
	if err != nil {
		return apis.NewNotFoundError("Payment not found", err)
	}
	payment := models.PaymentFromRecord(record)

	provider, err := h.registry.Primary()
	if err != nil {
		return apis.NewBadRequestError("No payment provider configured", err)
	}

	checkoutURL, err := provider.PaymentURL(e.Request.Context(), &gateway.PaymentRequest{
		PaymentID:   payment.ID,
		Amount:      payment.Total,
		Currency:    payment.Currency,
		Description: payment.Description,
		SuccessURL:  fmt.Sprintf("%s/events/ticket/%s/success", h.cfg.PublicURL, payment.ID),
		FailureURL:  fmt.Sprintf("%s/events/ticket/%s/failure", h.cfg.PublicURL, payment.ID),
	})
	if err != nil {
		return apis.NewBadRequestError("Failed to prepare checkout", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"payment":      payment,
		"checkout_url": checkoutURL,
	})
}

// Notify is the gateway webhook: it authenticates the caller, parses
// the reported status and hands it to the payment state machine. A
// failed confirmation (email or PDF error) returns 500 so the gateway
// retries the delivery.
func (h *PaymentHandler) Notify(e *core.RequestEvent) error {
	body, err := io.ReadAll(e.Request.Body)
	if err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	if h.cfg.GatewayTokenHash != "" {
		token := e.Request.Header.Get("X-Webhook-Token")
		if !gateway.CompareToken(h.cfg.GatewayTokenHash, token) {
			return apis.NewForbiddenError("Invalid webhook token", nil)
		}
	}

	provider, err := h.registry.Primary()
	if err != nil {
		return apis.NewBadRequestError("No payment provider configured", err)
	}
	if !provider.VerifyNotification(body, e.Request.Header.Get("X-Signature")) {
		return apis.NewForbiddenError("Invalid notification signature", nil)
	}

	var notification struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &notification); err != nil {
		return apis.NewBadRequestError("Invalid notification payload", err)
	}

	newStatus, err := models.ParsePaymentStatus(notification.Status)
	if err != nil {
		return apis.NewBadRequestError("Unknown payment status", err)
	}

	paymentID := e.Request.PathValue("paymentId")
	if err := h.payments.ApplyGatewayStatus(paymentID, newStatus); err != nil {
		return apis.NewApiError(http.StatusInternalServerError, "Failed to process status update", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"processed": true,
		"status":    string(newStatus),
	})
}

// DownloadTickets streams the merged ticket PDF for a confirmed
// payment.
func (h *PaymentHandler) DownloadTickets(e *core.RequestEvent) error {
	record, err := h.app.FindRecordById("payments", e.Request.PathValue("paymentId"))
	if err != nil {
		return apis.NewNotFoundError("Payment not found", err)
	}

	if models.PaymentStatus(record.GetString("status")) != models.PaymentConfirmed {
		return apis.NewBadRequestError("Tickets are only available for confirmed payments", nil)
	}

	participants, err := h.app.FindAllRecords("participants", dbx.HashExp{"payment": record.Id})
	if err != nil || len(participants) == 0 {
		return apis.NewNotFoundError("No participants for payment", err)
	}

	pdfBytes, err := h.payments.PaymentTickets(record.Id, participants)
	if err != nil {
		return apis.NewApiError(http.StatusInternalServerError, "Failed to generate tickets", err)
	}

	e.Response.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", fmt.Sprintf("tickets-%s.pdf", record.Id)))

	return e.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

// DownloadParticipantTicket streams the single-page ticket of one
// participant. Staff only, used for reprints at the door.
func (h *PaymentHandler) DownloadParticipantTicket(e *core.RequestEvent) error {
	if !e.HasSuperuserAuth() {
		return apis.NewForbiddenError("Staff only", nil)
	}

	record, err := h.app.FindRecordById("participants", e.Request.PathValue("participantId"))
	if err != nil {
		return apis.NewNotFoundError("Participant not found", err)
	}

	pdfBytes, err := h.payments.ParticipantTicket(record)
	if err != nil {
		return apis.NewApiError(http.StatusInternalServerError, "Failed to generate ticket", err)
	}

	e.Response.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", fmt.Sprintf("ticket-%s.pdf", record.Id)))

	return e.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

// Success is the gateway redirect landing after a completed checkout.
func (h *PaymentHandler) Success(e *core.RequestEvent) error {
	return e.JSON(http.StatusOK, map[string]any{
		"title":      "Payment received!",
		"payment_id": e.Request.PathValue("paymentId"),
	})
}

// Failure is the gateway redirect landing after an aborted checkout.
func (h *PaymentHandler) Failure(e *core.RequestEvent) error {
	return e.JSON(http.StatusOK, map[string]any{
		"title":      "Oops, something went wrong!",
		"payment_id": e.Request.PathValue("paymentId"),
	})
}

// SimulatePayment applies a status update without a gateway, for local
// development only.
func (h *PaymentHandler) SimulatePayment(e *core.RequestEvent) error {
	var req struct {
		PaymentID string `json:"payment_id"`
		Status    string `json:"status"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	newStatus, err := models.ParsePaymentStatus(req.Status)
	if err != nil {
		return apis.NewBadRequestError("Unknown payment status", err)
	}

	if err := h.payments.ApplyGatewayStatus(req.PaymentID, newStatus); err != nil {
		return apis.NewApiError(http.StatusInternalServerError, "Failed to apply status", err)
	}

	return e.JSON(http.StatusOK, map[string]any{"processed": true})
}
