package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"saranalaya/internal/status"
	"saranalaya/services"
)

type AttendanceHandler struct {
	app        core.App
	attendance *services.AttendanceService
}

func NewAttendanceHandler(app core.App, attendance *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{app: app, attendance: attendance}
}

// MarkAttendance verifies a scanned QR payload and latches the
// participant's attended flag. Every failure branch is a 400 with a
// distinct message so operators can tell double-scans from fraud
// attempts; the response never reveals whether the participant id
// itself was valid on a seed mismatch.
func (h *AttendanceHandler) MarkAttendance(e *core.RequestEvent) error {
	var req struct {
		ParticipantID string `json:"participant_id"`
		Seed          string `json:"seed"`
	}
	if err := e.BindBody(&req); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "QR code not recognised!",
		})
	}

	ticketTitle, err := h.attendance.MarkAttendance(e.Request.Context(), req.ParticipantID, req.Seed)
	if err != nil {
		message := "QR code not recognised!"
		switch {
		case errors.Is(err, status.ErrSeedMismatch):
			message = "Fraud detected!"
		case errors.Is(err, status.ErrAlreadyAttended):
			message = "Participant already attended!"
		case errors.Is(err, status.ErrScanInProgress):
			message = "Scan already in progress, try again."
		case errors.Is(err, status.ErrNotRecognised):
			// keep the default message
		default:
			return apis.NewApiError(http.StatusInternalServerError, "Failed to mark attendance", err)
		}

		return e.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"message": message,
		})
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": ticketTitle,
	})
}

// Scanner gates the door-scanner page to staff.
func (h *AttendanceHandler) Scanner(e *core.RequestEvent) error {
	if !e.HasSuperuserAuth() {
		return apis.NewForbiddenError("Staff only", nil)
	}

	return e.JSON(http.StatusOK, map[string]any{"scanner": "ready"})
}
