package status

import "errors"

var (
	// purchase flow
	ErrSellingDisabled = errors.New("purchase: event is not selling tickets")
	ErrInvalidQuantity = errors.New("purchase: invalid ticket quantity")
	ErrInvalidEmail    = errors.New("purchase: invalid email")
	ErrUnknownTicket   = errors.New("purchase: ticket does not belong to event")
	ErrSoldOut         = errors.New("purchase: not enough tickets remaining")

	// attendance flow
	ErrNotRecognised   = errors.New("attendance: qr code not recognised")
	ErrSeedMismatch    = errors.New("attendance: seed mismatch")
	ErrAlreadyAttended = errors.New("attendance: participant already attended")
	ErrScanInProgress  = errors.New("attendance: scan already in progress")

	// payment flow
	ErrUnknownStatus  = errors.New("payment: unknown payment status")
	ErrNoParticipants = errors.New("payment: payment has no participants")
	ErrTicketNotReady = errors.New("payment: tickets are only available for confirmed payments")

	// gateway
	ErrBadSignature      = errors.New("gateway: notification signature mismatch")
	ErrProviderNotFound  = errors.New("gateway: provider not registered")
	ErrNoPrimaryProvider = errors.New("gateway: no primary provider configured")
)
