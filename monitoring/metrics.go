package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticketsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickets_sold_total",
			Help: "Participants created through the purchase flow per event",
		},
		[]string{"event_id"},
	)

	paymentsConfirmed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_confirmed_total",
			Help: "Payments that entered the confirmed state",
		},
		[]string{"currency"},
	)

	confirmationEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "confirmation_emails_total",
			Help: "Confirmation email attempts by outcome",
		},
		[]string{"status"},
	)

	attendanceScans = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attendance_scans_total",
			Help: "Attendance scan attempts by result",
		},
		[]string{"result"},
	)

	pdfRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ticket_pdf_render_duration_seconds",
			Help:    "Duration of merged ticket PDF generation",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
	)
)

func TrackTicketsSold(eventID string, amount int) {
	ticketsSold.WithLabelValues(eventID).Add(float64(amount))
}

func TrackPaymentConfirmed(currency string) {
	paymentsConfirmed.WithLabelValues(currency).Inc()
}

func TrackConfirmationEmail(status string) {
	confirmationEmails.WithLabelValues(status).Inc()
}

func TrackAttendanceScan(result string) {
	attendanceScans.WithLabelValues(result).Inc()
}

func TrackPDFRender(duration time.Duration) {
	pdfRenderDuration.Observe(duration.Seconds())
}
