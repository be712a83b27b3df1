package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProviderName identifies a payment gateway implementation.
type ProviderName string

const (
	ProviderDummy  ProviderName = "dummy"
	ProviderMollie ProviderName = "mollie"
)

// PaymentRequest carries what a provider needs to start a checkout.
type PaymentRequest struct {
	PaymentID   string          `json:"payment_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	SuccessURL  string          `json:"success_url,omitempty"`
	FailureURL  string          `json:"failure_url,omitempty"`
}

// Notification is a status update pushed by the gateway, either over
// the HTTP webhook or over the provider's notification channel.
type Notification struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
	RefID     string `json:"ref_id,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// Provider defines the common interface for all payment gateways.
type Provider interface {
	// Name returns the provider identifier.
	Name() ProviderName

	// PaymentURL returns the checkout URL end users are redirected to.
	PaymentURL(ctx context.Context, req *PaymentRequest) (string, error)

	// VerifyNotification checks the authenticity of a raw webhook body.
	VerifyNotification(body []byte, signature string) bool

	// SetNotificationChannel sets the channel receiving pushed status updates.
	SetNotificationChannel(ch chan *Notification)

	// Close gracefully closes any connections.
	Close(ctx context.Context) error
}

// ProviderFactory creates provider instances based on name.
type ProviderFactory interface {
	CreateProvider(ctx context.Context, name ProviderName, config interface{}) (Provider, error)
	GetSupportedProviders() []ProviderName
}
