package gateway

import (
	"context"
	"fmt"
)

// DummyConfig configures the development gateway. It never talks to a
// real payment processor: checkout happens on the local payment page
// and status updates arrive through the simulate endpoint, the webhook,
// or an optional PubNub channel.
type DummyConfig struct {
	PublicURL string
	HMACKey   string

	// Optional push-notification subscription.
	PNSubKey    string
	PNSubSecret string
	PNUUID      string
	PNChannel   string
	PNCipherKey string
}

type Dummy struct {
	publicURL string
	hmacKey   []byte
	sub       *subscriber
}

func NewDummy(ctx context.Context, cfg *DummyConfig) (*Dummy, error) {
	d := &Dummy{
		publicURL: cfg.PublicURL,
		hmacKey:   []byte(cfg.HMACKey),
	}

	if cfg.PNSubKey != "" {
		sub, err := newSubscriber(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to subscribe to gateway notification channel: %w", err)
		}
		d.sub = sub
	}

	return d, nil
}

func (d *Dummy) Name() ProviderName {
	return ProviderDummy
}

func (d *Dummy) PaymentURL(_ context.Context, req *PaymentRequest) (string, error) {
	if req.PaymentID == "" {
		return "", fmt.Errorf("payment url: missing payment id")
	}
	return fmt.Sprintf("%s/events/payment-details/%s", d.publicURL, req.PaymentID), nil
}

func (d *Dummy) VerifyNotification(body []byte, signature string) bool {
	if len(d.hmacKey) == 0 {
		// Unsigned mode is only acceptable for local development.
		return true
	}
	return VerifyHMAC(body, d.hmacKey, signature)
}

func (d *Dummy) SetNotificationChannel(ch chan *Notification) {
	if d.sub != nil {
		d.sub.ch = ch
	}
}

func (d *Dummy) Close(ctx context.Context) error {
	if d.sub != nil {
		d.sub.close(ctx)
	}
	return nil
}
