package gateway

import (
	"context"
	"encoding/json"
	"log/slog"

	pubnub "github.com/pubnub/go/v7"
)

// subscriber listens on the gateway's PubNub channel and converts
// pushed payment updates into Notifications.
type subscriber struct {
	pn       *pubnub.PubNub
	listener *pubnub.Listener
	channels []string
	ch       chan *Notification
}

type notificationPayload struct {
	PaymentID string `json:"billNumber"`
	RefID     string `json:"refNo"`
	Status    string `json:"status"`
	Timestamp int64  `json:"txnTimestamp"`
}

func newSubscriber(ctx context.Context, cfg *DummyConfig) (*subscriber, error) {
	pnCfg := pubnub.NewConfigWithUserId(pubnub.UserId(cfg.PNUUID))
	pnCfg.SubscribeKey = cfg.PNSubKey
	pnCfg.SecretKey = cfg.PNSubSecret
	pnCfg.CipherKey = cfg.PNCipherKey

	sub := &subscriber{
		pn:       pubnub.NewPubNub(pnCfg),
		listener: pubnub.NewListener(),
		channels: []string{cfg.PNChannel},
	}

	sub.pn.AddListener(sub.listener)
	sub.pn.Subscribe().Channels(sub.channels).Execute()

	go sub.processSubscription(ctx)

	return sub, nil
}

func (s *subscriber) processSubscription(ctx context.Context) {
	for {
		select {
		case st := <-s.listener.Status:
			switch st.Category {
			case pubnub.PNConnectedCategory:
				slog.Info("gateway: connected to notification channel")
			case pubnub.PNReconnectedCategory:
				slog.Info("gateway: reconnected to notification channel")
			case pubnub.PNDisconnectedCategory:
				slog.Warn("gateway: disconnected from notification channel")
			default:
				slog.Debug("gateway: notification channel status", "category", st.Category)
			}

		case message := <-s.listener.Message:
			raw, ok := message.Message.(string)
			if !ok {
				slog.Warn("gateway: unexpected notification payload type")
				continue
			}

			var p notificationPayload
			if err := json.Unmarshal([]byte(raw), &p); err != nil {
				slog.Error("gateway: failed to decode notification", "error", err)
				continue
			}

			if s.ch != nil {
				s.ch <- &Notification{
					PaymentID: p.PaymentID,
					RefID:     p.RefID,
					Status:    p.Status,
					Timestamp: p.Timestamp,
				}
			}

		case <-ctx.Done():
			slog.Info("gateway: closing notification subscription")
			return
		}
	}
}

func (s *subscriber) close(_ context.Context) {
	s.pn.Unsubscribe().Channels(s.channels).Execute()
}
