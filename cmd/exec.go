package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"

	"saranalaya/config"
	"saranalaya/handlers"
	"saranalaya/internal/gateway"
	_ "saranalaya/migrations"
	"saranalaya/models"
	"saranalaya/security"
	"saranalaya/services"
	"saranalaya/services/ticketpdf"
	"saranalaya/utils"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	// Initialize PubNub (staff dashboard publishes, optional)
	var pn *pubnub.PubNub
	if cfg.PubNubPublishKey != "" {
		pnConfig := pubnub.NewConfig()
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey

		pn = pubnub.NewPubNub(pnConfig)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the payment gateway
	registry := gateway.NewRegistry(gateway.NewFactory())
	err := registry.Register(ctx, gateway.ProviderName(cfg.GatewayProvider), &gateway.DummyConfig{
		PublicURL:   cfg.PublicURL,
		HMACKey:     cfg.GatewayHMACKey,
		PNSubKey:    cfg.GatewayPNSubKey,
		PNSubSecret: cfg.GatewayPNSecret,
		PNUUID:      cfg.GatewayPNUUID,
		PNChannel:   cfg.GatewayPNChannel,
		PNCipherKey: cfg.GatewayPNCipher,
	})
	if err != nil {
		return err
	}
	defer registry.Close(ctx)

	// Initialize services
	generator := ticketpdf.New(filepath.Join(cfg.AssetsDir, "logo.png"))
	inventoryService := services.NewInventoryService(app)
	purchaseService := services.NewPurchaseService(app, cfg)
	paymentService := services.NewPaymentService(app, cfg, pn, generator)
	attendanceService := services.NewAttendanceService(app, redisClient, cfg)

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(app, inventoryService, purchaseService)
	paymentHandler := handlers.NewPaymentHandler(app, cfg, paymentService, registry)
	attendanceHandler := handlers.NewAttendanceHandler(app, attendanceService)

	rateLimiter := security.NewRateLimiter(redisClient, cfg.ScanRateLimit, cfg.ScanRateWindow)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Gateway push notifications feed the same state machine as the
	// HTTP webhook.
	provider, err := registry.Primary()
	if err != nil {
		return err
	}

	notifications := make(chan *gateway.Notification, 16)
	provider.SetNotificationChannel(notifications)

	go func() {
		for {
			select {
			case n := <-notifications:
				newStatus, err := models.ParsePaymentStatus(n.Status)
				if err != nil {
					slog.Error("gateway: dropped notification with unknown status",
						"payment_id", n.PaymentID,
						"status", n.Status,
					)
					continue
				}
				if err := paymentService.ApplyGatewayStatus(n.PaymentID, newStatus); err != nil {
					slog.Error("gateway: failed to apply pushed status",
						"payment_id", n.PaymentID,
						"status", n.Status,
						"error", err,
					)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	// Setup graceful shutdown
	go handleShutdown(cancel)

	setupRecordHooks(app, paymentService)

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Event endpoints
		e.Router.GET("/api/events/{eventId}", eventHandler.GetEvent)
		e.Router.POST("/api/events/{eventId}/purchase", eventHandler.Purchase)

		// Payment endpoints
		e.Router.GET("/api/payments/{paymentId}", paymentHandler.GetPaymentDetails)
		e.Router.GET("/api/payments/{paymentId}/tickets.pdf", paymentHandler.DownloadTickets)
		e.Router.POST("/api/payments/{paymentId}/notify", paymentHandler.Notify)
		e.Router.GET("/api/payments/{paymentId}/success", paymentHandler.Success)
		e.Router.GET("/api/payments/{paymentId}/failure", paymentHandler.Failure)

		// Ticket reprints (staff)
		e.Router.GET("/api/participants/{participantId}/ticket.pdf", paymentHandler.DownloadParticipantTicket)

		// Attendance endpoints
		e.Router.POST("/api/attendance", rateLimiter.Middleware(attendanceHandler.MarkAttendance))
		e.Router.GET("/api/scanner", attendanceHandler.Scanner)

		// Test endpoint for payment simulation
		if cfg.Environment == "development" {
			e.Router.POST("/api/test/simulate-payment", paymentHandler.SimulatePayment)
		}

		// Monitoring
		if cfg.EnableMetrics {
			e.Router.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))
		}

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		return err
	}
	return nil
}

// setupRecordHooks binds the payment state machine and the participant
// invariants to every record write, including ones made through the
// admin UI.
func setupRecordHooks(app *pocketbase.PocketBase, paymentService *services.PaymentService) {
	// Payment status transitions run the confirmation side effects at
	// most once.
	app.OnRecordUpdate("payments").BindFunc(paymentService.OnStatusWrite)

	// Participants get their seed exactly once at creation.
	app.OnRecordCreate("participants").BindFunc(func(e *core.RecordEvent) error {
		if e.Record.GetString("random_seed") == "" {
			seed, err := utils.RandomSeed(models.SeedLength)
			if err != nil {
				return err
			}
			e.Record.Set("random_seed", seed)
		}
		return e.Next()
	})

	// The seed is immutable after creation, whatever the caller sent.
	app.OnRecordUpdate("participants").BindFunc(func(e *core.RecordEvent) error {
		original := e.Record.Original().GetString("random_seed")
		if original != "" && e.Record.GetString("random_seed") != original {
			e.Record.Set("random_seed", original)
		}
		return e.Next()
	})
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
