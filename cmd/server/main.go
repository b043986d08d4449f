package main

import (
	"fmt"
	"log"

	"filingdesk/internal/config"
	noopmail "filingdesk/internal/email/noop"
	"filingdesk/internal/email/ses"
	noopgw "filingdesk/internal/gateway/noop"
	"filingdesk/internal/gateway/razorpay"
	"filingdesk/internal/handler"
	"filingdesk/internal/notify"
	amqpnotify "filingdesk/internal/notify/amqp"
	"filingdesk/internal/port"
	"filingdesk/internal/repository/postgres"
	"filingdesk/internal/router"
	"filingdesk/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	templateRepo := postgres.NewTemplateRepo(db)
	obligationRepo := postgres.NewObligationRepo(db)
	docRepo := postgres.NewBillingDocumentRepo(db)
	directory := postgres.NewDirectoryRepo(db)

	// Initialize payment gateway
	var gateway port.PaymentGateway
	switch cfg.Gateway.Provider {
	case "razorpay":
		gateway = razorpay.NewClient(&cfg.Gateway)
	default:
		log.Printf("gateway provider %q not configured, using noop gateway", cfg.Gateway.Provider)
		gateway = noopgw.NewGateway()
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noopmail.NewNoopSender()
	}

	// Initialize broadcast publisher and dispatcher
	var publisher notify.Publisher
	if cfg.Broker.Enabled {
		p, err := amqpnotify.NewPublisher(cfg.Broker.URL, cfg.Broker.Exchange)
		if err != nil {
			return fmt.Errorf("failed to connect to broker: %w", err)
		}
		publisher = p
	}
	dispatcher := notify.NewDispatcher(emailSender, publisher)

	// Initialize services
	templateSvc := service.NewTemplateService(templateRepo, directory)
	schedulerSvc := service.NewSchedulerService(templateRepo, obligationRepo, dispatcher)
	billingSvc := service.NewBillingService(docRepo, directory, gateway, dispatcher)
	obligationSvc := service.NewObligationService(obligationRepo, billingSvc, directory, dispatcher)

	// Initialize handlers
	templateH := handler.NewTemplateHandler(templateSvc, schedulerSvc)
	obligationH := handler.NewObligationHandler(obligationSvc)
	billingH := handler.NewBillingHandler(billingSvc, directory)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, templateH, obligationH, billingH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
