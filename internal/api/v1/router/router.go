package router

import (
	"net/http"

	"jokemeter/internal/api/v1/handler"
	"jokemeter/internal/config"
	"jokemeter/internal/middleware"
	"jokemeter/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New wires services and handlers on top of an entitlement provider client.
// usage may be nil when no usage event stream is configured.
func New(cfg *config.Config, client service.AutumnClient, usage service.UsagePublisher, logger zerolog.Logger) http.Handler {
	logger.Info().
		Str("environment", cfg.Environment).
		Str("feature_id", cfg.AutumnFeatureID).
		Str("plan_id", cfg.AutumnPlanID).
		Msg("Router initialized")

	// 1. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 2. Initialize services
	packs := service.NewPackRegistry(cfg.TopupSlots())
	credits := service.NewCreditReader(client, logger)
	gatewaySvc := service.NewGatewayService(service.GatewayConfig{
		FeatureID:         cfg.AutumnFeatureID,
		FallbackProductID: cfg.AutumnPlanID,
	}, client, credits, usage, logger)
	topupSvc := service.NewTopupService(packs, client, logger)
	billingSvc := service.NewBillingService(cfg.AutumnPlanID, client, logger)

	logger.Info().Int("packs", len(packs.List())).Msg("Top-up packs loaded")

	// 3. Initialize handlers
	userHandler := handler.NewUserHandler(credits, cfg.AutumnFeatureID)
	jokeHandler := handler.NewJokeHandler(gatewaySvc, logger)
	topupHandler := handler.NewTopupHandler(topupSvc, validate, cfg.PublicOrigin, logger)
	billingHandler := handler.NewBillingHandler(billingSvc, cfg.PublicOrigin, logger)

	// 4. The demo has no login; every API request acts for the configured customer
	identity := middleware.IdentityMiddleware(cfg.DemoCustomerID)

	// 5. Create ServeMux router
	mux := http.NewServeMux()
	userHandler.RegisterRoutes(mux, identity)
	jokeHandler.RegisterRoutes(mux, identity)
	topupHandler.RegisterRoutes(mux, identity)
	billingHandler.RegisterRoutes(mux, identity)
	handler.NewHealthHandler().RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Demo page
	mux.Handle("GET /", http.FileServer(http.Dir(cfg.StaticDir)))

	// 6. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins: []string{cfg.ClientOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(mux))
}
