package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/handler/api"
	"therapy-booking/internal/handler/middleware"
	"therapy-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Availability *api.AvailabilityHandler
	Payment      *api.PaymentHandler
	Session      *api.SessionHandler
	Refund       *api.RefundHandler
	Notification *api.NotificationHandler
}

// NewRouter wires middleware and routes. limiter and gatherer may be nil.
func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware, limiter middleware.RateLimiter, gatherer prometheus.Gatherer) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware, limiter, gatherer)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.RequestLogger(logger, "/health", "/metrics"))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, limiter middleware.RateLimiter, gatherer prometheus.Gatherer) {
	engine.GET("/health", healthCheck)
	if gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	rateLimited := middleware.RateLimit(limiter)
	calendarOwners := authMiddleware.RequireRole(user.RoleTherapist, user.RoleAdmin)
	payers := authMiddleware.RequireRole(user.RolePatient, user.RoleGuardian)

	apiGroup := engine.Group("/api")
	{
		therapists := apiGroup.Group("/therapists")
		therapists.Use(authMiddleware.RequireAuth())
		{
			addRoutes(therapists, []route{
				{Method: http.MethodGet, Path: "/:id/slots", Handler: h.Availability.GetSlots},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Availability.ListRules},
				{Method: http.MethodPut, Path: "/:id/availability", Handler: h.Availability.Replace,
					Mw: []gin.HandlerFunc{calendarOwners}},
			})
		}

		payments := apiGroup.Group("/payments")
		{
			// gateway callback carries no bearer token; the signature authenticates it
			addRoutes(payments, []route{
				{Method: http.MethodPost, Path: "/notify", Handler: h.Payment.Notify, Mw: []gin.HandlerFunc{rateLimited}},
			})

			authRequired := payments.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/intents", Handler: h.Payment.Initiate, Mw: []gin.HandlerFunc{rateLimited, payers}},
				{Method: http.MethodGet, Path: "/:orderId", Handler: h.Payment.Get},
				{Method: http.MethodPost, Path: "/:orderId/complete", Handler: h.Payment.Complete},
			})
		}

		sessions := apiGroup.Group("/sessions")
		sessions.Use(authMiddleware.RequireAuth())
		{
			addRoutes(sessions, []route{
				{Method: http.MethodPost, Path: "/request", Handler: h.Session.Request},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Session.Get},
				{Method: http.MethodGet, Path: "/:id/cancellation-quote", Handler: h.Session.Quote},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Session.Cancel},
				{Method: http.MethodPost, Path: "/:id/guardian-cancel", Handler: h.Session.GuardianCancel,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleGuardian)}},
				{Method: http.MethodPost, Path: "/:id/reschedule-fee", Handler: h.Session.RescheduleFee},
				{Method: http.MethodPost, Path: "/:id/reschedule", Handler: h.Session.Reschedule},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: h.Session.Approve, Mw: []gin.HandlerFunc{calendarOwners}},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Session.Complete, Mw: []gin.HandlerFunc{calendarOwners}},
				{Method: http.MethodPost, Path: "/:id/no-show", Handler: h.Session.NoShow, Mw: []gin.HandlerFunc{calendarOwners}},
			})
		}

		refunds := apiGroup.Group("/refunds")
		refunds.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(user.RoleAdmin))
		{
			addRoutes(refunds, []route{
				{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Refund.Complete},
			})
		}

		notifications := apiGroup.Group("/notifications")
		notifications.Use(authMiddleware.RequireAuth())
		{
			addRoutes(notifications, []route{
				{Method: http.MethodPost, Path: "/:id/read", Handler: h.Notification.MarkRead},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
