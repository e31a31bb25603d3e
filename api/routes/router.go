package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sandwichpos/pos-backend/api/controllers"
	cartcontrollers "github.com/sandwichpos/pos-backend/api/controllers/cart"
	salescontrollers "github.com/sandwichpos/pos-backend/api/controllers/sales"
	"github.com/sandwichpos/pos-backend/api/middleware"
	checkoutsvc "github.com/sandwichpos/pos-backend/internal/checkout"
	salessvc "github.com/sandwichpos/pos-backend/internal/sales"
	"github.com/sandwichpos/pos-backend/pkg/config"
	"github.com/sandwichpos/pos-backend/pkg/enums"
	"github.com/sandwichpos/pos-backend/pkg/logger"
	"github.com/sandwichpos/pos-backend/pkg/metrics"
	"github.com/sandwichpos/pos-backend/pkg/redis"
)

// NewRouter wires every HTTP route. idempotencyStore may be nil when Redis is
// disabled, in which case keyed routes run without replay protection.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	readiness map[string]controllers.Pinger,
	idempotencyStore redis.IdempotencyStore,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	checkoutService checkoutsvc.Service,
	salesService salessvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Logging(logg),
		httpMetrics.Middleware,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	idempotent := middleware.Idempotency(idempotencyStore, logg)
	managerOnly := middleware.RequireRole(enums.StaffRoleManager, logg)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/api/v1", func(r chi.Router) {
			r.Post("/cart/quote", cartcontrollers.CartQuote(checkoutService, logg))
			r.With(idempotent).Post("/checkout", controllers.Checkout(checkoutService, logg))
			r.With(managerOnly).Get("/reports/sales", salescontrollers.Report(salesService, logg))
		})

		r.Route("/sales-history", func(r chi.Router) {
			r.Get("/", salescontrollers.List(salesService, logg))
			r.With(managerOnly, idempotent).Post("/", salescontrollers.Record(salesService, logg))
			r.Get("/order-ids", salescontrollers.OrderIDs(salesService, logg))
			r.Get("/{orderId}", salescontrollers.Detail(salesService, logg))
		})
	})

	return r
}
