package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/routesales/routesales-backend/api/controllers"
	ordercontrollers "github.com/routesales/routesales-backend/api/controllers/orders"
	salescontrollers "github.com/routesales/routesales-backend/api/controllers/sales"
	"github.com/routesales/routesales-backend/api/middleware"
	internalorders "github.com/routesales/routesales-backend/internal/orders"
	"github.com/routesales/routesales-backend/internal/outlets"
	internalsales "github.com/routesales/routesales-backend/internal/sales"
	"github.com/routesales/routesales-backend/pkg/config"
	"github.com/routesales/routesales-backend/pkg/logger"
	pkgredis "github.com/routesales/routesales-backend/pkg/redis"
)

// NewRouter assembles the HTTP surface: liveness endpoints, the metrics
// scrape target, and the authenticated /api/v1 route tree.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	idempotencyStore pkgredis.IdempotencyStore,
	metricsGatherer prometheus.Gatherer,
	ordersService internalorders.Service,
	salesService internalsales.Service,
	outletsService outlets.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	if metricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsGatherer, promhttp.HandlerOpts{}))
	}

	var idempotencyTTL time.Duration
	if cfg != nil {
		idempotencyTTL = cfg.Orders.IdempotencyTTL
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idempotencyStore, idempotencyTTL, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", ordercontrollers.Create(ordersService, logg))
			r.Get("/", ordercontrollers.List(ordersService, logg))
			r.Get("/summary", ordercontrollers.SalesSummary(ordersService, logg))
			r.Put("/{orderId}", ordercontrollers.Update(ordersService, logg))
			r.Delete("/{orderId}", ordercontrollers.Delete(ordersService, logg))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Post("/", salescontrollers.Create(salesService, logg))
			r.Get("/", salescontrollers.List(salesService, logg))
			r.Get("/summary", salescontrollers.Summary(salesService, logg))
			r.Get("/{saleId}", salescontrollers.Detail(salesService, logg))
			r.Patch("/{saleId}/status", salescontrollers.UpdateStatus(salesService, logg))
			r.Post("/{saleId}/lock", salescontrollers.Lock(salesService, logg))
		})

		r.Route("/outlets", func(r chi.Router) {
			r.Get("/", controllers.OutletsList(outletsService, logg))
			r.Post("/", controllers.OutletCreate(outletsService, logg))
			r.Put("/{outletId}", controllers.OutletUpdate(outletsService, logg))
			r.Get("/{outletId}/products", controllers.OutletProducts(outletsService, logg))
			r.Get("/{outletId}/location", controllers.OutletLocation(outletsService, logg))
			r.Post("/{outletId}/payments", controllers.OutletAddPayment(outletsService, logg))
			r.Get("/{outletId}/payments", controllers.OutletPayments(outletsService, logg))
		})
	})

	return r
}
