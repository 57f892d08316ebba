package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/bulkmart-backend/api/controllers"
	cartcontrollers "github.com/angelmondragon/bulkmart-backend/api/controllers/cart"
	"github.com/angelmondragon/bulkmart-backend/api/middleware"
	"github.com/angelmondragon/bulkmart-backend/internal/cart"
	"github.com/angelmondragon/bulkmart-backend/internal/coupons"
	products "github.com/angelmondragon/bulkmart-backend/internal/products"
	"github.com/angelmondragon/bulkmart-backend/pkg/config"
	"github.com/angelmondragon/bulkmart-backend/pkg/logger"
)

// Dependencies are the collaborators the HTTP surface needs. Nil pingers and a nil
// limiter are skipped.
type Dependencies struct {
	DB       controllers.Pinger
	Redis    controllers.Pinger
	Limiter  middleware.RateLimiterStore
	Gatherer prometheus.Gatherer

	ProductService products.Service
	CouponService  coupons.Service
	CartService    cart.Service
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	readiness := map[string]controllers.Pinger{}
	if deps.DB != nil {
		readiness["db"] = deps.DB
	}
	if deps.Redis != nil {
		readiness["redis"] = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	var limiter func(http.Handler) http.Handler
	if deps.Limiter != nil {
		policy := middleware.NewRateLimitPolicy("pricing", cfg.RateLimit.Window, cfg.RateLimit.Limit)
		limiter = middleware.RateLimit(policy, deps.Limiter, logg)
	} else {
		limiter = func(next http.Handler) http.Handler { return next }
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.ProductService, logg))
			r.Get("/{productId}", controllers.ProductDetail(deps.ProductService, logg))
			r.Get("/{productId}/price", controllers.ProductPriceQuote(deps.ProductService, logg))
		})

		r.Route("/coupons", func(r chi.Router) {
			r.Get("/", controllers.CouponList(deps.CouponService, logg))
			r.With(limiter).Post("/validate", controllers.CouponValidate(deps.CouponService, logg))
			r.Get("/{code}", controllers.CouponDetail(deps.CouponService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.With(limiter).Post("/calculate", cartcontrollers.CartCalculate(deps.CartService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, logg))
				r.Get("/", cartcontrollers.CartFetch(deps.CartService, logg))
				r.Delete("/", cartcontrollers.CartClear(deps.CartService, logg))
				r.Post("/items", cartcontrollers.CartAddItem(deps.CartService, logg))
				r.Patch("/items/{productId}", cartcontrollers.CartUpdateItem(deps.CartService, logg))
				r.Delete("/items/{productId}", cartcontrollers.CartRemoveItem(deps.CartService, logg))
				r.Put("/coupons", cartcontrollers.CartSetCoupons(deps.CartService, logg))
			})
		})
	})

	return r
}
