package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gelaboca/gelaboca-backend/api/controllers"
	"github.com/gelaboca/gelaboca-backend/api/middleware"
	cartsvc "github.com/gelaboca/gelaboca-backend/internal/cart"
	catalogsvc "github.com/gelaboca/gelaboca-backend/internal/catalog"
	chatsvc "github.com/gelaboca/gelaboca-backend/internal/chat"
	ordersvc "github.com/gelaboca/gelaboca-backend/internal/orders"
	"github.com/gelaboca/gelaboca-backend/pkg/config"
	"github.com/gelaboca/gelaboca-backend/pkg/db"
	"github.com/gelaboca/gelaboca-backend/pkg/logger"
	"github.com/gelaboca/gelaboca-backend/pkg/pinecone"
	"github.com/gelaboca/gelaboca-backend/pkg/redis"
)

type dependencyPinger interface {
	Ping(ctx context.Context) error
}

// NewRouter wires the HTTP surface: the tablet-facing chat, catalog and cart
// endpoints, the staff order view, health checks and metrics.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	indexClient *pinecone.Client,
	chatService *chatsvc.Service,
	catalogService catalogsvc.Service,
	cartService *cartsvc.Service,
	ordersService *ordersvc.Service,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	// Nil clients must reach the readiness check as nil interfaces, not as
	// boxed nil pointers, so the dependency reports as skipped.
	var dbPing, redisPing, indexPing dependencyPinger
	if dbClient != nil {
		dbPing = dbClient
	}
	if redisClient != nil {
		redisPing = redisClient
	}
	if indexClient != nil {
		indexPing = indexClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbPing, redisPing, indexPing))
	})

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg))

		chatLimiter := middleware.ChatRateLimit(
			redisClient,
			cfg.Chat.RateLimitMax,
			cfg.Chat.RateLimitWindow,
			logg,
		)
		r.With(chatLimiter).Post("/chat", controllers.ChatMessage(chatService, logg))
		r.Delete("/chat", controllers.ChatClearHistory(chatService, logg))

		r.Get("/products", controllers.ListProducts(catalogService, logg))
		r.Get("/promotional-products", controllers.ListPromotionalProducts(catalogService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(cartService, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateQuantity(cartService, logg))
			r.Post("/items/{productId}/cancel", controllers.CartRequestCancellation(cartService, logg))
			r.Post("/clear", controllers.CartClear(cartService, logg))
			r.Post("/finalize", controllers.CartFinalize(cartService, logg))
			r.Post("/new-order", controllers.CartStartNewOrder(cartService, logg))
		})

		r.Get("/staff/orders", controllers.StaffOrders(ordersService, logg))
	})

	return r
}
