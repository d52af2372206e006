package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cartsvc "expomall/internal/cart"
	checkoutsvc "expomall/internal/checkout"
)

// Deps carries the services the routes need.
type Deps struct {
	CartSvc      *cartsvc.Service
	CheckoutSvc  *checkoutsvc.Service
	AllowOrigins []string
}

// buildRouter wires the storefront routes.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	origins := deps.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	// Browsers reject credentialed responses with a wildcard origin, so
	// cookie sessions require an explicit CORS_ALLOW_ORIGINS list. Header
	// sessions still work under the wildcard default.
	wildcard := len(origins) == 1 && origins[0] == "*"
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", sessionHeader},
		ExposeHeaders:    []string{"Content-Length", sessionHeader},
		AllowCredentials: !wildcard,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{carts: deps.CartSvc, checkout: deps.CheckoutSvc}

	authed := router.Group("/", sessionMiddleware())
	authed.GET("/cart", h.getCart)
	authed.POST("/cart/items", h.addItem)
	authed.PATCH("/cart/items/:id", h.updateQuantity)
	authed.DELETE("/cart/items/:id", h.removeItem)
	authed.DELETE("/cart", h.clearCart)
	authed.GET("/cart/delivery", h.deliveryQuote)
	authed.POST("/checkout", h.checkoutOrder)

	return router
}
