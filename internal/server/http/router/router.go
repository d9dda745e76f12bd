package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/washmart/washmart/internal/config"
	"github.com/washmart/washmart/internal/server/http/handlers"
	"github.com/washmart/washmart/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CommerceFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	fulfillmentHandler := handlers.NewFulfillmentHandler(facade)
	sweepHandler := handlers.NewSweepHandler(facade)

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.POST("/checkout", checkoutHandler.Checkout)
	userAuth.GET("/orders", orderHandler.List)
	userAuth.GET("/orders/:number", orderHandler.Get)
	userAuth.POST("/orders/:number/payment/refresh", paymentHandler.Refresh)

	// The gateway signs no requests; order references are unguessable and the
	// reconciler ignores reports that disagree with stored state.
	api.POST("/payment/notifications", paymentHandler.Notify)

	staff := api.Group("/staff")
	staff.Use(middleware.AuthRequired(facade))
	staff.PATCH("/orders/:number/laundry-status", fulfillmentHandler.Advance)

	internal := api.Group("/internal")
	internal.Use(middleware.SchedulerAuth(cfg.SchedulerSecret))
	internal.POST("/orders/sweep", sweepHandler.Sweep)

	return engine
}
