package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Eddi3MS/delivery-bd/configs"
	"github.com/Eddi3MS/delivery-bd/internal/adapter/http/middleware"
	"github.com/Eddi3MS/delivery-bd/internal/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	Users      *UserHandler
	Categories *CategoryHandler
	Products   *ProductHandler
	Addresses  *AddressHandler
	Orders     *OrderHandler
}

func NewRouter(cfg configs.Config, h Handlers, authn *middleware.Authn, health HealthChecker) *gin.Engine {
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())
	// cors.New panics on an empty origin list
	if len(cfg.HTTP.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.HTTP.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "X-Idempotency-Key", "X-Request-Id"},
			ExposeHeaders:    []string{"X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	l := logging.New("http")
	r.Use(middleware.BodyLimit(cfg.HTTP.BodyLimit), middleware.Logging(l), middleware.Timeout(cfg.HTTP.RequestTimeout))

	r.GET("/healthz", func(c *gin.Context) {
		if health != nil {
			if err := health.Ping(c.Request.Context()); err != nil {
				logging.From(c).Error("health check", slog.Any("err", err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	signedIn := authn.Required()
	admin := authn.AdminOnly()

	api := r.Group("/api")

	users := api.Group("/users")
	{
		users.POST("/signup", h.Users.SignUp)
		users.POST("/signin", h.Users.SignIn)
		users.POST("/signout", h.Users.SignOut)
		users.PUT("/update/:id", signedIn, h.Users.UpdateAccount)
		users.GET("/profile/:id", signedIn, h.Users.Profile)
		users.GET("/me", signedIn, h.Users.Me)
	}

	categories := api.Group("/categories")
	{
		categories.GET("/list", h.Categories.List)
		categories.POST("/create", signedIn, admin, h.Categories.Create)
		categories.PUT("/update/:id", signedIn, admin, h.Categories.Update)
		categories.DELETE("/delete/:id", signedIn, admin, h.Categories.Delete)
		categories.PUT("/reorder", signedIn, admin, h.Categories.Reorder)
	}

	products := api.Group("/products")
	{
		products.GET("/list", h.Products.List)
		products.POST("/create", signedIn, admin, h.Products.Create)
		products.PUT("/update/:id", signedIn, admin, h.Products.Update)
		products.DELETE("/delete/:id", signedIn, admin, h.Products.Delete)
	}

	addresses := api.Group("/addresses", signedIn)
	{
		addresses.GET("/list", h.Addresses.List)
		addresses.POST("/create", h.Addresses.Create)
		addresses.PUT("/update/:id", h.Addresses.Update)
		addresses.DELETE("/delete/:id", h.Addresses.Delete)
	}

	orders := api.Group("/orders", signedIn)
	{
		orders.POST("/create", h.Orders.CreateOrder)
		orders.PUT("/update/:id", admin, h.Orders.UpdateOrder)
		orders.DELETE("/delete/:id", admin, h.Orders.DeleteOrder)
		orders.GET("/all", admin, h.Orders.ListOrders)
		orders.GET("/own", h.Orders.ListOwnOrders)

		// resource-style aliases
		orders.POST("", h.Orders.CreateOrder)
		orders.PUT("/:id", admin, h.Orders.UpdateOrder)
		orders.DELETE("/:id", admin, h.Orders.DeleteOrder)
		orders.GET("", admin, h.Orders.ListOrders)
	}

	return r
}
