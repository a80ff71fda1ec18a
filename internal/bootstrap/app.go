package bootstrap

import (
	"context"
	"fmt"

	"github.com/Eddi3MS/delivery-bd/configs"
	"github.com/Eddi3MS/delivery-bd/internal/adapter/http"
	"github.com/Eddi3MS/delivery-bd/internal/adapter/http/middleware"
	"github.com/Eddi3MS/delivery-bd/internal/adapter/media"
	"github.com/Eddi3MS/delivery-bd/internal/logging"
	"github.com/Eddi3MS/delivery-bd/internal/security"
	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"github.com/gin-gonic/gin"
)

type App struct {
	Router *gin.Engine
	Users  *usecase.Users
}

// InitWithConfig wires stores, brokers and use cases into an HTTP router.
// The returned cleanup releases every connection opened here.
func InitWithConfig(ctx context.Context, cfg configs.Config) (*App, func(), error) {
	var c closers
	fail := func(err error) (*App, func(), error) {
		c.run()
		return nil, nil, err
	}

	st, err := openStores(ctx, cfg, &c)
	if err != nil {
		return fail(fmt.Errorf("storage: %w", err))
	}
	idem := openIdempotency(ctx, cfg, &c)
	events, err := openPublisher(cfg, &c)
	if err != nil {
		return fail(fmt.Errorf("events: %w", err))
	}
	images, err := openMedia(cfg)
	if err != nil {
		return fail(fmt.Errorf("media: %w", err))
	}

	logging.FromCtx(ctx).Info("delivery-api: wiring",
		"storage", cfg.Storage.Driver,
		"events", cfg.Events.Driver,
		"redis", cfg.Redis.Enabled,
		"media_host", cfg.MediaConfigured(),
	)

	// use cases
	users := usecase.NewUsers(st.users, security.NewBcryptHasher(cfg.Security.BcryptCost), images)
	categories := usecase.NewCategories(st.categories)
	products := usecase.NewProducts(st.products, st.categories, images)
	addresses := usecase.NewAddresses(st.addresses)
	createOrder := usecase.NewCreateOrder(st.orders, usecase.NewIntegrityChecker(st.products), idem, events)
	lifecycle := usecase.NewOrderLifecycle(st.orders, events, cfg.Orders.EnforceTransitions)
	orderQuery := usecase.NewOrderQuery(st.orders)

	// handlers + router + middleware
	sessions := security.NewSessions(cfg)
	authn := middleware.NewAuthn(cfg, sessions, users)
	handlers := http.Handlers{
		Users:      http.NewUserHandler(users, sessions, authn),
		Categories: http.NewCategoryHandler(categories),
		Products:   http.NewProductHandler(products),
		Addresses:  http.NewAddressHandler(addresses),
		Orders:     http.NewOrderHandler(createOrder, lifecycle, orderQuery),
	}
	var health http.HealthChecker
	if st.health != nil {
		health = st.health
	}
	router := http.NewRouter(cfg, handlers, authn, health)

	return &App{Router: router, Users: users}, c.run, nil
}

// OpenUsers wires only the user use case, for maintenance commands.
func OpenUsers(ctx context.Context, cfg configs.Config) (*usecase.Users, func(), error) {
	var c closers
	st, err := openStores(ctx, cfg, &c)
	if err != nil {
		c.run()
		return nil, nil, fmt.Errorf("storage: %w", err)
	}
	images, err := openMedia(cfg)
	if err != nil {
		c.run()
		return nil, nil, fmt.Errorf("media: %w", err)
	}
	return usecase.NewUsers(st.users, security.NewBcryptHasher(cfg.Security.BcryptCost), images), c.run, nil
}

func openMedia(cfg configs.Config) (usecase.MediaStore, error) {
	if !cfg.MediaConfigured() {
		return media.NewInline(), nil
	}
	return media.NewCloudinary(cfg.Media.CloudName, cfg.Media.APIKey, cfg.Media.APISecret, cfg.Media.Folder)
}
