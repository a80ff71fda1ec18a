package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Eddi3MS/delivery-bd/configs"
	"github.com/Eddi3MS/delivery-bd/internal/adapter/cache"
	"github.com/Eddi3MS/delivery-bd/internal/adapter/memstore"
	"github.com/Eddi3MS/delivery-bd/internal/adapter/repo"
	"github.com/Eddi3MS/delivery-bd/internal/logging"
	"github.com/Eddi3MS/delivery-bd/internal/usecase"
)

// stores groups the persistence ports for one storage driver.
type stores struct {
	orders     usecase.OrderRepo
	products   usecase.ProductRepo
	categories usecase.CategoryRepo
	users      usecase.UserRepo
	addresses  usecase.AddressRepo
	health     interface{ Ping(context.Context) error }
}

func openStores(ctx context.Context, cfg configs.Config, c *closers) (*stores, error) {
	if cfg.Storage.Driver == "memory" {
		return &stores{
			orders:     memstore.NewOrderRepo(),
			products:   memstore.NewProductRepo(),
			categories: memstore.NewCategoryRepo(),
			users:      memstore.NewUserRepo(),
			addresses:  memstore.NewAddressRepo(),
		}, nil
	}

	client, err := repo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	c.add(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	})

	db := client.Database(cfg.Mongo.Database)
	if err := repo.EnsureIndexes(ctx, db); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	return &stores{
		orders:     repo.NewMongoOrderRepo(db),
		products:   repo.NewMongoProductRepo(db),
		categories: repo.NewMongoCategoryRepo(db),
		users:      repo.NewMongoUserRepo(db),
		addresses:  repo.NewMongoAddressRepo(db),
		health:     repo.NewPinger(client),
	}, nil
}

func openIdempotency(ctx context.Context, cfg configs.Config, c *closers) usecase.IdempotencyStore {
	if !cfg.Redis.Enabled {
		return memstore.NewIdempotencyStore(cfg.Idempotency.TTL)
	}
	rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		// single-instance deployments still get per-process protection
		logging.FromCtx(ctx).Warn("redis unavailable, idempotency keys kept in process", slog.Any("err", err))
		return memstore.NewIdempotencyStore(cfg.Idempotency.TTL)
	}
	c.add(func() { _ = rdb.Close() })
	return cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
}

// closers runs cleanups in reverse registration order.
type closers struct{ fns []func() }

func (c *closers) add(fn func()) { c.fns = append(c.fns, fn) }

func (c *closers) run() {
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
	c.fns = nil
}
