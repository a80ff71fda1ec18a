package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eddi3MS/delivery-bd/configs"
	"github.com/Eddi3MS/delivery-bd/internal/adapter/kafka"
	"github.com/Eddi3MS/delivery-bd/internal/adapter/queue"
	"github.com/Eddi3MS/delivery-bd/internal/logging"
	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrNoBroker = errors.New("events.driver is none: nothing to consume")

func openPublisher(cfg configs.Config, c *closers) (usecase.EventPublisher, error) {
	switch cfg.Events.Driver {
	case "rabbitmq":
		_, ch, err := dialRabbit(cfg, c)
		if err != nil {
			return nil, err
		}
		return queue.NewRabbitProducer(ch, rabbitTopology(cfg))
	case "kafka":
		producer, err := kafka.NewSyncProducer(cfg.Kafka.Brokers)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		p := kafka.NewPublisher(producer, cfg.Kafka.Topic)
		c.add(func() { _ = p.Close() })
		return p, nil
	default:
		return usecase.NopPublisher{}, nil
	}
}

// RunNotifier consumes order events from the configured broker until ctx
// is cancelled.
func RunNotifier(ctx context.Context, cfg configs.Config) error {
	var c closers
	defer c.run()

	log := logging.New("notifier")
	notifier := usecase.NewNotifier()

	switch cfg.Events.Driver {
	case "rabbitmq":
		_, ch, err := dialRabbit(cfg, &c)
		if err != nil {
			return err
		}
		if err := rabbitTopology(cfg).Declare(ch); err != nil {
			return err
		}
		router := queue.NewRouter(ch, queue.WithPrefetch(50), queue.WithRequeue(true), queue.WithLogger(log))
		router.Register(cfg.Rabbit.Queue, queue.NewOrderEventHandler(notifier))
		if err := router.Start(); err != nil {
			return fmt.Errorf("start consumers: %w", err)
		}
		log.Info("consuming", "queue", cfg.Rabbit.Queue)

		<-ctx.Done()
		_ = ch.Close()
		router.Wait()
		return nil

	case "kafka":
		grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
		if err != nil {
			return fmt.Errorf("kafka group: %w", err)
		}
		c.add(func() { _ = grp.Close() })

		consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.Topic}, notifier.Handle)
		consumer.Logger = log
		log.Info("consuming", "topic", cfg.Kafka.Topic, "group", cfg.Kafka.GroupID)
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil

	default:
		return ErrNoBroker
	}
}

func dialRabbit(cfg configs.Config, c *closers) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("amqp dial: %w", err)
	}
	c.add(func() { _ = conn.Close() })
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, fmt.Errorf("amqp channel: %w", err)
	}
	return conn, ch, nil
}

func rabbitTopology(cfg configs.Config) queue.Topology {
	return queue.Topology{Exchange: cfg.Rabbit.Exchange, Queue: cfg.Rabbit.Queue}
}
