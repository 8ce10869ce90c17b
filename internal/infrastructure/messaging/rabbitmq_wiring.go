package messaging

import (
	"context"

	messaging "github.com/rodolfodevapp/eventshop-messaging-go/rabbitmq"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/application"
)

const (
	WarehouseExchange = "warehouse.events"
	CatalogExchange   = "catalog.events"

	ProducerQueuePrefix = "warehouse.dispatcher.v1"
	CatalogQueuePrefix  = "warehouse.catalog-events.v1"
)

func options(rabbitUri, exchange, queuePrefix string) messaging.RabbitMqOptions {
	return messaging.RabbitMqOptions{
		URI:          rabbitUri,
		ExchangeName: exchange,
		QueuePrefix:  queuePrefix,
		Prefetch:     32,
		RetryDelayMs: 30000,
	}
}

// Producer para warehouse.events
func NewProducerBus(rabbitUri string) *messaging.RabbitMqEventBus {
	return messaging.NewRabbitMqEventBus(options(rabbitUri, WarehouseExchange, ProducerQueuePrefix), nil, nil)
}

// Consumer para catalog.events
func NewCatalogEventBus(rabbitUri, queuePrefix string) *messaging.RabbitMqEventBus {
	return messaging.NewRabbitMqEventBus(options(rabbitUri, CatalogExchange, queuePrefix), nil, nil)
}

func RegisterCatalogSubscriptions(
	ctx context.Context,
	bus *messaging.RabbitMqEventBus,
	productCreatedHandler application.EventHandler,
	log *zap.Logger,
) error {
	bus.Subscribe("ProductCreated", productCreatedHandler)

	if err := bus.StartConsumers(ctx); err != nil {
		log.Error("error starting catalog consumers", zap.Error(err))
		return err
	}
	return nil
}
