package analytics

import (
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/qr-code-manager/internal/messaging"
	"go.uber.org/zap"
)

// storeTimeout bounds a single event write.
const storeTimeout = 5 * time.Second

// NewConsumers returns one consumer per QR code topic, each persisting into store.
func NewConsumers(subscriber message.Subscriber, store Store, logger *zap.Logger) []messaging.Runnable {
	timeout := messaging.WithHandlerTimeout(storeTimeout)

	return []messaging.Runnable{
		messaging.NewConsumer(subscriber, TopicQRCodeCreated, store.SaveCreated, logger, timeout),
		messaging.NewConsumer(subscriber, TopicQRCodeDeleted, store.SaveDeleted, logger, timeout),
	}
}

// Register adds the QR code consumers to group.
func Register(group *messaging.ConsumerGroup, subscriber message.Subscriber, store Store, logger *zap.Logger) {
	group.Add(NewConsumers(subscriber, store, logger)...)
}
