package container

import (
	"context"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/samber/do"
	"github.com/serroba/qr-code-manager/internal/analytics"
	analyticsstore "github.com/serroba/qr-code-manager/internal/analytics/store"
	"github.com/serroba/qr-code-manager/internal/messaging"
	"go.uber.org/zap"
)

const consumerGroupName = "qr-code-analytics"

// PubSubPackage provides the event publisher and subscriber. The memory backend
// shares one in-process channel between both, so events only reach consumers
// running in the same process.
func PubSubPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*gochannel.GoChannel, error) {
		logger := do.MustInvoke[*zap.Logger](i)

		return gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 64,
		}, messaging.NewZapLogger(logger)), nil
	})

	do.Provide(i, func(i *do.Injector) (message.Publisher, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if opts.EventsBackend != BackendRedis {
			return do.MustInvoke[*gochannel.GoChannel](i), nil
		}

		return redisstream.NewPublisher(redisstream.PublisherConfig{
			Client:     do.MustInvoke[*Redis](i).Client,
			Marshaller: redisstream.DefaultMarshallerUnmarshaller{},
		}, messaging.NewZapLogger(logger))
	})

	do.Provide(i, func(i *do.Injector) (message.Subscriber, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if opts.EventsBackend != BackendRedis {
			return do.MustInvoke[*gochannel.GoChannel](i), nil
		}

		return redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        do.MustInvoke[*Redis](i).Client,
			Unmarshaller:  redisstream.DefaultMarshallerUnmarshaller{},
			ConsumerGroup: consumerGroupName,
		}, messaging.NewZapLogger(logger))
	})
}

func PublisherGroupPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		return messaging.NewPublisherGroup(do.MustInvoke[message.Publisher](i)), nil
	})
}

// AnalyticsStorePackage persists events to postgres when a database URL is set
// and logs them otherwise.
func AnalyticsStorePackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (analytics.Store, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if opts.DatabaseURL == "" {
			logger.Info("no database configured, logging qr code events")

			return analyticsstore.NewNoop(logger.Named("analytics")), nil
		}

		pg, err := do.Invoke[*Postgres](i)
		if err != nil {
			return nil, err
		}

		s := analyticsstore.NewPostgres(pg.Pool)

		ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		defer cancel()

		if err := s.EnsureSchema(ctx); err != nil {
			return nil, err
		}

		return s, nil
	})
}

func ConsumerGroupPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		subscriber := do.MustInvoke[message.Subscriber](i)
		st := do.MustInvoke[analytics.Store](i)
		logger := do.MustInvoke[*zap.Logger](i).Named("consumer")

		group := messaging.NewConsumerGroup(subscriber, logger)
		analytics.Register(group, subscriber, st, logger)

		return group, nil
	})
}
