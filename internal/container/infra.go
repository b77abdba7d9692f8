package container

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/qr-code-manager/internal/qrcode"
	"github.com/serroba/qr-code-manager/internal/store"
	"go.uber.org/zap"
)

const startupTimeout = 10 * time.Second

// Redis owns the shared redis client.
type Redis struct {
	Client *redis.Client
}

func (r *Redis) Shutdown() error {
	return r.Client.Close()
}

// Postgres owns the analytics connection pool.
type Postgres struct {
	Pool *pgxpool.Pool
}

func (p *Postgres) Shutdown() error {
	p.Pool.Close()

	return nil
}

func RedisPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*Redis, error) {
		opts := do.MustInvoke[*Options](i)

		return &Redis{Client: redis.NewClient(&redis.Options{Addr: opts.RedisAddr})}, nil
	})
}

func PostgresPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*Postgres, error) {
		opts := do.MustInvoke[*Options](i)

		ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		defer cancel()

		pool, err := pgxpool.New(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()

			return nil, err
		}

		return &Postgres{Pool: pool}, nil
	})
}

func StoragePackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (qrcode.Storage, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if opts.Storage == BackendMinio {
			ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
			defer cancel()

			logger.Info("using minio storage",
				zap.String("endpoint", opts.MinioEndpoint),
				zap.String("bucket", opts.MinioBucket),
			)

			return store.NewMinioStorage(ctx, store.MinioOptions{
				Endpoint:  opts.MinioEndpoint,
				AccessKey: opts.MinioAccessKey,
				SecretKey: opts.MinioSecretKey,
				Bucket:    opts.MinioBucket,
				UseSSL:    opts.MinioUseSSL,
			})
		}

		logger.Info("using file storage", zap.String("dir", opts.QRDirectory))

		return store.NewFileStorage(opts.QRDirectory)
	})
}
