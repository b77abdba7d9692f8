//go:build integration

package store_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/serroba/qr-code-manager/internal/qrcode"
	"github.com/serroba/qr-code-manager/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestMinioStorageIntegration(t *testing.T) {
	ctx := context.Background()

	s, err := store.NewMinioStorage(ctx, store.MinioOptions{
		Endpoint:  getEnvDefault("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey: getEnvDefault("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey: getEnvDefault("MINIO_SECRET_KEY", "minioadmin"),
		Bucket:    "qr-codes-test",
	})
	if err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	name := uuid.NewString() + ".png"

	t.Run("save load list delete", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, name, testPNG))
		assert.ErrorIs(t, s.Save(ctx, name, testPNG), qrcode.ErrExists)

		got, err := s.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, testPNG, got)

		names, err := s.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, name)

		require.NoError(t, s.Delete(ctx, name))
		assert.ErrorIs(t, s.Delete(ctx, name), qrcode.ErrNotFound)

		_, err = s.Load(ctx, name)
		assert.ErrorIs(t, err, qrcode.ErrNotFound)
	})

	t.Run("concurrent saves never report an error other than exists", func(t *testing.T) {
		racy := uuid.NewString() + ".png"
		errs := make([]error, 8)

		var wg sync.WaitGroup

		for i := range errs {
			wg.Add(1)

			go func() {
				defer wg.Done()

				errs[i] = s.Save(ctx, racy, testPNG)
			}()
		}

		wg.Wait()

		succeeded := 0

		for _, err := range errs {
			if err == nil {
				succeeded++

				continue
			}

			assert.ErrorIs(t, err, qrcode.ErrExists)
		}

		assert.GreaterOrEqual(t, succeeded, 1)
		require.NoError(t, s.Delete(ctx, racy))
	})
}
