package s3io

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "originstamp/pkg/domain-errors"
)

func TestUploadURL(t *testing.T) {
	ctx := context.Background()
	file := UploadFile{Filename: "progress-1.png", ContentType: "image/png", FileSize: 1024}

	t.Run("unconfigured storage rejects uploads", func(t *testing.T) {
		svc := NewService()
		assert.False(t, svc.Configured(ctx))

		_, err := svc.UploadURL(ctx, "sess-1", file)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("aws virtual host form", func(t *testing.T) {
		svc := NewService()
		require.NoError(t, svc.Configure(ctx, Config{BucketName: "art-photos", Region: "eu-west-1"}))

		url, err := svc.UploadURL(ctx, "sess-1", file)
		require.NoError(t, err)
		assert.Equal(t, "https://art-photos.s3.eu-west-1.amazonaws.com/progress-1.png", url)
	})

	t.Run("custom endpoint with trailing slash", func(t *testing.T) {
		svc := NewService()
		require.NoError(t, svc.Configure(ctx, Config{
			BucketName: "art-photos",
			Endpoint:   "https://minio.internal:9000/",
		}))

		url, err := svc.UploadURL(ctx, "sess-1", file)
		require.NoError(t, err)
		assert.Equal(t, "https://minio.internal:9000/art-photos/progress-1.png", url)
	})

	t.Run("empty filename is rejected", func(t *testing.T) {
		svc := NewService()
		require.NoError(t, svc.Configure(ctx, Config{BucketName: "b", Region: "r"}))

		_, err := svc.UploadURL(ctx, "sess-1", UploadFile{})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestConfigure(t *testing.T) {
	ctx := context.Background()

	t.Run("config round trip", func(t *testing.T) {
		svc := NewService()
		require.NoError(t, svc.Configure(ctx, Config{BucketName: "b", Region: "r", AccessKeyID: "k"}))

		got, err := svc.Config(ctx)
		require.NoError(t, err)
		assert.Equal(t, "b", got.BucketName)
		assert.True(t, svc.Configured(ctx))
	})

	t.Run("missing bucket is rejected", func(t *testing.T) {
		svc := NewService()
		err := svc.Configure(ctx, Config{Region: "r"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("region required without endpoint", func(t *testing.T) {
		svc := NewService()
		err := svc.Configure(ctx, Config{BucketName: "b"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("unset config is not found", func(t *testing.T) {
		svc := NewService()
		_, err := svc.Config(ctx)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
