package storage_test

import (
	"context"
	"errors"
	"testing"

	"nft-toolkit/core/storage"
	"nft-toolkit/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Bucket:    "test-bucket",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestObjectURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
		key  string
		want string
	}{
		{"Derived", storage.Config{Endpoint: "http://localhost:9000", Bucket: "nft"}, "images/0.png", "http://localhost:9000/nft/images/0.png"},
		{"DerivedSSL", storage.Config{Endpoint: "s3.example.com", Bucket: "nft", UseSSL: true}, "metadata/1.json", "https://s3.example.com/nft/metadata/1.json"},
		{"PublicURL", storage.Config{PublicURL: "https://cdn.example.com/"}, "/images/my cat.png", "https://cdn.example.com/images/my%20cat.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.ObjectURL(tt.key))
		})
	}
}

func TestObjectKey(t *testing.T) {
	cfg := storage.Config{Endpoint: "http://localhost:9000", Bucket: "nft"}

	key, ok := cfg.ObjectKey(cfg.ObjectURL("images/my cat.png"))
	assert.True(t, ok)
	assert.Equal(t, "images/my cat.png", key)

	_, ok = cfg.ObjectKey("https://arweave.net/abc")
	assert.False(t, ok)

	_, ok = cfg.ObjectKey("http://localhost:9000/nft/")
	assert.False(t, ok)

	cdn := storage.Config{PublicURL: "https://cdn.example.com"}
	key, ok = cdn.ObjectKey("https://cdn.example.com/metadata/3.json")
	assert.True(t, ok)
	assert.Equal(t, "metadata/3.json", key)
}

func TestEnsureBucket(t *testing.T) {
	cfg := storage.Config{Bucket: "nft", Region: "eu-west-1"}

	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "nft").Return(true, nil)

		assert.NoError(t, storage.EnsureBucket(context.Background(), client, cfg))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Created", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "nft").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "nft", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

		assert.NoError(t, storage.EnsureBucket(context.Background(), client, cfg))
		client.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "nft").Return(false, errors.New("denied"))

		assert.ErrorContains(t, storage.EnsureBucket(context.Background(), client, cfg), "denied")
	})
}
