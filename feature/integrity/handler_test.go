package integrity

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"nft-toolkit/core/storage/mocks"
	"nft-toolkit/core/store"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, kv store.KV) (*fiber.App, *mocks.Client) {
	app := fiber.New()
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, "test-bucket", testFolders, kv, zap.NewNop())
	NewHandler(svc).RegisterRoutes(app)
	return app, mockClient
}

func TestHandleStructureCheck(t *testing.T) {
	app, mockClient := setupTestApp(t, setupRedisKV(t))

	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(emptyListing())

	req := httptest.NewRequest("GET", "/integrity/structure", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "checked", body["status"])
	assert.NotEmpty(t, body["missing"])
}

func TestHandleStructureFix(t *testing.T) {
	app, mockClient := setupTestApp(t, setupRedisKV(t))

	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(emptyListing())
	mockClient.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/structure?fix=true", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "fixed", body["status"])
	mockClient.AssertNumberOfCalls(t, "PutObject", len(testFolders))
}

func TestHandleStructureCheck_BucketMissing(t *testing.T) {
	app, mockClient := setupTestApp(t, setupRedisKV(t))
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/structure", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestHandleCollectionCheck(t *testing.T) {
	app, _ := setupTestApp(t, setupRedisKV(t))

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/collection", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(0), body["entries"])
	assert.Equal(t, false, body["ready"])
}

func TestHandleStoreCheck(t *testing.T) {
	t.Run("Database", func(t *testing.T) {
		app, _ := setupTestApp(t, setupSQLiteKV(t))

		resp, err := app.Test(httptest.NewRequest("GET", "/integrity/store", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("Redis", func(t *testing.T) {
		app, _ := setupTestApp(t, setupRedisKV(t))

		resp, err := app.Test(httptest.NewRequest("GET", "/integrity/store", nil))
		require.NoError(t, err)
		assert.Equal(t, 409, resp.StatusCode)
	})
}

func TestHandleIntegrityCheck(t *testing.T) {
	app, mockClient := setupTestApp(t, setupSQLiteKV(t))
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(emptyListing())

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["structure"]["status"])
	assert.Equal(t, "ok", body["collection"]["status"])
	assert.Equal(t, "ok", body["store"]["status"])
}
