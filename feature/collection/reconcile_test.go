package collection

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"nft-toolkit/core/entry"
	"nft-toolkit/core/metadata"
	"nft-toolkit/core/reconcile"
	"nft-toolkit/core/storage"
	"nft-toolkit/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func bucketListing(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func withPrefix(p string) interface{} {
	return mock.MatchedBy(func(opts minio.ListObjectsOptions) bool { return opts.Prefix == p })
}

// expectListing serves one listing per prefix for each of runs reconciliations.
func expectListing(client *mocks.Client, bucket string, runs int, listing map[string][]string) {
	for prefix, keys := range listing {
		for i := 0; i < runs; i++ {
			client.On("ListObjects", mock.Anything, bucket, withPrefix(prefix)).Return(bucketListing(keys...)).Once()
		}
	}
}

func attachBucket(svc *Service, client storage.Client, bucket string) {
	svc.reconcileTTL = 0
	svc.AttachStorage(client, storage.Config{PublicURL: "https://cdn.test", Bucket: bucket})
}

func TestService_ReconcileUploads(t *testing.T) {
	uploader := &fakeUploader{}
	svc := setupService(t, uploader)
	ctx := context.Background()

	_, err := svc.SaveTemplate(ctx, []byte(testTemplate))
	require.NoError(t, err)
	_, err = svc.ImportCSV(ctx, strings.NewReader(testCSV))
	require.NoError(t, err)
	_, err = svc.AssignImages(ctx, []string{"/imgs/0.png", "/imgs/1.png", "/imgs/2.png"})
	require.NoError(t, err)
	_, err = svc.UploadImages(ctx)
	require.NoError(t, err)
	_, err = svc.UploadMetadata(ctx)
	require.NoError(t, err)

	client := new(mocks.Client)
	expectListing(client, "reconcile-uploads", 2, map[string][]string{
		"images/":     {"images/", "images/0.png", "images/1.png", "images/extra.png"},
		"metadata/":   {"metadata/0.json", "metadata/1.json", "metadata/2.json"},
		"collection/": nil,
	})
	client.On("RemoveObject", mock.Anything, "reconcile-uploads", "images/extra.png", minio.RemoveObjectOptions{}).Return(nil)
	attachBucket(svc, client, "reconcile-uploads")

	plan, executed, err := svc.Reconcile(ctx, reconcile.ReconcileOptions{DryRun: true, DoReset: true, DoPurge: true})
	require.NoError(t, err)
	assert.Zero(t, executed)
	assert.Equal(t, 7, plan.Summary.TotalItems)
	assert.Equal(t, 1, plan.Summary.MissingStorage)
	assert.Equal(t, 1, plan.Summary.Orphaned)
	require.Len(t, plan.Actions, 2)
	assert.Equal(t, reconcile.Action{Type: reconcile.ActionResetUpload, Key: "images/2.png", Reason: "image of entry 2 missing in storage"}, plan.Actions[0])
	assert.Equal(t, "images/extra.png", plan.Actions[1].Key)

	_, executed, err = svc.Reconcile(ctx, reconcile.ReconcileOptions{DoReset: true, DoPurge: true, Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 2, executed)
	client.AssertExpectations(t)

	entries, err := svc.Entries(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, entry.FailedUploadPreview, entries[2].FilePreviewURL)
	assert.Equal(t, "https://cdn.test/metadata/2.json", entries[2].MetadataURI)
	assert.Equal(t, "https://cdn.test/images/0.png", entries[0].FilePreviewURL)

	report, err := svc.UploadImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 1, report.Uploaded)
}

func TestService_ReconcileCollection(t *testing.T) {
	svc := setupService(t, &fakeUploader{})
	ctx := context.Background()

	imageURI, contentType, err := svc.UploadCollectionImage(ctx, "cover.png", pngHeader)
	require.NoError(t, err)
	_, err = svc.GenerateCollectionMetadata(ctx, metadata.CollectionParams{Name: "Heroes", ImageURI: imageURI, ImageType: contentType})
	require.NoError(t, err)
	_, err = svc.UploadCollectionMetadata(ctx)
	require.NoError(t, err)

	client := new(mocks.Client)
	expectListing(client, "reconcile-collection", 1, map[string][]string{
		"images/":     nil,
		"metadata/":   nil,
		"collection/": {"collection/collection.json"},
	})
	attachBucket(svc, client, "reconcile-collection")

	plan, executed, err := svc.Reconcile(ctx, reconcile.ReconcileOptions{DoReset: true, Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 1, executed)
	assert.Equal(t, 1, plan.Summary.MissingStorage)

	m, err := svc.CollectionMetadata(ctx)
	require.NoError(t, err)
	assert.Empty(t, m.Image)

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/collection/collection.json", status.CollectionMetadataURI)
}

func TestService_ReconcileWithoutStorage(t *testing.T) {
	svc := setupService(t, nil)
	_, _, err := svc.Reconcile(context.Background(), reconcile.ReconcileOptions{})
	assert.ErrorIs(t, err, ErrNoStorage)
}

func TestReconcileAdapter_Owns(t *testing.T) {
	svc := setupService(t, nil)
	adapter := &ReconcileAdapter{svc: svc, keyOf: svc.objectsCfg.ObjectKey}

	assert.True(t, adapter.Owns("images/0.png"))
	assert.True(t, adapter.Owns("collection/collection.json"))
	assert.False(t, adapter.Owns("backups/state.json"))
}

func TestHandleReconcile(t *testing.T) {
	uploader := &fakeUploader{}
	svc := setupService(t, uploader)
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/collection/reconcile", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	client := new(mocks.Client)
	expectListing(client, "reconcile-handler", 2, map[string][]string{
		"images/":     {"images/orphan.png"},
		"metadata/":   nil,
		"collection/": nil,
	})
	client.On("RemoveObject", mock.Anything, "reconcile-handler", "images/orphan.png", mock.Anything).Return(nil)
	attachBucket(svc, client, "reconcile-handler")

	resp, err = app.Test(httptest.NewRequest("GET", "/collection/reconcile?purge=true", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var plan reconcile.ReconcilePlan
	decodeBody(t, resp.Body, &plan)
	assert.Equal(t, 1, plan.Summary.Orphaned)
	assert.Equal(t, 1, plan.Summary.PurgeActions)
	client.AssertNotCalled(t, "RemoveObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	resp, err = app.Test(httptest.NewRequest("POST", "/collection/reconcile?purge=true", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body struct {
		Executed int `json:"executed"`
	}
	decodeBody(t, resp.Body, &body)
	assert.Equal(t, 1, body.Executed)
	client.AssertExpectations(t)
}
