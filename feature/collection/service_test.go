package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"nft-toolkit/core/entry"
	"nft-toolkit/core/metadata"
	"nft-toolkit/core/store"
	"nft-toolkit/core/upload"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testCSV = `Name,Color,Level
Rex,red,12
Ada,blue,3
Bo,red,
`

const testTemplate = `{
  "name": "$NAME$ #$IDPLUSONE$",
  "description": "Level $LEVEL$",
  "image": "$ID$.png",
  "attributes": [
    {"trait_type": "Color", "value": "$COLOR$"},
    {"trait_type": "Level", "value": "$LEVEL$"}
  ],
  "properties": {"files": [{"uri": "$ID$.png", "type": "image/png"}]}
}`

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// fakeUploader records uploads and fails for the configured object names.
type fakeUploader struct {
	mu    sync.Mutex
	names []string
	fail  map[string]bool
}

func (u *fakeUploader) Upload(_ context.Context, name string, data []byte, _ string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(data) == 0 {
		return "", upload.ErrEmptyData
	}
	if u.fail[name] {
		return "", fmt.Errorf("upload of %s rejected", name)
	}
	u.names = append(u.names, name)
	return "https://cdn.test/" + name, nil
}

func (u *fakeUploader) uploaded() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.names...)
}

func testConfig() upload.Config {
	return upload.Config{
		BatchSize:        2,
		ImagePrefix:      "images/",
		MetadataPrefix:   "metadata/",
		CollectionPrefix: "collection/",
	}
}

func setupService(t *testing.T, uploader upload.Uploader) *Service {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	kv := store.NewRedisKV(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test:")
	t.Cleanup(func() { _ = kv.Close() })

	svc := NewService(kv, uploader, testConfig(), zap.NewNop())
	svc.readFile = func(name string) ([]byte, error) {
		if strings.Contains(name, "missing") {
			return nil, errors.New("no such file")
		}
		return pngHeader, nil
	}
	return svc
}

func TestService_ImportWithoutTemplate(t *testing.T) {
	svc := setupService(t, nil)
	ctx := context.Background()

	result, err := svc.ImportCSV(ctx, strings.NewReader(testCSV))
	require.NoError(t, err)
	assert.Equal(t, 3, result.Entries)
	assert.Equal(t, []string{"name", "color", "level"}, result.Fields)
	assert.False(t, result.Processed)
	assert.Equal(t, 2, result.Rarity["color"]["red"])

	entries, err := svc.Entries(ctx, "")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Nil(t, entries[0].Metadata)
	assert.Equal(t, 12.0, entries[0].Fields["level"])
	assert.NotContains(t, entries[2].Fields, "level")

	_, err = svc.Process(ctx)
	assert.ErrorIs(t, err, entry.ErrNoTemplate)
}

func TestService_ImportWithTemplate(t *testing.T) {
	svc := setupService(t, nil)
	ctx := context.Background()

	_, err := svc.SaveTemplate(ctx, []byte(testTemplate))
	require.NoError(t, err)

	result, err := svc.ImportCSV(ctx, strings.NewReader(testCSV))
	require.NoError(t, err)
	assert.True(t, result.Processed)

	entries, err := svc.Entries(ctx, "")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Rex #1", entries[0].Metadata.Name)
	assert.Equal(t, "Level 12", entries[0].Metadata.Description)
	assert.Equal(t, "0.png", entries[0].Metadata.Image)
	assert.Equal(t, "Bo #3", entries[2].Metadata.Name)
	assert.Equal(t, []metadata.Attribute{{TraitType: "Color", Value: "red"}}, entries[2].Metadata.Attributes)
}

func TestService_ImportInvalidCSV(t *testing.T) {
	svc := setupService(t, nil)

	_, err := svc.ImportCSV(context.Background(), strings.NewReader(""))
	assert.ErrorIs(t, err, ErrInvalidCSV)
}

func TestService_Templates(t *testing.T) {
	svc := setupService(t, nil)
	ctx := context.Background()

	_, err := svc.Template(ctx)
	assert.ErrorIs(t, err, entry.ErrNoTemplate)

	_, err = svc.SaveTemplate(ctx, []byte(`{"name": 5}`))
	assert.ErrorIs(t, err, metadata.ErrInvalidTemplate)

	params := metadata.DefaultTemplateParams()
	params.Traits = []metadata.Trait{{Name: "Color", TemplateValue: "$COLOR$"}}
	tmpl, err := svc.GenerateTemplate(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, "NFT", tmpl.Name)

	traits, err := svc.Traits(ctx)
	require.NoError(t, err)
	assert.Equal(t, params.Traits, traits)
}

func TestService_SaveTemplateReprocesses(t *testing.T) {
	svc := setupService(t, nil)
	ctx := context.Background()

	_, err := svc.ImportCSV(ctx, strings.NewReader(testCSV))
	require.NoError(t, err)
	_, err = svc.SaveTemplate(ctx, []byte(testTemplate))
	require.NoError(t, err)

	entries, err := svc.Entries(ctx, "")
	require.NoError(t, err)
	require.NotNil(t, entries[1].Metadata)
	assert.Equal(t, "Ada #2", entries[1].Metadata.Name)
}

func TestService_EntriesFilter(t *testing.T) {
	svc := setupService(t, nil)
	ctx := context.Background()

	_, err := svc.ImportCSV(ctx, strings.NewReader(testCSV))
	require.NoError(t, err)

	entries, err := svc.Entries(ctx, "blue")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ada", entries[0].Fields["name"])
}

func TestService_AssignImages(t *testing.T) {
	svc := setupService(t, nil)
	ctx := context.Background()

	_, err := svc.ImportCSV(ctx, strings.NewReader(testCSV))
	require.NoError(t, err)

	result, err := svc.AssignImages(ctx, []string{"/imgs/0.png", "/imgs/2.png", "/imgs/cover.png", "/imgs/9.png"})
	require.NoError(t, err)
	assert.Len(t, result.Assigned, 2)
	assert.Len(t, result.Skipped, 2)

	entries, err := svc.Entries(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "/imgs/0.png", entries[0].File)
	assert.Empty(t, entries[1].File)
	assert.True(t, entries[2].NeedsImageUpload())
}

func TestService_UploadWorkflow(t *testing.T) {
	uploader := &fakeUploader{fail: map[string]bool{"images/1.png": true}}
	svc := setupService(t, uploader)
	ctx := context.Background()

	_, err := svc.SaveTemplate(ctx, []byte(testTemplate))
	require.NoError(t, err)
	_, err = svc.ImportCSV(ctx, strings.NewReader(testCSV))
	require.NoError(t, err)
	_, err = svc.AssignImages(ctx, []string{"/imgs/0.png", "/imgs/1.png", "/imgs/2.png"})
	require.NoError(t, err)

	report, err := svc.UploadImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Uploaded)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)

	entries, err := svc.Entries(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/images/0.png", entries[0].FilePreviewURL)
	assert.Equal(t, "https://cdn.test/images/0.png", entries[0].Metadata.Image)
	assert.Equal(t, "https://cdn.test/images/0.png", entries[0].Metadata.Properties.Files[0].URI)
	assert.Equal(t, entry.FailedUploadPreview, entries[1].FilePreviewURL)
	assert.Equal(t, "1.png", entries[1].Metadata.Image)

	// the failed image is retried on the next run
	uploader.fail = nil
	report, err = svc.UploadImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 1, report.Uploaded)

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, status.Images.Online)
	assert.Equal(t, 3, status.Metadata.Local)
	assert.False(t, status.Ready)

	report, err = svc.UploadMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 3, report.Uploaded)
	assert.Contains(t, uploader.uploaded(), "metadata/2.json")

	entries, err = svc.Entries(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/metadata/1.json", entries[1].MetadataURI)
	assert.Equal(t, "https://cdn.test/images/1.png", entries[1].Metadata.Image)

	status, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Ready)
	assert.True(t, status.HasTemplate)

	report, err = svc.UploadMetadata(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.Total)

	require.NoError(t, svc.ClearMetadataURIs(ctx))
	report, err = svc.UploadMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
}

func TestService_UploadImagesReadError(t *testing.T) {
	svc := setupService(t, &fakeUploader{})
	ctx := context.Background()

	_, err := svc.ImportCSV(ctx, strings.NewReader(testCSV))
	require.NoError(t, err)
	_, err = svc.AssignImages(ctx, []string{"/missing/0.png"})
	require.NoError(t, err)

	report, err := svc.UploadImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)

	entries, err := svc.Entries(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, entry.FailedUploadPreview, entries[0].FilePreviewURL)
	assert.Nil(t, entries[0].Metadata)
}

func TestService_UploadWithoutBackend(t *testing.T) {
	svc := setupService(t, nil)
	ctx := context.Background()

	_, err := svc.UploadImages(ctx)
	assert.Error(t, err)
	_, err = svc.UploadMetadata(ctx)
	assert.Error(t, err)
	_, err = svc.UploadCollectionMetadata(ctx)
	assert.Error(t, err)
	_, _, err = svc.UploadCollectionImage(ctx, "cover.png", pngHeader)
	assert.Error(t, err)
}

func TestService_UploadMetadataWithoutTemplate(t *testing.T) {
	svc := setupService(t, &fakeUploader{})
	ctx := context.Background()

	_, err := svc.ImportCSV(ctx, strings.NewReader(testCSV))
	require.NoError(t, err)

	_, err = svc.UploadMetadata(ctx)
	assert.ErrorIs(t, err, entry.ErrNoTemplate)
}

func TestService_CollectionMetadata(t *testing.T) {
	uploader := &fakeUploader{}
	svc := setupService(t, uploader)
	ctx := context.Background()

	_, err := svc.CollectionMetadata(ctx)
	assert.ErrorIs(t, err, ErrNoCollectionMetadata)
	_, err = svc.UploadCollectionMetadata(ctx)
	assert.ErrorIs(t, err, ErrNoCollectionMetadata)

	imageURI, contentType, err := svc.UploadCollectionImage(ctx, "/tmp/cover.png", pngHeader)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/collection/cover.png", imageURI)
	assert.Equal(t, "image/png", contentType)

	m, err := svc.GenerateCollectionMetadata(ctx, metadata.CollectionParams{
		Name:      "Heroes",
		ImageURI:  imageURI,
		ImageType: contentType,
	})
	require.NoError(t, err)
	assert.Equal(t, "Heroes", m.Name)
	assert.Equal(t, imageURI, m.Image)

	uri, err := svc.UploadCollectionMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/collection/collection.json", uri)

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, uri, status.CollectionMetadataURI)
}

func TestService_Rarity(t *testing.T) {
	svc := setupService(t, nil)
	ctx := context.Background()

	_, err := svc.ImportCSV(ctx, strings.NewReader(testCSV))
	require.NoError(t, err)

	rarity, err := svc.Rarity(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"red": 2, "blue": 1}, rarity["color"])
	assert.Equal(t, map[string]int{"12": 1, "3": 1}, rarity["level"])
}

func TestService_Clear(t *testing.T) {
	svc := setupService(t, nil)
	ctx := context.Background()

	_, err := svc.SaveTemplate(ctx, []byte(testTemplate))
	require.NoError(t, err)
	_, err = svc.ImportCSV(ctx, strings.NewReader(testCSV))
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx))

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Zero(t, status.Entries)
	assert.False(t, status.HasTemplate)
}

// gatedUploader holds the upload of one object name until release is closed.
type gatedUploader struct {
	fakeUploader
	gate    string
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func newGatedUploader(gate string) *gatedUploader {
	return &gatedUploader{gate: gate, started: make(chan struct{}), release: make(chan struct{})}
}

func (u *gatedUploader) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	if name == u.gate {
		u.once.Do(func() {
			close(u.started)
			<-u.release
		})
	}
	return u.fakeUploader.Upload(ctx, name, data, contentType)
}

func TestService_UploadMetadataDiscardsURIsOfReplacedEntries(t *testing.T) {
	uploader := newGatedUploader("metadata/0.json")
	svc := setupService(t, uploader)
	ctx := context.Background()

	_, err := svc.SaveTemplate(ctx, []byte(testTemplate))
	require.NoError(t, err)
	_, err = svc.ImportCSV(ctx, strings.NewReader(testCSV))
	require.NoError(t, err)

	done := make(chan *UploadReport, 1)
	go func() {
		report, err := svc.UploadMetadata(ctx)
		assert.NoError(t, err)
		done <- report
	}()

	<-uploader.started
	_, err = svc.ImportCSV(ctx, strings.NewReader("Name,Color,Level\nNew,green,1\nNewer,gold,2\n"))
	require.NoError(t, err)
	close(uploader.release)

	report := <-done
	require.NotNil(t, report)
	assert.Equal(t, 3, report.Total)
	assert.Zero(t, report.Uploaded)
	assert.Equal(t, 3, report.Stale)

	entries, err := svc.Entries(ctx, "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Empty(t, e.MetadataURI)
		assert.True(t, e.NeedsMetadataUpload())
	}

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Ready)

	report, err = svc.UploadMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Uploaded)
	assert.Zero(t, report.Stale)

	entries, err = svc.Entries(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "New #1", entries[0].Metadata.Name)
	assert.Equal(t, "https://cdn.test/metadata/0.json", entries[0].MetadataURI)
}

func TestService_UploadImagesOutlivesCancelledCaller(t *testing.T) {
	uploader := newGatedUploader("images/0.png")
	svc := setupService(t, uploader)
	ctx := context.Background()

	_, err := svc.ImportCSV(ctx, strings.NewReader(testCSV))
	require.NoError(t, err)
	_, err = svc.AssignImages(ctx, []string{"/imgs/0.png", "/imgs/1.png", "/imgs/2.png"})
	require.NoError(t, err)

	callerCtx, cancel := context.WithCancel(ctx)
	errs := make(chan error, 1)
	go func() {
		_, err := svc.UploadImages(callerCtx)
		errs <- err
	}()

	<-uploader.started
	cancel()
	assert.ErrorIs(t, <-errs, context.Canceled)
	close(uploader.release)

	// the run keeps going after its first caller left, through the last batch
	require.Eventually(t, func() bool {
		entries, err := svc.Entries(ctx, "")
		if err != nil || len(entries) != 3 {
			return false
		}
		for _, e := range entries {
			if e.RemoteImage() == "" {
				return false
			}
		}
		return true
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, uploader.uploaded(), "images/2.png")
}
