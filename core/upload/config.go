package upload

const (
	BackendS3   = "s3"
	BackendGCS  = "gcs"
	BackendHTTP = "http"
)

// Config holds configuration for content uploads.
type Config struct {
	// Backend selects the upload target (s3, gcs, http).
	Backend string `mapstructure:"backend" default:"s3"`
	// BatchSize is the number of uploads in flight at once.
	BatchSize int `mapstructure:"batch_size" default:"7"`
	// MaxImageDimension downscales larger images before upload. 0 disables it.
	MaxImageDimension int `mapstructure:"max_image_dimension" default:"0"`
	// ImagePrefix is the object key prefix for item images.
	ImagePrefix string `mapstructure:"image_prefix" default:"images/"`
	// MetadataPrefix is the object key prefix for item metadata documents.
	MetadataPrefix string `mapstructure:"metadata_prefix" default:"metadata/"`
	// CollectionPrefix is the object key prefix for the collection metadata.
	CollectionPrefix string `mapstructure:"collection_prefix" default:"collection/"`
	// HTTPURL is the base URL of the http backend.
	HTTPURL string `mapstructure:"http_url" default:""`
	// HTTPAPIKey is sent as a bearer token to the http backend.
	HTTPAPIKey string `mapstructure:"http_api_key" default:""`
	// GCSBucket is the bucket of the gcs backend.
	GCSBucket string `mapstructure:"gcs_bucket" default:""`
	// GCSPublicURL is the base URL gcs objects are served from.
	GCSPublicURL string `mapstructure:"gcs_public_url" default:"https://storage.googleapis.com"`
	// TimeoutSeconds bounds a single upload.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
