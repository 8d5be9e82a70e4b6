package storage

import (
	"net/url"
	"strings"
)

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket to store images and metadata in.
	Bucket string `mapstructure:"bucket" default:"nft"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// PublicURL is the base URL objects are served from. When empty it is
	// derived from Endpoint and Bucket.
	PublicURL string `mapstructure:"public_url" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

func (c Config) baseURL() string {
	base := c.PublicURL
	if base == "" {
		host := strings.TrimPrefix(strings.TrimPrefix(c.Endpoint, "http://"), "https://")
		scheme := "http"
		if c.UseSSL {
			scheme = "https"
		}
		base = scheme + "://" + host + "/" + c.Bucket
	}
	return strings.TrimSuffix(base, "/")
}

// ObjectURL returns the public URL of an object key.
func (c Config) ObjectURL(key string) string {
	parts := strings.Split(strings.TrimPrefix(key, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return c.baseURL() + "/" + strings.Join(parts, "/")
}

// ObjectKey is the inverse of ObjectURL. It reports false for URIs that are
// not served from this bucket.
func (c Config) ObjectKey(uri string) (string, bool) {
	rest, ok := strings.CutPrefix(uri, c.baseURL()+"/")
	if !ok || rest == "" {
		return "", false
	}
	key, err := url.PathUnescape(rest)
	if err != nil {
		return "", false
	}
	return key, true
}
