// Package storage wraps the MinIO client used for S3 compatible buckets.
//
// Item images, metadata documents and the collection NFT files are written
// under configurable prefixes of one bucket. The Client interface only lists
// what the toolkit calls, so core/storage/mocks can stand in for the bucket in
// tests of the uploader, the integrity checks and upload reconciliation.
//
// Config.ObjectURL turns an object key into the public URI recorded on an
// entry; Config.ObjectKey goes the other way and rejects URIs served from
// elsewhere.
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	if err != nil {
//	    return err
//	}
//	if err := storage.EnsureBucket(ctx, client, cfg); err != nil {
//	    return err
//	}
//	uri := cfg.ObjectURL("images/0.png")
package storage
