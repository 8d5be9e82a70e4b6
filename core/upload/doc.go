// Package upload pushes image and metadata bytes to remote storage and returns
// the URI they are served from.
//
// Three backends implement Uploader:
//
//   - s3: an S3 compatible bucket through core/storage (MinIO client).
//   - gcs: a Google Cloud Storage bucket.
//   - http: an upload service that accepts raw bytes on POST {base}/upload
//     and answers {"uri": "..."}, such as an Arweave or Irys bundler gateway.
//
// PrepareImage detects the content type of image bytes and optionally
// downscales them before upload.
package upload
