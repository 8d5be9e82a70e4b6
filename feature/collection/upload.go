package collection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"nft-toolkit/core/batch"
	"nft-toolkit/core/entry"
	"nft-toolkit/core/upload"

	"go.uber.org/zap"
)

const (
	flightImages     = "images"
	flightMetadata   = "metadata"
	flightCollection = "collection"
)

// joinFlight runs fn once per pipeline key; overlapping callers share the run.
// The run is detached from the cancellation of whichever caller started it,
// and every caller stops waiting when its own ctx is done.
func (s *Service) joinFlight(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	run := context.WithoutCancel(ctx)
	ch := s.flights.DoChan(key, func() (any, error) {
		return fn(run)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			s.logger.Info("Joined upload already in progress", zap.String("pipeline", key))
		}
		return res.Val, res.Err
	}
}

// imageJob is one pending image upload.
type imageJob struct {
	index int
	file  string
}

// metadataJob is one pending metadata upload.
type metadataJob struct {
	index int
	data  []byte
}

// UploadImages uploads the image of every entry that has a local file without
// an uploaded URI. Progress is saved after each batch. A failed upload marks
// the entry preview as failed so the next run retries it.
func (s *Service) UploadImages(ctx context.Context) (*UploadReport, error) {
	v, err := s.joinFlight(ctx, flightImages, func(ctx context.Context) (any, error) {
		return s.uploadImages(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*UploadReport), nil
}

func (s *Service) uploadImages(ctx context.Context) (*UploadReport, error) {
	if err := s.requireUploader(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	entries, err := s.entries.Load(ctx, "")
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var jobs []imageJob
	for i, e := range entries {
		if e.NeedsImageUpload() {
			jobs = append(jobs, imageJob{index: i, file: e.File})
		}
	}

	report := &UploadReport{Total: len(jobs)}
	if len(jobs) == 0 {
		return report, nil
	}
	s.logger.Info("Uploading images", zap.Int("count", len(jobs)), zap.Int("batch_size", s.cfg.BatchSize))

	task := batch.Instrument("image_upload", s.uploadImage)
	onChunk := func(chunk []batch.Result[string]) {
		if err := s.recordImageURIs(ctx, jobs, chunk, report); err != nil {
			s.logger.Error("Failed to save image upload progress", zap.Error(err))
			report.Errors = append(report.Errors, err.Error())
		}
	}
	batch.RunChunked(ctx, task, jobs, s.cfg.BatchSize, onChunk)

	s.logger.Info("Image upload finished",
		zap.Int("uploaded", report.Uploaded),
		zap.Int("failed", report.Failed))
	return report, nil
}

func (s *Service) uploadImage(ctx context.Context, job imageJob) (string, error) {
	data, err := s.readFile(job.file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", job.file, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%s: %w", job.file, upload.ErrEmptyData)
	}

	data, contentType, err := upload.PrepareImage(data, s.cfg.MaxImageDimension)
	if err != nil {
		return "", err
	}

	name := s.cfg.ImagePrefix + strconv.Itoa(job.index) + strings.ToLower(filepath.Ext(job.file))
	return s.uploader.Upload(ctx, name, data, contentType)
}

// recordImageURIs writes the outcome of a chunk back into the saved entries
// and regenerates their metadata so it points at the uploaded images. An entry
// whose file changed while the upload ran is left alone.
func (s *Service) recordImageURIs(ctx context.Context, jobs []imageJob, chunk []batch.Result[string], report *UploadReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.entries.Load(ctx, "")
	if err != nil {
		return err
	}

	for _, r := range chunk {
		job := jobs[r.Index]
		current := job.index < len(entries) && entries[job.index].File == job.file
		switch {
		case r.Err != nil:
			report.Failed++
			report.Errors = append(report.Errors, r.Err.Error())
			s.logger.Warn("Image upload failed", zap.Int("entry", job.index), zap.Error(r.Err))
		case !current:
			report.Stale++
			s.logger.Warn("Discarded image URI of changed entry", zap.Int("entry", job.index), zap.String("uri", r.Value))
		default:
			report.Uploaded++
		}

		if !current {
			continue
		}
		if r.Err != nil {
			entries[job.index].FilePreviewURL = entry.FailedUploadPreview
		} else {
			entries[job.index].FilePreviewURL = r.Value
		}
	}

	if _, err := s.applyTemplate(ctx, entries); err != nil {
		return err
	}
	return s.entries.Save(ctx, entries)
}

// UploadMetadata regenerates the metadata of every entry, then uploads each
// document that has no URI yet. Progress is saved after each batch.
func (s *Service) UploadMetadata(ctx context.Context) (*UploadReport, error) {
	v, err := s.joinFlight(ctx, flightMetadata, func(ctx context.Context) (any, error) {
		return s.uploadMetadata(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*UploadReport), nil
}

func (s *Service) uploadMetadata(ctx context.Context) (*UploadReport, error) {
	if err := s.requireUploader(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	entries, err := s.processLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var jobs []metadataJob
	for i, e := range entries {
		if !e.NeedsMetadataUpload() {
			continue
		}
		data, err := json.Marshal(e.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode metadata of entry %d: %w", i, err)
		}
		jobs = append(jobs, metadataJob{index: i, data: data})
	}

	report := &UploadReport{Total: len(jobs)}
	if len(jobs) == 0 {
		return report, nil
	}
	s.logger.Info("Uploading metadata", zap.Int("count", len(jobs)), zap.Int("batch_size", s.cfg.BatchSize))

	task := batch.Instrument("metadata_upload", func(ctx context.Context, job metadataJob) (string, error) {
		name := s.cfg.MetadataPrefix + strconv.Itoa(job.index) + ".json"
		return s.uploader.Upload(ctx, name, job.data, "application/json")
	})
	onChunk := func(chunk []batch.Result[string]) {
		if err := s.recordMetadataURIs(ctx, jobs, chunk, report); err != nil {
			s.logger.Error("Failed to save metadata upload progress", zap.Error(err))
			report.Errors = append(report.Errors, err.Error())
		}
	}
	batch.RunChunked(ctx, task, jobs, s.cfg.BatchSize, onChunk)

	s.logger.Info("Metadata upload finished",
		zap.Int("uploaded", report.Uploaded),
		zap.Int("failed", report.Failed))
	return report, nil
}

// recordMetadataURIs writes uploaded URIs back into the saved entries. A URI
// is only kept when the entry still generates the document that was sent.
func (s *Service) recordMetadataURIs(ctx context.Context, jobs []metadataJob, chunk []batch.Result[string], report *UploadReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.entries.Load(ctx, "")
	if err != nil {
		return err
	}

	for _, r := range chunk {
		job := jobs[r.Index]
		if r.Err != nil {
			report.Failed++
			report.Errors = append(report.Errors, r.Err.Error())
			s.logger.Warn("Metadata upload failed", zap.Int("entry", job.index), zap.Error(r.Err))
			continue
		}
		if !sentCurrent(entries, job) {
			report.Stale++
			s.logger.Warn("Discarded metadata URI of changed entry", zap.Int("entry", job.index), zap.String("uri", r.Value))
			continue
		}
		report.Uploaded++
		entries[job.index].MetadataURI = r.Value
	}
	return s.entries.Save(ctx, entries)
}

// sentCurrent reports whether the entry of job still carries the metadata
// that was uploaded.
func sentCurrent(entries []entry.Entry, job metadataJob) bool {
	if job.index >= len(entries) || entries[job.index].Metadata == nil {
		return false
	}
	data, err := json.Marshal(entries[job.index].Metadata)
	return err == nil && bytes.Equal(data, job.data)
}

// UploadCollectionImage uploads the image of the collection NFT and returns
// its URI and content type, ready for GenerateCollectionMetadata.
func (s *Service) UploadCollectionImage(ctx context.Context, name string, data []byte) (string, string, error) {
	if err := s.requireUploader(); err != nil {
		return "", "", err
	}
	data, contentType, err := upload.PrepareImage(data, s.cfg.MaxImageDimension)
	if err != nil {
		return "", "", err
	}
	uri, err := s.uploader.Upload(ctx, s.cfg.CollectionPrefix+filepath.Base(name), data, contentType)
	if err != nil {
		return "", "", err
	}
	return uri, contentType, nil
}

// UploadCollectionMetadata uploads the collection NFT metadata and saves its URI.
func (s *Service) UploadCollectionMetadata(ctx context.Context) (string, error) {
	v, err := s.joinFlight(ctx, flightCollection, func(ctx context.Context) (any, error) {
		if err := s.requireUploader(); err != nil {
			return "", err
		}
		m, err := s.CollectionMetadata(ctx)
		if err != nil {
			return "", err
		}
		data, err := json.Marshal(m)
		if err != nil {
			return "", err
		}
		uri, err := s.uploader.Upload(ctx, s.cfg.CollectionPrefix+"collection.json", data, "application/json")
		if err != nil {
			return "", err
		}
		if err := s.collections.SaveURI(ctx, uri); err != nil {
			return "", err
		}
		s.logger.Info("Uploaded collection metadata", zap.String("uri", uri))
		return uri, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
