package upload

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// resizable lists the content types PrepareImage can decode and re-encode.
var resizable = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
}

// DetectContentType returns the MIME type of data without parameters.
func DetectContentType(data []byte) string {
	mt := mimetype.Detect(data)
	return mt.String()
}

// PrepareImage detects the content type of data. When maxDimension is positive
// and a raster image is wider or taller than it, the image is scaled down to
// fit and re-encoded in its original format. Other data is returned as-is.
func PrepareImage(data []byte, maxDimension int) ([]byte, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyData
	}

	mt := mimetype.Detect(data)
	contentType := mt.String()
	if maxDimension <= 0 || !resizable[contentType] {
		return data, contentType, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %s: %w", contentType, err)
	}
	b := img.Bounds()
	if b.Dx() <= maxDimension && b.Dy() <= maxDimension {
		return data, contentType, nil
	}

	format, err := imaging.FormatFromExtension(mt.Extension())
	if err != nil {
		return nil, "", err
	}

	resized := imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		return nil, "", fmt.Errorf("failed to encode %s: %w", contentType, err)
	}
	return buf.Bytes(), contentType, nil
}
