package products

import (
	"bytes"
	"encoding/base64"
	"fmt"
)

// ImageData holds a validated, decoded image attachment.
type ImageData struct {
	Bytes    []byte
	MimeType string
}

var pngSignature = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

// SniffImageMimeType detects a supported image format from magic bytes.
// Returns an empty string when the content matches no supported format.
func SniffImageMimeType(data []byte) string {
	switch {
	case len(data) >= 8 && bytes.Equal(data[:8], pngSignature):
		return "image/png"
	case len(data) >= 3 && data[0] == 0xff && data[1] == 0xd8 && data[2] == 0xff:
		return "image/jpeg"
	case len(data) >= 6 && (bytes.Equal(data[:6], []byte("GIF87a")) || bytes.Equal(data[:6], []byte("GIF89a"))):
		return "image/gif"
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return "image/webp"
	case len(data) >= 2 && bytes.Equal(data[:2], []byte("BM")):
		return "image/bmp"
	default:
		return ""
	}
}

// ValidateImage decodes a base64 image payload and enforces the
// attachment rules: decoded size within maxBytes, content carrying a
// supported magic-number signature, and agreement between any declared
// MIME type and the sniffed content. A mismatch is rejected, never
// silently corrected.
func ValidateImage(encoded string, declaredMime *string, maxBytes int64) (*ImageData, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageInvalid, err)
	}

	if len(data) == 0 {
		return nil, ErrImageEmpty
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds cap of %d", ErrImageTooLarge, len(data), maxBytes)
	}

	detected := SniffImageMimeType(data)
	if detected == "" {
		return nil, ErrImageUnsupported
	}

	if declaredMime != nil && *declaredMime != detected {
		return nil, fmt.Errorf("%w: declared %q, detected %q", ErrImageMimeMismatch, *declaredMime, detected)
	}

	return &ImageData{Bytes: data, MimeType: detected}, nil
}
