package util

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidImageData = errors.New("invalid image data")

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// DecodeBase64Image decodes a "data:image/...;base64,..." payload and
// returns the raw bytes, the content type and a file extension.
func DecodeBase64Image(data string) ([]byte, string, string, error) {
	if !strings.HasPrefix(data, "data:") {
		return nil, "", "", ErrInvalidImageData
	}

	meta, encoded, found := strings.Cut(data, ",")
	if !found {
		return nil, "", "", ErrInvalidImageData
	}

	contentType := strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64")
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, "", "", ErrInvalidImageData
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", "", ErrInvalidImageData
	}

	return raw, contentType, ext, nil
}

// IsBase64Image reports whether the payload looks like an inline image
// upload rather than an already stored URL.
func IsBase64Image(data string) bool {
	return strings.HasPrefix(data, "data:image/")
}
