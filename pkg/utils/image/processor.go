package image

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"

	"github.com/chai2010/webp"
)

const (
	ContentTypeWebP = "image/webp"
	ExtWebP         = ".webp"

	DefaultQuality = 82
)

// ToWebP decodes a JPEG, PNG or WebP image and re-encodes it as lossy WebP.
func ToWebP(r io.Reader, quality float32) (*bytes.Buffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: quality}); err != nil {
		return nil, fmt.Errorf("could not encode image: %w", err)
	}
	return buf, nil
}

// ProcessImage converts an uploaded listing photo to WebP and returns the
// encoded bytes with their content type.
func ProcessImage(file *multipart.FileHeader) (*bytes.Buffer, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("could not open file: %w", err)
	}
	defer src.Close()

	buf, err := ToWebP(src, DefaultQuality)
	if err != nil {
		return nil, "", err
	}
	return buf, ContentTypeWebP, nil
}
