package validation

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func header(name string, size int64, contentType string) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &multipart.FileHeader{Filename: name, Size: size, Header: h}
}

func TestValidateImage(t *testing.T) {
	assert.ErrorIs(t, ValidateImage(nil), ErrFileRequired)
	assert.ErrorIs(t, ValidateImage(header("front.jpg", MaxImageSize+1, "image/jpeg")), ErrFileSize)
	assert.ErrorIs(t, ValidateImage(header("floorplan.pdf", 1024, "application/pdf")), ErrFileType)
	assert.ErrorIs(t, ValidateImage(header("front.png", 1024, "text/html")), ErrFileType)

	assert.NoError(t, ValidateImage(header("Front.JPG", 1024, "image/jpeg")))
	assert.NoError(t, ValidateImage(header("kitchen.webp", 2048, "")))
	assert.NoError(t, ValidateImage(header("yard.png", 2048, "application/octet-stream")))
}
