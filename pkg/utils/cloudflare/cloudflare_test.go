package cloudflare

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propsite_backend/pkg/config"
)

func TestNewUploader_RequiresSettings(t *testing.T) {
	_, err := NewUploader(context.Background(), config.R2Config{AccountID: "acc", Bucket: "photos"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestUploader_ObjectKeyAndOwnership(t *testing.T) {
	u, err := NewUploader(context.Background(), config.R2Config{
		AccountID: "acc",
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "photos",
		PublicURL: "https://cdn.example.com/",
	})
	require.NoError(t, err)
	u.now = func() time.Time { return time.Unix(1700000000, 0) }

	key := u.ObjectKey("Richmond Two Bedroom Terrace", ".webp")
	assert.Regexp(t, regexp.MustCompile(`^listings/richmond-two-bedroom-terrace/1700000000000000000-[0-9a-f-]{36}\.webp$`), key)

	assert.True(t, u.Owns("https://cdn.example.com/"+key))
	assert.False(t, u.Owns("https://images.unsplash.com/photo.jpg"))
	assert.False(t, u.Owns("https://cdn.example.com.evil.net/x.webp"))

	err = u.DeleteImage(context.Background(), "https://elsewhere.test/a.webp")
	assert.Error(t, err)
}
