package objectstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		key      string
		expected string
	}{
		{
			"Explicit public base URL",
			Config{PublicBaseURL: "https://cdn.picpatch.app/", BucketName: "picpatch"},
			"processed-images/1.png",
			"https://cdn.picpatch.app/processed-images/1.png",
		},
		{
			"S3-compatible endpoint",
			Config{EndpointURL: "https://s3.example.com", BucketName: "picpatch"},
			"a/b.png",
			"https://s3.example.com/picpatch/a/b.png",
		},
		{
			"Plain AWS",
			Config{BucketName: "picpatch", Region: "eu-central-1"},
			"a.png",
			"https://picpatch.s3.eu-central-1.amazonaws.com/a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.PublicURL(tt.key))
		})
	}
}

func TestProcessedImageKey(t *testing.T) {
	k1 := ProcessedImageKey()
	k2 := ProcessedImageKey()

	assert.True(t, strings.HasPrefix(k1, "processed-images/"))
	assert.True(t, strings.HasSuffix(k1, ".png"))
	assert.NotEqual(t, k1, k2)
}
