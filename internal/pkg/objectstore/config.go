package objectstore

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/picpatch/PicPatch/internal/pkg/env"
)

// Config holds the S3-compatible object storage configuration
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	PublicBaseURL   string // Base URL under which uploaded objects are publicly reachable
}

// LoadConfig loads object storage configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "us-west-001"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		PublicBaseURL:   env.GetEnv("S3_PUBLIC_BASE_URL", ""),
	}

	if config.AccessKeyID == "" {
		return nil, errors.New("S3_ACCESS_KEY_ID is required")
	}
	if config.SecretAccessKey == "" {
		return nil, errors.New("S3_SECRET_ACCESS_KEY is required")
	}
	if config.BucketName == "" {
		return nil, errors.New("S3_BUCKET_NAME is required")
	}

	return config, nil
}

// GetBucketName returns the bucket name as configured (no automatic prefixing)
func (c *Config) GetBucketName() string {
	return c.BucketName
}

// PublicURL builds the public URL for an uploaded object key.
func (c *Config) PublicURL(objectKey string) string {
	base := c.PublicBaseURL
	if base == "" {
		if c.EndpointURL != "" {
			base = fmt.Sprintf("%s/%s", strings.TrimRight(c.EndpointURL, "/"), c.BucketName)
		} else {
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.BucketName, c.Region)
		}
	}
	return strings.TrimRight(base, "/") + "/" + objectKey
}

// ProcessedImageKey generates the object key for a background-removed image.
// Format: processed-images/<unix-millis>-<uuid>.png
func ProcessedImageKey() string {
	return fmt.Sprintf("processed-images/%d-%s.png", time.Now().UnixMilli(), uuid.New().String()[:8])
}

// GetAppEnv returns the current application environment
func GetAppEnv() string {
	return env.GetEnv("APP_ENV", "dev")
}
