package bgremoval

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2/log"
)

// Uploader stores a processed image blob and returns its durable public
// URL. Implemented by the objectstore client.
type Uploader interface {
	Upload(ctx context.Context, objectKey string, data []byte, contentType string) (string, error)
}

// KeyFunc produces the object key for one processed image.
type KeyFunc func() string

// Service runs the full background-removal pipeline: fetch the source
// image, send it through the transform service, re-encode the result as
// PNG and store it. It satisfies collage.BackgroundRemover.
type Service struct {
	client   *Client
	uploader Uploader
	keyFunc  KeyFunc
}

// NewService creates the pipeline service.
func NewService(client *Client, uploader Uploader, keyFunc KeyFunc) *Service {
	return &Service{
		client:   client,
		uploader: uploader,
		keyFunc:  keyFunc,
	}
}

// RemoveFrom fetches the image behind imageURL, removes its background and
// returns the URL of the stored result. A failure at any step aborts the
// pipeline; an already uploaded result of a failed later step is left in
// place as garbage rather than rolled back.
func (s *Service) RemoveFrom(ctx context.Context, imageURL string) (string, error) {
	src, err := s.client.FetchImage(ctx, imageURL)
	if err != nil {
		return "", err
	}

	processed, err := s.client.Process(ctx, src)
	if err != nil {
		return "", err
	}

	// The service always hands back an image with alpha; re-encode to PNG
	// so the stored object has a known format regardless of what the
	// service returned.
	data, err := EnsurePNG(processed)
	if err != nil {
		return "", err
	}

	key := s.keyFunc()
	url, err := s.uploader.Upload(ctx, key, data, "image/png")
	if err != nil {
		return "", err
	}

	log.Infof("[BgRemoval] Stored processed image as %s", key)
	return url, nil
}

// EnsurePNG decodes an image in any supported format and re-encodes it as
// PNG. Bytes that already are PNG pass through a decode/encode cycle too,
// which also validates them.
func EnsurePNG(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("transform result is not a decodable image: %w", err)
	}

	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return out.Bytes(), nil
}
