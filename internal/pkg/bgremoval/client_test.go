package bgremoval

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestClientProcessSuccess(t *testing.T) {
	result := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("image_file")
		require.NoError(t, err)

		w.Write(result)
	}))
	defer srv.Close()

	client := NewClient(&Config{APIKey: "test-key", Endpoint: srv.URL})
	got, err := client.Process(context.Background(), []byte("source"))

	require.NoError(t, err)
	assert.Equal(t, result, got)
}

// The service's reported error title must be surfaced verbatim.
func TestClientProcessAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"errors":[{"title":"Insufficient credits"}]}`))
	}))
	defer srv.Close()

	client := NewClient(&Config{APIKey: "test-key", Endpoint: srv.URL})
	_, err := client.Process(context.Background(), []byte("source"))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusPaymentRequired, apiErr.StatusCode)
	assert.Equal(t, "Insufficient credits", apiErr.Title)
	assert.Contains(t, err.Error(), "Insufficient credits")
}

func TestClientProcessAPIErrorWithoutPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(&Config{APIKey: "test-key", Endpoint: srv.URL})
	_, err := client.Process(context.Background(), []byte("source"))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "", apiErr.Title)
	assert.Contains(t, err.Error(), "500")
}

func TestClientProcessWithoutKey(t *testing.T) {
	client := NewClient(&Config{})
	_, err := client.Process(context.Background(), []byte("source"))
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestClientFetchImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	client := NewClient(&Config{APIKey: "k"})
	got, err := client.FetchImage(context.Background(), srv.URL+"/a.png")

	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), got)
}

func TestClientFetchImageNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	client := NewClient(&Config{APIKey: "k"})
	_, err := client.FetchImage(context.Background(), srv.URL+"/missing.png")
	assert.Error(t, err)
}

func TestEnsurePNG(t *testing.T) {
	out, err := EnsurePNG(pngBytes(t))
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(out))
	assert.NoError(t, err)
}

func TestEnsurePNGRejectsGarbage(t *testing.T) {
	_, err := EnsurePNG([]byte("definitely not an image"))
	assert.Error(t, err)
}

type fakeUploader struct {
	gotKey  string
	gotType string
	url     string
}

func (f *fakeUploader) Upload(_ context.Context, key string, _ []byte, contentType string) (string, error) {
	f.gotKey = key
	f.gotType = contentType
	return f.url, nil
}

func TestServiceRemoveFrom(t *testing.T) {
	result := pngBytes(t)
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(result)
	}))
	defer api.Close()
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngBytes(t))
	}))
	defer source.Close()

	uploader := &fakeUploader{url: "https://cdn.example/processed-images/x.png"}
	svc := NewService(
		NewClient(&Config{APIKey: "k", Endpoint: api.URL}),
		uploader,
		func() string { return "processed-images/x.png" },
	)

	url, err := svc.RemoveFrom(context.Background(), source.URL+"/a.png")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/processed-images/x.png", url)
	assert.Equal(t, "processed-images/x.png", uploader.gotKey)
	assert.Equal(t, "image/png", uploader.gotType)
}

func TestServiceRemoveFromAbortsOnAPIError(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"errors":[{"title":"Invalid API key"}]}`))
	}))
	defer api.Close()
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngBytes(t))
	}))
	defer source.Close()

	uploader := &fakeUploader{}
	svc := NewService(NewClient(&Config{APIKey: "k", Endpoint: api.URL}), uploader, func() string { return "x" })

	_, err := svc.RemoveFrom(context.Background(), source.URL+"/a.png")

	assert.Error(t, err)
	assert.Equal(t, "", uploader.gotKey, "nothing must be uploaded on failure")
}
