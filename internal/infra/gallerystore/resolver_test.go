package gallerystore

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStaticResolver(t *testing.T) {
	ctx := context.Background()
	r := NewStaticResolver("https://cdn.funzone.lb/ ")

	got, err := r.Resolve(ctx, "/images/locations/FunzoneZahle.jpg")
	require.NoError(t, err)
	require.Equal(t, "https://cdn.funzone.lb/images/locations/FunzoneZahle.jpg", got)

	got, err = r.Resolve(ctx, "https://picsum.photos/seed/a/1600/1000")
	require.NoError(t, err)
	require.Equal(t, "https://picsum.photos/seed/a/1600/1000", got)

	got, err = NewStaticResolver("").Resolve(ctx, "/images/a.png")
	require.NoError(t, err)
	require.Equal(t, "/images/a.png", got)
}

func TestS3ResolverPresignsRelativePaths(t *testing.T) {
	r, err := NewS3Resolver(S3Options{
		Endpoint:   "https://storage.example.com/ignored/path",
		AccessKey:  "access",
		SecretKey:  "secret",
		Bucket:     "gallery",
		Region:     "auto",
		PresignTTL: time.Minute,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	got, err := r.Resolve(context.Background(), "/images/locations/FunzoneDbayeh.jpg")
	require.NoError(t, err)
	u, err := url.Parse(got)
	require.NoError(t, err)
	require.Equal(t, "https", u.Scheme)
	require.Equal(t, "storage.example.com", u.Host)
	require.Equal(t, "/gallery/images/locations/FunzoneDbayeh.jpg", u.Path)
	require.Equal(t, "60", u.Query().Get("X-Amz-Expires"))
	require.NotEmpty(t, u.Query().Get("X-Amz-Signature"))

	passthrough, err := r.Resolve(context.Background(), "https://picsum.photos/seed/x/1/1")
	require.NoError(t, err)
	require.Equal(t, "https://picsum.photos/seed/x/1/1", passthrough)
}

func TestS3ResolverRequiresBucket(t *testing.T) {
	_, err := NewS3Resolver(S3Options{Endpoint: "localhost:9000"}, nil)
	require.Error(t, err)
}

func TestSanitizeEndpoint(t *testing.T) {
	require.Equal(t, "abc.r2.cloudflarestorage.com", sanitizeEndpoint(" https://abc.r2.cloudflarestorage.com/bucket "))
	require.Equal(t, "localhost:9000", sanitizeEndpoint("localhost:9000"))
}
