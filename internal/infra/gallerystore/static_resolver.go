package gallerystore

import (
	"context"
	"strings"

	"github.com/yanqian/funzone-site/internal/domain/gallery"
)

// StaticResolver serves site-relative images from a public base URL.
type StaticResolver struct {
	baseURL string
}

// NewStaticResolver constructs the resolver. An empty base URL keeps paths as-is.
func NewStaticResolver(baseURL string) *StaticResolver {
	return &StaticResolver{baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

func (r *StaticResolver) Resolve(_ context.Context, src string) (string, error) {
	if isAbsolute(src) || r.baseURL == "" {
		return src, nil
	}
	return r.baseURL + "/" + strings.TrimLeft(src, "/"), nil
}

func isAbsolute(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "//")
}

var _ gallery.URLResolver = (*StaticResolver)(nil)
