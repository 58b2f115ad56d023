package gallery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yanqian/funzone-site/internal/domain/catalog"
	apperrors "github.com/yanqian/funzone-site/pkg/errors"
)

// Image is one gallery photo.
type Image struct {
	Src        string `json:"src"`
	Alt        string `json:"alt"`
	Caption    string `json:"caption"`
	BranchSlug string `json:"branchSlug"`
	BranchName string `json:"branchName"`
}

// Filter narrows the gallery. Empty or "all" means no restriction.
type Filter struct {
	Location string
	Activity string
}

// URLResolver turns a stored image reference into a public URL.
type URLResolver interface {
	Resolve(ctx context.Context, src string) (string, error)
}

// BranchReader is the slice of the catalog the gallery needs.
type BranchReader interface {
	ListBranches(ctx context.Context, filter catalog.BranchFilter) ([]catalog.Listing, error)
	GetBranch(ctx context.Context, ref string) (catalog.Listing, error)
}

// Service exposes the photo gallery.
type Service interface {
	List(ctx context.Context, filter Filter) ([]Image, error)
}

type service struct {
	branches BranchReader
	resolver URLResolver
	logger   *slog.Logger
}

// NewService wires up the gallery domain.
func NewService(branches BranchReader, resolver URLResolver, logger *slog.Logger) Service {
	return &service{
		branches: branches,
		resolver: resolver,
		logger:   logger.With("component", "gallery.service"),
	}
}

func (s *service) List(ctx context.Context, filter Filter) ([]Image, error) {
	var location string
	if filter.Location != "" && filter.Location != "all" {
		listing, err := s.branches.GetBranch(ctx, filter.Location)
		if err != nil {
			return nil, err
		}
		location = listing.Slug
	}

	activity := filter.Activity
	if activity == "all" {
		activity = ""
	}
	listings, err := s.branches.ListBranches(ctx, catalog.BranchFilter{Activity: activity})
	if err != nil {
		return nil, err
	}

	images := make([]Image, 0)
	for _, l := range listings {
		if location != "" && l.Slug != location {
			continue
		}
		for idx, src := range l.Gallery {
			resolved, err := s.resolver.Resolve(ctx, src)
			if err != nil {
				s.logger.Error("resolve gallery image failed", "branch", l.Slug, "src", src, "error", err)
				return nil, apperrors.Wrap("gallery_error", "failed to resolve gallery image", err)
			}
			images = append(images, Image{
				Src:        resolved,
				Alt:        fmt.Sprintf("%s photo %d", l.Name, idx+1),
				Caption:    l.City,
				BranchSlug: l.Slug,
				BranchName: l.Name,
			})
		}
	}
	return images, nil
}
