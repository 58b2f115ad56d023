package contact

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yanqian/funzone-site/internal/domain/catalog"
	apperrors "github.com/yanqian/funzone-site/pkg/errors"
)

// BranchFinder resolves branch references.
type BranchFinder interface {
	GetBranch(ctx context.Context, ref string) (catalog.Listing, error)
}

// Service exposes the contact funnel.
type Service interface {
	Links(b catalog.Branch) Links
	LinksWithMessage(b catalog.Branch, message string) Links
	Open(ctx context.Context, req Request) (Redirect, error)
	Trending(ctx context.Context) ([]ClickStat, error)
}

type service struct {
	cfg      Config
	branches BranchFinder
	store    Store
	logger   *slog.Logger
}

// NewService wires up the contact domain.
func NewService(cfg Config, branches BranchFinder, store Store, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		branches: branches,
		store:    store,
		logger:   logger.With("component", "contact.service"),
	}
}

func (s *service) Links(b catalog.Branch) Links {
	return BranchLinks(b, s.cfg.message(b.Name), s.cfg.EmailDomain)
}

// LinksWithMessage is Links with a custom WhatsApp text; an empty message
// falls back to the configured default.
func (s *service) LinksWithMessage(b catalog.Branch, message string) Links {
	if strings.TrimSpace(message) == "" {
		return s.Links(b)
	}
	return BranchLinks(b, message, s.cfg.EmailDomain)
}

func (s *service) Open(ctx context.Context, req Request) (Redirect, error) {
	channel, ok := ParseChannel(req.Channel)
	if !ok {
		return Redirect{}, apperrors.Wrap("invalid_input", "unknown contact channel: "+req.Channel, nil)
	}
	listing, err := s.branches.GetBranch(ctx, req.Branch)
	if err != nil {
		return Redirect{}, err
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		message = s.cfg.message(listing.Name)
	}
	links := BranchLinks(listing.Branch, message, s.cfg.EmailDomain)
	href, ok := links.Href(channel)
	if !ok {
		return Redirect{}, apperrors.Wrap("invalid_input", "channel not available for branch: "+string(channel), nil)
	}

	if err := s.store.IncrementClick(ctx, listing.Slug, channel); err != nil {
		s.logger.Warn("record contact click failed", "branch", listing.Slug, "channel", channel, "error", err)
	}
	return Redirect{Branch: listing.Slug, Channel: channel, Href: href}, nil
}

func (s *service) Trending(ctx context.Context) ([]ClickStat, error) {
	stats, err := s.store.TopClicks(ctx, s.cfg.topChannels())
	if err != nil {
		return nil, apperrors.Wrap("contact_error", "failed to load trending contacts", err)
	}
	return stats, nil
}
