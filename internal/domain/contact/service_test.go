package contact

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/funzone-site/internal/domain/catalog"
	apperrors "github.com/yanqian/funzone-site/pkg/errors"
)

type stubFinder struct {
	branches map[string]catalog.Branch
}

func (f stubFinder) GetBranch(_ context.Context, ref string) (catalog.Listing, error) {
	b, ok := f.branches[ref]
	if !ok {
		return catalog.Listing{}, apperrors.Wrap("not_found", "branch not found: "+ref, nil)
	}
	return catalog.Listing{Branch: b}, nil
}

type stubStore struct {
	clicks []string
	stats  []ClickStat
	limit  int
	err    error
}

func (s *stubStore) IncrementClick(_ context.Context, branch string, channel Channel) error {
	if s.err != nil {
		return s.err
	}
	s.clicks = append(s.clicks, branch+"|"+string(channel))
	return nil
}

func (s *stubStore) TopClicks(_ context.Context, limit int) ([]ClickStat, error) {
	s.limit = limit
	return s.stats, s.err
}

func newTestService(store Store) Service {
	finder := stubFinder{branches: map[string]catalog.Branch{
		"zahle": {
			Slug:        "zahle",
			Name:        "Fun Zone Zahle",
			Phone:       "+961 70 123 404",
			WhatsApp:    "+961 70 123 404",
			Coordinates: catalog.Coordinates{Lat: 33.8, Lng: 35.9},
		},
	}}
	cfg := Config{EmailDomain: "funzone.lb"}
	return NewService(cfg, finder, store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestOpenRecordsClick(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(store)

	got, err := svc.Open(context.Background(), Request{Branch: "zahle", Channel: "whatsapp"})
	require.NoError(t, err)
	require.Equal(t, ChannelWhatsApp, got.Channel)
	require.Equal(t, "https://wa.me/96170123404?text=Hi%21%20I%27d%20like%20to%20ask%20about%20Fun%20Zone%20Zahle.", got.Href)
	require.Equal(t, []string{"zahle|whatsapp"}, store.clicks)

	got, err = svc.Open(context.Background(), Request{Branch: "zahle", Channel: "whatsapp", Message: " Party for 10? "})
	require.NoError(t, err)
	require.Equal(t, "https://wa.me/96170123404?text=Party%20for%2010%3F", got.Href)
}

func TestLinksWithMessage(t *testing.T) {
	svc := newTestService(&stubStore{})
	branch := catalog.Branch{Slug: "zahle", Name: "Fun Zone Zahle", WhatsApp: "+961 70 123 404"}

	links := svc.LinksWithMessage(branch, "Birthday at Zahle Branch.")
	require.Equal(t, "https://wa.me/96170123404?text=Birthday%20at%20Zahle%20Branch.", links.WhatsApp)
	require.Equal(t, "mailto:zahle@funzone.lb", links.Email)

	require.Equal(t, svc.Links(branch), svc.LinksWithMessage(branch, "  "))
}

func TestOpenIgnoresStoreFailure(t *testing.T) {
	svc := newTestService(&stubStore{err: errors.New("valkey down")})
	got, err := svc.Open(context.Background(), Request{Branch: "zahle", Channel: "directions"})
	require.NoError(t, err)
	require.Equal(t, "https://www.google.com/maps/dir/?api=1&destination=33.8,35.9", got.Href)
}

func TestOpenRejectsBadInput(t *testing.T) {
	svc := newTestService(&stubStore{})

	_, err := svc.Open(context.Background(), Request{Branch: "zahle", Channel: "pigeon"})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	_, err = svc.Open(context.Background(), Request{Branch: "tyre", Channel: "phone"})
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func TestTrending(t *testing.T) {
	store := &stubStore{stats: []ClickStat{{Branch: "zahle", Channel: ChannelPhone, Count: 3}}}
	svc := newTestService(store)

	got, err := svc.Trending(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 10, store.limit)

	store.err = errors.New("boom")
	_, err = svc.Trending(context.Background())
	require.True(t, apperrors.IsCode(err, "contact_error"))
}

func TestConfigMessageTemplate(t *testing.T) {
	cfg := Config{DefaultMessage: "Hello {branch}!"}
	require.Equal(t, "Hello Sports Zone!", cfg.message("Sports Zone"))
	require.Equal(t, "Hi! I'd like to ask about Sports Zone.", Config{}.message("Sports Zone"))
}
