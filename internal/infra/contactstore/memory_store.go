package contactstore

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/funzone-site/internal/domain/contact"
)

// MemoryStore is an in-memory implementation of the contact store for tests/dev.
type MemoryStore struct {
	mu     sync.RWMutex
	clicks map[string]int64
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{clicks: make(map[string]int64)}
}

// IncrementClick bumps the counter for a branch and channel.
func (s *MemoryStore) IncrementClick(_ context.Context, branch string, channel contact.Channel) error {
	if branch == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clicks[encodeMember(branch, channel)]++
	return nil
}

// TopClicks returns the most clicked branch/channel pairs.
func (s *MemoryStore) TopClicks(_ context.Context, limit int) ([]contact.ClickStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = len(s.clicks)
	}
	items := make([]contact.ClickStat, 0, len(s.clicks))
	for member, count := range s.clicks {
		branch, channel := decodeMember(member)
		items = append(items, contact.ClickStat{Branch: branch, Channel: channel, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return encodeMember(items[i].Branch, items[i].Channel) < encodeMember(items[j].Branch, items[j].Channel)
		}
		return items[i].Count > items[j].Count
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

var _ contact.Store = (*MemoryStore)(nil)
