package catalogrepo

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/funzone-site/internal/domain/catalog"
)

//go:embed seed.yaml
var seedYAML []byte

// LoadSeed decodes the catalog content compiled into the binary.
func LoadSeed() (catalog.Catalog, error) {
	return Parse(seedYAML)
}

// Parse decodes a catalog document and checks branch identity.
func Parse(data []byte) (catalog.Catalog, error) {
	var cat catalog.Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return catalog.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	seen := make(map[string]struct{}, len(cat.Branches)*2)
	for _, b := range cat.Branches {
		if b.ID == "" || b.Slug == "" {
			return catalog.Catalog{}, fmt.Errorf("branch %q: id and slug are required", b.Name)
		}
		for _, key := range []string{"id:" + b.ID, "slug:" + b.Slug} {
			if _, dup := seen[key]; dup {
				return catalog.Catalog{}, fmt.Errorf("duplicate branch %s", key)
			}
			seen[key] = struct{}{}
		}
	}
	for _, p := range cat.Programs {
		if p.Slug == "" {
			return catalog.Catalog{}, fmt.Errorf("program %q: slug is required", p.Title)
		}
		key := "program:" + p.Slug
		if _, dup := seen[key]; dup {
			return catalog.Catalog{}, fmt.Errorf("duplicate %s", key)
		}
		seen[key] = struct{}{}
	}
	for slug := range cat.Birthdays.Branches {
		if _, ok := seen["slug:"+slug]; !ok {
			return catalog.Catalog{}, fmt.Errorf("birthday content for unknown branch %q", slug)
		}
	}
	return cat, nil
}

// MemoryRepository serves an immutable catalog from memory.
type MemoryRepository struct {
	mu  sync.RWMutex
	cat catalog.Catalog
}

// NewMemoryRepository constructs a repository over cat.
func NewMemoryRepository(cat catalog.Catalog) *MemoryRepository {
	return &MemoryRepository{cat: cat}
}

// NewSeedRepository constructs a repository over the embedded seed.
func NewSeedRepository() (*MemoryRepository, error) {
	cat, err := LoadSeed()
	if err != nil {
		return nil, err
	}
	return NewMemoryRepository(cat), nil
}

func (r *MemoryRepository) Branches(context.Context) ([]catalog.Branch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]catalog.Branch(nil), r.cat.Branches...), nil
}

func (r *MemoryRepository) Activities(context.Context) ([]catalog.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]catalog.Activity(nil), r.cat.Activities...), nil
}

func (r *MemoryRepository) Neighborhoods(context.Context) ([]catalog.Neighborhood, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]catalog.Neighborhood(nil), r.cat.Neighborhoods...), nil
}

func (r *MemoryRepository) Programs(context.Context) ([]catalog.Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]catalog.Program(nil), r.cat.Programs...), nil
}

func (r *MemoryRepository) Birthdays(context.Context) (catalog.BirthdayCatalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := catalog.BirthdayCatalog{
		Default:  r.cat.Birthdays.Default,
		Branches: make(map[string]catalog.BirthdayContent, len(r.cat.Birthdays.Branches)),
	}
	for slug, content := range r.cat.Birthdays.Branches {
		out.Branches[slug] = content
	}
	return out, nil
}

var _ catalog.Repository = (*MemoryRepository)(nil)
