package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bilgisen/contentfeed/internal/models"
	"github.com/bilgisen/contentfeed/internal/sources"
	"github.com/bilgisen/contentfeed/internal/translation"
)

// Collection file names under the data directory.
const (
	SectionsFile      = "sections.json"
	MediaFile         = "media.json"
	OrganizationsFile = "organizations.json"
	TestimonialsFile  = "testimonials.json"
	StoriesFile       = "stories.json"
	TimelineFile      = "timeline.json"
	TranslationsFile  = "translations.json"
)

// FileStore serves records from one JSON file per collection. Files are read
// on every call, so edits show up once cached documents expire. A missing
// file is an empty collection.
type FileStore struct {
	basePath string
	mu       sync.RWMutex
}

var _ sources.Store = (*FileStore)(nil)

func NewFileStore(basePath string) (*FileStore, error) {
	// Create base directory if it doesn't exist
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

func readFile[T any](ctx context.Context, s *FileStore, name string) (T, error) {
	var out T
	select {
	case <-ctx.Done():
		return out, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(filepath.Join(s.basePath, name))
	if os.IsNotExist(err) {
		return out, nil
	}
	if err != nil {
		return out, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return out, nil
}

// sortBySortOrder orders items by ascending sort order, keeping file order for ties.
func sortBySortOrder[T any](items []T, order func(*T) *int) {
	sort.SliceStable(items, func(i, j int) bool {
		return models.SortOrderOr(order(&items[i]), models.DefaultSortOrder) <
			models.SortOrderOr(order(&items[j]), models.DefaultSortOrder)
	})
}

func (s *FileStore) pageSections(ctx context.Context, page string, hero bool) ([]models.SectionRecord, error) {
	all, err := readFile[[]models.SectionRecord](ctx, s, SectionsFile)
	if err != nil {
		return nil, err
	}
	out := make([]models.SectionRecord, 0, len(all))
	for _, rec := range all {
		if !rec.IsActive || rec.Page != page || (rec.Type == models.SectionTypeHero) != hero {
			continue
		}
		out = append(out, rec)
	}
	sortBySortOrder(out, func(r *models.SectionRecord) *int { return r.SortOrder })
	return out, nil
}

func (s *FileStore) Hero(ctx context.Context, page string) (*models.SectionRecord, error) {
	heroes, err := s.pageSections(ctx, page, true)
	if err != nil || len(heroes) == 0 {
		return nil, err
	}
	return &heroes[0], nil
}

func (s *FileStore) DynamicSections(ctx context.Context, page string) ([]models.SectionRecord, error) {
	return s.pageSections(ctx, page, false)
}

func (s *FileStore) filteredMedia(ctx context.Context, f models.MediaFilter) ([]models.MediaRecord, error) {
	all, err := readFile[[]models.MediaRecord](ctx, s, MediaFile)
	if err != nil {
		return nil, err
	}
	out := make([]models.MediaRecord, 0, len(all))
	for _, rec := range all {
		if !rec.IsActive ||
			(f.Kind != "" && f.Kind != models.MediaKindAll && rec.Kind != f.Kind) ||
			(f.SourceType != "" && rec.SourceType != f.SourceType) ||
			(f.FeaturedOnly && !rec.IsFeatured) {
			continue
		}
		out = append(out, rec)
	}
	sortBySortOrder(out, func(r *models.MediaRecord) *int { return r.SortOrder })
	return out, nil
}

func (s *FileStore) ListMedia(ctx context.Context, f models.MediaFilter) ([]models.MediaRecord, error) {
	out, err := s.filteredMedia(ctx, f)
	if err != nil {
		return nil, err
	}
	return window(out, f.Offset, f.Limit), nil
}

func (s *FileStore) CountMedia(ctx context.Context, f models.MediaFilter) (int, error) {
	out, err := s.filteredMedia(ctx, f)
	if err != nil {
		return 0, err
	}
	return len(out), nil
}

func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	if offset > 0 {
		items = items[offset:]
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func (s *FileStore) listFeatured(ctx context.Context, name string, f models.FeaturedFilter) ([]models.FeaturedRecord, error) {
	all, err := readFile[[]models.FeaturedRecord](ctx, s, name)
	if err != nil {
		return nil, err
	}
	out := make([]models.FeaturedRecord, 0, len(all))
	for _, rec := range all {
		if !rec.IsActive || (f.FeaturedOnly && !rec.IsFeatured) {
			continue
		}
		out = append(out, rec)
	}
	sortBySortOrder(out, func(r *models.FeaturedRecord) *int { return r.SortOrder })
	return window(out, 0, f.Limit), nil
}

func (s *FileStore) findFeatured(ctx context.Context, name, kind, identifier string) (*models.FeaturedRecord, error) {
	id, ok := sources.ParseIdentifier(identifier)
	if !ok {
		return nil, models.NewNotFound(kind, identifier)
	}
	all, err := readFile[[]models.FeaturedRecord](ctx, s, name)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].IsActive && id.Matches(all[i].ID, all[i].PublicID) {
			return &all[i], nil
		}
	}
	return nil, models.NewNotFound(kind, identifier)
}

func (s *FileStore) ListOrganizations(ctx context.Context, f models.FeaturedFilter) ([]models.FeaturedRecord, error) {
	return s.listFeatured(ctx, OrganizationsFile, f)
}

func (s *FileStore) FindOrganization(ctx context.Context, identifier string) (*models.FeaturedRecord, error) {
	return s.findFeatured(ctx, OrganizationsFile, KindOrganization, identifier)
}

func (s *FileStore) ListTestimonials(ctx context.Context, f models.FeaturedFilter) ([]models.FeaturedRecord, error) {
	return s.listFeatured(ctx, TestimonialsFile, f)
}

func (s *FileStore) FindTestimonial(ctx context.Context, identifier string) (*models.FeaturedRecord, error) {
	return s.findFeatured(ctx, TestimonialsFile, KindTestimony, identifier)
}

func (s *FileStore) ListStories(ctx context.Context, f models.FeaturedFilter) ([]models.FeaturedRecord, error) {
	return s.listFeatured(ctx, StoriesFile, f)
}

func (s *FileStore) FindStory(ctx context.Context, identifier string) (*models.FeaturedRecord, error) {
	return s.findFeatured(ctx, StoriesFile, KindStory, identifier)
}

func (s *FileStore) ListTimelineEvents(ctx context.Context) ([]models.TimelineEventRecord, error) {
	all, err := readFile[[]models.TimelineEventRecord](ctx, s, TimelineFile)
	if err != nil {
		return nil, err
	}
	out := make([]models.TimelineEventRecord, 0, len(all))
	for _, rec := range all {
		if rec.IsActive {
			out = append(out, rec)
		}
	}
	sortBySortOrder(out, func(r *models.TimelineEventRecord) *int { return r.SortOrder })
	return out, nil
}

// LookupTranslations reads translations.json, an object of key -> {lang: text}.
func (s *FileStore) LookupTranslations(ctx context.Context, keys []models.LocalizationKey, langs []models.Lang) ([]translation.Entry, error) {
	all, err := readFile[map[models.LocalizationKey]map[models.Lang]string](ctx, s, TranslationsFile)
	if err != nil {
		return nil, err
	}
	var out []translation.Entry
	for _, key := range keys {
		byLang, ok := all[key]
		if !ok {
			continue
		}
		for _, lang := range langs {
			if text, ok := byLang[lang]; ok {
				out = append(out, translation.Entry{Key: key, Lang: lang, Text: text})
			}
		}
	}
	return out, nil
}

func (s *FileStore) Ping(context.Context) error {
	if _, err := os.Stat(s.basePath); err != nil {
		return fmt.Errorf("data directory: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
