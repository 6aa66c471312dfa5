// Package sourcestest provides an in-memory record store for tests.
package sourcestest

import (
	"context"
	"sort"
	"sync"

	"github.com/bilgisen/contentfeed/internal/models"
	"github.com/bilgisen/contentfeed/internal/sources"
	"github.com/bilgisen/contentfeed/internal/translation"
)

// Store is an in-memory sources.Store. Records are returned in slice order
// after filtering; set sort orders in fixtures to exercise ordering. Err, when
// set, is returned by every read.
type Store struct {
	mu sync.Mutex

	Sections      []models.SectionRecord
	Media         []models.MediaRecord
	Organizations []models.FeaturedRecord
	Testimonials  []models.FeaturedRecord
	Stories       []models.FeaturedRecord
	Timeline      []models.TimelineEventRecord
	Translations  map[models.LocalizationKey]models.Text

	Err error

	calls map[string]int
}

var _ sources.Store = (*Store)(nil)

// Calls reports how often method was invoked.
func (s *Store) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

func (s *Store) record(method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.calls[method]++
	return s.Err
}

func (s *Store) Hero(_ context.Context, page string) (*models.SectionRecord, error) {
	if err := s.record("Hero"); err != nil {
		return nil, err
	}
	for i := range s.Sections {
		rec := s.Sections[i]
		if rec.IsActive && rec.Page == page && rec.Type == models.SectionTypeHero {
			return &rec, nil
		}
	}
	return nil, nil
}

func (s *Store) DynamicSections(_ context.Context, page string) ([]models.SectionRecord, error) {
	if err := s.record("DynamicSections"); err != nil {
		return nil, err
	}
	out := []models.SectionRecord{}
	for _, rec := range s.Sections {
		if rec.IsActive && rec.Page == page && rec.Type != models.SectionTypeHero {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *Store) media(f models.MediaFilter) []models.MediaRecord {
	out := []models.MediaRecord{}
	for _, rec := range s.Media {
		if !rec.IsActive ||
			(f.Kind != "" && f.Kind != models.MediaKindAll && rec.Kind != f.Kind) ||
			(f.SourceType != "" && rec.SourceType != f.SourceType) ||
			(f.FeaturedOnly && !rec.IsFeatured) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func (s *Store) ListMedia(_ context.Context, f models.MediaFilter) ([]models.MediaRecord, error) {
	if err := s.record("ListMedia"); err != nil {
		return nil, err
	}
	out := s.media(f)
	if f.Offset >= len(out) {
		return []models.MediaRecord{}, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *Store) CountMedia(_ context.Context, f models.MediaFilter) (int, error) {
	if err := s.record("CountMedia"); err != nil {
		return 0, err
	}
	return len(s.media(f)), nil
}

func listFeatured(records []models.FeaturedRecord, f models.FeaturedFilter) []models.FeaturedRecord {
	out := []models.FeaturedRecord{}
	for _, rec := range records {
		if rec.IsActive && (!f.FeaturedOnly || rec.IsFeatured) {
			out = append(out, rec)
		}
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

func findFeatured(records []models.FeaturedRecord, kind, identifier string) (*models.FeaturedRecord, error) {
	id, ok := sources.ParseIdentifier(identifier)
	if !ok {
		return nil, models.NewNotFound(kind, identifier)
	}
	for i := range records {
		if records[i].IsActive && id.Matches(records[i].ID, records[i].PublicID) {
			rec := records[i]
			return &rec, nil
		}
	}
	return nil, models.NewNotFound(kind, identifier)
}

func (s *Store) ListOrganizations(_ context.Context, f models.FeaturedFilter) ([]models.FeaturedRecord, error) {
	if err := s.record("ListOrganizations"); err != nil {
		return nil, err
	}
	return listFeatured(s.Organizations, f), nil
}

func (s *Store) FindOrganization(_ context.Context, identifier string) (*models.FeaturedRecord, error) {
	if err := s.record("FindOrganization"); err != nil {
		return nil, err
	}
	return findFeatured(s.Organizations, "Organization", identifier)
}

func (s *Store) ListTestimonials(_ context.Context, f models.FeaturedFilter) ([]models.FeaturedRecord, error) {
	if err := s.record("ListTestimonials"); err != nil {
		return nil, err
	}
	return listFeatured(s.Testimonials, f), nil
}

func (s *Store) FindTestimonial(_ context.Context, identifier string) (*models.FeaturedRecord, error) {
	if err := s.record("FindTestimonial"); err != nil {
		return nil, err
	}
	return findFeatured(s.Testimonials, "Testimony", identifier)
}

func (s *Store) ListStories(_ context.Context, f models.FeaturedFilter) ([]models.FeaturedRecord, error) {
	if err := s.record("ListStories"); err != nil {
		return nil, err
	}
	return listFeatured(s.Stories, f), nil
}

func (s *Store) FindStory(_ context.Context, identifier string) (*models.FeaturedRecord, error) {
	if err := s.record("FindStory"); err != nil {
		return nil, err
	}
	return findFeatured(s.Stories, "Story", identifier)
}

func (s *Store) ListTimelineEvents(context.Context) ([]models.TimelineEventRecord, error) {
	if err := s.record("ListTimelineEvents"); err != nil {
		return nil, err
	}
	out := []models.TimelineEventRecord{}
	for _, rec := range s.Timeline {
		if rec.IsActive {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *Store) LookupTranslations(_ context.Context, keys []models.LocalizationKey, langs []models.Lang) ([]translation.Entry, error) {
	if err := s.record("LookupTranslations"); err != nil {
		return nil, err
	}
	var out []translation.Entry
	for _, key := range keys {
		text, ok := s.Translations[key]
		if !ok {
			continue
		}
		for _, lang := range langs {
			if v := text.In(lang); v != "" {
				out = append(out, translation.Entry{Key: key, Lang: lang, Text: v})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].Lang < out[j].Lang
	})
	return out, nil
}

func (s *Store) Ping(context.Context) error {
	return s.Err
}

func (s *Store) Close() error {
	return nil
}
