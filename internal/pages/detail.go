package pages

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/bilgisen/contentfeed/internal/cache"
	"github.com/bilgisen/contentfeed/internal/models"
	"github.com/bilgisen/contentfeed/internal/sections"
	"github.com/bilgisen/contentfeed/internal/sources"
	"github.com/bilgisen/contentfeed/internal/translation"
)

// Detail page kinds, also used as cache kinds.
const (
	OrganizationKind = "organization"
	TestimonyKind    = "testimony"
	StoryKind        = "story"
)

// Organization returns the bilingual organization document for identifier.
func (s *Service) Organization(ctx context.Context, identifier string) (json.RawMessage, bool, error) {
	return s.detail(ctx, OrganizationKind, "Organization", identifier,
		s.sources.FindOrganization,
		func(rec *models.FeaturedRecord, tr translation.Translations) any {
			return models.Localize(func(lang models.Lang) models.OrganizationView {
				return sections.OrganizationView(rec, tr, lang)
			})
		})
}

// Testimony returns the bilingual testimony document for identifier.
func (s *Service) Testimony(ctx context.Context, identifier string) (json.RawMessage, bool, error) {
	return s.detail(ctx, TestimonyKind, "Testimony", identifier,
		s.sources.FindTestimonial,
		func(rec *models.FeaturedRecord, tr translation.Translations) any {
			return sections.TestimonialContent(rec, tr)
		})
}

// Story returns the bilingual story document for identifier.
func (s *Service) Story(ctx context.Context, identifier string) (json.RawMessage, bool, error) {
	return s.detail(ctx, StoryKind, "Story", identifier,
		s.sources.FindStory,
		func(rec *models.FeaturedRecord, tr translation.Translations) any {
			return models.Localize(func(lang models.Lang) models.StoryView {
				return sections.StoryView(rec, tr, lang)
			})
		})
}

type findFunc func(ctx context.Context, identifier string) (*models.FeaturedRecord, error)

type renderFunc func(rec *models.FeaturedRecord, tr translation.Translations) any

// detail caches one entity under the medium tier, keyed by its normalized
// identifier. Malformed identifiers are not found without touching the store.
func (s *Service) detail(ctx context.Context, kind, entity, identifier string, find findFunc, render renderFunc) (json.RawMessage, bool, error) {
	id, ok := sources.ParseIdentifier(identifier)
	if !ok {
		return nil, false, models.NewNotFound(entity, identifier)
	}
	normalized := id.PublicID
	if normalized == "" {
		normalized = strconv.FormatInt(id.ID, 10)
	}

	return s.cache.Document(ctx, cache.NewKey(kind, "id", normalized), cache.TierMedium, func(ctx context.Context) (any, error) {
		rec, err := find(ctx, normalized)
		if err != nil {
			return nil, err
		}
		keys := translation.NewKeySet()
		sections.FeaturedKeys(keys, *rec)
		tr, err := s.translations.Resolve(ctx, keys)
		if err != nil {
			return nil, err
		}
		return render(rec, tr), nil
	})
}
