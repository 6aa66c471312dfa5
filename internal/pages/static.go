// Package pages builds the composite static pages and the per-entity detail
// pages. Unlike the home feed these documents keep source order and are not
// run through the feed assembler.
package pages

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bilgisen/contentfeed/internal/cache"
	"github.com/bilgisen/contentfeed/internal/models"
	"github.com/bilgisen/contentfeed/internal/sections"
	"github.com/bilgisen/contentfeed/internal/sources"
	"github.com/bilgisen/contentfeed/internal/translation"
)

// Static page names as they appear in the URL.
const (
	About        = "about"
	DataOverview = "data-overview"
	AidEfforts   = "aid-efforts"
	Testimonials = "testimonials"
	Timeline     = "timeline"
)

// Names lists the static pages in a stable order.
var Names = []string{About, DataOverview, AidEfforts, Testimonials, Timeline}

// sectionPage maps URL names to the page column of the section source.
var sectionPage = map[string]string{
	About:        models.PageAbout,
	DataOverview: models.PageDataOverview,
	AidEfforts:   models.PageAidEfforts,
}

const StaticKind = "page"

// StaticPage is the document of every static page. Fields a page does not
// use are omitted.
type StaticPage struct {
	Page          string                                       `json:"page"`
	Hero          *models.Localized[models.HeroContent]        `json:"hero,omitempty"`
	Sections      []models.FeedEntry                           `json:"sections"`
	Stories       *models.Localized[[]models.StoryView]        `json:"stories,omitempty"`
	Organizations *models.Localized[[]models.OrganizationView] `json:"organizations,omitempty"`
}

// Service builds static and detail pages.
type Service struct {
	sources      sources.Store
	translations *translation.Resolver
	cache        *cache.Layer
}

func NewService(src sources.Store, tr *translation.Resolver, layer *cache.Layer) *Service {
	return &Service{
		sources:      src,
		translations: tr,
		cache:        layer,
	}
}

// Static returns the encoded static page name from the long tier cache.
// Unknown names are not found.
func (s *Service) Static(ctx context.Context, name string) (json.RawMessage, bool, error) {
	if !isStatic(name) {
		return nil, false, models.NewNotFound("Page", name)
	}
	return s.cache.Document(ctx, cache.NewKey(StaticKind, "name", name), cache.TierLong, func(ctx context.Context) (any, error) {
		return s.BuildStatic(ctx, name)
	})
}

func isStatic(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

// pageRecords holds everything a static page reads from its sources.
type pageRecords struct {
	hero          *models.SectionRecord
	dynamic       []models.SectionRecord
	stories       []models.FeaturedRecord
	organizations []models.FeaturedRecord
	testimonials  []models.FeaturedRecord
	timeline      []models.TimelineEventRecord
}

// BuildStatic builds page name without consulting the cache.
func (s *Service) BuildStatic(ctx context.Context, name string) (*StaticPage, error) {
	recs, err := s.fetchStatic(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetch %s page: %w", name, err)
	}

	keys := translation.NewKeySet()
	sections.HeroKeys(keys, recs.hero)
	sections.DynamicKeys(keys, recs.dynamic)
	sections.FeaturedKeys(keys, recs.stories...)
	sections.FeaturedKeys(keys, recs.organizations...)
	sections.FeaturedKeys(keys, recs.testimonials...)
	sections.TimelineKeys(keys, recs.timeline)

	tr, err := s.translations.Resolve(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("%s page translations: %w", name, err)
	}

	page := &StaticPage{Page: name, Sections: []models.FeedEntry{}}
	if recs.hero != nil {
		hero := sections.HeroContent(recs.hero, tr)
		page.Hero = &hero
	}

	var built []models.Section
	switch name {
	case Testimonials:
		built = sections.Testimonials(recs.testimonials, tr)
	case Timeline:
		built = sections.Timeline(recs.timeline, tr)
	default:
		built = sections.Dynamic(recs.dynamic, tr)
	}
	for _, sec := range built {
		page.Sections = append(page.Sections, sec.Entry())
	}

	switch name {
	case About:
		stories := models.Localize(func(lang models.Lang) []models.StoryView {
			return sections.StoryViews(recs.stories, tr, lang)
		})
		page.Stories = &stories
	case AidEfforts:
		orgs := models.Localize(func(lang models.Lang) []models.OrganizationView {
			return sections.OrganizationViews(recs.organizations, tr, lang)
		})
		page.Organizations = &orgs
	}
	return page, nil
}

func (s *Service) fetchStatic(ctx context.Context, name string) (*pageRecords, error) {
	var recs pageRecords
	g, gctx := errgroup.WithContext(ctx)

	if page, ok := sectionPage[name]; ok {
		g.Go(func() (err error) {
			recs.hero, err = s.sources.Hero(gctx, page)
			return err
		})
		g.Go(func() (err error) {
			recs.dynamic, err = s.sources.DynamicSections(gctx, page)
			return err
		})
	}

	switch name {
	case About:
		g.Go(func() (err error) {
			recs.stories, err = s.sources.ListStories(gctx, models.FeaturedFilter{FeaturedOnly: true})
			return err
		})
	case AidEfforts:
		g.Go(func() (err error) {
			recs.organizations, err = s.sources.ListOrganizations(gctx, models.FeaturedFilter{FeaturedOnly: true})
			return err
		})
	case Testimonials:
		g.Go(func() (err error) {
			recs.testimonials, err = s.sources.ListTestimonials(gctx, models.FeaturedFilter{})
			return err
		})
	case Timeline:
		g.Go(func() (err error) {
			recs.timeline, err = s.sources.ListTimelineEvents(gctx)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &recs, nil
}
