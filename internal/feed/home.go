package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bilgisen/contentfeed/internal/cache"
	"github.com/bilgisen/contentfeed/internal/logger"
	"github.com/bilgisen/contentfeed/internal/media"
	"github.com/bilgisen/contentfeed/internal/models"
	"github.com/bilgisen/contentfeed/internal/sections"
	"github.com/bilgisen/contentfeed/internal/sources"
	"github.com/bilgisen/contentfeed/internal/translation"
)

// HomeKind is the cache kind of the home feed.
const HomeKind = "home"

// HomeSources are the record sources read by the home feed.
type HomeSources interface {
	sources.SectionSource
	sources.MediaSource
	sources.OrganizationSource
	sources.TestimonialSource
}

type HomeOptions struct {
	// MediaLimit caps the media gallery section.
	MediaLimit int
	// OrganizationLimit caps the organization list; zero means all featured.
	OrganizationLimit int
}

// Home builds the home page feed.
type Home struct {
	sources      HomeSources
	translations *translation.Resolver
	media        *media.Resolver
	cache        *cache.Layer
	opts         HomeOptions
}

func NewHome(src HomeSources, tr *translation.Resolver, mr *media.Resolver, layer *cache.Layer, opts HomeOptions) *Home {
	return &Home{
		sources:      src,
		translations: tr,
		media:        mr,
		cache:        layer,
		opts:         opts,
	}
}

// Document returns the encoded home feed from cache, building it on a miss.
func (h *Home) Document(ctx context.Context) (json.RawMessage, bool, error) {
	return h.cache.Document(ctx, cache.NewKey(HomeKind), cache.TierShort, func(ctx context.Context) (any, error) {
		return h.Build(ctx)
	})
}

// homeRecords holds everything the home feed reads from its sources.
type homeRecords struct {
	hero          *models.SectionRecord
	dynamic       []models.SectionRecord
	media         []models.MediaRecord
	organizations []models.FeaturedRecord
	testimonials  []models.FeaturedRecord
}

// Build fetches the home records concurrently, resolves every translation key
// of the feed in one lookup and assembles the ordered feed.
func (h *Home) Build(ctx context.Context) ([]models.FeedEntry, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	recs, err := h.fetch(ctx)
	if err != nil {
		return nil, err
	}

	keys := translation.NewKeySet()
	sections.HeroKeys(keys, recs.hero)
	sections.MediaGalleryKeys(keys, recs.media, h.opts.MediaLimit)
	sections.OrganizationsKeys(keys, recs.organizations)
	sections.FeaturedKeys(keys, recs.testimonials...)
	sections.DynamicKeys(keys, recs.dynamic)

	tr, err := h.translations.Resolve(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("home translations: %w", err)
	}
	urls, err := h.media.ResolveAll(ctx, recs.media)
	if err != nil {
		return nil, fmt.Errorf("home media urls: %w", err)
	}

	entries := Assemble(
		sections.Hero(recs.hero, tr),
		sections.MediaGallery(recs.media, urls, tr, h.opts.MediaLimit),
		sections.Organizations(recs.organizations, tr),
		sections.Testimonials(recs.testimonials, tr),
		sections.Dynamic(recs.dynamic, tr),
	)

	log.Debug().
		Int("sections", len(entries)).
		Int("translation_keys", keys.Len()).
		Dur("duration", time.Since(start)).
		Msg("Built home feed")
	return entries, nil
}

func (h *Home) fetch(ctx context.Context) (*homeRecords, error) {
	var recs homeRecords
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		recs.hero, err = h.sources.Hero(gctx, models.PageHome)
		return wrap("hero", err)
	})
	g.Go(func() (err error) {
		recs.dynamic, err = h.sources.DynamicSections(gctx, models.PageHome)
		return wrap("sections", err)
	})
	g.Go(func() (err error) {
		recs.media, err = h.sources.ListMedia(gctx, models.MediaFilter{FeaturedOnly: true, Limit: h.opts.MediaLimit})
		return wrap("media", err)
	})
	g.Go(func() (err error) {
		recs.organizations, err = h.sources.ListOrganizations(gctx, models.FeaturedFilter{FeaturedOnly: true, Limit: h.opts.OrganizationLimit})
		return wrap("organizations", err)
	})
	g.Go(func() (err error) {
		recs.testimonials, err = h.sources.ListTestimonials(gctx, models.FeaturedFilter{FeaturedOnly: true})
		return wrap("testimonials", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &recs, nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("fetch home %s: %w", what, err)
}
