// Package sources declares the read-only record adapters the aggregation
// engine consumes, one per content kind. Every adapter returns active records
// only, ordered by ascending sort order with ties kept stable.
package sources

import (
	"context"

	"github.com/bilgisen/contentfeed/internal/models"
	"github.com/bilgisen/contentfeed/internal/translation"
)

// SectionSource serves the generic section collection.
type SectionSource interface {
	// Hero returns the active hero of page, or nil when there is none.
	Hero(ctx context.Context, page string) (*models.SectionRecord, error)
	// DynamicSections returns the active non-hero sections of page.
	DynamicSections(ctx context.Context, page string) ([]models.SectionRecord, error)
}

type MediaSource interface {
	ListMedia(ctx context.Context, filter models.MediaFilter) ([]models.MediaRecord, error)
	CountMedia(ctx context.Context, filter models.MediaFilter) (int, error)
}

// The Find methods accept a numeric id or a UUID public identifier and
// return an error wrapping models.ErrNotFound when no active record matches.

type OrganizationSource interface {
	ListOrganizations(ctx context.Context, filter models.FeaturedFilter) ([]models.FeaturedRecord, error)
	FindOrganization(ctx context.Context, identifier string) (*models.FeaturedRecord, error)
}

type TestimonialSource interface {
	ListTestimonials(ctx context.Context, filter models.FeaturedFilter) ([]models.FeaturedRecord, error)
	FindTestimonial(ctx context.Context, identifier string) (*models.FeaturedRecord, error)
}

type StorySource interface {
	ListStories(ctx context.Context, filter models.FeaturedFilter) ([]models.FeaturedRecord, error)
	FindStory(ctx context.Context, identifier string) (*models.FeaturedRecord, error)
}

type TimelineSource interface {
	ListTimelineEvents(ctx context.Context) ([]models.TimelineEventRecord, error)
}

// Store is implemented by record stores that serve every content kind and
// the localization table.
type Store interface {
	SectionSource
	MediaSource
	OrganizationSource
	TestimonialSource
	StorySource
	TimelineSource
	translation.Store
	Ping(ctx context.Context) error
	Close() error
}
