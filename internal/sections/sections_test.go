package sections_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilgisen/contentfeed/internal/models"
	"github.com/bilgisen/contentfeed/internal/sections"
	"github.com/bilgisen/contentfeed/internal/translation"
)

func intPtr(v int) *int { return &v }

func TestHeroAbsentEmitsNothing(t *testing.T) {
	keys := translation.NewKeySet()
	sections.HeroKeys(keys, nil)

	assert.Zero(t, keys.Len())
	assert.Empty(t, sections.Hero(nil, translation.Translations{}))
}

func TestHeroDefaultsMissingTranslations(t *testing.T) {
	rec := &models.SectionRecord{ID: 7, Type: "hero", TitleKey: "hero.title", SubtitleKey: "hero.subtitle", ImageURL: "/img/hero.jpg"}
	tr := translation.Translations{"hero.title": {EN: "Hope", AR: "أمل"}}

	got := sections.Hero(rec, tr)
	require.Len(t, got, 1)
	assert.Equal(t, "hero-7", got[0].ID)
	assert.Equal(t, models.SectionHero, got[0].Type)
	assert.Equal(t, sections.HeroSortOrder, got[0].SortOrder)

	content := got[0].Content.(models.Localized[models.HeroContent])
	assert.Equal(t, "Hope", content.EN.Title)
	assert.Equal(t, "أمل", content.AR.Title)
	assert.Equal(t, "", content.AR.Subtitle)
	assert.Equal(t, "/img/hero.jpg", content.AR.BackgroundImage)
}

func TestMediaGalleryCapsItems(t *testing.T) {
	records := make([]models.MediaRecord, 5)
	for i := range records {
		records[i] = models.MediaRecord{ID: int64(i + 1), TitleKey: models.LocalizationKey("m.title"), CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	}
	urls := map[int64]models.MediaURLs{1: {Display: "https://cdn/1.jpg", Thumbnail: "https://cdn/1_t.jpg"}}

	keys := translation.NewKeySet()
	sections.MediaGalleryKeys(keys, records, 3)
	assert.Equal(t, []models.LocalizationKey{sections.MediaGalleryTitleKey, "m.title"}, keys.Sorted())

	got := sections.MediaGallery(records, urls, translation.Translations{}, 3)
	require.Len(t, got, 1)
	assert.Equal(t, sections.MediaGallerySortOrder, got[0].SortOrder)

	content := got[0].Content.(models.Localized[models.MediaGalleryContent])
	require.Len(t, content.EN.Items, 3)
	assert.Equal(t, "https://cdn/1.jpg", content.EN.Items[0].URL)
	assert.Equal(t, "2024-03-01T12:00:00Z", content.EN.Items[0].CreatedAt)
	assert.Equal(t, "", content.EN.Items[1].URL)
}

func TestMediaGalleryEmptyEmitsNothing(t *testing.T) {
	keys := translation.NewKeySet()
	sections.MediaGalleryKeys(keys, nil, 8)
	assert.Zero(t, keys.Len())
	assert.Empty(t, sections.MediaGallery(nil, nil, translation.Translations{}, 8))
}

func TestOrganizationsSingleSection(t *testing.T) {
	records := []models.FeaturedRecord{
		{ID: 1, NameKey: "org.1.name", Categories: []models.CategoryRef{{Slug: "health", NameKey: "cat.health"}}},
		{ID: 2, NameKey: "org.2.name"},
	}
	tr := translation.Translations{"org.1.name": {EN: "Relief", AR: "إغاثة"}, "cat.health": {EN: "Health", AR: "صحة"}}

	got := sections.Organizations(records, tr)
	require.Len(t, got, 1)
	assert.Equal(t, sections.OrganizationsSortOrder, got[0].SortOrder)

	content := got[0].Content.(models.Localized[models.OrganizationListContent])
	require.Len(t, content.AR.Organizations, 2)
	assert.Equal(t, "إغاثة", content.AR.Organizations[0].Name)
	assert.Equal(t, []models.CategoryView{{Slug: "health", Name: "صحة"}}, content.AR.Organizations[0].Categories)
	assert.NotNil(t, content.AR.Organizations[1].Categories)

	assert.Empty(t, sections.Organizations(nil, tr))
}

func TestTestimonialsNumberedInFetchOrder(t *testing.T) {
	records := []models.FeaturedRecord{{ID: 9}, {ID: 3}, {ID: 5}}

	got := sections.Testimonials(records, translation.Translations{})
	require.Len(t, got, 3)
	for i, s := range got {
		assert.Equal(t, sections.TestimonialBaseSortOrder+i, s.SortOrder)
		assert.Equal(t, models.SectionTestimonial, s.Type)
	}
	assert.Equal(t, "testimonial-9", got[0].ID)
	assert.Equal(t, "testimonial-5", got[2].ID)
}

func TestDynamicDispatch(t *testing.T) {
	records := []models.SectionRecord{
		{ID: 1, Type: "component_node", TitleKey: "c.title", SortOrder: intPtr(10)},
		{ID: 2, Type: "key_events", Items: []models.SectionItemRecord{{Date: "2023", TitleKey: "e.1"}}},
		{ID: 3, Type: "section_group", Slug: "pillars", Items: []models.SectionItemRecord{{Icon: "heart"}}},
		{ID: 4, Type: "suggestions", Items: []models.SectionItemRecord{{URL: "https://example.org"}}},
		{ID: 5, Type: "carousel"},
		{ID: 6, Type: "hero"},
	}
	tr := translation.Translations{"c.title": {EN: "Node", AR: "عقدة"}, "e.1": {EN: "Start"}}

	got := sections.Dynamic(records, tr)
	require.Len(t, got, 5)

	assert.Equal(t, 10, got[0].SortOrder)
	assert.Equal(t, "Node", got[0].Content.(models.Localized[models.ComponentNodeContent]).EN.Title)

	events := got[1].Content.(models.Localized[models.KeyEventsContent])
	assert.Equal(t, models.DefaultSortOrder, got[1].SortOrder)
	assert.Equal(t, []models.KeyEvent{{Date: "2023", Title: "", Description: ""}}, events.AR.Events)
	assert.Equal(t, "Start", events.EN.Events[0].Title)

	assert.Equal(t, "pillars", got[2].ID)
	assert.Equal(t, "heart", got[2].Content.(models.Localized[models.SectionGroupContent]).EN.Items[0].Icon)
	assert.Equal(t, "https://example.org", got[3].Content.(models.Localized[models.SuggestionsContent]).AR.Items[0].URL)

	assert.Equal(t, models.SectionType("carousel"), got[4].Type)
	assert.Nil(t, got[4].Content)

	raw, err := json.Marshal(got[4].Entry())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"section-5","type":"carousel"}`, string(raw))
}

func TestDynamicKeysSkipHero(t *testing.T) {
	keys := translation.NewKeySet()
	sections.DynamicKeys(keys, []models.SectionRecord{
		{Type: "hero", TitleKey: "hero.title"},
		{Type: "suggestions", TitleKey: "s.title", Items: []models.SectionItemRecord{{TitleKey: "s.1", DescriptionKey: "s.1.d"}}},
	})
	assert.Equal(t, []models.LocalizationKey{"s.1", "s.1.d", "s.title"}, keys.Sorted())
}

func TestTimeline(t *testing.T) {
	assert.Empty(t, sections.Timeline(nil, translation.Translations{}))

	events := []models.TimelineEventRecord{{Date: "2011", TitleKey: "t.1"}, {Date: "2015", TitleKey: "t.2"}}
	got := sections.Timeline(events, translation.Translations{"t.2": {EN: "Later"}})
	require.Len(t, got, 1)

	content := got[0].Content.(models.Localized[models.TimelineContent])
	require.Len(t, content.EN.Events, 2)
	assert.Equal(t, "2011", content.EN.Events[0].Date)
	assert.Equal(t, "Later", content.EN.Events[1].Title)
	assert.Equal(t, "", content.AR.Events[1].Title)
}
