package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilgisen/contentfeed/internal/cache"
	"github.com/bilgisen/contentfeed/internal/media"
	"github.com/bilgisen/contentfeed/internal/models"
	"github.com/bilgisen/contentfeed/internal/sources/sourcestest"
	"github.com/bilgisen/contentfeed/internal/translation"
)

func intPtr(v int) *int { return &v }

func homeFixture(testimonials int) *sourcestest.Store {
	store := &sourcestest.Store{
		Sections: []models.SectionRecord{
			{ID: 1, Page: models.PageHome, Type: models.SectionTypeHero, TitleKey: "home.hero.title", IsActive: true},
			{ID: 2, Page: models.PageHome, Type: string(models.SectionKeyEvents), Slug: "key-events", SortOrder: intPtr(150), IsActive: true},
			{ID: 3, Page: models.PageHome, Type: string(models.SectionSuggestions), IsActive: true},
			{ID: 4, Page: models.PageHome, Type: string(models.SectionGroup), SortOrder: intPtr(999), IsActive: true},
		},
		Media: []models.MediaRecord{
			{ID: 10, Kind: models.MediaKindImage, SourceType: models.MediaSourceUpload, FilePath: "a.jpg", TitleKey: "media.10.title", IsFeatured: true, IsActive: true},
		},
		Organizations: []models.FeaturedRecord{
			{ID: 20, NameKey: "org.20.name", IsFeatured: true, IsActive: true},
		},
		Translations: map[models.LocalizationKey]models.Text{
			"home.hero.title": {EN: "Welcome", AR: "أهلا"},
			"media.10.title":  {EN: "Camp"},
		},
	}
	for i := 0; i < testimonials; i++ {
		store.Testimonials = append(store.Testimonials, models.FeaturedRecord{
			ID:         int64(100 + i),
			NameKey:    models.LocalizationKey(fmt.Sprintf("testimony.%d.name", i)),
			IsFeatured: true,
			IsActive:   true,
		})
	}
	return store
}

func newHome(store *sourcestest.Store) *Home {
	layer := cache.NewLayer(cache.NewMemoryStore(100), cache.Options{
		Tiers: cache.Tiers{Short: time.Minute, Medium: time.Hour, Long: 24 * time.Hour},
	})
	return NewHome(store,
		translation.NewResolver(store, nil),
		media.NewResolver(media.NewPublicBase("/storage/")),
		layer,
		HomeOptions{MediaLimit: 8})
}

func entryIDs(entries []models.FeedEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

func TestHomeOrdersSections(t *testing.T) {
	entries, err := newHome(homeFixture(2)).Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"hero-1",
		"media-gallery",
		"key-events",
		"organizations",
		"testimonial-100",
		"testimonial-101",
		"section-3",
		"section-4",
	}, entryIDs(entries))
}

func TestHomeResolvesTranslationsOnce(t *testing.T) {
	for _, n := range []int{0, 1, 25} {
		store := homeFixture(n)
		_, err := newHome(store).Build(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, store.Calls("LookupTranslations"), "testimonials=%d", n)
	}
}

func TestHomeWithoutHero(t *testing.T) {
	store := homeFixture(0)
	store.Sections[0].IsActive = false

	entries, err := newHome(store).Build(context.Background())
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotEqual(t, models.SectionHero, e.Type)
	}
	assert.Equal(t, "media-gallery", entries[0].ID)
}

func TestHomeRebuildIsByteIdentical(t *testing.T) {
	store := homeFixture(3)

	first, err := newHome(store).Build(context.Background())
	require.NoError(t, err)
	second, err := newHome(store).Build(context.Background())
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.NotContains(t, string(a), "sortOrder")
	assert.NotContains(t, string(a), "sort_order")
}

func TestHomeDocumentServesCachedBytes(t *testing.T) {
	store := homeFixture(1)
	home := newHome(store)

	miss, hit, err := home.Document(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)

	cached, hit, err := home.Document(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, string(miss), string(cached))
	assert.Equal(t, 1, store.Calls("Hero"))

	var decoded []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(cached, &decoded))
	assert.JSONEq(t, `{"en":{"title":"Welcome","subtitle":"","description":"","backgroundImage":"","videoUrl":"","buttonText":"","buttonUrl":""},"ar":{"title":"أهلا","subtitle":"","description":"","backgroundImage":"","videoUrl":"","buttonText":"","buttonUrl":""}}`,
		string(decoded[0]["content"]))
}

func TestHomePropagatesSourceErrors(t *testing.T) {
	store := homeFixture(1)
	store.Err = errors.New("connection refused")

	_, _, err := newHome(store).Document(context.Background())
	assert.ErrorIs(t, err, store.Err)
}

func TestAssembleIsStable(t *testing.T) {
	entries := Assemble(
		[]models.Section{{ID: "b", SortOrder: 5}, {ID: "a", SortOrder: 1}},
		[]models.Section{{ID: "c", SortOrder: 5}, {ID: "d", SortOrder: models.DefaultSortOrder}},
	)
	assert.Equal(t, []string{"a", "b", "c", "d"}, entryIDs(entries))
}
