package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilgisen/contentfeed/internal/models"
	"github.com/bilgisen/contentfeed/internal/translation"
)

func writeFixture(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func newFixtureStore(t *testing.T) *FileStore {
	t.Helper()
	dir := t.TempDir()
	writeFixture(t, dir, SectionsFile, `[
		{"id": 1, "page": "home", "type": "hero", "title_key": "home.hero.title", "sort_order": 5, "is_active": true},
		{"id": 2, "page": "home", "type": "hero", "title_key": "home.hero.old", "sort_order": 9, "is_active": true},
		{"id": 3, "page": "home", "type": "key_events", "slug": "events", "is_active": true},
		{"id": 4, "page": "home", "type": "section_group", "sort_order": 10, "is_active": true},
		{"id": 5, "page": "home", "type": "suggestions", "is_active": false},
		{"id": 6, "page": "about", "type": "component_node", "is_active": true}
	]`)
	writeFixture(t, dir, MediaFile, `[
		{"id": 1, "type": "image", "source_type": "upload", "is_active": true, "is_featured": true, "sort_order": 3},
		{"id": 2, "type": "video", "source_type": "external_link", "is_active": true, "sort_order": 1},
		{"id": 3, "type": "image", "source_type": "google_drive", "is_active": true, "is_featured": true, "sort_order": 2},
		{"id": 4, "type": "image", "source_type": "upload", "is_active": false, "sort_order": 0},
		{"id": 5, "type": "image", "source_type": "upload", "is_active": true}
	]`)
	writeFixture(t, dir, OrganizationsFile, `[
		{"id": 7, "public_id": "3f2b8c1e-9a4d-4e7f-8b6a-1c2d3e4f5a6b", "name_key": "org.7.name", "is_active": true, "is_featured": true},
		{"id": 8, "name_key": "org.8.name", "is_active": true, "sort_order": 1},
		{"id": 9, "name_key": "org.9.name", "is_active": false, "is_featured": true}
	]`)
	writeFixture(t, dir, TranslationsFile, `{
		"home.hero.title": {"en": "Welcome", "ar": "أهلا"},
		"org.7.name": {"en": "Relief Org"}
	}`)

	s, err := NewFileStore(dir)
	require.NoError(t, err)
	return s
}

func TestFileStoreHeroPicksLowestSortOrder(t *testing.T) {
	s := newFixtureStore(t)

	hero, err := s.Hero(context.Background(), models.PageHome)
	require.NoError(t, err)
	require.NotNil(t, hero)
	assert.EqualValues(t, 1, hero.ID)

	hero, err = s.Hero(context.Background(), models.PageAbout)
	require.NoError(t, err)
	assert.Nil(t, hero)
}

func TestFileStoreDynamicSections(t *testing.T) {
	s := newFixtureStore(t)

	got, err := s.DynamicSections(context.Background(), models.PageHome)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.EqualValues(t, 4, got[0].ID)
	assert.EqualValues(t, 3, got[1].ID, "missing sort order falls back to 999")
}

func TestFileStoreMediaFiltersAndWindows(t *testing.T) {
	s := newFixtureStore(t)
	ctx := context.Background()

	all, err := s.ListMedia(ctx, models.MediaFilter{Kind: models.MediaKindAll})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 1, 5}, mediaIDs(all))

	images, err := s.ListMedia(ctx, models.MediaFilter{Kind: models.MediaKindImage, Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, mediaIDs(images))

	featured, err := s.ListMedia(ctx, models.MediaFilter{FeaturedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, mediaIDs(featured))

	n, err := s.CountMedia(ctx, models.MediaFilter{Kind: models.MediaKindImage, Offset: 2, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	beyond, err := s.ListMedia(ctx, models.MediaFilter{Offset: 10, Limit: 4})
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func mediaIDs(recs []models.MediaRecord) []int64 {
	ids := make([]int64, len(recs))
	for i, r := range recs {
		ids[i] = r.ID
	}
	return ids
}

func TestFileStoreOrganizations(t *testing.T) {
	s := newFixtureStore(t)
	ctx := context.Background()

	list, err := s.ListOrganizations(ctx, models.FeaturedFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.EqualValues(t, 8, list[0].ID)

	featured, err := s.ListOrganizations(ctx, models.FeaturedFilter{FeaturedOnly: true})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.EqualValues(t, 7, featured[0].ID)

	byID, err := s.FindOrganization(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, models.LocalizationKey("org.7.name"), byID.NameKey)

	byUUID, err := s.FindOrganization(ctx, "3F2B8C1E-9A4D-4E7F-8B6A-1C2D3E4F5A6B")
	require.NoError(t, err)
	assert.EqualValues(t, 7, byUUID.ID)

	for _, id := range []string{"9", "404", "not-an-id"} {
		_, err = s.FindOrganization(ctx, id)
		assert.True(t, errors.Is(err, models.ErrNotFound), id)
		assert.EqualError(t, err, "Organization not found")
	}
}

func TestFileStoreMissingCollectionIsEmpty(t *testing.T) {
	s := newFixtureStore(t)

	events, err := s.ListTimelineEvents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)

	_, err = s.FindStory(context.Background(), "1")
	assert.EqualError(t, err, "Story not found")
}

func TestFileStoreLookupTranslations(t *testing.T) {
	s := newFixtureStore(t)

	entries, err := s.LookupTranslations(context.Background(),
		[]models.LocalizationKey{"home.hero.title", "org.7.name", "missing"},
		models.Languages)
	require.NoError(t, err)
	assert.ElementsMatch(t, []translation.Entry{
		{Key: "home.hero.title", Lang: models.LangEN, Text: "Welcome"},
		{Key: "home.hero.title", Lang: models.LangAR, Text: "أهلا"},
		{Key: "org.7.name", Lang: models.LangEN, Text: "Relief Org"},
	}, entries)
}
