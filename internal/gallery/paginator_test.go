package gallery

import (
	"context"
	"encoding/json"
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

func mediaFixture(n int) *sourcestest.Store {
	store := &sourcestest.Store{
		Translations: map[models.LocalizationKey]models.Text{
			PageTitleKey:        {EN: "Gallery", AR: "المعرض"},
			"gallery.loading.1": {EN: "Loading"},
		},
	}
	for i := 0; i < n; i++ {
		kind := models.MediaKindImage
		if i%2 == 1 {
			kind = models.MediaKindVideo
		}
		store.Media = append(store.Media, models.MediaRecord{
			ID:         int64(i + 1),
			Kind:       kind,
			SourceType: models.MediaSourceUpload,
			FilePath:   "m.jpg",
			TitleKey:   models.LocalizationKey("media.title"),
			IsActive:   true,
		})
	}
	return store
}

func newPaginator(store *sourcestest.Store) *Paginator {
	layer := cache.NewLayer(cache.NewMemoryStore(100), cache.Options{
		Tiers: cache.Tiers{Short: time.Minute, Medium: time.Hour, Long: 24 * time.Hour},
	})
	return NewPaginator(store,
		translation.NewResolver(store, nil),
		media.NewResolver(media.NewPublicBase("/storage/")),
		layer)
}

func TestPaginationWindow(t *testing.T) {
	assert.Equal(t, Pagination{
		CurrentPage: 3, TotalPages: 3, TotalItems: 10, ItemsPerPage: 4,
		HasMore: false, ShowingFrom: 9, ShowingTo: 10,
	}, NewPagination(10, 3, 4))

	assert.Equal(t, Pagination{
		CurrentPage: 1, TotalPages: 0, TotalItems: 0, ItemsPerPage: 12,
	}, NewPagination(0, 1, 12))

	p := NewPagination(10, 1, 4)
	assert.True(t, p.HasMore)
	assert.Equal(t, 1, p.ShowingFrom)
	assert.Equal(t, 4, p.ShowingTo)

	beyond := NewPagination(10, 5, 4)
	assert.Zero(t, beyond.ShowingFrom)
	assert.Zero(t, beyond.ShowingTo)
	assert.False(t, beyond.HasMore)

	overflow := NewPagination(10, 1<<62+1, 4)
	assert.Zero(t, overflow.ShowingFrom)
	assert.Zero(t, overflow.ShowingTo)
	assert.False(t, overflow.HasMore)
	assert.Equal(t, 3, overflow.TotalPages)
}

func TestQueryValidate(t *testing.T) {
	assert.NoError(t, Query{Type: models.MediaKindAll, Page: 1, Limit: 24}.Validate())

	err := Query{Type: "audio", Page: 0, Limit: 25}.Validate()
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"type": "oneof", "page": "min", "limit": "max"}, verr.Fields)
}

func TestBuildHugePageIsPastTheEnd(t *testing.T) {
	store := mediaFixture(10)

	doc, err := newPaginator(store).Build(context.Background(), Query{Type: models.MediaKindAll, Page: 1<<62 + 1, Limit: 4})
	require.NoError(t, err)
	assert.Empty(t, doc.Data.MediaItems)
	assert.Zero(t, doc.Data.Pagination.ShowingFrom)
	assert.Zero(t, doc.Data.Pagination.ShowingTo)
	assert.False(t, doc.Data.Pagination.HasMore)
	assert.Equal(t, 10, doc.Data.Pagination.TotalItems)
	assert.Equal(t, 0, store.Calls("ListMedia"))
}

func TestBuildEmptyGallerySkipsRecords(t *testing.T) {
	store := mediaFixture(0)

	doc, err := newPaginator(store).Build(context.Background(), Query{Type: models.MediaKindAll, Page: 1, Limit: 12})
	require.NoError(t, err)
	assert.True(t, doc.Success)
	assert.Empty(t, doc.Data.MediaItems)
	assert.Equal(t, 0, doc.Data.Pagination.TotalPages)
	assert.Equal(t, 0, store.Calls("ListMedia"))
	assert.Equal(t, models.Text{EN: "Gallery", AR: "المعرض"}, doc.Data.PageTitle)
}

func TestBuildLastPage(t *testing.T) {
	store := mediaFixture(10)

	doc, err := newPaginator(store).Build(context.Background(), Query{Type: models.MediaKindAll, Page: 3, Limit: 4})
	require.NoError(t, err)
	require.Len(t, doc.Data.MediaItems, 2)
	assert.EqualValues(t, 9, doc.Data.MediaItems[0].ID)
	assert.EqualValues(t, 10, doc.Data.MediaItems[1].ID)
	assert.Equal(t, 9, doc.Data.Pagination.ShowingFrom)
	assert.Equal(t, 10, doc.Data.Pagination.ShowingTo)
	assert.False(t, doc.Data.Pagination.HasMore)
	assert.Equal(t, 1, store.Calls("LookupTranslations"))
	assert.Equal(t, []string{"Loading", "", ""}, doc.Data.LoadingMessages.EN)
}

func TestBuildFiltersByType(t *testing.T) {
	doc, err := newPaginator(mediaFixture(10)).Build(context.Background(), Query{Type: models.MediaKindVideo, Page: 1, Limit: 12})
	require.NoError(t, err)
	assert.Len(t, doc.Data.MediaItems, 5)
	assert.Equal(t, 5, doc.Data.Pagination.TotalItems)
	for _, item := range doc.Data.MediaItems {
		assert.Equal(t, models.MediaKindVideo, item.Type)
	}
}

func TestCountCachedAcrossPages(t *testing.T) {
	store := mediaFixture(10)
	p := newPaginator(store)

	for page := 1; page <= 3; page++ {
		_, _, err := p.Document(context.Background(), Query{Type: models.MediaKindAll, Page: page, Limit: 4})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, store.Calls("CountMedia"))
	assert.Equal(t, 3, store.Calls("ListMedia"))

	_, hit, err := p.Document(context.Background(), Query{Type: models.MediaKindAll, Page: 2, Limit: 4})
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 3, store.Calls("ListMedia"))
}

func TestDocumentShape(t *testing.T) {
	raw, _, err := newPaginator(mediaFixture(1)).Document(context.Background(), Query{Type: models.MediaKindAll, Page: 1, Limit: 12})
	require.NoError(t, err)

	var doc struct {
		Success bool                       `json:"success"`
		Data    map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.True(t, doc.Success)
	assert.JSONEq(t, `{"current_page":1,"total_pages":1,"total_items":1,"items_per_page":12,"has_more":false,"showing_from":1,"showing_to":1}`,
		string(doc.Data["pagination"]))
	assert.JSONEq(t, `{"en":["Loading","",""],"ar":["","",""]}`, string(doc.Data["loadingMessages"]))
}

func TestDocumentRejectsInvalidQuery(t *testing.T) {
	store := mediaFixture(3)
	_, _, err := newPaginator(store).Document(context.Background(), Query{Type: models.MediaKindAll, Page: 1, Limit: 25})
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, store.Calls("CountMedia"))
}
