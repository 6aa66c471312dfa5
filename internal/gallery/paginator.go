// Package gallery serves the paginated, type-filtered media gallery.
package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/bilgisen/contentfeed/internal/cache"
	"github.com/bilgisen/contentfeed/internal/media"
	"github.com/bilgisen/contentfeed/internal/models"
	"github.com/bilgisen/contentfeed/internal/sections"
	"github.com/bilgisen/contentfeed/internal/sources"
	"github.com/bilgisen/contentfeed/internal/translation"
	"github.com/bilgisen/contentfeed/internal/utils"
)

const (
	CountKind = "gallery:count"
	PageKind  = "gallery:page"

	PageTitleKey models.LocalizationKey = "gallery.page_title"
)

// LoadingMessageKeys are the rotating messages shown while media loads.
var LoadingMessageKeys = []models.LocalizationKey{
	"gallery.loading.1",
	"gallery.loading.2",
	"gallery.loading.3",
}

// Query selects one gallery page. Its tags are enforced both on the HTTP
// query string and by Validate.
type Query struct {
	Type  models.MediaKind `query:"type" validate:"oneof=all image video"`
	Page  int              `query:"page" validate:"min=1"`
	Limit int              `query:"limit" validate:"min=1,max=24"`
}

func (q Query) Validate() error {
	return utils.ValidateStruct(q)
}

// pageOffset is the index of the first item of page. ok is false when the
// offset does not fit in an int.
func pageOffset(page, limit int) (int, bool) {
	if page < 1 || limit < 1 || page-1 > (math.MaxInt-limit)/limit {
		return 0, false
	}
	return (page - 1) * limit, true
}

type Pagination struct {
	CurrentPage  int  `json:"current_page"`
	TotalPages   int  `json:"total_pages"`
	TotalItems   int  `json:"total_items"`
	ItemsPerPage int  `json:"items_per_page"`
	HasMore      bool `json:"has_more"`
	ShowingFrom  int  `json:"showing_from"`
	ShowingTo    int  `json:"showing_to"`
}

// NewPagination computes the page window of total items.
// Pages past the end, including those whose offset overflows, show nothing.
func NewPagination(total, page, limit int) Pagination {
	p := Pagination{
		CurrentPage:  page,
		TotalPages:   (total + limit - 1) / limit,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
	offset, ok := pageOffset(page, limit)
	if !ok || offset >= total {
		return p
	}
	p.HasMore = offset+limit < total
	p.ShowingFrom = offset + 1
	p.ShowingTo = min(offset+limit, total)
	return p
}

type Data struct {
	PageTitle       models.Text                `json:"pageTitle"`
	LoadingMessages models.Localized[[]string] `json:"loadingMessages"`
	MediaItems      []models.GalleryItem       `json:"mediaItems"`
	Pagination      Pagination                 `json:"pagination"`
}

type Document struct {
	Success bool `json:"success"`
	Data    Data `json:"data"`
}

// Paginator builds gallery pages. The total per type is cached separately
// from pages, under the medium tier, so the two may disagree within their TTLs.
type Paginator struct {
	media        sources.MediaSource
	translations *translation.Resolver
	urls         *media.Resolver
	cache        *cache.Layer
}

func NewPaginator(src sources.MediaSource, tr *translation.Resolver, urls *media.Resolver, layer *cache.Layer) *Paginator {
	return &Paginator{
		media:        src,
		translations: tr,
		urls:         urls,
		cache:        layer,
	}
}

// Document validates q and returns the encoded page from cache, building it on a miss.
func (p *Paginator) Document(ctx context.Context, q Query) (json.RawMessage, bool, error) {
	if err := q.Validate(); err != nil {
		return nil, false, err
	}
	key := cache.NewKey(PageKind,
		"type", string(q.Type),
		"page", strconv.Itoa(q.Page),
		"limit", strconv.Itoa(q.Limit))
	return p.cache.Document(ctx, key, cache.TierShort, func(ctx context.Context) (any, error) {
		return p.Build(ctx, q)
	})
}

// Count returns the cached number of active media of kind.
func (p *Paginator) Count(ctx context.Context, kind models.MediaKind) (int, error) {
	n, _, err := cache.GetOrCompute(ctx, p.cache, cache.NewKey(CountKind, "type", string(kind)), cache.TierMedium,
		func(ctx context.Context) (int, error) {
			return p.media.CountMedia(ctx, models.MediaFilter{Kind: kind})
		})
	if err != nil {
		return 0, fmt.Errorf("count %s media: %w", kind, err)
	}
	return n, nil
}

// Build assembles one page without consulting the page cache.
func (p *Paginator) Build(ctx context.Context, q Query) (*Document, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	total, err := p.Count(ctx, q.Type)
	if err != nil {
		return nil, err
	}
	pagination := NewPagination(total, q.Page, q.Limit)

	records := []models.MediaRecord{}
	if pagination.ShowingFrom > 0 {
		records, err = p.media.ListMedia(ctx, models.MediaFilter{
			Kind:   q.Type,
			Offset: pagination.ShowingFrom - 1,
			Limit:  q.Limit,
		})
		if err != nil {
			return nil, fmt.Errorf("list gallery media: %w", err)
		}
	}

	keys := translation.NewKeySet()
	keys.Add(PageTitleKey)
	keys.Add(LoadingMessageKeys...)
	sections.MediaKeys(keys, records)

	tr, err := p.translations.Resolve(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("gallery translations: %w", err)
	}
	urls, err := p.urls.ResolveAll(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("gallery media urls: %w", err)
	}

	return &Document{
		Success: true,
		Data: Data{
			PageTitle: tr.Text(PageTitleKey),
			LoadingMessages: models.Localize(func(lang models.Lang) []string {
				out := make([]string, 0, len(LoadingMessageKeys))
				for _, k := range LoadingMessageKeys {
					out = append(out, tr.In(k, lang))
				}
				return out
			}),
			MediaItems: sections.GalleryItems(records, urls, tr),
			Pagination: pagination,
		},
	}, nil
}
