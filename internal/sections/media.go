package sections

import (
	"time"

	"github.com/bilgisen/contentfeed/internal/models"
	"github.com/bilgisen/contentfeed/internal/translation"
)

const (
	MediaGallerySortOrder = 100
	MediaGalleryID        = "media-gallery"

	// MediaGalleryTitleKey is the heading of the home media gallery.
	MediaGalleryTitleKey models.LocalizationKey = "home.media_gallery.title"
)

// MediaKeys adds the title and description keys of records.
func MediaKeys(keys *translation.KeySet, records []models.MediaRecord) {
	for _, rec := range records {
		keys.Add(rec.TitleKey, rec.DescriptionKey)
	}
}

// MediaGalleryKeys adds the keys read by MediaGallery for the first limit records.
func MediaGalleryKeys(keys *translation.KeySet, records []models.MediaRecord, limit int) {
	records = capMedia(records, limit)
	if len(records) == 0 {
		return
	}
	keys.Add(MediaGalleryTitleKey)
	MediaKeys(keys, records)
}

// MediaGallery emits one gallery section holding at most limit items, or
// nothing when records is empty. urls maps record IDs to derived URLs.
func MediaGallery(records []models.MediaRecord, urls map[int64]models.MediaURLs, tr translation.Translations, limit int) []models.Section {
	records = capMedia(records, limit)
	if len(records) == 0 {
		return nil
	}
	return []models.Section{{
		ID:        MediaGalleryID,
		Type:      models.SectionMediaGallery,
		SortOrder: MediaGallerySortOrder,
		Content: models.Localize(func(lang models.Lang) models.MediaGalleryContent {
			items := make([]models.MediaItem, 0, len(records))
			for _, rec := range records {
				u := urls[rec.ID]
				items = append(items, models.MediaItem{
					ID:           rec.ID,
					PublicID:     rec.PublicID,
					Type:         rec.Kind,
					SourceType:   rec.SourceType,
					URL:          u.Display,
					ThumbnailURL: u.Thumbnail,
					Title:        tr.In(rec.TitleKey, lang),
					Description:  tr.In(rec.DescriptionKey, lang),
					CreatedAt:    formatTime(rec.CreatedAt),
				})
			}
			return models.MediaGalleryContent{
				Title: tr.In(MediaGalleryTitleKey, lang),
				Items: items,
			}
		}),
	}}
}

// GalleryItems renders records for the paginated gallery.
func GalleryItems(records []models.MediaRecord, urls map[int64]models.MediaURLs, tr translation.Translations) []models.GalleryItem {
	items := make([]models.GalleryItem, 0, len(records))
	for _, rec := range records {
		u := urls[rec.ID]
		items = append(items, models.GalleryItem{
			ID:           rec.ID,
			PublicID:     rec.PublicID,
			Type:         rec.Kind,
			SourceType:   rec.SourceType,
			URL:          u.Display,
			ThumbnailURL: u.Thumbnail,
			Title:        tr.Text(rec.TitleKey),
			Description:  tr.Text(rec.DescriptionKey),
			CreatedAt:    formatTime(rec.CreatedAt),
		})
	}
	return items
}

func capMedia(records []models.MediaRecord, limit int) []models.MediaRecord {
	if limit > 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
