package sections

import (
	"fmt"

	"github.com/bilgisen/contentfeed/internal/models"
	"github.com/bilgisen/contentfeed/internal/translation"
)

// DynamicKeys adds the keys of non-hero section records and their items.
func DynamicKeys(keys *translation.KeySet, records []models.SectionRecord) {
	for _, rec := range records {
		if rec.Type == models.SectionTypeHero {
			continue
		}
		keys.Add(rec.TitleKey, rec.SubtitleKey, rec.DescriptionKey, rec.ButtonTextKey)
		for _, item := range rec.Items {
			keys.Add(item.TitleKey, item.DescriptionKey)
		}
	}
}

// Dynamic emits one section per non-hero record. The record type selects the
// content shape; an unknown type keeps its tag and gets no content.
func Dynamic(records []models.SectionRecord, tr translation.Translations) []models.Section {
	out := make([]models.Section, 0, len(records))
	for i := range records {
		rec := &records[i]
		if rec.Type == models.SectionTypeHero {
			continue
		}
		out = append(out, models.Section{
			ID:        dynamicID(rec),
			Type:      models.SectionType(rec.Type),
			SortOrder: models.SortOrderOr(rec.SortOrder, models.DefaultSortOrder),
			Content:   dynamicContent(rec, tr),
		})
	}
	return out
}

func dynamicID(rec *models.SectionRecord) string {
	if rec.Slug != "" {
		return rec.Slug
	}
	return fmt.Sprintf("section-%d", rec.ID)
}

func dynamicContent(rec *models.SectionRecord, tr translation.Translations) any {
	switch models.SectionType(rec.Type) {
	case models.SectionComponentNode:
		return models.Localize(func(lang models.Lang) models.ComponentNodeContent {
			return models.ComponentNodeContent{
				Title:       tr.In(rec.TitleKey, lang),
				Subtitle:    tr.In(rec.SubtitleKey, lang),
				Description: tr.In(rec.DescriptionKey, lang),
				Image:       rec.ImageURL,
				ButtonText:  tr.In(rec.ButtonTextKey, lang),
				ButtonURL:   rec.ButtonURL,
			}
		})
	case models.SectionKeyEvents:
		return models.Localize(func(lang models.Lang) models.KeyEventsContent {
			events := make([]models.KeyEvent, 0, len(rec.Items))
			for _, item := range rec.Items {
				events = append(events, models.KeyEvent{
					Date:        item.Date,
					Title:       tr.In(item.TitleKey, lang),
					Description: tr.In(item.DescriptionKey, lang),
				})
			}
			return models.KeyEventsContent{Title: tr.In(rec.TitleKey, lang), Events: events}
		})
	case models.SectionGroup:
		return models.Localize(func(lang models.Lang) models.SectionGroupContent {
			items := make([]models.GroupItem, 0, len(rec.Items))
			for _, item := range rec.Items {
				items = append(items, models.GroupItem{
					Title:       tr.In(item.TitleKey, lang),
					Description: tr.In(item.DescriptionKey, lang),
					Icon:        item.Icon,
					Image:       item.ImageURL,
				})
			}
			return models.SectionGroupContent{
				Title:       tr.In(rec.TitleKey, lang),
				Description: tr.In(rec.DescriptionKey, lang),
				Items:       items,
			}
		})
	case models.SectionSuggestions:
		return models.Localize(func(lang models.Lang) models.SuggestionsContent {
			items := make([]models.Suggestion, 0, len(rec.Items))
			for _, item := range rec.Items {
				items = append(items, models.Suggestion{
					Title:       tr.In(item.TitleKey, lang),
					Description: tr.In(item.DescriptionKey, lang),
					URL:         item.URL,
				})
			}
			return models.SuggestionsContent{Title: tr.In(rec.TitleKey, lang), Items: items}
		})
	default:
		return nil
	}
}
