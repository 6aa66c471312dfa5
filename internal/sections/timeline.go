package sections

import (
	"github.com/bilgisen/contentfeed/internal/models"
	"github.com/bilgisen/contentfeed/internal/translation"
)

const (
	TimelineSortOrder = 400
	TimelineID        = "timeline"

	TimelineTitleKey models.LocalizationKey = "timeline.title"
)

func TimelineKeys(keys *translation.KeySet, events []models.TimelineEventRecord) {
	if len(events) == 0 {
		return
	}
	keys.Add(TimelineTitleKey)
	for _, e := range events {
		keys.Add(e.TitleKey, e.DescriptionKey)
	}
}

// Timeline emits one section listing events in fetch order, or nothing when
// there are no events.
func Timeline(events []models.TimelineEventRecord, tr translation.Translations) []models.Section {
	if len(events) == 0 {
		return nil
	}
	return []models.Section{{
		ID:        TimelineID,
		Type:      models.SectionTimeline,
		SortOrder: TimelineSortOrder,
		Content: models.Localize(func(lang models.Lang) models.TimelineContent {
			out := make([]models.TimelineEvent, 0, len(events))
			for _, e := range events {
				out = append(out, models.TimelineEvent{
					Date:        e.Date,
					Title:       tr.In(e.TitleKey, lang),
					Description: tr.In(e.DescriptionKey, lang),
					Image:       e.ImageURL,
				})
			}
			return models.TimelineContent{Title: tr.In(TimelineTitleKey, lang), Events: out}
		}),
	}}
}
