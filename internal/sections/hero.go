// Package sections turns raw records and resolved translations into Sections.
//
// Every builder is a pure function of its inputs. Each has a matching *Keys
// function that adds the localization keys the builder will read, so a caller
// can collect the keys of a whole feed before the single translation lookup.
// Builders never fail: absent fields render as "" or empty lists, and builders
// do not sort; ordering belongs to the feed assembler.
package sections

import (
	"fmt"

	"github.com/bilgisen/contentfeed/internal/models"
	"github.com/bilgisen/contentfeed/internal/translation"
)

// HeroSortOrder puts the hero ahead of every other section.
const HeroSortOrder = 0

// HeroKeys adds the keys read by Hero. rec may be nil.
func HeroKeys(keys *translation.KeySet, rec *models.SectionRecord) {
	if rec == nil {
		return
	}
	keys.Add(rec.TitleKey, rec.SubtitleKey, rec.DescriptionKey, rec.ButtonTextKey)
}

// Hero returns zero sections when rec is nil, otherwise exactly one.
func Hero(rec *models.SectionRecord, tr translation.Translations) []models.Section {
	if rec == nil {
		return nil
	}
	return []models.Section{{
		ID:        fmt.Sprintf("hero-%d", rec.ID),
		Type:      models.SectionHero,
		SortOrder: HeroSortOrder,
		Content:   HeroContent(rec, tr),
	}}
}

// HeroContent renders a hero record for both languages.
func HeroContent(rec *models.SectionRecord, tr translation.Translations) models.Localized[models.HeroContent] {
	return models.Localize(func(lang models.Lang) models.HeroContent {
		return models.HeroContent{
			Title:           tr.In(rec.TitleKey, lang),
			Subtitle:        tr.In(rec.SubtitleKey, lang),
			Description:     tr.In(rec.DescriptionKey, lang),
			BackgroundImage: rec.ImageURL,
			VideoURL:        rec.VideoURL,
			ButtonText:      tr.In(rec.ButtonTextKey, lang),
			ButtonURL:       rec.ButtonURL,
		}
	})
}
