package sections

import (
	"fmt"

	"github.com/bilgisen/contentfeed/internal/models"
	"github.com/bilgisen/contentfeed/internal/translation"
)

const (
	OrganizationsSortOrder = 200
	OrganizationsID        = "organizations"

	// TestimonialBaseSortOrder is the sort order of the first testimonial;
	// each following testimonial adds one.
	TestimonialBaseSortOrder = 300

	OrganizationsTitleKey models.LocalizationKey = "home.organizations.title"
)

// FeaturedKeys adds the name, description and category keys of records.
func FeaturedKeys(keys *translation.KeySet, records ...models.FeaturedRecord) {
	for _, rec := range records {
		keys.Add(rec.NameKey, rec.DescriptionKey)
		for _, c := range rec.Categories {
			keys.Add(c.NameKey)
		}
	}
}

// OrganizationsKeys adds the keys read by Organizations.
func OrganizationsKeys(keys *translation.KeySet, records []models.FeaturedRecord) {
	if len(records) == 0 {
		return
	}
	keys.Add(OrganizationsTitleKey)
	FeaturedKeys(keys, records...)
}

// Organizations emits a single list section, or nothing when records is empty.
func Organizations(records []models.FeaturedRecord, tr translation.Translations) []models.Section {
	if len(records) == 0 {
		return nil
	}
	return []models.Section{{
		ID:        OrganizationsID,
		Type:      models.SectionOrganizations,
		SortOrder: OrganizationsSortOrder,
		Content: models.Localize(func(lang models.Lang) models.OrganizationListContent {
			return models.OrganizationListContent{
				Title:         tr.In(OrganizationsTitleKey, lang),
				Organizations: OrganizationViews(records, tr, lang),
			}
		}),
	}}
}

// OrganizationViews renders records in lang, keeping their order.
func OrganizationViews(records []models.FeaturedRecord, tr translation.Translations, lang models.Lang) []models.OrganizationView {
	views := make([]models.OrganizationView, 0, len(records))
	for i := range records {
		views = append(views, OrganizationView(&records[i], tr, lang))
	}
	return views
}

func OrganizationView(rec *models.FeaturedRecord, tr translation.Translations, lang models.Lang) models.OrganizationView {
	return models.OrganizationView{
		ID:              rec.ID,
		PublicID:        rec.PublicID,
		Name:            tr.In(rec.NameKey, lang),
		Description:     tr.In(rec.DescriptionKey, lang),
		BackgroundImage: rec.BackgroundImage,
		URL:             rec.URL,
		Categories:      categoryViews(rec.Categories, tr, lang),
	}
}

// Testimonials emits one section per record, numbered from
// TestimonialBaseSortOrder in fetch order.
func Testimonials(records []models.FeaturedRecord, tr translation.Translations) []models.Section {
	out := make([]models.Section, 0, len(records))
	for i := range records {
		rec := &records[i]
		out = append(out, models.Section{
			ID:        fmt.Sprintf("testimonial-%d", rec.ID),
			Type:      models.SectionTestimonial,
			SortOrder: TestimonialBaseSortOrder + i,
			Content:   TestimonialContent(rec, tr),
		})
	}
	return out
}

func TestimonialContent(rec *models.FeaturedRecord, tr translation.Translations) models.Localized[models.TestimonialContent] {
	return models.Localize(func(lang models.Lang) models.TestimonialContent {
		return models.TestimonialContent{
			ID:              rec.ID,
			PublicID:        rec.PublicID,
			Name:            tr.In(rec.NameKey, lang),
			Description:     tr.In(rec.DescriptionKey, lang),
			BackgroundImage: rec.BackgroundImage,
			URL:             rec.URL,
			Categories:      categoryViews(rec.Categories, tr, lang),
		}
	})
}

// StoryViews renders story records in lang, keeping their order.
func StoryViews(records []models.FeaturedRecord, tr translation.Translations, lang models.Lang) []models.StoryView {
	views := make([]models.StoryView, 0, len(records))
	for i := range records {
		views = append(views, StoryView(&records[i], tr, lang))
	}
	return views
}

func StoryView(rec *models.FeaturedRecord, tr translation.Translations, lang models.Lang) models.StoryView {
	return models.StoryView{
		ID:              rec.ID,
		PublicID:        rec.PublicID,
		Title:           tr.In(rec.NameKey, lang),
		Description:     tr.In(rec.DescriptionKey, lang),
		BackgroundImage: rec.BackgroundImage,
		URL:             rec.URL,
		Categories:      categoryViews(rec.Categories, tr, lang),
	}
}

func categoryViews(refs []models.CategoryRef, tr translation.Translations, lang models.Lang) []models.CategoryView {
	views := make([]models.CategoryView, 0, len(refs))
	for _, c := range refs {
		views = append(views, models.CategoryView{
			Slug: c.Slug,
			Name: tr.In(c.NameKey, lang),
		})
	}
	return views
}
