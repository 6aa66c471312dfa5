package models

import "time"

// DefaultSortOrder is used when a record does not carry its own sort order.
const DefaultSortOrder = 999

// SortOrderOr returns *order, or fallback when the record omits it.
func SortOrderOr(order *int, fallback int) int {
	if order == nil {
		return fallback
	}
	return *order
}

// Page names the site page a generic section record belongs to.
const (
	PageHome         = "home"
	PageAbout        = "about"
	PageDataOverview = "data_overview"
	PageAidEfforts   = "aid_efforts"
)

// SectionTypeHero marks the generic section record that renders as the page hero.
const SectionTypeHero = "hero"

// SectionRecord is a language-agnostic row from the generic section source.
type SectionRecord struct {
	ID             int64               `json:"id"`
	Slug           string              `json:"slug"`
	Page           string              `json:"page"`
	Type           string              `json:"type"`
	TitleKey       LocalizationKey     `json:"title_key"`
	SubtitleKey    LocalizationKey     `json:"subtitle_key"`
	DescriptionKey LocalizationKey     `json:"description_key"`
	ButtonTextKey  LocalizationKey     `json:"button_text_key"`
	ButtonURL      string              `json:"button_url"`
	ImageURL       string              `json:"image_url"`
	VideoURL       string              `json:"video_url"`
	Items          []SectionItemRecord `json:"items"`
	SortOrder      *int                `json:"sort_order"`
	IsActive       bool                `json:"is_active"`
}

// SectionItemRecord is a child entry of a dynamic section (event, group item, suggestion).
type SectionItemRecord struct {
	TitleKey       LocalizationKey `json:"title_key"`
	DescriptionKey LocalizationKey `json:"description_key"`
	Icon           string          `json:"icon"`
	ImageURL       string          `json:"image_url"`
	URL            string          `json:"url"`
	Date           string          `json:"date"`
}

// MediaSourceType tells how a media record's display URL is derived.
type MediaSourceType string

const (
	MediaSourceUpload       MediaSourceType = "upload"
	MediaSourceGoogleDrive  MediaSourceType = "google_drive"
	MediaSourceExternalLink MediaSourceType = "external_link"
)

// MediaKind is the gallery type filter value.
type MediaKind string

const (
	MediaKindAll   MediaKind = "all"
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// MediaRecord is a raw media gallery row. Display and thumbnail URLs are not
// stored, they are derived from SourceType and the locator fields.
type MediaRecord struct {
	ID             int64           `json:"id"`
	PublicID       string          `json:"public_id"`
	Kind           MediaKind       `json:"type"`
	SourceType     MediaSourceType `json:"source_type"`
	FilePath       string          `json:"file_path"`
	DriveFileID    string          `json:"drive_file_id"`
	ExternalURL    string          `json:"external_url"`
	ThumbnailPath  string          `json:"thumbnail_path"`
	TitleKey       LocalizationKey `json:"title_key"`
	DescriptionKey LocalizationKey `json:"description_key"`
	IsFeatured     bool            `json:"is_featured"`
	IsActive       bool            `json:"is_active"`
	SortOrder      *int            `json:"sort_order"`
	CreatedAt      time.Time       `json:"created_at"`
}

// MediaURLs are the derived locations of a media record.
type MediaURLs struct {
	Display   string
	Thumbnail string
}

// CategoryRef is a category attached to a featured record.
type CategoryRef struct {
	ID      int64           `json:"id"`
	Slug    string          `json:"slug"`
	NameKey LocalizationKey `json:"name_key"`
}

// FeaturedRecord is the shared row shape of organizations, testimonials and stories.
// NameKey holds the organization name, the testimony author or the story title.
type FeaturedRecord struct {
	ID              int64           `json:"id"`
	PublicID        string          `json:"public_id"`
	NameKey         LocalizationKey `json:"name_key"`
	DescriptionKey  LocalizationKey `json:"description_key"`
	BackgroundImage string          `json:"background_image"`
	URL             string          `json:"url"`
	Categories      []CategoryRef   `json:"categories"`
	IsFeatured      bool            `json:"is_featured"`
	IsActive        bool            `json:"is_active"`
	SortOrder       *int            `json:"sort_order"`
}

// TimelineEventRecord is a raw timeline row.
type TimelineEventRecord struct {
	ID             int64           `json:"id"`
	Date           string          `json:"date"`
	TitleKey       LocalizationKey `json:"title_key"`
	DescriptionKey LocalizationKey `json:"description_key"`
	ImageURL       string          `json:"image_url"`
	IsActive       bool            `json:"is_active"`
	SortOrder      *int            `json:"sort_order"`
}

// FeaturedFilter narrows organization, testimonial and story fetches.
// A zero Limit means no limit.
type FeaturedFilter struct {
	FeaturedOnly bool
	Limit        int
}

// MediaFilter narrows media fetches and counts. Offset and Limit are ignored by counts.
type MediaFilter struct {
	Kind         MediaKind
	SourceType   MediaSourceType
	FeaturedOnly bool
	Offset       int
	Limit        int
}
