package models

// SectionType tags a Section variant. The four dynamic tags mirror the
// type column of the generic section source.
type SectionType string

const (
	SectionHero          SectionType = "hero"
	SectionMediaGallery  SectionType = "media_gallery"
	SectionOrganizations SectionType = "organizations"
	SectionTestimonial   SectionType = "testimonial"
	SectionTimeline      SectionType = "timeline"

	SectionComponentNode SectionType = "component_node"
	SectionKeyEvents     SectionType = "key_events"
	SectionGroup         SectionType = "section_group"
	SectionSuggestions   SectionType = "suggestions"
)

// Section is one bilingual content block of a feed. SortOrder only orders
// the feed and never leaves the process; use FeedEntry for output.
// Content is a Localized payload, or nil for an unrecognized dynamic tag.
type Section struct {
	ID        string
	Type      SectionType
	SortOrder int
	Content   any
}

// Entry drops the sort order.
func (s Section) Entry() FeedEntry {
	return FeedEntry{ID: s.ID, Type: s.Type, Content: s.Content}
}

// FeedEntry is the client-facing form of a Section.
type FeedEntry struct {
	ID      string      `json:"id"`
	Type    SectionType `json:"type"`
	Content any         `json:"content,omitempty"`
}

type HeroContent struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	Description     string `json:"description"`
	BackgroundImage string `json:"backgroundImage"`
	VideoURL        string `json:"videoUrl"`
	ButtonText      string `json:"buttonText"`
	ButtonURL       string `json:"buttonUrl"`
}

// MediaItem is a media record as rendered in the gallery and the home feed.
type MediaItem struct {
	ID           int64           `json:"id"`
	PublicID     string          `json:"publicId"`
	Type         MediaKind       `json:"type"`
	SourceType   MediaSourceType `json:"sourceType"`
	URL          string          `json:"url"`
	ThumbnailURL string          `json:"thumbnailUrl"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	CreatedAt    string          `json:"createdAt"`
}

type MediaGalleryContent struct {
	Title string      `json:"title"`
	Items []MediaItem `json:"items"`
}

type CategoryView struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type OrganizationView struct {
	ID              int64          `json:"id"`
	PublicID        string         `json:"publicId"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	BackgroundImage string         `json:"backgroundImage"`
	URL             string         `json:"url"`
	Categories      []CategoryView `json:"categories"`
}

type OrganizationListContent struct {
	Title         string             `json:"title"`
	Organizations []OrganizationView `json:"organizations"`
}

// TestimonialContent is the payload of one testimonial Section and of the testimony detail page.
type TestimonialContent struct {
	ID              int64          `json:"id"`
	PublicID        string         `json:"publicId"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	BackgroundImage string         `json:"backgroundImage"`
	URL             string         `json:"url"`
	Categories      []CategoryView `json:"categories"`
}

type StoryView struct {
	ID              int64          `json:"id"`
	PublicID        string         `json:"publicId"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	BackgroundImage string         `json:"backgroundImage"`
	URL             string         `json:"url"`
	Categories      []CategoryView `json:"categories"`
}

type TimelineEvent struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type TimelineContent struct {
	Title  string          `json:"title"`
	Events []TimelineEvent `json:"events"`
}

type ComponentNodeContent struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ButtonText  string `json:"buttonText"`
	ButtonURL   string `json:"buttonUrl"`
}

type KeyEvent struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type KeyEventsContent struct {
	Title  string     `json:"title"`
	Events []KeyEvent `json:"events"`
}

type GroupItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Image       string `json:"image"`
}

type SectionGroupContent struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Items       []GroupItem `json:"items"`
}

type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type SuggestionsContent struct {
	Title string       `json:"title"`
	Items []Suggestion `json:"items"`
}

// GalleryItem is a media record in the paginated gallery, with both
// languages inlined per text field.
type GalleryItem struct {
	ID           int64           `json:"id"`
	PublicID     string          `json:"publicId"`
	Type         MediaKind       `json:"type"`
	SourceType   MediaSourceType `json:"sourceType"`
	URL          string          `json:"url"`
	ThumbnailURL string          `json:"thumbnailUrl"`
	Title        Text            `json:"title"`
	Description  Text            `json:"description"`
	CreatedAt    string          `json:"createdAt"`
}
