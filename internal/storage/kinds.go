package storage

// Entity kinds used in not-found errors.
const (
	KindOrganization = "Organization"
	KindTestimony    = "Testimony"
	KindStory        = "Story"
)
