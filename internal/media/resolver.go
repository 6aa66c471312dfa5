// Package media derives display and thumbnail URLs for media records.
package media

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/bilgisen/contentfeed/internal/models"
)

// ObjectURLs turns a stored upload path into a URL clients can fetch.
type ObjectURLs interface {
	ObjectURL(ctx context.Context, path string) (string, error)
}

var (
	youtubeID   = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|embed/|shorts/)|youtu\.be/)([A-Za-z0-9_-]{11})`)
	drivePathID = regexp.MustCompile(`/d/([A-Za-z0-9_-]+)`)
)

type Resolver struct {
	objects ObjectURLs
}

func NewResolver(objects ObjectURLs) *Resolver {
	return &Resolver{objects: objects}
}

// ResolveAll resolves every record, keyed by record ID.
func (r *Resolver) ResolveAll(ctx context.Context, records []models.MediaRecord) (map[int64]models.MediaURLs, error) {
	out := make(map[int64]models.MediaURLs, len(records))
	for i := range records {
		urls, err := r.Resolve(ctx, &records[i])
		if err != nil {
			return nil, err
		}
		out[records[i].ID] = urls
	}
	return out, nil
}

// Resolve derives the URLs of rec from its source type. Unknown source types
// and missing locators resolve to empty strings.
func (r *Resolver) Resolve(ctx context.Context, rec *models.MediaRecord) (models.MediaURLs, error) {
	var urls models.MediaURLs

	switch rec.SourceType {
	case models.MediaSourceUpload:
		display, err := r.objectURL(ctx, rec.FilePath)
		if err != nil {
			return urls, err
		}
		urls.Display = display
		urls.Thumbnail = display
	case models.MediaSourceGoogleDrive:
		if id := driveFileID(rec); id != "" {
			if rec.Kind == models.MediaKindVideo {
				urls.Display = "https://drive.google.com/file/d/" + id + "/preview"
			} else {
				urls.Display = "https://drive.google.com/uc?export=view&id=" + url.QueryEscape(id)
			}
			urls.Thumbnail = "https://drive.google.com/thumbnail?id=" + url.QueryEscape(id) + "&sz=w640"
		}
	case models.MediaSourceExternalLink:
		urls.Display = rec.ExternalURL
		if m := youtubeID.FindStringSubmatch(rec.ExternalURL); m != nil {
			urls.Thumbnail = "https://img.youtube.com/vi/" + m[1] + "/hqdefault.jpg"
		} else if rec.Kind != models.MediaKindVideo {
			urls.Thumbnail = rec.ExternalURL
		}
	}

	if rec.ThumbnailPath != "" {
		thumb, err := r.objectURL(ctx, rec.ThumbnailPath)
		if err != nil {
			return urls, err
		}
		urls.Thumbnail = thumb
	}
	return urls, nil
}

func (r *Resolver) objectURL(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if isAbsolute(path) {
		return path, nil
	}
	u, err := r.objects.ObjectURL(ctx, path)
	if err != nil {
		return "", fmt.Errorf("resolve object url %q: %w", path, err)
	}
	return u, nil
}

func driveFileID(rec *models.MediaRecord) string {
	if rec.DriveFileID != "" {
		return rec.DriveFileID
	}
	if m := drivePathID.FindStringSubmatch(rec.ExternalURL); m != nil {
		return m[1]
	}
	if u, err := url.Parse(rec.ExternalURL); err == nil {
		return u.Query().Get("id")
	}
	return ""
}

func isAbsolute(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// PublicBase serves uploads from a public base URL, such as a CDN or the app's storage route.
type PublicBase struct {
	base string
}

func NewPublicBase(base string) *PublicBase {
	return &PublicBase{base: strings.TrimRight(base, "/")}
}

func (p *PublicBase) ObjectURL(_ context.Context, path string) (string, error) {
	return p.base + "/" + strings.TrimLeft(path, "/"), nil
}
