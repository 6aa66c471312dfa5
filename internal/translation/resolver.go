// Package translation resolves localization keys in bulk.
//
// Callers collect every key a build needs into one KeySet and resolve it with
// a single Resolve call, so the localization store sees one query per build
// no matter how many records the build renders.
package translation

import (
	"context"
	"fmt"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/bilgisen/contentfeed/internal/logger"
	"github.com/bilgisen/contentfeed/internal/metrics"
	"github.com/bilgisen/contentfeed/internal/models"
)

// Entry is one stored translation.
type Entry struct {
	Key  models.LocalizationKey
	Lang models.Lang
	Text string
}

// Store is the localization store consumed by the resolver.
type Store interface {
	LookupTranslations(ctx context.Context, keys []models.LocalizationKey, langs []models.Lang) ([]Entry, error)
}

// KeySet is the union of localization keys needed by a build. Empty keys are dropped.
type KeySet struct {
	set mapset.Set[models.LocalizationKey]
}

func NewKeySet() *KeySet {
	return &KeySet{set: mapset.NewThreadUnsafeSet[models.LocalizationKey]()}
}

// Add inserts keys, ignoring empty ones.
func (s *KeySet) Add(keys ...models.LocalizationKey) {
	for _, key := range keys {
		if key != "" {
			s.set.Add(key)
		}
	}
}

func (s *KeySet) Len() int {
	return s.set.Cardinality()
}

// Sorted returns the keys in lexical order.
func (s *KeySet) Sorted() []models.LocalizationKey {
	keys := s.set.ToSlice()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Translations maps every requested key to its text in both languages.
type Translations map[models.LocalizationKey]models.Text

// Text returns the resolved text of key. Unknown keys resolve to empty text.
func (t Translations) Text(key models.LocalizationKey) models.Text {
	return t[key]
}

// In returns the text of key in lang.
func (t Translations) In(key models.LocalizationKey, lang models.Lang) string {
	return t[key].In(lang)
}

type Resolver struct {
	store   Store
	metrics *metrics.Metrics
}

func NewResolver(store Store, m *metrics.Metrics) *Resolver {
	return &Resolver{store: store, metrics: m}
}

// Resolve looks up all keys in one store call. Every key of the set is
// present in the result; languages missing from the store map to "".
func (r *Resolver) Resolve(ctx context.Context, keys *KeySet) (Translations, error) {
	if keys == nil || keys.Len() == 0 {
		return Translations{}, nil
	}

	sorted := keys.Sorted()
	entries, err := r.store.LookupTranslations(ctx, sorted, models.Languages)
	if err != nil {
		return nil, fmt.Errorf("lookup %d translations: %w", len(sorted), err)
	}
	r.metrics.RecordTranslationLookup(len(sorted))

	out := make(Translations, len(sorted))
	for _, key := range sorted {
		out[key] = models.Text{}
	}
	for _, e := range entries {
		text, ok := out[e.Key]
		if !ok {
			continue
		}
		switch e.Lang {
		case models.LangEN:
			text.EN = e.Text
		case models.LangAR:
			text.AR = e.Text
		default:
			continue
		}
		out[e.Key] = text
	}

	logger.Debug().
		Int("keys", len(sorted)).
		Int("entries", len(entries)).
		Msg("Resolved translations")

	return out, nil
}
