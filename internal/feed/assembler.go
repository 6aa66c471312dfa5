// Package feed assembles ordered bilingual feeds from section builders.
package feed

import (
	"sort"

	"github.com/bilgisen/contentfeed/internal/models"
)

// Assemble concatenates groups in the order given, stable-sorts the result by
// ascending sort order and drops the sort order from the output. Sections with
// equal sort orders keep their concatenation order.
func Assemble(groups ...[]models.Section) []models.FeedEntry {
	var all []models.Section
	for _, g := range groups {
		all = append(all, g...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].SortOrder < all[j].SortOrder
	})

	out := make([]models.FeedEntry, 0, len(all))
	for _, s := range all {
		out = append(out, s.Entry())
	}
	return out
}
