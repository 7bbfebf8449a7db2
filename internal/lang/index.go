package lang

import "github.com/bhasha-shikkha/coach-api/internal/domain"

// VariantIndex maps normalized surface forms (including gender-expanded
// variants) to the entry that owns them.
type VariantIndex map[string]domain.CategorizedEntry

// BuildVariantIndex walks the dictionary once, in declaration order, and
// returns the flat entry list together with the variant lookup table.
// Insertion is first-write-wins: when two entries share a variant the
// earlier category/entry keeps it, which keeps rebuilds deterministic.
// The function is pure; rebuild it whenever the dictionary snapshot
// changes.
func BuildVariantIndex(dict *domain.Dictionary) ([]domain.CategorizedEntry, VariantIndex) {
	index := make(VariantIndex)
	if dict == nil {
		return nil, index
	}

	var entries []domain.CategorizedEntry
	for _, cat := range dict.Categories {
		for _, e := range cat.Entries {
			if e.Word == "" {
				continue
			}
			ce := domain.CategorizedEntry{Entry: e, Category: cat.ID}
			entries = append(entries, ce)
			for _, v := range WordMatchVariants(e.Word) {
				if _, taken := index[v]; !taken {
					index[v] = ce
				}
			}
		}
	}
	return entries, index
}
