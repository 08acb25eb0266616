package main

import (
	"strings"

	"github.com/Maneesh0032/Sweets-Shop/internal/model"
)

// localFilter narrows a fetched catalog without another server round trip,
// using the same conjunctive semantics as /api/sweets/search: case-insensitive
// substring on name, exact category, inclusive price bounds.
func localFilter(sweets []model.Sweet, f model.SearchFilters) []model.Sweet {
	out := []model.Sweet{}
	name := strings.ToLower(f.Name)
	for _, s := range sweets {
		if name != "" && !strings.Contains(strings.ToLower(s.Name), name) {
			continue
		}
		if f.Category != "" && s.Category != f.Category {
			continue
		}
		if f.MinPrice != nil && s.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && s.Price > *f.MaxPrice {
			continue
		}
		out = append(out, s)
	}
	return out
}
