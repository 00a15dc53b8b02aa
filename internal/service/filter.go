package service

import "github.com/guttosm/catalog-service/internal/domain/model"

// ApplyFilter returns the products matching every constraint set in f, in their
// original order. With no constraint set it returns candidates itself.
func ApplyFilter(candidates []model.Product, f model.ProductFilter) []model.Product {
	if !f.HasFilters() {
		return candidates
	}

	out := make([]model.Product, 0, len(candidates))
	for _, p := range candidates {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
