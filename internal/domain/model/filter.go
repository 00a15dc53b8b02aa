package model

// ProductFilter holds optional product query constraints.
// A nil field places no constraint on that dimension. Values are built with
// NewProductFilter and the With* methods, which return copies.
type ProductFilter struct {
	CategoryID *int64
	BrandID    *int64
	MinPrice   *float64
	MaxPrice   *float64
	MinStock   *int
}

// NewProductFilter returns an empty filter.
func NewProductFilter() ProductFilter {
	return ProductFilter{}
}

func (f ProductFilter) WithCategoryID(id int64) ProductFilter {
	f.CategoryID = &id
	return f
}

func (f ProductFilter) WithBrandID(id int64) ProductFilter {
	f.BrandID = &id
	return f
}

func (f ProductFilter) WithMinPrice(price float64) ProductFilter {
	f.MinPrice = &price
	return f
}

func (f ProductFilter) WithMaxPrice(price float64) ProductFilter {
	f.MaxPrice = &price
	return f
}

func (f ProductFilter) WithMinStock(stock int) ProductFilter {
	f.MinStock = &stock
	return f
}

// HasFilters reports whether at least one constraint is present.
// Presence decides participation: a field set to zero still counts.
func (f ProductFilter) HasFilters() bool {
	return f.CategoryID != nil ||
		f.BrandID != nil ||
		f.MinPrice != nil ||
		f.MaxPrice != nil ||
		f.MinStock != nil
}

// Matches reports whether p satisfies every constraint present in the filter.
func (f ProductFilter) Matches(p Product) bool {
	if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
		return false
	}
	if f.BrandID != nil && p.BrandID != *f.BrandID {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinStock != nil && p.Stock < *f.MinStock {
		return false
	}
	return true
}
