package cache

import "strconv"

// EntityType namespaces cache keys.
type EntityType string

const (
	EntityProduct  EntityType = "product"
	EntityCategory EntityType = "category"
	EntityBrand    EntityType = "brand"
)

// plural returns the collection namespace used by AllKey.
func (t EntityType) plural() string {
	switch t {
	case EntityCategory:
		return "categories"
	default:
		return string(t) + "s"
	}
}

// Key returns the key of a single entity, e.g. "product:5".
func Key(t EntityType, id int64) string {
	return string(t) + ":" + strconv.FormatInt(id, 10)
}

// AllKey returns the key of the full collection, e.g. "products:all".
// Collection namespaces are plural, so they never equal a single-entity namespace.
func AllKey(t EntityType) string {
	return t.plural() + ":all"
}
