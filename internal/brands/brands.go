// Package brands provides the static brand registry exposed to the
// storefront and admin. Brands are compiled in rather than stored; products
// reference them through metadata->>'brandId'.
package brands

// Brand describes a store brand.
type Brand struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
}

// All returns every registered brand in display order.
func All() []Brand {
	return registry
}

// BySlug returns the brand with the given slug.
func BySlug(slug string) (Brand, bool) {
	for _, b := range registry {
		if b.Slug == slug {
			return b, true
		}
	}
	return Brand{}, false
}

var registry = []Brand{
	{
		ID:          "crossbow",
		Name:        "Crossbow",
		Slug:        "crossbow",
		Description: "The flagship house brand with apparel and accessories.",
		Categories:  []string{"apparel", "accessories"},
	},
	{
		ID:          "vigo-boutique",
		Name:        "Vigo Boutique",
		Slug:        "vigo-boutique",
		Description: "Curated boutique fashion for women.",
		Categories:  []string{"apparel"},
	},
	{
		ID:          "vigo-shoes",
		Name:        "Vigo Shoes",
		Slug:        "vigo-shoes",
		Description: "Footwear line covering casual and formal styles.",
		Categories:  []string{"footwear"},
	},
	{
		ID:          "stepsstar",
		Name:        "Stepsstar",
		Slug:        "stepsstar",
		Description: "Everyday footwear built for comfort.",
		Categories:  []string{"footwear"},
	},
	{
		ID:          "stepsstar-kids",
		Name:        "Stepsstar Kids",
		Slug:        "stepsstar-kids",
		Description: "Durable footwear for children.",
		Categories:  []string{"footwear", "kids"},
	},
	{
		ID:          "louis-cardy",
		Name:        "Louis Cardy",
		Slug:        "louis-cardy",
		Description: "Leather goods and formal shoes.",
		Categories:  []string{"footwear", "accessories"},
	},
}
