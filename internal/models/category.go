package models

// Category classifies a post. The set is fixed; anything outside it is
// rejected at post creation.
type Category string

const (
	CategoryAnimals    Category = "animals"
	CategoryNature     Category = "nature"
	CategoryPeople     Category = "people"
	CategoryFood       Category = "food"
	CategoryTravel     Category = "travel"
	CategorySports     Category = "sports"
	CategoryArt        Category = "art"
	CategoryTechnology Category = "technology"
	CategoryOther      Category = "other"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryAnimals,
		CategoryNature,
		CategoryPeople,
		CategoryFood,
		CategoryTravel,
		CategorySports,
		CategoryArt,
		CategoryTechnology,
		CategoryOther,
	}
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}
