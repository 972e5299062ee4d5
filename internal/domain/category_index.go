package domain

import "strings"

// Placeholder presentation for categories that no longer exist.
const (
	DefaultCategoryIcon  = "📊"
	DefaultCategoryColor = "#3498DB"
)

// CategoryIndex resolves category names from a snapshot. Transactions and
// budgets may reference deleted categories, so lookups never fail.
type CategoryIndex struct {
	byName map[string]Category
}

// NewCategoryIndex indexes categories by lower-cased name. On duplicate names
// the first one wins.
func NewCategoryIndex(categories []Category) CategoryIndex {
	idx := CategoryIndex{byName: make(map[string]Category, len(categories))}
	for _, c := range categories {
		key := strings.ToLower(c.Name)
		if _, ok := idx.byName[key]; ok {
			continue
		}
		idx.byName[key] = c
	}
	return idx
}

// Lookup returns the category with the given name (case-insensitive). Unknown
// names yield a placeholder carrying the requested name and default icon/color.
func (idx CategoryIndex) Lookup(name string) Category {
	if c, ok := idx.Find(name); ok {
		if c.Icon == "" {
			c.Icon = DefaultCategoryIcon
		}
		if c.Color == "" {
			c.Color = DefaultCategoryColor
		}
		return c
	}
	return Category{Name: name, Icon: DefaultCategoryIcon, Color: DefaultCategoryColor}
}

// Find returns the category and whether it exists.
func (idx CategoryIndex) Find(name string) (Category, bool) {
	c, ok := idx.byName[strings.ToLower(name)]
	return c, ok
}
