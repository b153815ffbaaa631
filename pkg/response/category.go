package response

type Category struct {
	Name          string     `json:"name"`
	SubCategories []Category `json:"subCategories"`
	ParentID      *int64     `json:"parentId"`
	ID            int64      `json:"id"`
}

// Walk visits the category and all nested subcategories depth-first.
func (c Category) Walk(visit func(Category)) {
	visit(c)
	for _, sub := range c.SubCategories {
		sub.Walk(visit)
	}
}
