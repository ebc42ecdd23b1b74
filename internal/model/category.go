package model

// Category is the coarse announcement type assigned by the relevance
// classifier before extraction.
type Category string

const (
	CategoryIntent    Category = "intent"
	CategoryMoU       Category = "mou"
	CategoryProposal  Category = "proposal"
	CategoryExpansion Category = "expansion"
	CategoryOther     Category = "other"
)

// AllCategories returns every defined category.
func AllCategories() []Category {
	return []Category{CategoryIntent, CategoryMoU, CategoryProposal, CategoryExpansion, CategoryOther}
}

// ProjectTypeForCategory maps a classifier category to the project type it
// implies, or "" when it implies none.
func ProjectTypeForCategory(c Category) ProjectType {
	switch c {
	case CategoryMoU:
		return ProjectMoU
	case CategoryProposal:
		return ProjectProposal
	case CategoryExpansion:
		return ProjectExpansion
	case CategoryIntent:
		return ProjectAnnouncement
	}
	return ""
}
