// Package model defines the immutable ledger entities shared by every other package.
package model

// CategoryType indicates whether a category is for income, expense, or the synthetic tree root.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "expense"
	// CategoryTypeVirtual marks the synthesized root of the category tree. It is never persisted.
	CategoryTypeVirtual CategoryType = "virtual"
)

// VirtualRootID is the reserved identifier of the synthesized root category.
// Older documents also use it as a parent_id meaning "no parent".
const VirtualRootID = "null"

// Category is a node in the parent/child category graph.
type Category struct {
	ParentID *string      `json:"parent_id"`
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Type     CategoryType `json:"type"`
}

// Valid reports whether t is one of the known category types.
func (t CategoryType) Valid() bool {
	switch t {
	case CategoryTypeIncome, CategoryTypeExpense, CategoryTypeVirtual:
		return true
	}
	return false
}

// HasParent reports whether the category hangs below another real category.
// A nil, empty, or "null" parent all mean top-level.
func (c Category) HasParent() bool {
	return c.ParentID != nil && *c.ParentID != "" && *c.ParentID != VirtualRootID
}

// Parent returns the parent identifier, or VirtualRootID for top-level categories.
func (c Category) Parent() string {
	if !c.HasParent() {
		return VirtualRootID
	}
	return *c.ParentID
}

// IsVirtual reports whether c is the synthesized tree root.
func (c Category) IsVirtual() bool {
	return c.Type == CategoryTypeVirtual
}

// NewVirtualRoot builds the synthetic root category record.
func NewVirtualRoot() Category {
	return Category{
		ID:   VirtualRootID,
		Name: "Root",
		Type: CategoryTypeVirtual,
	}
}

// ParentRef returns a pointer suitable for Category.ParentID.
func ParentRef(id string) *string {
	return &id
}
