package ledger

import "github.com/Veraticus/the-ledger-must-balance/internal/model"

// Root selects where a category traversal starts. The virtual root is a distinct
// value rather than a magic string, so no real category id can trigger it.
type Root struct {
	id      string
	virtual bool
}

// VirtualRoot starts a traversal at the synthetic "no parent" root.
func VirtualRoot() Root {
	return Root{id: model.VirtualRootID, virtual: true}
}

// RootAt starts a traversal at a real category id.
func RootAt(id string) Root {
	return Root{id: id}
}

// ID returns the identifier the traversal starts from.
func (r Root) ID() string {
	return r.id
}

// IsVirtual reports whether r is the synthetic root.
func (r Root) IsVirtual() bool {
	return r.virtual
}

// FlattenCategories lists the subtree rooted at root in depth-first pre-order.
//
// For the virtual root the result starts with a synthesized root record followed by every
// top-level category, each immediately followed by its descendants. For a real category the
// result is that category and its descendants. An unknown id yields only its children, which
// is usually nothing. A visited set guarantees termination even on malformed input.
func FlattenCategories(categories []model.Category, root Root) []model.Category {
	children := make(map[string][]model.Category, len(categories))
	for _, c := range categories {
		if c.HasParent() {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	result := make([]model.Category, 0, len(categories)+1)
	visited := make(map[string]bool, len(categories))

	var visit func(c model.Category)
	visit = func(c model.Category) {
		if visited[c.ID] {
			return
		}
		visited[c.ID] = true
		result = append(result, c)
		for _, child := range children[c.ID] {
			visit(child)
		}
	}

	if root.virtual {
		result = append(result, model.NewVirtualRoot())
		for _, c := range categories {
			if !c.HasParent() {
				visit(c)
			}
		}
		return result
	}

	if cat, ok := FindCategory(categories, root.id).Get(); ok {
		visit(cat)
		return result
	}

	for _, child := range children[root.id] {
		visit(child)
	}
	return result
}

// SubtreeIDs returns the set of category ids under root, including root's own id.
func SubtreeIDs(categories []model.Category, root Root) map[string]bool {
	flat := FlattenCategories(categories, root)
	ids := make(map[string]bool, len(flat)+1)
	for _, c := range flat {
		ids[c.ID] = true
	}
	ids[root.id] = true
	return ids
}

// Depths maps each category id in a flattened virtual-root listing to its depth,
// where top-level categories have depth 1. Used to indent tree renderings.
func Depths(categories []model.Category) map[string]int {
	byID := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	depths := make(map[string]int, len(categories))
	var depth func(id string, seen int) int
	depth = func(id string, seen int) int {
		if d, ok := depths[id]; ok {
			return d
		}
		c, ok := byID[id]
		if !ok || !c.HasParent() || seen > len(categories) {
			return 1
		}
		return depth(*c.ParentID, seen+1) + 1
	}

	for _, c := range categories {
		depths[c.ID] = depth(c.ID, 0)
	}
	return depths
}
