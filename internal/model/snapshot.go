package model

// Snapshot is the full set of entity collections at a point in time.
// Collections are insertion-ordered and treated as read-only by every consumer.
type Snapshot struct {
	Accounts     []Account     `json:"accounts"`
	Categories   []Category    `json:"categories"`
	Transactions []Transaction `json:"transactions"`
	Budgets      []Budget      `json:"budgets"`
	Users        []User        `json:"users,omitempty"`
}

// WithTransactions returns a copy of the snapshot holding txns.
func (s Snapshot) WithTransactions(txns []Transaction) Snapshot {
	s.Transactions = txns
	return s
}

// WithBudgets returns a copy of the snapshot holding budgets.
func (s Snapshot) WithBudgets(budgets []Budget) Snapshot {
	s.Budgets = budgets
	return s
}

// WithCategories returns a copy of the snapshot holding categories.
func (s Snapshot) WithCategories(categories []Category) Snapshot {
	s.Categories = categories
	return s
}

// Counts returns the size of each collection keyed by collection name.
func (s Snapshot) Counts() map[string]int {
	return map[string]int{
		"accounts":     len(s.Accounts),
		"categories":   len(s.Categories),
		"transactions": len(s.Transactions),
		"budgets":      len(s.Budgets),
		"users":        len(s.Users),
	}
}
