package model

// Budget caps outflows for a category over a free-form period such as "month".
type Budget struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	CategoryID string `json:"cat_id"`
	Period     string `json:"period"`
	Limit      int64  `json:"limit"`
}

// WithLimit returns a copy of the budget with a new limit.
func (b Budget) WithLimit(limit int64) Budget {
	b.Limit = limit
	return b
}
