package model

// Account holds money in a single currency. Balance is in minor units.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	UserID   string `json:"user_id"`
	Balance  int64  `json:"balance"`
}
