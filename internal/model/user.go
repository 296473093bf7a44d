package model

// User is an operator of the ledger. Password is an opaque string compared verbatim.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}
