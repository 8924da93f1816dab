package domain

// Operator is a club staff account allowed through the console login gate
type Operator struct {
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	PasswordHash string `json:"-"`
}
