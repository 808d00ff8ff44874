package domain

// OwnerSummary is the subset of the external user registry's record consulted
// at account-creation time.
type OwnerSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
