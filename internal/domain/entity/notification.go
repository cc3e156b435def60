package entity

// Notification is the short-lived toast content produced by a store mutation.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
