package models

// Account is a customer record with contact details and the date the
// customer joined. ID is assigned by the database and never changes.
type Account struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	DateJoined  Date   `json:"date_joined"`
}
