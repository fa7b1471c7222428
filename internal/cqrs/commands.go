package cqrs

import "github.com/eaglebank/account-service/internal/models"

type CreateAccountCommand struct {
	Name        string
	Email       string
	Address     string
	PhoneNumber string
	DateJoined  models.Date
}

// UpdateAccountCommand replaces every mutable field of the account with ID.
type UpdateAccountCommand struct {
	ID          int64
	Name        string
	Email       string
	Address     string
	PhoneNumber string
	DateJoined  models.Date
}

type DeleteAccountCommand struct {
	ID int64
}
