package events

import (
	"time"

	"github.com/eaglebank/account-service/internal/models"
)

// Event types
const (
	AccountCreated = "account.created"
	AccountUpdated = "account.updated"
	AccountDeleted = "account.deleted"
)

// Event is the envelope written to the stream's "event" field.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// AccountCreatedEvent carries the account as stored, including its new ID.
type AccountCreatedEvent struct {
	Account models.Account `json:"account"`
}

// AccountUpdatedEvent carries the account after the update and the JSON names
// of the fields whose values changed.
type AccountUpdatedEvent struct {
	Account models.Account `json:"account"`
	Changed []string       `json:"changed"`
}

type AccountDeletedEvent struct {
	ID int64 `json:"id"`
}

// ChangedFields compares the mutable fields of two versions of an account.
// The result is never nil.
func ChangedFields(before, after models.Account) []string {
	changed := []string{}
	if before.Name != after.Name {
		changed = append(changed, "name")
	}
	if before.Email != after.Email {
		changed = append(changed, "email")
	}
	if before.Address != after.Address {
		changed = append(changed, "address")
	}
	if before.PhoneNumber != after.PhoneNumber {
		changed = append(changed, "phone_number")
	}
	if !before.DateJoined.Equal(after.DateJoined.Time) {
		changed = append(changed, "date_joined")
	}
	return changed
}
