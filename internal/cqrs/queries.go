package cqrs

// GetAccountQuery fetches a single account by ID.
type GetAccountQuery struct {
	ID int64
}

// ListAccountsQuery fetches every stored account.
type ListAccountsQuery struct{}
