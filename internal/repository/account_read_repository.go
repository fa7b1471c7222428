package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eaglebank/account-service/internal/models"
)

// AccountReadRepository handles all read operations for accounts.
type AccountReadRepository struct {
	db *sql.DB
}

func NewAccountReadRepository(db *sql.DB) *AccountReadRepository {
	return &AccountReadRepository{db: db}
}

func (r *AccountReadRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) || isIDOutOfRange(err) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// List returns every account ordered by ID. The result is never nil.
func (r *AccountReadRepository) List(ctx context.Context) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]models.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
