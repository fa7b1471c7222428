package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eaglebank/account-service/internal/models"
)

const accountColumns = `id, name, email, address, phone_number, date_joined`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var (
		account models.Account
		phone   sql.NullString
	)
	if err := row.Scan(
		&account.ID, &account.Name, &account.Email, &account.Address,
		&phone, &account.DateJoined,
	); err != nil {
		return nil, err
	}
	account.PhoneNumber = phone.String
	return &account, nil
}

// nullable stores empty optional strings as NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// AccountWriteRepository handles all state-mutating operations for accounts.
type AccountWriteRepository struct {
	db *sql.DB
}

func NewAccountWriteRepository(db *sql.DB) *AccountWriteRepository {
	return &AccountWriteRepository{db: db}
}

// Create inserts account and stores the database-assigned ID back on it.
func (r *AccountWriteRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (name, email, address, phone_number, date_joined)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		account.Name, account.Email, account.Address,
		nullable(account.PhoneNumber), account.DateJoined,
	).Scan(&account.ID)
	if err != nil {
		if isDataError(err) {
			return fmt.Errorf("%w: %v", ErrInvalidAccount, err)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByID fetches the current row for id.
func (r *AccountWriteRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
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

// Update overwrites every mutable column of the row identified by account.ID.
func (r *AccountWriteRepository) Update(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, email = $3, address = $4, phone_number = $5, date_joined = $6
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		account.ID, account.Name, account.Email, account.Address,
		nullable(account.PhoneNumber), account.DateJoined,
	)
	if err != nil {
		if isIDOutOfRange(err) {
			return ErrAccountNotFound
		}
		if isDataError(err) {
			return fmt.Errorf("%w: %v", ErrInvalidAccount, err)
		}
		return fmt.Errorf("failed to update account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// Delete removes the row for id. It reports whether a row existed; a missing
// row is not an error.
func (r *AccountWriteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if isIDOutOfRange(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows > 0, nil
}
