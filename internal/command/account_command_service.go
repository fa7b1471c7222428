package command

import (
	"context"
	"log/slog"

	"github.com/eaglebank/account-service/internal/cqrs"
	"github.com/eaglebank/account-service/internal/events"
	"github.com/eaglebank/account-service/internal/models"
)

// AccountWriter is the write store the command service persists to.
type AccountWriter interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// EventPublisher emits account lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data any) error
}

// AccountCommandService writes account state and announces every change.
type AccountCommandService struct {
	writeRepo AccountWriter
	publisher EventPublisher
	logger    *slog.Logger
}

func NewAccountCommandService(writeRepo AccountWriter, publisher EventPublisher, logger *slog.Logger) *AccountCommandService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountCommandService{
		writeRepo: writeRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *AccountCommandService) CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.Account, error) {
	account := &models.Account{
		Name:        cmd.Name,
		Email:       cmd.Email,
		Address:     cmd.Address,
		PhoneNumber: cmd.PhoneNumber,
		DateJoined:  cmd.DateJoined,
	}
	if account.DateJoined.IsZero() {
		account.DateJoined = models.Today()
	}
	if err := s.writeRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	s.publish(ctx, events.AccountCreated, events.AccountCreatedEvent{Account: *account})
	return account, nil
}

// UpdateAccount replaces all mutable fields. The ID is preserved. A missing
// account is reported as repository.ErrAccountNotFound from the lookup.
func (s *AccountCommandService) UpdateAccount(ctx context.Context, cmd cqrs.UpdateAccountCommand) (*models.Account, error) {
	account, err := s.writeRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	before := *account
	account.Name = cmd.Name
	account.Email = cmd.Email
	account.Address = cmd.Address
	account.PhoneNumber = cmd.PhoneNumber
	if !cmd.DateJoined.IsZero() {
		account.DateJoined = cmd.DateJoined
	}
	if err := s.writeRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	s.publish(ctx, events.AccountUpdated, events.AccountUpdatedEvent{
		Account: *account,
		Changed: events.ChangedFields(before, *account),
	})
	return account, nil
}

// DeleteAccount removes the account if it exists. Deleting a missing account succeeds.
func (s *AccountCommandService) DeleteAccount(ctx context.Context, cmd cqrs.DeleteAccountCommand) error {
	removed, err := s.writeRepo.Delete(ctx, cmd.ID)
	if err != nil {
		return err
	}
	if removed {
		s.publish(ctx, events.AccountDeleted, events.AccountDeletedEvent{ID: cmd.ID})
	}
	return nil
}

func (s *AccountCommandService) publish(ctx context.Context, eventType string, data any) {
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.logger.Warn("failed to publish event",
			slog.String("type", eventType),
			slog.String("error", err.Error()))
	}
}
