package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eaglebank/account-service/internal/cqrs"
	"github.com/eaglebank/account-service/internal/events"
	"github.com/eaglebank/account-service/internal/models"
	"github.com/eaglebank/account-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeWriter struct {
	nextID   int64
	accounts map[int64]models.Account
	err      error
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{nextID: 1, accounts: map[int64]models.Account{}}
}

func (f *fakeWriter) Create(ctx context.Context, a *models.Account) error {
	if f.err != nil {
		return f.err
	}
	a.ID = f.nextID
	f.nextID++
	f.accounts[a.ID] = *a
	return nil
}

func (f *fakeWriter) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return &a, nil
}

func (f *fakeWriter) Update(ctx context.Context, a *models.Account) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.accounts[a.ID]; !ok {
		return repository.ErrAccountNotFound
	}
	f.accounts[a.ID] = *a
	return nil
}

func (f *fakeWriter) Delete(ctx context.Context, id int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.accounts[id]
	delete(f.accounts, id)
	return ok, nil
}

type published struct {
	eventType string
	data      any
}

type fakePublisher struct {
	events []published
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, eventType string, data any) error {
	p.events = append(p.events, published{eventType, data})
	return p.err
}

// ---- tests ----

func TestCreateAccount(t *testing.T) {
	writer, pub := newFakeWriter(), &fakePublisher{}
	svc := NewAccountCommandService(writer, pub, nil)

	joined := models.NewDate(2022, time.August, 1)
	account, err := svc.CreateAccount(context.Background(), cqrs.CreateAccountCommand{
		Name: "Joe", Email: "joe@x.com", DateJoined: joined,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), account.ID)
	assert.Equal(t, "Joe", account.Name)
	assert.Equal(t, joined, account.DateJoined)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.AccountCreated, pub.events[0].eventType)
	assert.Equal(t, events.AccountCreatedEvent{Account: *account}, pub.events[0].data)
}

func TestCreateAccount_AssignsUniqueIDs(t *testing.T) {
	svc := NewAccountCommandService(newFakeWriter(), events.NopPublisher{}, nil)

	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		a, err := svc.CreateAccount(context.Background(), cqrs.CreateAccountCommand{Name: "n", Email: "e"})
		require.NoError(t, err)
		assert.False(t, seen[a.ID], "duplicate id %d", a.ID)
		seen[a.ID] = true
	}
}

func TestCreateAccount_DefaultsDateJoined(t *testing.T) {
	svc := NewAccountCommandService(newFakeWriter(), events.NopPublisher{}, nil)

	account, err := svc.CreateAccount(context.Background(), cqrs.CreateAccountCommand{Name: "Joe", Email: "joe@x.com"})
	require.NoError(t, err)
	assert.Equal(t, models.Today(), account.DateJoined)
}

func TestCreateAccount_StoreError(t *testing.T) {
	writer, pub := newFakeWriter(), &fakePublisher{}
	writer.err = errors.New("db down")
	svc := NewAccountCommandService(writer, pub, nil)

	_, err := svc.CreateAccount(context.Background(), cqrs.CreateAccountCommand{Name: "Joe", Email: "joe@x.com"})
	assert.Error(t, err)
	assert.Empty(t, pub.events)
}

func TestCreateAccount_PublishFailureIsNotFatal(t *testing.T) {
	pub := &fakePublisher{err: errors.New("redis unavailable")}
	svc := NewAccountCommandService(newFakeWriter(), pub, nil)

	account, err := svc.CreateAccount(context.Background(), cqrs.CreateAccountCommand{Name: "Joe", Email: "joe@x.com"})
	require.NoError(t, err)
	assert.NotZero(t, account.ID)
}

func TestUpdateAccount(t *testing.T) {
	writer, pub := newFakeWriter(), &fakePublisher{}
	svc := NewAccountCommandService(writer, pub, nil)
	ctx := context.Background()

	joined := models.NewDate(2020, time.January, 1)
	created, err := svc.CreateAccount(ctx, cqrs.CreateAccountCommand{
		Name: "Joe", Email: "joe@x.com", Address: "1 Main St", PhoneNumber: "555-0100", DateJoined: joined,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateAccount(ctx, cqrs.UpdateAccountCommand{
		ID: created.ID, Name: "Updated Name", Email: "joe@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Updated Name", updated.Name)
	assert.Equal(t, "", updated.Address)
	assert.Equal(t, "", updated.PhoneNumber)
	assert.Equal(t, joined, updated.DateJoined, "omitted date_joined keeps the stored date")

	stored, _ := writer.GetByID(ctx, created.ID)
	assert.Equal(t, "Updated Name", stored.Name)

	require.Len(t, pub.events, 2)
	assert.Equal(t, events.AccountUpdated, pub.events[1].eventType)
	assert.Equal(t, events.AccountUpdatedEvent{
		Account: *updated,
		Changed: []string{"name", "address", "phone_number"},
	}, pub.events[1].data)
}

func TestUpdateAccount_NotFound(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewAccountCommandService(newFakeWriter(), pub, nil)

	_, err := svc.UpdateAccount(context.Background(), cqrs.UpdateAccountCommand{ID: 0, Name: "x", Email: "y"})
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
	assert.Empty(t, pub.events)
}

func TestDeleteAccount(t *testing.T) {
	writer, pub := newFakeWriter(), &fakePublisher{}
	svc := NewAccountCommandService(writer, pub, nil)
	ctx := context.Background()

	created, err := svc.CreateAccount(ctx, cqrs.CreateAccountCommand{Name: "Joe", Email: "joe@x.com"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, cqrs.DeleteAccountCommand{ID: created.ID}))
	_, err = writer.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)

	require.Len(t, pub.events, 2)
	assert.Equal(t, events.AccountDeleted, pub.events[1].eventType)

	// deleting again is a no-op and emits nothing
	require.NoError(t, svc.DeleteAccount(ctx, cqrs.DeleteAccountCommand{ID: created.ID}))
	assert.Len(t, pub.events, 2)
}

func TestDeleteAccount_StoreError(t *testing.T) {
	writer := newFakeWriter()
	writer.err = errors.New("db down")
	svc := NewAccountCommandService(writer, events.NopPublisher{}, nil)

	assert.Error(t, svc.DeleteAccount(context.Background(), cqrs.DeleteAccountCommand{ID: 1}))
}
