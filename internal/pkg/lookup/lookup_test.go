package lookup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-anon-inbox/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticStore struct {
	accounts []domain.Account
	err      error
}

func (s staticStore) ListByUsername(context.Context, string) ([]domain.Account, error) {
	return s.accounts, s.err
}

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAccount_PrefersVerified(t *testing.T) {
	store := staticStore{accounts: []domain.Account{
		{AccountID: "new", CreatedAt: t0.Add(time.Hour)},
		{AccountID: "verified", IsVerified: true, CreatedAt: t0},
	}}
	a, err := Account(context.Background(), store, "bob")
	require.NoError(t, err)
	assert.Equal(t, "verified", a.AccountID)
}

func TestAccount_NewestUnverified(t *testing.T) {
	store := staticStore{accounts: []domain.Account{
		{AccountID: "old", CreatedAt: t0},
		{AccountID: "new", CreatedAt: t0.Add(time.Hour)},
	}}
	a, err := Account(context.Background(), store, "bob")
	require.NoError(t, err)
	assert.Equal(t, "new", a.AccountID)
}

func TestAccount_NotFound(t *testing.T) {
	_, err := Account(context.Background(), staticStore{}, "bob")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAccount_StoreError(t *testing.T) {
	boom := errors.New("dynamo down")
	_, err := Account(context.Background(), staticStore{err: boom}, "bob")
	assert.ErrorIs(t, err, boom)
}

func TestVerified_IgnoresUnverified(t *testing.T) {
	store := staticStore{accounts: []domain.Account{{AccountID: "u1"}}}
	_, err := Verified(context.Background(), store, "bob")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
