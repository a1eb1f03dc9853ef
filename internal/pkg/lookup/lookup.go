// Package lookup resolves accounts by username. Usernames are unique only among
// verified accounts, so a lookup may see several candidates and must pick one.
package lookup

import (
	"context"
	"fmt"

	"github.com/go-anon-inbox/internal/domain"
)

type usernameStore interface {
	ListByUsername(ctx context.Context, username string) ([]domain.Account, error)
}

// Account returns the account owning username. A verified account wins; otherwise
// the most recently created unverified one is returned.
func Account(ctx context.Context, store usernameStore, username string) (*domain.Account, error) {
	accounts, err := store.ListByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	var pick *domain.Account
	for i := range accounts {
		a := &accounts[i]
		if a.IsVerified {
			return a, nil
		}
		if pick == nil || a.CreatedAt.After(pick.CreatedAt) {
			pick = a
		}
	}
	if pick == nil {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return pick, nil
}

// Verified returns the verified account owning username, or ErrNotFound.
func Verified(ctx context.Context, store usernameStore, username string) (*domain.Account, error) {
	accounts, err := store.ListByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].IsVerified {
			return &accounts[i], nil
		}
	}
	return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
}
